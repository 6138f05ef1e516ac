package grpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/getsentry/sentry-go"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Belphemur/GogoResolver/internal/apperrors"
)

// ErrorDomain is the errdetails.ErrorInfo domain attached to every failed call
const ErrorDomain = "gogoresolver"

// ErrorInfo reasons
const (
	ReasonNotFound        = "ORIGIN_ELEMENT_NOT_FOUND"
	ReasonMalformedOrigin = "ORIGIN_MALFORMED"
	ReasonParseJSON       = "ORIGIN_INVALID_JSON"
	ReasonSendGetRequest  = "ORIGIN_UNREACHABLE"
	ReasonRequestText     = "ORIGIN_UNREADABLE"
	ReasonCreateURL       = "INVALID_URL"
	ReasonCanceled        = "CANCELED"
	ReasonInternal        = "INTERNAL"
)

type errorMapping struct {
	target error
	code   codes.Code
	reason string
}

// Checked in order: context errors surface through ErrSendGetRequest, so they come first.
var errorMappings = []errorMapping{
	{target: context.Canceled, code: codes.Canceled, reason: ReasonCanceled},
	{target: context.DeadlineExceeded, code: codes.DeadlineExceeded, reason: ReasonCanceled},
	{target: &apperrors.ErrNotFound{}, code: codes.NotFound, reason: ReasonNotFound},
	{target: &apperrors.ErrMalformedOrigin{}, code: codes.DataLoss, reason: ReasonMalformedOrigin},
	{target: &apperrors.ErrParseJSON{}, code: codes.DataLoss, reason: ReasonParseJSON},
	{target: &apperrors.ErrSendGetRequest{}, code: codes.Unavailable, reason: ReasonSendGetRequest},
	{target: &apperrors.ErrRequestText{}, code: codes.Unavailable, reason: ReasonRequestText},
	{target: &apperrors.ErrCreateURL{}, code: codes.InvalidArgument, reason: ReasonCreateURL},
}

// toStatus converts a pipeline error to a gRPC status error carrying an
// errdetails.ErrorInfo. Errors meaning the origin changed shape, and errors
// outside the pipeline taxonomy, are reported to Sentry.
func toStatus(ctx context.Context, operation string, err error) error {
	code, reason := codes.Internal, ReasonInternal
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			code, reason = m.code, m.reason
			break
		}
	}

	if code == codes.Internal || code == codes.DataLoss {
		captureException(ctx, operation, err)
	}

	metadata := map[string]string{"operation": operation}
	if url := errorURL(err); url != "" {
		metadata["url"] = url
	}
	var notFound *apperrors.ErrNotFound
	var malformed *apperrors.ErrMalformedOrigin
	switch {
	case errors.As(err, &notFound):
		metadata["resource"] = notFound.Resource
	case errors.As(err, &malformed):
		metadata["resource"] = malformed.Resource
		metadata["attribute"] = malformed.Attribute
		if malformed.Value != "" {
			metadata["value"] = malformed.Value
		}
	}

	st := status.New(code, err.Error())
	detailed, detailErr := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   ErrorDomain,
		Metadata: metadata,
	})
	if detailErr != nil {
		return st.Err()
	}
	return detailed.Err()
}

func invalidArgument(operation, field string) error {
	st := status.New(codes.InvalidArgument, field+" must not be empty")
	detailed, err := st.WithDetails(&errdetails.BadRequest{
		FieldViolations: []*errdetails.BadRequest_FieldViolation{
			{Field: field, Description: "required by " + operation},
		},
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// errorURL returns the origin URL an error refers to, if any.
func errorURL(err error) string {
	var notFound *apperrors.ErrNotFound
	if errors.As(err, &notFound) {
		return notFound.URL
	}
	var malformed *apperrors.ErrMalformedOrigin
	if errors.As(err, &malformed) {
		return malformed.URL
	}
	var parseJSON *apperrors.ErrParseJSON
	if errors.As(err, &parseJSON) {
		return parseJSON.URL
	}
	var sendGet *apperrors.ErrSendGetRequest
	if errors.As(err, &sendGet) {
		return sendGet.URL
	}
	var requestText *apperrors.ErrRequestText
	if errors.As(err, &requestText) {
		return requestText.URL
	}
	return ""
}

func captureException(ctx context.Context, operation string, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("operation", operation)
		if url := errorURL(err); url != "" {
			scope.SetContext("origin", sentry.Context{"url": url})
		}
		hub.CaptureException(err)
	})
}

// remoteError is a pipeline error rebuilt from a gRPC status. It unwraps to the
// apperrors value and still reports the original status to status.FromError.
type remoteError struct {
	err    error
	status *status.Status
}

func (e *remoteError) Error() string { return e.err.Error() }

func (e *remoteError) Unwrap() error { return e.err }

func (e *remoteError) GRPCStatus() *status.Status { return e.status }

// fromStatus is the inverse of toStatus and invalidArgument. Errors that are not
// statuses, or carry no detail from this service, are returned unchanged.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok || st.Code() == codes.OK {
		return err
	}

	message := errors.New(st.Message())
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			if d.GetDomain() != ErrorDomain {
				continue
			}
			if rebuilt := errorFromInfo(st, d.GetReason(), d.GetMetadata(), message); rebuilt != nil {
				return &remoteError{err: rebuilt, status: st}
			}
		case *errdetails.BadRequest:
			field := ""
			if violations := d.GetFieldViolations(); len(violations) > 0 {
				field = violations[0].GetField()
			}
			return &remoteError{err: &apperrors.ErrCreateURL{Raw: "", Err: fmt.Errorf("empty %s", field)}, status: st}
		}
	}
	return err
}

func errorFromInfo(st *status.Status, reason string, metadata map[string]string, message error) error {
	url := metadata["url"]
	switch reason {
	case ReasonNotFound:
		return apperrors.NewNotFoundError(metadata["resource"], url)
	case ReasonMalformedOrigin:
		return &apperrors.ErrMalformedOrigin{
			Resource:  metadata["resource"],
			Attribute: metadata["attribute"],
			Value:     metadata["value"],
			URL:       url,
		}
	case ReasonParseJSON:
		return &apperrors.ErrParseJSON{URL: url, Err: message}
	case ReasonSendGetRequest:
		return &apperrors.ErrSendGetRequest{URL: url, Err: message}
	case ReasonRequestText:
		return &apperrors.ErrRequestText{URL: url, Err: message}
	case ReasonCreateURL:
		return &apperrors.ErrCreateURL{Raw: url, Err: message}
	case ReasonCanceled:
		if st.Code() == codes.DeadlineExceeded {
			return fmt.Errorf("%s: %w", st.Message(), context.DeadlineExceeded)
		}
		return fmt.Errorf("%s: %w", st.Message(), context.Canceled)
	}
	return nil
}
