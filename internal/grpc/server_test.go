package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Belphemur/GogoResolver/internal/apperrors"
	"github.com/Belphemur/GogoResolver/internal/models"
)

// mockClient implements client.Client for testing
type mockClient struct {
	searchFunc       func(ctx context.Context, query string) ([]models.SeriesSearchResult, error)
	listEpisodesFunc func(ctx context.Context, seriesID string) ([]models.EpisodeReference, error)
	episodeRangeFunc func(ctx context.Context, seriesID string) (models.EpisodeRange, error)
	resolveVideoFunc func(ctx context.Context, ref models.EpisodeReference) ([]models.VideoSource, error)
}

func (m *mockClient) Search(ctx context.Context, query string) ([]models.SeriesSearchResult, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}
	return []models.SeriesSearchResult{}, nil
}

func (m *mockClient) ListEpisodes(ctx context.Context, seriesID string) ([]models.EpisodeReference, error) {
	if m.listEpisodesFunc != nil {
		return m.listEpisodesFunc(ctx, seriesID)
	}
	return []models.EpisodeReference{}, nil
}

func (m *mockClient) EpisodeRange(ctx context.Context, seriesID string) (models.EpisodeRange, error) {
	if m.episodeRangeFunc != nil {
		return m.episodeRangeFunc(ctx, seriesID)
	}
	return models.EpisodeRange{}, nil
}

func (m *mockClient) ResolveVideo(ctx context.Context, ref models.EpisodeReference) ([]models.VideoSource, error) {
	if m.resolveVideoFunc != nil {
		return m.resolveVideoFunc(ctx, ref)
	}
	return []models.VideoSource{}, nil
}

func (m *mockClient) Close() error {
	return nil
}

func TestServer_Search(t *testing.T) {
	srv := NewServer(&mockClient{
		searchFunc: func(ctx context.Context, query string) ([]models.SeriesSearchResult, error) {
			if query != "  one piece " {
				t.Errorf("Expected the query to be forwarded verbatim, got %q", query)
			}
			return []models.SeriesSearchResult{
				{ID: "one-piece", Name: "One Piece"},
				{ID: "one-piece-dub", Name: "One Piece (Dub)"},
			}, nil
		},
	})

	list, err := srv.Search(context.Background(), wrapperspb.String("  one piece "))
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(list.Values) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(list.Values))
	}
	first := list.Values[0].GetStructValue().GetFields()
	if first["id"].GetStringValue() != "one-piece" || first["name"].GetStringValue() != "One Piece" {
		t.Errorf("Unexpected first result: %v", first)
	}
}

func TestServer_ListEpisodes(t *testing.T) {
	srv := NewServer(&mockClient{
		listEpisodesFunc: func(ctx context.Context, seriesID string) ([]models.EpisodeReference, error) {
			return []models.EpisodeReference{"/naruto-episode-2", "", "/naruto-episode-1"}, nil
		},
	})

	list, err := srv.ListEpisodes(context.Background(), wrapperspb.String("naruto"))
	if err != nil {
		t.Fatalf("ListEpisodes failed: %v", err)
	}

	expected := []string{"/naruto-episode-2", "", "/naruto-episode-1"}
	if len(list.Values) != len(expected) {
		t.Fatalf("Expected %d references, got %d", len(expected), len(list.Values))
	}
	for i, want := range expected {
		if got := list.Values[i].GetStringValue(); got != want {
			t.Errorf("Reference %d = %q, want %q", i, got, want)
		}
	}
}

func TestServer_EpisodeRange(t *testing.T) {
	srv := NewServer(&mockClient{
		episodeRangeFunc: func(ctx context.Context, seriesID string) (models.EpisodeRange, error) {
			return models.EpisodeRange{Start: 1, End: 221}, nil
		},
	})

	s, err := srv.EpisodeRange(context.Background(), wrapperspb.String("naruto"))
	if err != nil {
		t.Fatalf("EpisodeRange failed: %v", err)
	}
	if got := convertRangeFromProto(s); got != (models.EpisodeRange{Start: 1, End: 221}) {
		t.Errorf("EpisodeRange() = %+v, want {1 221}", got)
	}
}

func TestServer_ResolveVideo(t *testing.T) {
	srv := NewServer(&mockClient{
		resolveVideoFunc: func(ctx context.Context, ref models.EpisodeReference) ([]models.VideoSource, error) {
			if ref != "/naruto-episode-1" {
				t.Errorf("Expected reference /naruto-episode-1, got %q", ref)
			}
			return []models.VideoSource{
				{URL: "https://cdn.test/final-a.mp4", Origin: "https://cdn.example/a.mp4"},
			}, nil
		},
	})

	list, err := srv.ResolveVideo(context.Background(), wrapperspb.String("/naruto-episode-1"))
	if err != nil {
		t.Fatalf("ResolveVideo failed: %v", err)
	}
	if len(list.Values) != 1 {
		t.Fatalf("Expected 1 source, got %d", len(list.Values))
	}
	fields := list.Values[0].GetStructValue().GetFields()
	if fields["url"].GetStringValue() != "https://cdn.test/final-a.mp4" {
		t.Errorf("Unexpected url %q", fields["url"].GetStringValue())
	}
	if fields["origin"].GetStringValue() != "https://cdn.example/a.mp4" {
		t.Errorf("Unexpected origin %q", fields["origin"].GetStringValue())
	}
}

func TestServer_EmptyRequest(t *testing.T) {
	srv := NewServer(&mockClient{})
	ctx := context.Background()

	calls := map[string]func() error{
		"Search": func() error {
			_, err := srv.Search(ctx, wrapperspb.String(""))
			return err
		},
		"ListEpisodes": func() error {
			_, err := srv.ListEpisodes(ctx, wrapperspb.String(" "))
			return err
		},
		"EpisodeRange": func() error {
			_, err := srv.EpisodeRange(ctx, &wrapperspb.StringValue{})
			return err
		},
		"ResolveVideo": func() error {
			_, err := srv.ResolveVideo(ctx, nil)
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			if code := status.Code(call()); code != codes.InvalidArgument {
				t.Errorf("Expected InvalidArgument, got %v", code)
			}
		})
	}
}

func TestServer_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   codes.Code
		reason string
		url    string
	}{
		{
			name:   "not found",
			err:    apperrors.NewNotFoundError("player iframe", "https://origin.test/ep-1"),
			code:   codes.NotFound,
			reason: ReasonNotFound,
			url:    "https://origin.test/ep-1",
		},
		{
			name:   "malformed origin",
			err:    &apperrors.ErrMalformedOrigin{Resource: "episode pager", Attribute: "ep_end", URL: "https://origin.test/category/x"},
			code:   codes.DataLoss,
			reason: ReasonMalformedOrigin,
			url:    "https://origin.test/category/x",
		},
		{
			name:   "invalid json",
			err:    &apperrors.ErrParseJSON{URL: "https://player.test/ajax.php?id=1", Err: errors.New("invalid character")},
			code:   codes.DataLoss,
			reason: ReasonParseJSON,
			url:    "https://player.test/ajax.php?id=1",
		},
		{
			name:   "origin unreachable",
			err:    &apperrors.ErrSendGetRequest{URL: "https://origin.test/search.html", Err: errors.New("connection refused")},
			code:   codes.Unavailable,
			reason: ReasonSendGetRequest,
			url:    "https://origin.test/search.html",
		},
		{
			name:   "unreadable body",
			err:    &apperrors.ErrRequestText{URL: "https://origin.test/search.html", Err: errors.New("unexpected EOF")},
			code:   codes.Unavailable,
			reason: ReasonRequestText,
			url:    "https://origin.test/search.html",
		},
		{
			name:   "bad url",
			err:    &apperrors.ErrCreateURL{Raw: "::bad", Err: errors.New("missing protocol scheme")},
			code:   codes.InvalidArgument,
			reason: ReasonCreateURL,
		},
		{
			name:   "canceled",
			err:    &apperrors.ErrSendGetRequest{URL: "https://origin.test/search.html", Err: context.Canceled},
			code:   codes.Canceled,
			reason: ReasonCanceled,
			url:    "https://origin.test/search.html",
		},
		{
			name:   "wrapped not found",
			err:    fmt.Errorf("episode 3: %w", apperrors.NewNotFoundError("player iframe", "")),
			code:   codes.NotFound,
			reason: ReasonNotFound,
		},
		{
			name:   "unexpected",
			err:    errors.New("boom"),
			code:   codes.Internal,
			reason: ReasonInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(&mockClient{
				searchFunc: func(ctx context.Context, query string) ([]models.SeriesSearchResult, error) {
					return nil, tt.err
				},
			})

			_, err := srv.Search(context.Background(), wrapperspb.String("naruto"))
			st, ok := status.FromError(err)
			if !ok {
				t.Fatalf("Expected a status error, got %v", err)
			}
			if st.Code() != tt.code {
				t.Errorf("Code = %v, want %v", st.Code(), tt.code)
			}

			var info *errdetails.ErrorInfo
			for _, d := range st.Details() {
				if i, ok := d.(*errdetails.ErrorInfo); ok {
					info = i
				}
			}
			if info == nil {
				t.Fatal("Expected ErrorInfo detail")
			}
			if info.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", info.Reason, tt.reason)
			}
			if info.Domain != ErrorDomain {
				t.Errorf("Domain = %q, want %q", info.Domain, ErrorDomain)
			}
			if info.Metadata["operation"] != "search" {
				t.Errorf("Expected operation metadata 'search', got %q", info.Metadata["operation"])
			}
			if info.Metadata["url"] != tt.url {
				t.Errorf("url metadata = %q, want %q", info.Metadata["url"], tt.url)
			}
		})
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		code   codes.Code
	}{
		{name: "not found", err: apperrors.NewNotFoundError("player iframe", "https://origin.test/ep-1"), target: &apperrors.ErrNotFound{}, code: codes.NotFound},
		{name: "malformed origin", err: &apperrors.ErrMalformedOrigin{Resource: "episode pager", Attribute: "ep_end", Value: "x"}, target: &apperrors.ErrMalformedOrigin{}, code: codes.DataLoss},
		{name: "invalid json", err: &apperrors.ErrParseJSON{URL: "https://player.test/ajax.php", Err: errors.New("invalid character")}, target: &apperrors.ErrParseJSON{}, code: codes.DataLoss},
		{name: "origin unreachable", err: &apperrors.ErrSendGetRequest{URL: "https://origin.test/", Err: errors.New("connection refused")}, target: &apperrors.ErrSendGetRequest{}, code: codes.Unavailable},
		{name: "unreadable body", err: &apperrors.ErrRequestText{URL: "https://origin.test/", Err: errors.New("unexpected EOF")}, target: &apperrors.ErrRequestText{}, code: codes.Unavailable},
		{name: "bad url", err: &apperrors.ErrCreateURL{Raw: "::bad", Err: errors.New("missing protocol scheme")}, target: &apperrors.ErrCreateURL{}, code: codes.InvalidArgument},
		{name: "canceled", err: &apperrors.ErrSendGetRequest{Err: context.Canceled}, target: context.Canceled, code: codes.Canceled},
		{name: "deadline", err: &apperrors.ErrSendGetRequest{Err: context.DeadlineExceeded}, target: context.DeadlineExceeded, code: codes.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fromStatus(toStatus(context.Background(), "search", tt.err))
			if !errors.Is(err, tt.target) {
				t.Errorf("Expected %T, got %v", tt.target, err)
			}
			if code := status.Code(err); code != tt.code {
				t.Errorf("Code = %v, want %v", code, tt.code)
			}
		})
	}
}

func TestFromStatus_KeepsOriginDetails(t *testing.T) {
	err := fromStatus(toStatus(context.Background(), "episode_range", &apperrors.ErrMalformedOrigin{
		Resource:  "episode pager",
		Attribute: "ep_end",
		Value:     "twelve",
		URL:       "https://origin.test/category/x",
	}))

	var malformed *apperrors.ErrMalformedOrigin
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected ErrMalformedOrigin, got %v", err)
	}
	expected := apperrors.ErrMalformedOrigin{
		Resource:  "episode pager",
		Attribute: "ep_end",
		Value:     "twelve",
		URL:       "https://origin.test/category/x",
	}
	if *malformed != expected {
		t.Errorf("Got %+v, want %+v", *malformed, expected)
	}
}

func TestFromStatus_EmptyArgument(t *testing.T) {
	err := fromStatus(invalidArgument("search", "query"))
	if !errors.Is(err, &apperrors.ErrCreateURL{}) {
		t.Errorf("Expected ErrCreateURL, got %v", err)
	}
	if code := status.Code(err); code != codes.InvalidArgument {
		t.Errorf("Code = %v, want InvalidArgument", code)
	}
}

func TestFromStatus_PassesThroughForeignErrors(t *testing.T) {
	plain := errors.New("dial failed")
	if got := fromStatus(plain); got != plain {
		t.Errorf("Expected a plain error to be returned unchanged, got %v", got)
	}

	internal := toStatus(context.Background(), "search", errors.New("boom"))
	if got := fromStatus(internal); got != internal {
		t.Errorf("Expected an internal status to be returned unchanged, got %v", got)
	}

	bare := status.Error(codes.Unavailable, "connection closed")
	if got := fromStatus(bare); got != bare {
		t.Errorf("Expected a status without details to be returned unchanged, got %v", got)
	}
}
