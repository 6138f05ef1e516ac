package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Belphemur/GogoResolver/internal/apperrors"
	"github.com/Belphemur/GogoResolver/internal/metrics"
	"github.com/Belphemur/GogoResolver/internal/parser"
)

// page is a fully read origin response
type page struct {
	body        []byte
	url         string // after redirects
	contentType string
}

// endpoint joins an origin and a path (which may carry its own query) into an absolute URL.
func endpoint(origin, path string) (*url.URL, error) {
	base, err := parseOrigin(origin)
	if err != nil {
		return nil, err
	}
	ref, err := url.Parse(path)
	if err != nil {
		return nil, &apperrors.ErrCreateURL{Raw: path, Err: err}
	}
	return base.ResolveReference(ref), nil
}

func parseOrigin(origin string) (*url.URL, error) {
	base, err := url.Parse(origin)
	if err != nil {
		return nil, &apperrors.ErrCreateURL{Raw: origin, Err: err}
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, &apperrors.ErrCreateURL{Raw: origin, Err: errors.New("origin must be an absolute URL")}
	}
	return base, nil
}

// fetchPage sends a GET request and reads the whole response body, whatever
// the status. Only transport failures are reported as apperrors.ErrSendGetRequest.
func (c *client) fetchPage(ctx context.Context, target *url.URL) (*page, error) {
	raw := target.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, &apperrors.ErrCreateURL{Raw: raw, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.OriginRequestsTotal.WithLabelValues("0").Inc()
		return nil, &apperrors.ErrSendGetRequest{URL: raw, Err: err}
	}
	defer resp.Body.Close()

	metrics.OriginRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.ErrRequestText{URL: raw, Err: err}
	}

	return &page{
		body:        body,
		url:         resp.Request.URL.String(),
		contentType: resp.Header.Get("Content-Type"),
	}, nil
}

// parseHTML decodes p to UTF-8 and runs parse over it. Parser errors are
// annotated with the page URL so callers can tell which document was off.
func parseHTML[T any](p *page, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	reader, err := parser.NewUTF8Reader(bytes.NewReader(p.body), p.contentType)
	if err != nil {
		return zero, &apperrors.ErrRequestText{URL: p.url, Err: err}
	}
	result, err := parse(reader)
	if err != nil {
		return zero, withPageURL(err, p.url)
	}
	return result, nil
}

func withPageURL(err error, pageURL string) error {
	var notFound *apperrors.ErrNotFound
	if errors.As(err, &notFound) {
		if notFound.URL == "" {
			notFound.URL = pageURL
		}
		return err
	}
	var malformed *apperrors.ErrMalformedOrigin
	if errors.As(err, &malformed) {
		if malformed.URL == "" {
			malformed.URL = pageURL
		}
		return err
	}
	var parseJSON *apperrors.ErrParseJSON
	if errors.As(err, &parseJSON) {
		if parseJSON.URL == "" {
			parseJSON.URL = pageURL
		}
		return err
	}
	return &apperrors.ErrRequestText{URL: pageURL, Err: err}
}

func requireValue(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return &apperrors.ErrCreateURL{Raw: value, Err: fmt.Errorf("empty %s", name)}
	}
	return nil
}
