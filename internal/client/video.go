package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/Belphemur/GogoResolver/internal/apperrors"
	"github.com/Belphemur/GogoResolver/internal/config"
	"github.com/Belphemur/GogoResolver/internal/metrics"
	"github.com/Belphemur/GogoResolver/internal/models"
)

// ResolveVideo follows an episode reference to its player, asks the source lookup
// endpoint for the listed files and resolves each of them to its final URL.
//
// Sources are fetched concurrently. The call succeeds only if every source
// resolves; otherwise no source is returned.
func (c *client) ResolveVideo(ctx context.Context, ref models.EpisodeReference) (sources []models.VideoSource, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveOperation(metrics.OperationResolveVideo, time.Since(start).Seconds(), err)
	}()

	logger := config.GetLogger()

	base, err := parseOrigin(c.site.BaseURL)
	if err != nil {
		return nil, err
	}
	rawRef := strings.TrimSpace(string(ref))
	if err := requireValue("episode reference", rawRef); err != nil {
		return nil, err
	}
	refURL, err := url.Parse(rawRef)
	if err != nil {
		return nil, &apperrors.ErrCreateURL{Raw: rawRef, Err: err}
	}

	episodeURL := base.ResolveReference(refURL)
	logger.Info().Str("episode", rawRef).Str("url", episodeURL.String()).Msg("Resolving video sources")

	p, err := c.fetchPage(ctx, episodeURL)
	if err != nil {
		logger.Error().Err(err).Str("episode", rawRef).Msg("Failed to fetch episode page")
		return nil, err
	}

	iframeSrc, err := parseHTML(p, c.playerParser.ParseHtml)
	if err != nil {
		logger.Error().Err(err).Str("episode", rawRef).Msg("Failed to parse episode page")
		return nil, err
	}

	lookupURL, err := c.sourceLookupURL(base, iframeSrc)
	if err != nil {
		return nil, err
	}

	files, err := c.fetchSourceList(ctx, lookupURL)
	if err != nil {
		logger.Error().Err(err).Str("episode", rawRef).Msg("Failed to fetch source list")
		return nil, err
	}

	sources, err = c.resolveSources(ctx, files)
	if err != nil {
		logger.Error().Err(err).Str("episode", rawRef).Int("sources", len(files)).Msg("Failed to resolve video sources")
		return nil, err
	}

	logger.Info().Str("episode", rawRef).Int("sources", len(sources)).Msg("Video sources resolved")
	return sources, nil
}

// sourceLookupURL resolves the player iframe src against base and swaps its
// path for the source lookup path. Host and query string are kept verbatim.
func (c *client) sourceLookupURL(base *url.URL, iframeSrc string) (*url.URL, error) {
	iframeRef, err := url.Parse(strings.TrimSpace(iframeSrc))
	if err != nil {
		return nil, &apperrors.ErrCreateURL{Raw: iframeSrc, Err: err}
	}
	lookupURL := base.ResolveReference(iframeRef)
	lookupURL.Path = c.site.SourcePath
	lookupURL.RawPath = ""
	lookupURL.Fragment = ""
	lookupURL.RawFragment = ""
	return lookupURL, nil
}

func (c *client) fetchSourceList(ctx context.Context, lookupURL *url.URL) ([]string, error) {
	logger := config.GetLogger()
	logger.Debug().Str("url", lookupURL.String()).Msg("Fetching source list")

	p, err := c.fetchPage(ctx, lookupURL)
	if err != nil {
		return nil, err
	}

	files, err := c.sourceListParser.ParseJSON(p.body)
	if err != nil {
		return nil, withPageURL(err, p.url)
	}
	return files, nil
}

type sourceResult struct {
	source models.VideoSource
	err    error
}

// resolveSources follows every file to its final URL concurrently and returns
// the results in input order. The first failing position, if any, fails the call.
func (c *client) resolveSources(ctx context.Context, files []string) ([]models.VideoSource, error) {
	results := make([]sourceResult, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func() {
			defer wg.Done()
			finalURL, err := c.followSource(ctx, file)
			if err != nil {
				metrics.SourceFetchesTotal.WithLabelValues(metrics.StatusError).Inc()
				results[i] = sourceResult{err: err}
				return
			}
			metrics.SourceFetchesTotal.WithLabelValues(metrics.StatusSuccess).Inc()
			results[i] = sourceResult{source: models.VideoSource{URL: finalURL, Origin: file}}
		}()
	}
	wg.Wait()

	if failed, found := lo.Find(results, func(r sourceResult) bool { return r.err != nil }); found {
		return nil, failed.err
	}
	return lo.Map(results, func(r sourceResult, _ int) models.VideoSource {
		return r.source
	}), nil
}

// followSource issues a GET for file and returns the URL the redirect chain ends on,
// whatever the final status. The body is never read.
func (c *client) followSource(ctx context.Context, file string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file, nil)
	if err != nil {
		return "", &apperrors.ErrSendGetRequest{URL: file, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.OriginRequestsTotal.WithLabelValues("0").Inc()
		return "", &apperrors.ErrSendGetRequest{URL: file, Err: err}
	}
	defer resp.Body.Close()

	metrics.OriginRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	finalURL := resp.Request.URL.String()
	logger := config.GetLogger()
	logger.Debug().Str("file", file).Str("url", finalURL).Int("status", resp.StatusCode).Msg("Resolved video source")
	return finalURL, nil
}
