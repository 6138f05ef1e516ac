package client

import (
	"context"
	"time"

	"github.com/Belphemur/GogoResolver/internal/config"
	"github.com/Belphemur/GogoResolver/internal/metrics"
	"github.com/Belphemur/GogoResolver/internal/models"
)

// Search queries the origin's search page. The query is sent verbatim as the
// escaped keyword parameter. A blank query fails with apperrors.ErrCreateURL
// before any request is made.
func (c *client) Search(ctx context.Context, query string) (results []models.SeriesSearchResult, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveOperation(metrics.OperationSearch, time.Since(start).Seconds(), err)
	}()

	logger := config.GetLogger()
	logger.Info().Str("query", query).Msg("Searching series")

	if err := requireValue("search query", query); err != nil {
		return nil, err
	}

	searchURL, err := endpoint(c.site.BaseURL, c.site.SearchPath)
	if err != nil {
		return nil, err
	}
	params := searchURL.Query()
	params.Set("keyword", query)
	searchURL.RawQuery = params.Encode()

	p, err := c.fetchPage(ctx, searchURL)
	if err != nil {
		logger.Error().Err(err).Str("url", searchURL.String()).Msg("Failed to fetch search page")
		return nil, err
	}

	results, err = parseHTML(p, c.searchParser.ParseHtml)
	if err != nil {
		logger.Error().Err(err).Str("url", p.url).Msg("Failed to parse search page")
		return nil, err
	}

	logger.Info().Str("query", query).Int("results", len(results)).Msg("Search completed")
	return results, nil
}
