package client

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/Belphemur/GogoResolver/internal/config"
	"github.com/Belphemur/GogoResolver/internal/metrics"
	"github.com/Belphemur/GogoResolver/internal/models"
)

// EpisodeRange reads the episode span advertised on the series page.
func (c *client) EpisodeRange(ctx context.Context, seriesID string) (episodes models.EpisodeRange, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveOperation(metrics.OperationEpisodeRange, time.Since(start).Seconds(), err)
	}()

	series, err := c.fetchSeriesPage(ctx, seriesID)
	if err != nil {
		return models.EpisodeRange{}, err
	}

	episodes = series.Range()
	logger := config.GetLogger()
	logger.Info().
		Str("series", seriesID).
		Int("start", episodes.Start).
		Int("end", episodes.End).
		Msg("Episode range resolved")
	return episodes, nil
}

// ListEpisodes reads the series page, then asks the listing endpoint for every
// episode between the pager bounds. References are returned in listing order.
func (c *client) ListEpisodes(ctx context.Context, seriesID string) (refs []models.EpisodeReference, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveOperation(metrics.OperationListEpisodes, time.Since(start).Seconds(), err)
	}()

	logger := config.GetLogger()

	series, err := c.fetchSeriesPage(ctx, seriesID)
	if err != nil {
		return nil, err
	}

	listURL, err := endpoint(c.site.AjaxURL, c.site.EpisodeListPath)
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("ep_start", strconv.Itoa(series.EpisodeStart))
	params.Set("ep_end", strconv.Itoa(series.EpisodeEnd))
	params.Set("id", series.MovieID)
	listURL.RawQuery = params.Encode()

	p, err := c.fetchPage(ctx, listURL)
	if err != nil {
		logger.Error().Err(err).Str("series", seriesID).Msg("Failed to fetch episode listing")
		return nil, err
	}

	refs, err = parseHTML(p, c.episodeListParser.ParseHtml)
	if err != nil {
		logger.Error().Err(err).Str("series", seriesID).Msg("Failed to parse episode listing")
		return nil, err
	}

	logger.Info().Str("series", seriesID).Int("episodes", len(refs)).Msg("Episode listing completed")
	return refs, nil
}

func (c *client) fetchSeriesPage(ctx context.Context, seriesID string) (models.SeriesPage, error) {
	logger := config.GetLogger()

	if err := requireValue("series id", seriesID); err != nil {
		return models.SeriesPage{}, err
	}

	seriesURL, err := endpoint(c.site.BaseURL, c.site.CategoryPath+url.PathEscape(seriesID))
	if err != nil {
		return models.SeriesPage{}, err
	}

	logger.Debug().Str("series", seriesID).Str("url", seriesURL.String()).Msg("Fetching series page")
	p, err := c.fetchPage(ctx, seriesURL)
	if err != nil {
		logger.Error().Err(err).Str("series", seriesID).Msg("Failed to fetch series page")
		return models.SeriesPage{}, err
	}

	series, err := parseHTML(p, c.seriesParser.ParseHtml)
	if err != nil {
		logger.Error().Err(err).Str("series", seriesID).Msg("Failed to parse series page")
		return models.SeriesPage{}, err
	}
	return series, nil
}
