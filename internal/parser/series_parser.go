package parser

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"

	"github.com/Belphemur/GogoResolver/internal/config"
	"github.com/Belphemur/GogoResolver/internal/models"
)

// SeriesPageParser implements the SingleResultParser interface for a series category page
type SeriesPageParser struct{}

// NewSeriesPageParser creates a new category page parser
func NewSeriesPageParser() SingleResultParser[models.SeriesPage] {
	return &SeriesPageParser{}
}

// ParseHtml reads the active episode pager bounds and the movie identifier.
// A missing element yields apperrors.ErrNotFound and a missing or non-numeric
// attribute yields apperrors.ErrMalformedOrigin.
func (p *SeriesPageParser) ParseHtml(body io.Reader) (models.SeriesPage, error) {
	logger := config.GetLogger()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse HTML document")
		return models.SeriesPage{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	pager, err := firstNode(doc, episodePagerSelector, "episode pager")
	if err != nil {
		return models.SeriesPage{}, err
	}
	start, err := requiredIntAttr(pager, "episode pager", "ep_start")
	if err != nil {
		return models.SeriesPage{}, err
	}
	end, err := requiredIntAttr(pager, "episode pager", "ep_end")
	if err != nil {
		return models.SeriesPage{}, err
	}

	movieInput, err := firstNode(doc, movieIDSelector, "movie id input")
	if err != nil {
		return models.SeriesPage{}, err
	}
	movieID, err := requiredAttr(movieInput, "movie id input", "value")
	if err != nil {
		return models.SeriesPage{}, err
	}

	page := models.SeriesPage{
		EpisodeStart: start,
		EpisodeEnd:   end,
		MovieID:      movieID,
	}
	logger.Debug().Int("ep_start", start).Int("ep_end", end).Str("movie_id", movieID).Msg("Parsed series page")
	return page, nil
}
