package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/Belphemur/GogoResolver/internal/config"
	"github.com/Belphemur/GogoResolver/internal/models"
	"github.com/Belphemur/GogoResolver/internal/parser"
)

// Client defines the interface for resolving series, episodes and video sources
// from the streaming origin
type Client interface {
	// Search returns the series whose search card carries a title and a link.
	Search(ctx context.Context, query string) ([]models.SeriesSearchResult, error)
	// ListEpisodes returns the episode references of a series in listing order.
	ListEpisodes(ctx context.Context, seriesID string) ([]models.EpisodeReference, error)
	// EpisodeRange returns the episode span advertised by the series page.
	EpisodeRange(ctx context.Context, seriesID string) (models.EpisodeRange, error)
	// ResolveVideo returns the final URL of every source of an episode, in the
	// order the source lookup endpoint lists them.
	ResolveVideo(ctx context.Context, ref models.EpisodeReference) ([]models.VideoSource, error)

	// Close releases idle connections held by the client.
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient        *http.Client
	site              config.Site
	searchParser      parser.Parser[models.SeriesSearchResult]
	seriesParser      parser.SingleResultParser[models.SeriesPage]
	episodeListParser parser.Parser[models.EpisodeReference]
	playerParser      parser.SingleResultParser[string]
	sourceListParser  *parser.SourceListParser
}

// NewClient creates a new client instance with proxy configuration if provided
func NewClient(cfg *config.Config) Client {
	logger := config.GetLogger()

	timeout := 30 * time.Second
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			timeout = parsedTimeout
		}
	}

	// Clone DefaultTransport to keep its pooling, HTTP/2 and dial timeouts
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.GetUserAgent()
	}

	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: newOriginTransport(baseTransport, userAgent),
	}

	return NewClientWithHTTPClient(cfg.Site, httpClient)
}

// NewClientWithHTTPClient creates a client that sends every request through httpClient.
// Empty fields of site fall back to the defaults of config.Site.
func NewClientWithHTTPClient(site config.Site, httpClient *http.Client) Client {
	site = site.WithDefaults()
	return &client{
		httpClient:        httpClient,
		site:              site,
		searchParser:      parser.NewSearchParser(site.CategoryPath),
		seriesParser:      parser.NewSeriesPageParser(),
		episodeListParser: parser.NewEpisodeListParser(),
		playerParser:      parser.NewPlayerParser(),
		sourceListParser:  parser.NewSourceListParser(),
	}
}

// Close releases idle keep-alive connections of the underlying HTTP client.
func (c *client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
