package grpc

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Belphemur/GogoResolver/internal/client"
	"github.com/Belphemur/GogoResolver/internal/config"
	"github.com/Belphemur/GogoResolver/internal/metrics"
	"github.com/Belphemur/GogoResolver/internal/models"
)

// server implements the ResolverServiceServer interface
type server struct {
	client client.Client
	logger zerolog.Logger
}

// NewServer creates a new gRPC server instance
func NewServer(c client.Client) ResolverServiceServer {
	return &server{
		client: c,
		logger: config.GetLogger(),
	}
}

// Search implements ResolverServiceServer.Search
func (s *server) Search(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	query := req.GetValue()
	if strings.TrimSpace(query) == "" {
		return nil, invalidArgument(metrics.OperationSearch, "query")
	}
	s.logger.Debug().Str("query", query).Msg("Search called")

	results, err := s.client.Search(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("Failed to search series")
		return nil, toStatus(ctx, metrics.OperationSearch, err)
	}

	s.logger.Debug().Str("query", query).Int("count", len(results)).Msg("Search completed")
	return convertSearchResultsToProto(results), nil
}

// ListEpisodes implements ResolverServiceServer.ListEpisodes
func (s *server) ListEpisodes(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	seriesID := strings.TrimSpace(req.GetValue())
	if seriesID == "" {
		return nil, invalidArgument(metrics.OperationListEpisodes, "series_id")
	}
	s.logger.Debug().Str("series", seriesID).Msg("ListEpisodes called")

	refs, err := s.client.ListEpisodes(ctx, seriesID)
	if err != nil {
		s.logger.Error().Err(err).Str("series", seriesID).Msg("Failed to list episodes")
		return nil, toStatus(ctx, metrics.OperationListEpisodes, err)
	}

	s.logger.Debug().Str("series", seriesID).Int("count", len(refs)).Msg("ListEpisodes completed")
	return convertReferencesToProto(refs), nil
}

// EpisodeRange implements ResolverServiceServer.EpisodeRange
func (s *server) EpisodeRange(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	seriesID := strings.TrimSpace(req.GetValue())
	if seriesID == "" {
		return nil, invalidArgument(metrics.OperationEpisodeRange, "series_id")
	}
	s.logger.Debug().Str("series", seriesID).Msg("EpisodeRange called")

	episodes, err := s.client.EpisodeRange(ctx, seriesID)
	if err != nil {
		s.logger.Error().Err(err).Str("series", seriesID).Msg("Failed to get episode range")
		return nil, toStatus(ctx, metrics.OperationEpisodeRange, err)
	}

	s.logger.Debug().
		Str("series", seriesID).
		Int("start", episodes.Start).
		Int("end", episodes.End).
		Msg("EpisodeRange completed")
	return convertRangeToProto(episodes), nil
}

// ResolveVideo implements ResolverServiceServer.ResolveVideo
func (s *server) ResolveVideo(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	ref := strings.TrimSpace(req.GetValue())
	if ref == "" {
		return nil, invalidArgument(metrics.OperationResolveVideo, "episode_reference")
	}
	s.logger.Debug().Str("episode", ref).Msg("ResolveVideo called")

	sources, err := s.client.ResolveVideo(ctx, models.EpisodeReference(ref))
	if err != nil {
		s.logger.Error().Err(err).Str("episode", ref).Msg("Failed to resolve video")
		return nil, toStatus(ctx, metrics.OperationResolveVideo, err)
	}

	s.logger.Debug().Str("episode", ref).Int("count", len(sources)).Msg("ResolveVideo completed")
	return convertSourcesToProto(sources), nil
}
