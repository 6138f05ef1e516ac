package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Belphemur/GogoResolver/internal/client"
	"github.com/Belphemur/GogoResolver/internal/models"
)

// remoteClient implements client.Client by calling a resolver service.
// Failed calls return the pipeline error the service reported, still carrying
// its gRPC status.
type remoteClient struct {
	conn *grpc.ClientConn
	rpc  ResolverServiceClient
}

// NewRemoteClient connects to the resolver service at address over plaintext.
func NewRemoteClient(address string) (client.Client, error) {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &remoteClient{conn: conn, rpc: NewResolverServiceClient(conn)}, nil
}

func (r *remoteClient) Search(ctx context.Context, query string) ([]models.SeriesSearchResult, error) {
	list, err := r.rpc.Search(ctx, wrapperspb.String(query))
	if err != nil {
		return nil, fromStatus(err)
	}
	return convertSearchResultsFromProto(list)
}

func (r *remoteClient) ListEpisodes(ctx context.Context, seriesID string) ([]models.EpisodeReference, error) {
	list, err := r.rpc.ListEpisodes(ctx, wrapperspb.String(seriesID))
	if err != nil {
		return nil, fromStatus(err)
	}
	return convertReferencesFromProto(list), nil
}

func (r *remoteClient) EpisodeRange(ctx context.Context, seriesID string) (models.EpisodeRange, error) {
	s, err := r.rpc.EpisodeRange(ctx, wrapperspb.String(seriesID))
	if err != nil {
		return models.EpisodeRange{}, fromStatus(err)
	}
	return convertRangeFromProto(s), nil
}

func (r *remoteClient) ResolveVideo(ctx context.Context, ref models.EpisodeReference) ([]models.VideoSource, error) {
	list, err := r.rpc.ResolveVideo(ctx, wrapperspb.String(string(ref)))
	if err != nil {
		return nil, fromStatus(err)
	}
	return convertSourcesFromProto(list)
}

// Close closes the underlying connection
func (r *remoteClient) Close() error {
	return r.conn.Close()
}
