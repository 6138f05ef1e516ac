package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/Belphemur/GogoResolver/internal/client"
	"github.com/Belphemur/GogoResolver/internal/config"
	grpcserver "github.com/Belphemur/GogoResolver/internal/grpc"
	"github.com/Belphemur/GogoResolver/internal/models"
)

// clientFactory builds the client a command talks to
type clientFactory func(cmd *cobra.Command) (client.Client, error)

// defaultClientFactory scrapes the origin directly, or goes through a running
// resolver service when --server is set.
func defaultClientFactory(cmd *cobra.Command) (client.Client, error) {
	server, err := cmd.Flags().GetString("server")
	if err != nil {
		return nil, err
	}
	if server != "" {
		logger := config.GetLogger()
		logger.Debug().Str("server", server).Msg("Using remote resolver service")
		return grpcserver.NewRemoteClient(server)
	}
	return client.NewClient(config.GetConfig()), nil
}

func newRootCmd(newClient clientFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gogo",
		Short: "Search series, list episodes and resolve video sources",
		Long: `gogo scrapes the streaming origin configured in config.yaml (or APP_SITE_* variables).

Without a subcommand it runs interactively: enter a search query, pick a series
by number, and every episode of the series is resolved to its video sources.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()
			return runInteractive(cmd.Context(), c, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	rootCmd.PersistentFlags().String("server", "", "Address of a resolver gRPC service to use instead of scraping directly")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Print results as JSON")

	rootCmd.AddCommand(
		newSearchCmd(newClient),
		newEpisodesCmd(newClient),
		newRangeCmd(newClient),
		newResolveCmd(newClient),
	)

	return rootCmd
}

// runInteractive loops until in is exhausted. Origin errors are printed and the
// loop carries on with the next query or episode.
func runInteractive(ctx context.Context, c client.Client, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	readLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	for {
		fmt.Fprintln(out, "Enter the anime you want to search for")
		query, ok := readLine()
		if !ok {
			return scanner.Err()
		}
		if query == "" {
			continue
		}

		series, err := c.Search(ctx, query)
		if err != nil {
			fmt.Fprintf(out, "Search failed: %v\n", err)
			continue
		}

		fmt.Fprintln(out, "Result: ")
		for n, entry := range series {
			fmt.Fprintf(out, "%d. %s\n", n, entry.Name)
		}
		if len(series) == 0 {
			continue
		}

		fmt.Fprint(out, "Enter the number of the series you wish to browse: ")
		answer, ok := readLine()
		if !ok {
			return scanner.Err()
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 0 || n >= len(series) {
			fmt.Fprintf(out, "Invalid selection %q\n", answer)
			continue
		}

		if err := printEpisodeSources(ctx, c, series[n], out); err != nil {
			fmt.Fprintf(out, "Failed to browse %s: %v\n", series[n].Name, err)
		}
	}
}

func printEpisodeSources(ctx context.Context, c client.Client, series models.SeriesSearchResult, out io.Writer) error {
	episodes, err := c.EpisodeRange(ctx, series.ID)
	if err != nil {
		return err
	}

	for i, ref := range episodes.References(series.ID) {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := episodes.Start + i
		sources, err := c.ResolveVideo(ctx, ref)
		if err != nil {
			fmt.Fprintf(out, "Episode %d -> error: %v\n", n, err)
			continue
		}
		urls := lo.Map(sources, func(s models.VideoSource, _ int) string { return s.URL })
		fmt.Fprintf(out, "Episode %d -> %q\n", n, urls)
	}
	return nil
}
