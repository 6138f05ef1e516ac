package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Belphemur/GogoResolver/internal/models"
)

func newSearchCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the origin for series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			results, err := c.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd, results, func(out io.Writer) {
				for n, r := range results {
					fmt.Fprintf(out, "%d. %s (%s)\n", n, r.Name, r.ID)
				}
			})
		},
	}
}

func newEpisodesCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "episodes <series-id>",
		Short: "List the episode references of a series",
		Long:  "List the episode references of a series in the origin's listing order. An entry the origin lists without a link prints as an empty line.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			refs, err := c.ListEpisodes(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd, refs, func(out io.Writer) {
				for _, ref := range refs {
					fmt.Fprintln(out, ref)
				}
			})
		},
	}
}

func newRangeCmd(newClient clientFactory) *cobra.Command {
	rangeCmd := &cobra.Command{
		Use:   "range <series-id>",
		Short: "Show the episode range advertised by a series page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			episodes, err := c.EpisodeRange(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			withRefs, err := cmd.Flags().GetBool("refs")
			if err != nil {
				return err
			}
			if withRefs {
				refs := episodes.References(args[0])
				return render(cmd, refs, func(out io.Writer) {
					for _, ref := range refs {
						fmt.Fprintln(out, ref)
					}
				})
			}

			return render(cmd, episodes, func(out io.Writer) {
				fmt.Fprintf(out, "start=%d end=%d count=%d\n", episodes.Start, episodes.End, episodes.Len())
			})
		},
	}
	rangeCmd.Flags().Bool("refs", false, "Print the episode reference of every episode in the range")
	return rangeCmd
}

func newResolveCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <episode-ref>",
		Short: "Resolve an episode reference to its video source URLs",
		Example: `  gogo resolve /one-piece-episode-1
  gogo range one-piece --refs | xargs -n1 gogo resolve`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			sources, err := c.ResolveVideo(cmd.Context(), models.EpisodeReference(args[0]))
			if err != nil {
				return err
			}
			return render(cmd, sources, func(out io.Writer) {
				for _, s := range sources {
					fmt.Fprintln(out, s.URL)
				}
			})
		},
	}
}

// render writes v as indented JSON when --json is set, otherwise calls text.
func render(cmd *cobra.Command, v any, text func(out io.Writer)) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if !asJSON {
		text(cmd.OutOrStdout())
		return nil
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
