package cli

import (
	"context"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/askiada/go-wosh/internal/config"
	"github.com/askiada/go-wosh/internal/fetch"
	"github.com/askiada/go-wosh/internal/lines"
	"github.com/askiada/go-wosh/internal/solver"
	"github.com/askiada/go-wosh/pkg/pipeline/model"
)

func sublistLoader(ctx context.Context, fetcher *fetch.Fetcher, cfg config.Solve) solver.SublistFunc {
	return func() ([]string, error) {
		err := fetcher.Ensure(ctx, "sub list", cfg.Sublist, cfg.SublistURL)
		if err != nil {
			return nil, err
		}
		file, err := lines.Open(cfg.Sublist)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		return solver.ReadSublist(file)
	}
}

func newSolveCmd(a *app, defaults config.Solve) *cobra.Command {
	var (
		query solver.Query
		yes   bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "List the boards playable with the given letters",
		Long: `solve lists the boards of the board list playable with the given letters, '.' standing for any letter.

For every board it prints the board words, suggestions for the unknown ones, the longest word,
the board letters missing from the given ones [h] and the given letters the board does not use [x].
Missing lists are downloaded after confirmation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.Solve
			err := override(cmd.Flags(), map[string]any{
				"wordlist": &cfg.Wordlist,
				"sublist":  &cfg.Sublist,
				"threads":  &cfg.Threads,
				"ignore":   &cfg.Ignore,
			})
			if err != nil {
				return err
			}
			query.Ignore = cfg.Ignore

			fetcher := fetch.New(
				fetch.WithPrompt(cmd.InOrStdin(), cmd.ErrOrStderr()),
				fetch.WithYes(yes),
				fetch.WithLogger(a.logger),
			)
			err = fetcher.Ensure(cmd.Context(), "word list", cfg.Wordlist, cfg.WordlistURL)
			if err != nil {
				return err
			}
			boards, err := lines.Open(cfg.Wordlist)
			if err != nil {
				return err
			}
			defer boards.Close()

			s := &solver.Solver{
				Threads: cfg.Threads,
				Sublist: sublistLoader(cmd.Context(), fetcher, cfg),
			}

			return a.runPipeline(func(opts ...model.PipelineOption) error {
				results, err := s.Solve(cmd.Context(), query, boards, opts...)
				if err != nil {
					return err
				}
				theme := solver.NewTheme(lipgloss.NewRenderer(cmd.OutOrStdout()))

				return theme.Render(cmd.OutOrStdout(), query, results)
			})
		},
	}
	cmd.Flags().StringVarP(&query.Letters, "letters", "l", "", "letters at hand, '.' for any letter")
	cmd.Flags().IntVar(&query.Spaces, "spaces", 0, "skip boards with more spaces, 0 for no limit")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "download missing lists without asking")
	cmd.Flags().StringP("ignore", "i", defaults.Ignore, "skip boards whose letters contain this string")
	cmd.Flags().StringP("wordlist", "w", defaults.Wordlist, "board list")
	cmd.Flags().StringP("sublist", "s", defaults.Sublist, "sub list used for suggestions")
	cmd.Flags().IntP("threads", "t", defaults.Threads, "boards matched concurrently")
	_ = cmd.MarkFlagRequired("letters")

	return cmd
}
