package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/askiada/go-wosh/internal/boardlist"
	"github.com/askiada/go-wosh/internal/config"
	"github.com/askiada/go-wosh/pkg/pipeline/model"
)

func newJoinCmd(a *app, defaults config.Boards) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join the two board list halves line by line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.Boards
			err := override(cmd.Flags(), map[string]any{
				"no-wl":   &cfg.NoWordlist,
				"only-wl": &cfg.OnlyWordlist,
				"out":     &cfg.Combined,
			})
			if err != nil {
				return err
			}

			return a.runPipeline(func(opts ...model.PipelineOption) error {
				count, err := boardlist.RunJoin(cmd.Context(), cfg, opts...)
				if err != nil {
					return err
				}
				a.logger.Info("board lists joined", zap.String("path", cfg.Combined), zap.Int("rows", count))

				return nil
			})
		},
	}
	cmd.Flags().String("no-wl", defaults.NoWordlist, "board list without word lists")
	cmd.Flags().String("only-wl", defaults.OnlyWordlist, "word lists of the boards")
	cmd.Flags().String("out", defaults.Combined, "combined board list")

	return cmd
}

func newSortCmd(a *app, defaults config.Boards) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Key rows by their sorted letters and sort them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.Boards
			err := override(cmd.Flags(), map[string]any{
				"in":      &cfg.Combined,
				"out":     &cfg.Sorted,
				"workers": &cfg.Workers,
			})
			if err != nil {
				return err
			}

			return a.runPipeline(func(opts ...model.PipelineOption) error {
				count, err := boardlist.RunSort(cmd.Context(), cfg, opts...)
				if err != nil {
					return err
				}
				a.logger.Info("board list sorted", zap.String("path", cfg.Sorted), zap.Int("rows", count))

				return nil
			})
		},
	}
	cmd.Flags().String("in", defaults.Combined, "combined board list")
	cmd.Flags().String("out", defaults.Sorted, "sorted board list")
	cmd.Flags().Int("workers", defaults.Workers, "rows normalized concurrently")

	return cmd
}

func newBoardsCmd(a *app, defaults config.Boards) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Join the board list halves and sort the result in one pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.Boards
			err := override(cmd.Flags(), map[string]any{
				"no-wl":    &cfg.NoWordlist,
				"only-wl":  &cfg.OnlyWordlist,
				"combined": &cfg.Combined,
				"sorted":   &cfg.Sorted,
				"workers":  &cfg.Workers,
			})
			if err != nil {
				return err
			}

			return a.runPipeline(func(opts ...model.PipelineOption) error {
				counts, err := boardlist.RunBoards(cmd.Context(), cfg, opts...)
				if err != nil {
					return err
				}
				a.logger.Info("board list built",
					zap.String("combined", cfg.Combined),
					zap.String("sorted", cfg.Sorted),
					zap.Int("rows", counts.Sorted),
				)

				return nil
			})
		},
	}
	cmd.Flags().String("no-wl", defaults.NoWordlist, "board list without word lists")
	cmd.Flags().String("only-wl", defaults.OnlyWordlist, "word lists of the boards")
	cmd.Flags().String("combined", defaults.Combined, "combined board list")
	cmd.Flags().String("sorted", defaults.Sorted, "sorted board list")
	cmd.Flags().Int("workers", defaults.Workers, "rows normalized concurrently")

	return cmd
}
