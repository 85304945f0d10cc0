package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askiada/go-wosh/internal/config"
	"github.com/askiada/go-wosh/internal/wordlist"
	"github.com/askiada/go-wosh/pkg/pipeline/model"
)

func newFilterCmd(a *app, defaults config.Filter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Keep the words longer than three characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.Filter
			err := override(cmd.Flags(), map[string]any{"in": &cfg.Input, "out": &cfg.Output, "nfc": &cfg.NFC})
			if err != nil {
				return err
			}

			return a.runPipeline(func(opts ...model.PipelineOption) error {
				count, err := wordlist.RunFilter(cmd.Context(), cfg, opts...)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "new wordlist length: %d\n", count)

				return nil
			})
		},
	}
	cmd.Flags().String("in", defaults.Input, "word list to filter")
	cmd.Flags().String("out", defaults.Output, "filtered word list")
	cmd.Flags().Bool("nfc", defaults.NFC, "compose words to Unicode NFC before counting characters")

	return cmd
}

func newCropCmd(a *app, defaults config.Crop) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crop",
		Short: "Sort lines by length and drop those longer than ten characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.Crop
			err := override(cmd.Flags(), map[string]any{"in": &cfg.Input, "out": &cfg.Output})
			if err != nil {
				return err
			}

			return a.runPipeline(func(opts ...model.PipelineOption) error {
				_, err := wordlist.RunCrop(cmd.Context(), cfg, cmd.OutOrStdout(), opts...)

				return err
			})
		},
	}
	cmd.Flags().String("in", defaults.Input, "line list to crop")
	cmd.Flags().String("out", defaults.Output, "cropped line list")

	return cmd
}
