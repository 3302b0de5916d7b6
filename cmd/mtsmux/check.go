package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backmassage/mtsmux/internal/check"
	"github.com/backmassage/mtsmux/internal/config"
	"github.com/backmassage/mtsmux/internal/display"
)

func newCheckCommand(cc *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify ffmpeg, ffprobe and the encoders the plans need",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := check.RunCheck(cmd.Context(), cc.cfg, cc.log)
			fmt.Fprintln(cmd.OutOrStdout(), display.CheckTable(results))

			failed := 0
			for _, r := range results {
				if !r.OK {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			return nil
		},
	}
	config.BindEngineFlags(cmd.Flags(), &cc.overrides)
	return cmd
}
