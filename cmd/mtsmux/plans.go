package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backmassage/mtsmux/internal/config"
	"github.com/backmassage/mtsmux/internal/display"
	"github.com/backmassage/mtsmux/internal/planner"
)

func newPlansCommand(cc *commandContext) *cobra.Command {
	var showArgs bool

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Show the conversion plans for the selected profile, in the order they are tried",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plans := planner.BuildPlans(cc.cfg)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Profile: %s (large-file warning above %s)\n",
				cc.cfg.Profile, display.FormatBytes(cc.cfg.Profile.LargeFileThreshold()))
			fmt.Fprintln(out, display.PlanTable(plans))
			if showArgs {
				for _, p := range plans {
					fmt.Fprintf(out, "\n%s:\n  ffmpeg %s\n", p.Name, display.PlanArgs(p))
				}
			}
			return nil
		},
	}
	config.BindTranscodeFlags(cmd.Flags(), &cc.overrides)
	cmd.Flags().BoolVar(&showArgs, "args", false, "Also print each plan's engine arguments")
	return cmd
}
