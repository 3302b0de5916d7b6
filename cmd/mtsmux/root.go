package main

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/mtsmux/internal/config"
)

func newRootCommand(cc *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mtsmux",
		Short:         "Convert camcorder MTS/AVCHD clips into iOS-playable MP4",
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			return cc.ensureConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cc.configFlag, "config", "c", "", "Configuration file path (default: "+defaultConfigHint()+")")
	config.BindDisplayFlags(rootCmd.PersistentFlags(), &cc.overrides)

	rootCmd.AddCommand(newConvertCommand(cc))
	rootCmd.AddCommand(newCheckCommand(cc))
	rootCmd.AddCommand(newPlansCommand(cc))
	rootCmd.AddCommand(newConfigCommand(cc))

	return rootCmd
}

func defaultConfigHint() string {
	if p := config.DefaultPath(); p != "" {
		return p
	}
	return "none"
}
