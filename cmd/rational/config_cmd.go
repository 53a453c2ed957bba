package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rational/internal/config"
)

func newConfigCmd(app *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  "Print the configuration in effect: the nearest " + config.FileName + " merged over the defaults.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if app.cfgPath != "" {
				fmt.Fprintf(out, "# %s\n", app.cfgPath)
			} else {
				fmt.Fprintf(out, "# defaults (no %s found)\n", config.FileName)
			}
			return app.cfg.Encode(out)
		},
	}
}
