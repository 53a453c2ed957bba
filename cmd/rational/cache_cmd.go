package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rational/internal/cache"
)

func newCacheCmd(app *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the batch result cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show the cache location and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dc, err := cache.Open()
			if err != nil {
				return err
			}
			entries, size, err := dc.Stats()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dir:     %s\nentries: %d\nbytes:   %d\n", dc.Dir(), entries, size)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dc, err := cache.Open()
			if err != nil {
				return err
			}
			if err := dc.DropAll(); err != nil {
				return err
			}
			quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
			if err != nil {
				return fmt.Errorf("failed to get quiet flag: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", dc.Dir())
			}
			return nil
		},
	})
	return cmd
}
