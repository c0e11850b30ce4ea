// Package cfg provides configuration and command-line interface setup
// for audiodownloader.
package cfg

import (
	"context"
	"fmt"

	"audiodownloader/internal/app"
	"audiodownloader/internal/domain/consts"
	"audiodownloader/internal/domain/keys"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. The root command runs the batch
// download loop (or single-URL mode).
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           consts.AppName,
		Short:         "Audio downloader from various platforms",
		Long:          "Downloads audio tracks from URLs listed in a links file, converts them to the configured format, and records per-line outcomes back into the file.",
		Version:       consts.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, warnings, err := Resolve(cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			if changed := changedFlags(cmd.Root().PersistentFlags()); len(changed) > 0 {
				warnings = append(warnings, fmt.Sprintf("Terminal overrides active: %v", changed))
			}
			return app.Run(cmd.Context(), set, warnings)
		},
	}

	initRootFlags(rootCmd)
	rootCmd.AddCommand(newScrapeCmd(), newHistoryCmd(), newVersionCmd())

	return rootCmd
}

// Execute runs the program's command tree under ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// newScrapeCmd collects candidate audio links from a web page and
// appends the new ones to the links file.
func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape <page-url>",
		Short: "Collect audio links from a web page into the links file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, warnings, err := Resolve(cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			match, err := cmd.Flags().GetString(keys.ScrapeMatch)
			if err != nil {
				return err
			}
			return app.Scrape(cmd.Context(), set, warnings, args[0], match)
		},
	}

	cmd.Flags().String(keys.ScrapeMatch, "", "Only collect links containing this substring")
	return cmd
}

// newHistoryCmd lists recent download history rows.
func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent download outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, warnings, err := Resolve(cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			limit, err := cmd.Flags().GetInt(keys.HistoryLimit)
			if err != nil {
				return err
			}
			failedOnly, err := cmd.Flags().GetBool(keys.HistoryFailed)
			if err != nil {
				return err
			}
			return app.History(cmd.Context(), set, warnings, limit, failedOnly)
		},
	}

	cmd.Flags().Int(keys.HistoryLimit, 25, "Maximum rows to list")
	cmd.Flags().Bool(keys.HistoryFailed, false, "List failed downloads only")
	return cmd
}

// newVersionCmd prints the program version.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the program version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s v%s\n", consts.AppName, consts.AppVersion)
		},
	}
}
