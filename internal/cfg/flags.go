package cfg

import (
	"audiodownloader/internal/domain/keys"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// initRootFlags registers the terminal flags shared by every command.
func initRootFlags(rootCmd *cobra.Command) {
	pf := rootCmd.PersistentFlags()

	pf.StringP(keys.ConfigFile, "c", "config.json", "Configuration file (default: config.json)")
	pf.StringP(keys.LinksFile, "l", "", "Text file containing links to download (overrides config)")
	pf.StringP(keys.OutputDir, "o", "", "Destination folder for downloads (overrides config)")
	pf.BoolP(keys.SkipExisting, "s", false, "Skip files that already exist (overrides config setting)")
	pf.StringP(keys.SingleURL, "u", "", "Download single URL directly (ignores links file)")
	pf.String(keys.CookieSource, "", "Cookie source for downloads and scraping (e.g. 'browser')")
	pf.Int(keys.DebugLevel, 0, "Debugging level (0 - 3)")
}

// changedFlags lists the flags the user explicitly set, for startup
// diagnostics.
func changedFlags(fs *pflag.FlagSet) []string {
	var set []string
	fs.Visit(func(f *pflag.Flag) {
		set = append(set, f.Name)
	})
	return set
}
