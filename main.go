// imagedate: Resolve the best known creation date of image files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.3.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "imagedate [paths...]",
	Short: "Resolve the best known creation date of image files",
	Long: `imagedate prints one timestamp per image: the best known date the image was created.

Sources, in order of preference:
- EXIF DateTimeOriginal, DateTimeDigitized, DateTime (first one that parses)
- Filesystem birth time, modification time, access time (only without EXIF dates)

Files with no date evidence at all are reported with the fixed timestamp
1936268400 (2031-05-11) so they stand out, rather than as errors.
Only files that cannot be opened are errors.
`,
	Example: `  # Resolve a single photo
  imagedate IMG_0001.jpg

  # Walk a directory tree and emit JSON lines
  imagedate -r --format json ~/DCIM

  # Record results in an SQLite ledger
  imagedate -r --db ~/photos/dates.db ~/photos
`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(viper.GetViper())
		if err != nil {
			return err
		}
		if len(args) == 0 {
			opts.Interactive = true
		}
		if opts.Interactive {
			path, err := interactivePrompt()
			if err != nil {
				return err
			}
			args = []string{path}
		}

		// Handle interrupts for graceful shutdown using context
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		summary, err := run(ctx, cmd.OutOrStdout(), args, opts)
		if err != nil {
			return err
		}
		if summary.Errors > 0 {
			return fmt.Errorf("%d of %d files could not be read", summary.Errors, summary.TotalFiles)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "imagedate v%s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.imagedate/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	rootCmd.Flags().BoolP("recursive", "r", false, "Descend into subdirectories")
	rootCmd.Flags().Bool("all", false, "Resolve every file, not only image extensions")
	rootCmd.Flags().StringP("format", "f", "text", "Output format: text or json")
	rootCmd.Flags().String("db", "", "Path to SQLite ledger of resolutions")
	rootCmd.Flags().IntP("workers", "w", 4, "Number of files resolved concurrently")
	rootCmd.Flags().BoolP("interactive", "i", false, "Prompt for the path to resolve")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	for _, name := range []string{"recursive", "all", "format", "db", "workers", "interactive"} {
		_ = viper.BindPFlag(name, rootCmd.Flags().Lookup(name))
	}

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
