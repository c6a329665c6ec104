package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/sst/piechart/internal/chart"
	"github.com/sst/piechart/internal/config"
	"github.com/sst/piechart/internal/format"
	"github.com/sst/piechart/internal/logging"
	"github.com/sst/piechart/internal/style"
	"github.com/sst/piechart/internal/values"
	"github.com/sst/piechart/internal/version"
)

var errNoValues = errors.New("expected values: `piechart A:4.0 'B:2.1:bold red:*'`")

// NewRootCmd builds the piechart command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "piechart [flags] LABEL:VALUE[:STYLE][:FILL]...",
		Short: "Displays fancy pie charts in the terminal",
		Long: `piechart draws a pie chart of the given values as colored characters.

Every value is written as LABEL:VALUE, optionally followed by a style such as
"bold red" or "italic #ff8800 black" and a single fill character. Values
without a style or fill take the next entry of the configured palette and
fills.`,
		Example: `  piechart A:4.0 'B:2.1:bold red:*'
  piechart --radius 9 --aspect 2 Chocolate:4 Strawberry:2 Vanilla:2.6`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintln(cmd.OutOrStdout(), version.Version)
				return nil
			}

			cfg, items, err := loadInput(cmd, args)
			if err != nil {
				return err
			}

			c := &chart.Chart{Radius: cfg.Radius, AspectRatio: cfg.Aspect, Legend: cfg.Legend}
			return draw(cmd.OutOrStdout(), c, items, format.OutputFormat(cfg.Format))
		},
	}

	rootCmd.PersistentFlags().IntP("aspect", "a", 3, "Horizontal stretch of the circle, greater than 0")
	rootCmd.PersistentFlags().String("color", string(style.ColorAuto), "When to color the output (auto, always, never)")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default is $HOME/.piechart.json)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")

	rootCmd.Flags().BoolP("version", "v", false, "Version")
	rootCmd.Flags().IntP("radius", "r", 7, "Radius of the circle in rows")
	rootCmd.Flags().Bool("no-legend", false, "Do not print the legend")
	rootCmd.Flags().StringP("format", "f", string(format.TextFormat), "Output format (text, json)")

	rootCmd.AddCommand(newPreviewCmd())
	return rootCmd
}

// loadInput reads the configuration and turns the positional arguments
// into chart items styled for the command's output.
func loadInput(cmd *cobra.Command, args []string) (*config.Config, []chart.Item, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	logging.Setup(cmd.ErrOrStderr(), debug)

	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get current working directory: %v", err)
	}
	cfgFile, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(config.Options{WorkingDir: cwd, File: cfgFile, Flags: cmd.Flags()})
	if err != nil {
		return nil, nil, err
	}
	if cfg.Debug && !debug {
		logging.Setup(cmd.ErrOrStderr(), true)
	}

	if len(args) == 0 {
		return nil, nil, errNoValues
	}

	renderer := style.NewRenderer(cmd.OutOrStdout(), style.ColorMode(cfg.Color))
	palette, err := style.Palette(renderer, cfg.Palette)
	if err != nil {
		return nil, nil, err
	}
	fills, err := values.Fills(cfg.Fills)
	if err != nil {
		return nil, nil, err
	}

	items, err := values.NewParser(renderer, palette, fills).ParseAll(args)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("Parsed values", "count", len(items))
	return cfg, items, nil
}

func draw(w io.Writer, c *chart.Chart, items []chart.Item, outputFormat format.OutputFormat) error {
	if outputFormat == format.TextFormat {
		return c.DrawInto(w, items)
	}

	rows, err := c.Render(items)
	if err != nil {
		return err
	}
	out, err := format.FormatOutput(rows, items, outputFormat)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}
