package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sst/piechart/internal/chart"
)

func newPreviewCmd() *cobra.Command {
	previewCmd := &cobra.Command{
		Use:   "preview [flags] LABEL:VALUE[:STYLE][:FILL]...",
		Short: "Draws the values once for every radius up to --max-radius",
		Long: `preview helps to pick a radius: it draws the same chart, without legend,
for every radius from 0 to --max-radius. Each chart is preceded by a
"radius N" header line.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			maxRadius, _ := cmd.Flags().GetInt("max-radius")
			if maxRadius < 0 {
				return fmt.Errorf("%w: %d", chart.ErrInvalidRadius, maxRadius)
			}

			cfg, items, err := loadInput(cmd, args)
			if err != nil {
				return err
			}

			c := &chart.Chart{AspectRatio: cfg.Aspect}
			out := cmd.OutOrStdout()
			for radius := 0; radius <= maxRadius; radius++ {
				c.Radius = radius
				if _, err := fmt.Fprintf(out, "radius %d\n", radius); err != nil {
					return err
				}
				if err := c.DrawInto(out, items); err != nil {
					return err
				}
			}
			return nil
		},
	}

	previewCmd.Flags().Int("max-radius", 12, "Largest radius to draw")
	return previewCmd
}
