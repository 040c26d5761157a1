package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	locationName string
	locationLat  float64
	locationLon  float64
	locationDesc string
)

// locationsCmd represents the locations command group
var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "Browse and extend the named location catalog",
}

var locationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		points, err := newServiceClient().Locations(ctx)
		if err != nil {
			return fmt.Errorf("list locations failed: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tLATITUDE\tLONGITUDE\tDESCRIPTION")
		for _, p := range points {
			fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%s\n", p.Name, p.Latitude, p.Longitude, p.Description)
		}
		return w.Flush()
	},
}

var locationsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a location to the catalog",
	Example: `  claimctl locations add --name "Galle Face Green" --lat 6.9247 --lon 79.8451`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		point, err := newServiceClient().AddLocation(ctx, locationName, locationLat, locationLon, locationDesc)
		if err != nil {
			return fmt.Errorf("add location failed: %w", err)
		}

		fmt.Printf("Added %q (%s)\n", point.Name, point.ID.Hex())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(locationsCmd)
	locationsCmd.AddCommand(locationsListCmd)
	locationsCmd.AddCommand(locationsAddCmd)

	locationsAddCmd.Flags().StringVar(&locationName, "name", "", "location name")
	locationsAddCmd.Flags().Float64Var(&locationLat, "lat", 0, "latitude")
	locationsAddCmd.Flags().Float64Var(&locationLon, "lon", 0, "longitude")
	locationsAddCmd.Flags().StringVar(&locationDesc, "desc", "", "description (optional)")
	_ = locationsAddCmd.MarkFlagRequired("name")
	_ = locationsAddCmd.MarkFlagRequired("lat")
	_ = locationsAddCmd.MarkFlagRequired("lon")
}
