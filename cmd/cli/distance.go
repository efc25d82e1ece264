package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/howard522/eating-at-ntou-sub000/internal/geo"
	"github.com/howard522/eating-at-ntou-sub000/internal/pricing"
)

// distanceCmd represents the distance command
var distanceCmd = &cobra.Command{
	Use:   "distance <lon1> <lat1> <lon2> <lat2>",
	Short: "Geodesic distance between two points",
	Long: `Print the haversine distance between two points given longitude first, and the
delivery fee for that distance.`,
	Example: `  delivery-service distance 121.7700 25.1500 121.7795 25.1505`,
	Args:    cobra.ExactArgs(4),
	RunE:    runDistance,
}

func init() {
	rootCmd.AddCommand(distanceCmd)
}

func runDistance(cmd *cobra.Command, args []string) error {
	vals := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid coordinate %q: %w", arg, err)
		}
		vals[i] = v
	}

	from := geo.NewCoordinate(vals[0], vals[1])
	to := geo.NewCoordinate(vals[2], vals[3])
	for _, c := range []geo.Coordinate{from, to} {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	meters := geo.Distance(from, to)
	km := geo.MetersToKm(meters)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "From:     %s\n", from)
	fmt.Fprintf(out, "To:       %s\n", to)
	fmt.Fprintf(out, "Distance: %.1f m (%.3f km)\n", meters, km)
	fmt.Fprintf(out, "Fee:      %d\n", pricing.DeliveryFee(km))
	return nil
}
