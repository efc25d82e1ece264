package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/howard522/eating-at-ntou-sub000/internal/pricing"
)

var (
	feeOutput string
	feeLang   string
	feeTiers  bool
)

// feeCmd represents the fee command
var feeCmd = &cobra.Command{
	Use:   "fee <distanceKm>...",
	Short: "Price distances against the delivery tariff",
	Long: `Apply the tiered delivery tariff to one or more distances in kilometres.
Negative, NaN and infinite distances are rejected.`,
	Example: `  delivery-service fee 1.5 4 12.25
  delivery-service fee 250 --output json
  delivery-service fee --tiers`,
	Args: func(cmd *cobra.Command, args []string) error {
		if feeTiers {
			return nil
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: runFee,
}

func init() {
	rootCmd.AddCommand(feeCmd)

	feeCmd.Flags().StringVar(&feeOutput, "output", "table", "Output format: table or json")
	feeCmd.Flags().StringVar(&feeLang, "lang", "en", "BCP 47 language tag used to format numbers in table output")
	feeCmd.Flags().BoolVar(&feeTiers, "tiers", false, "Print the tier boundaries of the tariff")
}

type feeRow struct {
	DistanceKm float64 `json:"distanceKm"`
	Fee        int64   `json:"fee"`
}

func runFee(cmd *cobra.Command, args []string) error {
	tag, err := language.Parse(feeLang)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", feeLang, err)
	}
	out := cmd.OutOrStdout()

	if feeTiers {
		bounds, fees := pricing.TierBounds()
		rows := make([]feeRow, 0, len(bounds))
		for i := range bounds {
			rows = append(rows, feeRow{DistanceKm: bounds[i], Fee: fees[i]})
		}
		return writeFees(out, rows, feeOutput, tag)
	}

	rows, err := computeFees(args)
	if err != nil {
		return err
	}
	return writeFees(out, rows, feeOutput, tag)
}

func computeFees(args []string) ([]feeRow, error) {
	rows := make([]feeRow, 0, len(args))
	for _, arg := range args {
		km, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid distance %q: %w", arg, err)
		}
		if err := pricing.Validate(km); err != nil {
			return nil, err
		}
		rows = append(rows, feeRow{DistanceKm: km, Fee: pricing.DeliveryFee(km)})
	}
	return rows, nil
}

func writeFees(w io.Writer, rows []feeRow, format string, tag language.Tag) error {
	switch strings.ToLower(format) {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rows)
	case "table":
		p := message.NewPrinter(tag)
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintf(tw, "Distance (km)\tFee\t\n")
		fmt.Fprintf(tw, "-------------\t---\t\n")
		for _, r := range rows {
			p.Fprintf(tw, "%.2f\t%d\t\n", r.DistanceKm, r.Fee)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("invalid output format: %s (use 'table' or 'json')", format)
	}
}
