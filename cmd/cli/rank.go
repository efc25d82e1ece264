package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/howard522/eating-at-ntou-sub000/internal/geo"
	"github.com/howard522/eating-at-ntou-sub000/internal/ranking"
)

var (
	rankFile   string
	rankSort   string
	rankOrder  string
	rankLon    float64
	rankLat    float64
	rankOutput string
	rankXLSX   string
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank an exported order list",
	Long: `Rank orders from a JSON file the same way the courier order pool does. The file holds
either an array of orders or an object with an "orders" array. Orders without the sort value
are listed last in both directions.`,
	Example: `  delivery-service rank --file orders.json
  delivery-service rank --file orders.json --sort distance --order asc --lon 121.7795 --lat 25.1505
  delivery-service rank --file orders.json --sort deliveryFee --output xlsx --xlsx-file ranking.xlsx`,
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVar(&rankFile, "file", "", "Orders JSON file (required)")
	rankCmd.Flags().StringVar(&rankSort, "sort", "createdAt", "Sort key: createdAt, deliveryFee, arriveTime or distance")
	rankCmd.Flags().StringVar(&rankOrder, "order", "desc", "Sort direction: asc or desc")
	rankCmd.Flags().Float64Var(&rankLon, "lon", 0, "Requester longitude")
	rankCmd.Flags().Float64Var(&rankLat, "lat", 0, "Requester latitude")
	rankCmd.Flags().StringVar(&rankOutput, "output", "table", "Output format: table, json or xlsx")
	rankCmd.Flags().StringVar(&rankXLSX, "xlsx-file", "ranking.xlsx", "Destination for xlsx output")
	rankCmd.MarkFlagsRequiredTogether("lon", "lat")
	_ = rankCmd.MarkFlagRequired("file")
}

func runRank(cmd *cobra.Command, args []string) error {
	key, err := ranking.ParseSortKey(rankSort)
	if err != nil {
		return err
	}
	dir, err := ranking.ParseDirection(rankOrder)
	if err != nil {
		return err
	}
	opts := ranking.Options{SortBy: key, Direction: dir}
	if cmd.Flags().Changed("lon") {
		position := geo.NewCoordinate(rankLon, rankLat)
		if err := position.Validate(); err != nil {
			return err
		}
		opts.Position = &position
	}

	data, err := os.ReadFile(rankFile)
	if err != nil {
		return fmt.Errorf("failed to read orders: %w", err)
	}
	orders, err := decodeOrders(data)
	if err != nil {
		return err
	}
	logger.Info().Str("file", rankFile).Int("orders", len(orders)).Str("sort", string(key)).Msg("Ranking orders")

	ranked := ranking.Rank(orders, opts)

	switch strings.ToLower(rankOutput) {
	case "json":
		return writeRankJSON(cmd.OutOrStdout(), ranked)
	case "table":
		return writeRankTable(cmd.OutOrStdout(), ranked)
	case "xlsx":
		if err := writeRankXLSX(rankXLSX, ranked, opts); err != nil {
			return err
		}
		logger.Info().Str("file", rankXLSX).Msg("Ranking written")
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (use 'table', 'json' or 'xlsx')", rankOutput)
	}
}

// decodeOrders accepts a bare array or an {"orders": [...]} envelope.
func decodeOrders(data []byte) ([]ranking.Order, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var orders []ranking.Order
		if err := json.Unmarshal(data, &orders); err != nil {
			return nil, fmt.Errorf("failed to decode orders: %w", err)
		}
		return orders, nil
	}

	var envelope struct {
		Orders []ranking.Order `json:"orders"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return envelope.Orders, nil
}

type rankedRow struct {
	ranking.Order
	Distance *float64 `json:"distance"`
}

func writeRankJSON(w io.Writer, ranked []ranking.RankedOrder) error {
	rows := make([]rankedRow, 0, len(ranked))
	for _, r := range ranked {
		row := rankedRow{Order: r.Order}
		if r.HasDistance() {
			d := r.Distance
			row.Distance = &d
		}
		rows = append(rows, row)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}

func writeRankTable(w io.Writer, ranked []ranking.RankedOrder) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "#\tOrder\tCreated\tFee\tArrive\tDistance (m)\n")
	fmt.Fprintf(tw, "-\t-----\t-------\t---\t------\t------------\n")
	for i, r := range ranked {
		c := rankCells(r)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n", i+1, r.ID, c.created, r.DeliveryFee, c.arrive, c.distance)
	}
	return tw.Flush()
}

type rowCells struct {
	created  string
	arrive   string
	distance string
}

func rankCells(r ranking.RankedOrder) rowCells {
	c := rowCells{created: r.CreatedAt.Format(time.RFC3339), arrive: "-", distance: "-"}
	if r.ArriveTime != nil {
		c.arrive = r.ArriveTime.Format(time.RFC3339)
	}
	if r.HasDistance() {
		c.distance = fmt.Sprintf("%.0f", r.Distance)
	}
	return c
}

const rankSheet = "Ranking"

func writeRankXLSX(path string, ranked []ranking.RankedOrder, opts ranking.Options) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rankSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []any{"Rank", "Order", "Customer", "Created", "Delivery Fee", "Items Total", "Arrive", "Distance (m)"}
	if err := f.SetSheetRow(rankSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range ranked {
		row := []any{i + 1, r.ID, r.CustomerID, r.CreatedAt.Format(time.RFC3339), r.DeliveryFee, r.ItemsTotal, nil, nil}
		if r.ArriveTime != nil {
			row[6] = r.ArriveTime.Format(time.RFC3339)
		}
		if r.HasDistance() {
			row[7] = r.Distance
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(rankSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:       "Order ranking",
		Description: fmt.Sprintf("sortBy=%s order=%s", opts.SortBy, opts.Direction),
	}); err != nil {
		return fmt.Errorf("failed to set properties: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
