package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"

	"github.com/howard522/eating-at-ntou-sub000/internal/geo"
	"github.com/howard522/eating-at-ntou-sub000/internal/ranking"
)

func TestComputeFees(t *testing.T) {
	rows, err := computeFees([]string{"0", "5", "20", "200"})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, int64(30), rows[0].Fee)
	assert.Equal(t, int64(72), rows[1].Fee)
	assert.Equal(t, int64(192), rows[2].Fee)
	assert.Equal(t, int64(2352), rows[3].Fee)

	_, err = computeFees([]string{"-1"})
	assert.Error(t, err)
	_, err = computeFees([]string{"far"})
	assert.Error(t, err)
}

func TestWriteFeesTableGroupsDigits(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFees(&buf, []feeRow{{DistanceKm: 1000, Fee: 12345}}, "table", language.English))
	assert.Contains(t, buf.String(), "1,000.00")
	assert.Contains(t, buf.String(), "12,345")

	buf.Reset()
	require.NoError(t, writeFees(&buf, []feeRow{{DistanceKm: 2, Fee: 30}}, "json", language.English))
	var decoded []feeRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []feeRow{{DistanceKm: 2, Fee: 30}}, decoded)

	assert.Error(t, writeFees(&buf, nil, "yaml", language.English))
}

func TestDecodeOrders(t *testing.T) {
	bare := `[{"id":"a","createdAt":"2026-03-01T12:00:00Z"}]`
	envelope := `{"orders":[{"id":"a","createdAt":"2026-03-01T12:00:00Z"},{"id":"b","createdAt":"2026-03-01T12:05:00Z"}]}`

	orders, err := decodeOrders([]byte(bare))
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = decodeOrders([]byte("\n " + envelope))
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	_, err = decodeOrders([]byte(`{"orders":`))
	assert.Error(t, err)
}

func sampleRanking() []ranking.RankedOrder {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	arrive := created.Add(time.Hour)
	loc := geo.NewCoordinate(121.77, 25.15)
	position := geo.NewCoordinate(121.78, 25.15)
	orders := []ranking.Order{
		{ID: "ord_near", CustomerID: "usr-1", DeliveryFee: 30, CreatedAt: created, ArriveTime: &arrive,
			Items: []ranking.OrderItem{{Restaurant: &ranking.RestaurantSnapshot{ID: "r", Location: &loc}}}},
		{ID: "ord_unknown", CustomerID: "usr-2", DeliveryFee: 45, CreatedAt: created.Add(time.Minute)},
	}
	return ranking.Rank(orders, ranking.Options{Position: &position, SortBy: ranking.SortByDistance, Direction: ranking.Asc})
}

func TestWriteRankTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRankTable(&buf, sampleRanking()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "ord_near")
	assert.Contains(t, lines[3], "ord_unknown")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[3]), "-"), "unknown distance prints as -")
}

func TestWriteRankJSONKeepsNullDistance(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRankJSON(&buf, sampleRanking()))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.NotNil(t, rows[0]["distance"])
	assert.Nil(t, rows[1]["distance"])
}

func TestWriteRankXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranking.xlsx")
	opts := ranking.Options{SortBy: ranking.SortByDistance, Direction: ranking.Asc}
	require.NoError(t, writeRankXLSX(path, sampleRanking(), opts))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(rankSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Rank", rows[0][0])
	assert.Equal(t, "ord_near", rows[1][1])
	assert.Equal(t, "ord_unknown", rows[2][1])
}
