package ranking

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/howard522/eating-at-ntou-sub000/internal/geo"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func loc(lon, lat float64) *geo.Coordinate {
	c := geo.NewCoordinate(lon, lat)
	return &c
}

// orderAt builds an order whose items come from restaurants at the given locations.
// A nil location produces an item whose snapshot has no geodata.
func orderAt(id string, locations ...*geo.Coordinate) Order {
	o := Order{ID: id, Status: StatusPreparing, CreatedAt: baseTime}
	for _, l := range locations {
		o.Items = append(o.Items, OrderItem{
			Name:       id + "-item",
			Quantity:   1,
			Restaurant: &RestaurantSnapshot{ID: id + "-rst", Name: "Restaurant", Location: l},
		})
	}
	return o
}

func ids(ranked []RankedOrder) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.ID
	}
	return out
}

// TestRankByDistanceEndToEnd ranks two orders around a requester.
func TestRankByDistanceEndToEnd(t *testing.T) {
	requester := geo.NewCoordinate(121.50, 25.05)
	x := orderAt("X", loc(121.51, 25.06))
	y := orderAt("Y", loc(121.60, 25.10))

	for _, input := range [][]Order{{x, y}, {y, x}} {
		ranked := Rank(input, Options{Position: &requester, SortBy: SortByDistance, Direction: Asc})
		assert.Equal(t, []string{"X", "Y"}, ids(ranked))
		assert.True(t, ranked[0].HasDistance())
		assert.Less(t, ranked[0].Distance, ranked[1].Distance)
	}
}

// TestRankMissingGeodataLast checks orders without restaurant coordinates sort last.
func TestRankMissingGeodataLast(t *testing.T) {
	requester := geo.NewCoordinate(121.50, 25.05)
	a := orderAt("A", loc(121.70, 25.20))
	b := orderAt("B", loc(121.52, 25.05))
	c := orderAt("C", nil)
	empty := Order{ID: "D", CreatedAt: baseTime}

	tests := []struct {
		name      string
		direction Direction
		want      []string
	}{
		{"ascending", Asc, []string{"B", "A", "C", "D"}},
		{"descending", Desc, []string{"A", "B", "C", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := Rank([]Order{c, a, empty, b}, Options{Position: &requester, SortBy: SortByDistance, Direction: tt.direction})
			assert.Equal(t, tt.want, ids(ranked))
			assert.False(t, ranked[2].HasDistance())
			assert.True(t, math.IsInf(ranked[2].Distance, 1))
		})
	}
}

// TestOrderDistanceAveragesLocatedItems verifies items without geodata are skipped, not zeroed.
func TestOrderDistanceAveragesLocatedItems(t *testing.T) {
	requester := geo.NewCoordinate(121.50, 25.05)
	near := loc(121.51, 25.05)
	far := loc(121.53, 25.05)

	o := orderAt("M", near, nil, far)
	o.Items = append(o.Items, OrderItem{Name: "no snapshot"})

	want := (geo.Distance(requester, *near) + geo.Distance(requester, *far)) / 2
	assert.InDelta(t, want, OrderDistance(o, requester), 1e-6)

	assert.True(t, math.IsInf(OrderDistance(orderAt("N", nil), requester), 1))
	assert.True(t, math.IsInf(OrderDistance(Order{}, requester), 1))
}

// TestRankStableOnTies checks equal fees keep their input order.
func TestRankStableOnTies(t *testing.T) {
	orders := []Order{
		{ID: "first", DeliveryFee: 60, CreatedAt: baseTime},
		{ID: "cheap", DeliveryFee: 30, CreatedAt: baseTime},
		{ID: "second", DeliveryFee: 60, CreatedAt: baseTime},
		{ID: "third", DeliveryFee: 60, CreatedAt: baseTime},
	}

	asc := Rank(orders, Options{SortBy: SortByDeliveryFee, Direction: Asc})
	assert.Equal(t, []string{"cheap", "first", "second", "third"}, ids(asc))

	desc := Rank(orders, Options{SortBy: SortByDeliveryFee, Direction: Desc})
	assert.Equal(t, []string{"first", "second", "third", "cheap"}, ids(desc))
}

func TestRankByCreatedAt(t *testing.T) {
	orders := []Order{
		{ID: "mid", CreatedAt: baseTime},
		{ID: "old", CreatedAt: baseTime.Add(-time.Hour)},
		{ID: "new", CreatedAt: baseTime.Add(time.Hour)},
	}

	assert.Equal(t, []string{"new", "mid", "old"}, ids(Rank(orders, Options{SortBy: SortByCreatedAt, Direction: Desc})))
	assert.Equal(t, []string{"old", "mid", "new"}, ids(Rank(orders, Options{SortBy: SortByCreatedAt, Direction: Asc})))
}

func TestRankByArriveTimeMissingLast(t *testing.T) {
	soon := baseTime.Add(20 * time.Minute)
	later := baseTime.Add(90 * time.Minute)
	orders := []Order{
		{ID: "none-1", CreatedAt: baseTime},
		{ID: "later", ArriveTime: &later, CreatedAt: baseTime},
		{ID: "none-2", CreatedAt: baseTime},
		{ID: "soon", ArriveTime: &soon, CreatedAt: baseTime},
	}

	asc := Rank(orders, Options{SortBy: SortByArriveTime, Direction: Asc})
	assert.Equal(t, []string{"soon", "later", "none-1", "none-2"}, ids(asc))

	desc := Rank(orders, Options{SortBy: SortByArriveTime, Direction: Desc})
	assert.Equal(t, []string{"later", "soon", "none-1", "none-2"}, ids(desc))
}

// TestRankDistanceWithoutPosition keeps upstream order when no position is given.
func TestRankDistanceWithoutPosition(t *testing.T) {
	orders := []Order{
		orderAt("A", loc(121.70, 25.20)),
		orderAt("B", loc(121.52, 25.05)),
	}

	ranked := Rank(orders, Options{SortBy: SortByDistance, Direction: Asc})
	assert.Equal(t, []string{"A", "B"}, ids(ranked))
	for _, r := range ranked {
		assert.False(t, r.HasDistance())
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	orders := []Order{
		{ID: "a", DeliveryFee: 90},
		{ID: "b", DeliveryFee: 30},
	}

	ranked := Rank(orders, Options{SortBy: SortByDeliveryFee, Direction: Asc})
	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].ID)
	assert.Equal(t, "a", orders[0].ID)
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil, Options{SortBy: SortByDistance}))
	assert.Empty(t, NewRanker(nil).Rank([]Order{}, Options{}))
}

func TestRankerRecordsAndRanks(t *testing.T) {
	requester := geo.NewCoordinate(121.50, 25.05)
	ranker := NewRanker(NewMetricsRecorder())

	ranked := ranker.Rank([]Order{
		orderAt("far", loc(121.60, 25.10)),
		orderAt("none", nil),
		orderAt("near", loc(121.51, 25.06)),
	}, Options{Position: &requester, SortBy: SortByDistance, Direction: Asc})

	assert.Equal(t, []string{"near", "far", "none"}, ids(ranked))
}

func TestParseOptions(t *testing.T) {
	key, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortByCreatedAt, key)

	for _, k := range []string{"createdAt", "deliveryFee", "arriveTime", "distance"} {
		key, err := ParseSortKey(k)
		require.NoError(t, err)
		assert.Equal(t, SortKey(k), key)
	}

	_, err = ParseSortKey("price")
	assert.Error(t, err)
	assert.IsType(t, ErrInvalidOption{}, err)

	dir, err := ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Desc, dir)

	dir, err = ParseDirection("ASC")
	require.NoError(t, err)
	assert.Equal(t, Asc, dir)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}
