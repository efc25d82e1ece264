// Package ranking orders the pool of unclaimed orders for couriers.
package ranking

import (
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/howard522/eating-at-ntou-sub000/internal/geo"
)

var inf = math.Inf(1)

// OrderDistance returns the mean distance in meters from position to every line item
// whose restaurant snapshot has a location. Items without geodata contribute nothing;
// an order with no located items is +Inf.
func OrderDistance(o Order, position geo.Coordinate) float64 {
	var sum float64
	var n int
	for _, item := range o.Items {
		if item.Restaurant == nil || item.Restaurant.Location == nil {
			continue
		}
		sum += geo.Distance(position, *item.Restaurant.Location)
		n++
	}
	if n == 0 {
		return inf
	}
	return sum / float64(n)
}

// Rank returns a new slice of orders stably sorted by opts. The input is not modified.
//
// Orders missing the sort value (no arrive time, or no located restaurant when sorting
// by distance) go last in either direction.
func Rank(orders []Order, opts Options) []RankedOrder {
	ranked := make([]RankedOrder, len(orders))
	for i, o := range orders {
		ranked[i] = RankedOrder{Order: o, Distance: inf}
		if opts.Position != nil {
			ranked[i].Distance = OrderDistance(o, *opts.Position)
		}
	}

	desc := opts.Direction == Desc
	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j], opts.SortBy, desc)
	})

	return ranked
}

// less orders a before b. Presence is checked before the direction flip so that
// orders without a value stay at the tail.
func less(a, b RankedOrder, key SortKey, desc bool) bool {
	c, aHas, bHas := compare(a, b, key)
	if aHas != bHas {
		return aHas
	}
	if !aHas {
		return false
	}
	if desc {
		return c > 0
	}
	return c < 0
}

// compare returns the ordering of a and b under key and whether each has a value.
func compare(a, b RankedOrder, key SortKey) (c int, aHas, bHas bool) {
	switch key {
	case SortByDeliveryFee:
		return cmpInt64(a.DeliveryFee, b.DeliveryFee), true, true

	case SortByArriveTime:
		aHas, bHas = a.ArriveTime != nil, b.ArriveTime != nil
		if aHas && bHas {
			c = cmpTime(*a.ArriveTime, *b.ArriveTime)
		}
		return c, aHas, bHas

	case SortByDistance:
		aHas, bHas = a.HasDistance(), b.HasDistance()
		if aHas && bHas {
			c = cmpFloat(a.Distance, b.Distance)
		}
		return c, aHas, bHas

	default:
		return cmpTime(a.CreatedAt, b.CreatedAt), true, true
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpTime(a, b time.Time) int {
	return a.Compare(b)
}

// Ranker wraps Rank with metrics and logging for request handlers.
type Ranker struct {
	metrics *MetricsRecorder
	logger  zerolog.Logger
}

// NewRanker creates a ranker.
func NewRanker(metrics *MetricsRecorder) *Ranker {
	if metrics == nil {
		metrics = NewMetricsRecorder()
	}
	return &Ranker{
		metrics: metrics,
		logger:  log.With().Str("component", "order_ranker").Logger(),
	}
}

// Rank ranks orders and records pool size, duration and geodata coverage.
func (r *Ranker) Rank(orders []Order, opts Options) []RankedOrder {
	start := time.Now()
	ranked := Rank(orders, opts)
	r.metrics.RecordRanking(string(opts.SortBy), len(orders), time.Since(start))

	if opts.Position != nil {
		missing := 0
		for _, o := range ranked {
			if !o.HasDistance() {
				missing++
			}
		}
		r.metrics.RecordMissingGeodata(missing)
		if missing > 0 {
			r.logger.Debug().
				Int("orders", len(ranked)).
				Int("without_geodata", missing).
				Msg("Ranked orders with missing restaurant geodata")
		}
	}

	return ranked
}
