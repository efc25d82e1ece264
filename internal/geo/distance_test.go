package geo

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDistanceKnownValues checks the haversine result against reference distances.
func TestDistanceKnownValues(t *testing.T) {
	tests := []struct {
		name  string
		a     Coordinate
		b     Coordinate
		want  float64
		delta float64
	}{
		{
			name:  "one degree of latitude at the prime meridian",
			a:     NewCoordinate(0, 0),
			b:     NewCoordinate(0, 1),
			want:  111195,
			delta: 1,
		},
		{
			name:  "identical points",
			a:     NewCoordinate(121.5, 25.0),
			b:     NewCoordinate(121.5, 25.0),
			want:  0,
			delta: 0,
		},
		{
			name:  "pole to pole",
			a:     NewCoordinate(0, 90),
			b:     NewCoordinate(0, -90),
			want:  20015087,
			delta: 10,
		},
		{
			name:  "date line crossing",
			a:     NewCoordinate(179, 0),
			b:     NewCoordinate(-179, 0),
			want:  222390,
			delta: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Distance(tt.a, tt.b), tt.delta)
		})
	}
}

// TestDistanceSymmetric verifies distance(A,B) == distance(B,A).
func TestDistanceSymmetric(t *testing.T) {
	points := []Coordinate{
		NewCoordinate(121.50, 25.05),
		NewCoordinate(121.51, 25.06),
		NewCoordinate(121.60, 25.10),
		NewCoordinate(-73.98, 40.75),
		NewCoordinate(16.0, 45.0),
		NewCoordinate(0, 0),
		NewCoordinate(180, 0),
	}

	for _, a := range points {
		for _, b := range points {
			ab := Distance(a, b)
			ba := Distance(b, a)
			assert.GreaterOrEqual(t, ab, 0.0)
			assert.InEpsilon(t, ab+1, ba+1, 1e-6, "%s <-> %s", a, b)
		}
	}
}

// TestDistanceNearIdenticalPoints makes sure tiny separations stay positive and finite.
func TestDistanceNearIdenticalPoints(t *testing.T) {
	a := NewCoordinate(121.773, 25.150)
	b := NewCoordinate(121.773, 25.150000001)

	d := Distance(a, b)
	assert.Greater(t, d, 0.0)
	assert.Less(t, d, 0.001)
}

func TestMetersToKm(t *testing.T) {
	assert.Equal(t, 1.5, MetersToKm(1500))
	assert.Equal(t, 0.0, MetersToKm(0))
}

func TestCoordinateJSON(t *testing.T) {
	c := NewCoordinate(121.5, 25.05)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `[121.5,25.05]`, string(data))

	var decoded Coordinate
	require.NoError(t, json.Unmarshal([]byte(`[121.6, 25.1]`), &decoded))
	assert.Equal(t, NewCoordinate(121.6, 25.1), decoded)

	assert.Error(t, json.Unmarshal([]byte(`[121.6]`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`{"lat":1}`), &decoded))
}

func TestCoordinateValidate(t *testing.T) {
	assert.NoError(t, NewCoordinate(121.5, 25.0).Validate())
	assert.NoError(t, NewCoordinate(-180, -90).Validate())

	err := NewCoordinate(181, 0).Validate()
	require.Error(t, err)
	assert.Equal(t, "longitude", err.(ErrOutOfRange).Field)

	// Swapped axes are caught when the latitude slot receives a longitude.
	err = NewCoordinate(25.0, 121.5).Validate()
	require.Error(t, err)
	assert.Equal(t, "latitude", err.(ErrOutOfRange).Field)

	assert.Error(t, NewCoordinate(math.NaN(), 0).Validate())
	assert.Error(t, NewCoordinate(0, math.Inf(1)).Validate())
}
