package geo

import (
	"encoding/json"
	"fmt"
)

// Coordinate is a geographic point stored longitude first.
// It marshals to and from the two-element JSON array [lon, lat].
type Coordinate struct {
	Longitude float64
	Latitude  float64
}

// NewCoordinate builds a Coordinate from a longitude and a latitude, in that order.
func NewCoordinate(lon, lat float64) Coordinate {
	return Coordinate{Longitude: lon, Latitude: lat}
}

// Validate checks that the coordinate lies within valid degree ranges. NaN is rejected.
func (c Coordinate) Validate() error {
	if !(c.Longitude >= -180 && c.Longitude <= 180) {
		return ErrOutOfRange{Field: "longitude", Value: c.Longitude}
	}
	if !(c.Latitude >= -90 && c.Latitude <= 90) {
		return ErrOutOfRange{Field: "latitude", Value: c.Latitude}
	}
	return nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("[%g,%g]", c.Longitude, c.Latitude)
}

// MarshalJSON encodes the coordinate as [lon, lat].
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Longitude, c.Latitude})
}

// UnmarshalJSON decodes a [lon, lat] array.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinate must be a [lon, lat] array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinate must have exactly 2 values, got %d", len(pair))
	}
	c.Longitude = pair[0]
	c.Latitude = pair[1]
	return nil
}

// ErrOutOfRange is returned when a coordinate component is outside its valid range.
type ErrOutOfRange struct {
	Field string
	Value float64
}

func (e ErrOutOfRange) Error() string {
	return fmt.Sprintf("%s %g out of range", e.Field, e.Value)
}
