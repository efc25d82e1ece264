// Schema Generator
//
// Generates JSON Schema files from the HTTP request and response types so clients
// can validate payloads against the same definitions the server binds.
//
// Usage:
//
//	go run ./cmd/schema-gen [output-dir]
//
// Output:
//
//	schemas/delivery.json
//	schemas/orders.json
//	schemas/restaurants.json
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/howard522/eating-at-ntou-sub000/internal/geo"
	"github.com/howard522/eating-at-ntou-sub000/internal/handlers"
	"github.com/howard522/eating-at-ntou-sub000/internal/orders"
)

// SchemaGroup represents a group of related schemas
type SchemaGroup struct {
	Name   string
	Types  []any
	Output string
}

func main() {
	outputDir := "schemas"
	if len(os.Args) > 1 {
		outputDir = os.Args[1]
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, group := range schemaGroups() {
		schema := generateGroupSchema(group)
		outputPath := filepath.Join(outputDir, group.Output)

		if err := writeSchema(schema, outputPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", group.Output, err)
			os.Exit(1)
		}

		fmt.Printf("Generated %s\n", outputPath)
	}

	fmt.Println("Schema generation complete!")
}

func schemaGroups() []SchemaGroup {
	return []SchemaGroup{
		{
			Name: "delivery",
			Types: []any{
				// Request types
				handlers.FeeRequest{},
				handlers.QuoteStop{},
				handlers.QuoteRequest{},
				// Response types
				handlers.FeeResponse{},
				handlers.QuoteLeg{},
				handlers.QuoteResponse{},
			},
			Output: "delivery.json",
		},
		{
			Name: "orders",
			Types: []any{
				// Request types
				orders.ItemInput{},
				orders.PlaceOrderInput{},
				handlers.AvailableOrdersRequest{},
				handlers.RankOrdersRequest{},
				// Response types
				handlers.RankedOrder{},
				handlers.RankedOrdersResponse{},
				handlers.OrderResponse{},
			},
			Output: "orders.json",
		},
		{
			Name: "restaurants",
			Types: []any{
				handlers.RestaurantRequest{},
				handlers.RestaurantResponse{},
			},
			Output: "restaurants.json",
		},
	}
}

var coordinateType = reflect.TypeOf(geo.Coordinate{})

// coordinateSchema describes geo.Coordinate, which marshals as a [lon, lat] pair.
func coordinateSchema() *jsonschema.Schema {
	minItems, maxItems := uint64(2), uint64(2)
	return &jsonschema.Schema{
		Type:        "array",
		Description: "[longitude, latitude] in degrees",
		Items:       &jsonschema.Schema{Type: "number"},
		MinItems:    &minItems,
		MaxItems:    &maxItems,
	}
}

// generateGroupSchema creates a combined schema with all types in a group
func generateGroupSchema(group SchemaGroup) map[string]any {
	reflector := &jsonschema.Reflector{
		DoNotReference: false,
		ExpandedStruct: false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == coordinateType {
				return coordinateSchema()
			}
			return nil
		},
	}

	definitions := make(map[string]any)

	for _, t := range group.Types {
		schema := reflector.Reflect(t)

		// Extract type name from $ref like "#/$defs/QuoteRequest"
		typeName := ""
		if schema.Ref != "" {
			typeName = filepath.Base(schema.Ref)
		}

		for name, def := range schema.Definitions {
			definitions[name] = def
		}

		if typeName != "" && schema.Definitions[typeName] != nil {
			definitions[typeName] = schema.Definitions[typeName]
		}
	}

	return map[string]any{
		"$schema":     "https://json-schema.org/draft/2020-12/schema",
		"$id":         fmt.Sprintf("https://github.com/howard522/eating-at-ntou-sub000/schemas/%s.json", group.Name),
		"title":       fmt.Sprintf("%s API Types", capitalize(group.Name)),
		"description": fmt.Sprintf("JSON Schema for %s API types generated from Go structs", group.Name),
		"$defs":       definitions,
	}
}

// writeSchema writes a schema to a JSON file
func writeSchema(schema map[string]any, path string) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
