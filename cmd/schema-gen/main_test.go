package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGroupSchemas(t *testing.T) {
	dir := t.TempDir()

	for _, group := range schemaGroups() {
		path := filepath.Join(dir, group.Output)
		require.NoError(t, writeSchema(generateGroupSchema(group), path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var parsed map[string]any
		require.NoError(t, json.Unmarshal(data, &parsed), group.Name)
		defs, ok := parsed["$defs"].(map[string]any)
		require.True(t, ok, group.Name)
		assert.NotEmpty(t, defs, group.Name)
	}
}

func TestCoordinateMappedToPair(t *testing.T) {
	groups := schemaGroups()
	require.Equal(t, "delivery", groups[0].Name)

	schema := generateGroupSchema(groups[0])
	raw, err := json.Marshal(schema)
	require.NoError(t, err)

	var parsed struct {
		Defs map[string]struct {
			Properties map[string]struct {
				Type     string `json:"type"`
				MinItems int    `json:"minItems"`
				MaxItems int    `json:"maxItems"`
			} `json:"properties"`
		} `json:"$defs"`
	}
	require.NoError(t, json.Unmarshal(raw, &parsed))

	quote, ok := parsed.Defs["QuoteRequest"]
	require.True(t, ok)
	destination := quote.Properties["destination"]
	assert.Equal(t, "array", destination.Type)
	assert.Equal(t, 2, destination.MinItems)
	assert.Equal(t, 2, destination.MaxItems)
}
