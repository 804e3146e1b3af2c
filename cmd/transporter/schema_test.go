package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSchema(t *testing.T) {
	var buf bytes.Buffer
	schemaCmd.SetOut(&buf)
	require.NoError(t, runSchema(schemaCmd, nil))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Cobblemon creature record", doc["title"])

	props, ok := doc["properties"].(map[string]interface{})
	require.True(t, ok)
	for _, key := range []string{"species", "level", "moves", "uuid", "box_number", "slot_number"} {
		assert.Contains(t, props, key)
	}
}
