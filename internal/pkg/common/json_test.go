package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONStrictRejectsUnknownFields(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	require.NoError(t, ParseJSONStrict(`{"name": "sate"}`, &v))
	assert.Equal(t, "sate", v.Name)

	require.Error(t, ParseJSONStrict(`{"name": "sate", "extra": 1}`, &v))
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	require.Error(t, ParseJSON(`{"a": 1} trailing`, &v))
	require.Error(t, ParseJSON(`{"a": 1}{"b": 2}`, &v))
	require.NoError(t, ParseJSON(`{"a": 1}`, &v))
}

func TestQuoteJSONKeys(t *testing.T) {
	assert.Equal(t, `{"name": "x", "count": 2}`, QuoteJSONKeys(`{name: "x", count: 2}`))
	// quoted keys stay untouched
	assert.Equal(t, `{"name": "x"}`, QuoteJSONKeys(`{"name": "x"}`))
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, ExtractJSONObject("Sure! Here: {\"a\": 1} Done."))
	assert.Equal(t, "", ExtractJSONObject("no json here"))
	assert.Equal(t, "", ExtractJSONObject("} reversed {"))
}
