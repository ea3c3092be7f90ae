package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func withObservedLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	old := Logger
	Logger = zap.New(core)
	t.Cleanup(func() { Logger = old })
	return logs
}

func TestLogCacheHitIncludesKey(t *testing.T) {
	logs := withObservedLogger(t)

	LogCacheHit("ai_response", "ai:response:model-a:deadbeef")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "cache hit", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "ai_response", fields["type"])
	assert.Equal(t, "ai:response:model-a:deadbeef", fields["key"])
}

func TestLogCacheMissTruncatesLongKey(t *testing.T) {
	logs := withObservedLogger(t)

	long := "ai:response:model-a:" + strings.Repeat("f", 64)
	LogCacheMiss("ai_response", long)

	entries := logs.All()
	require.Len(t, entries, 1)
	key, ok := entries[0].ContextMap()["key"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(key, "..."))
	assert.Equal(t, long[:48], strings.TrimSuffix(key, "..."))
}

func TestFilterFieldsDropsBulkyPayloads(t *testing.T) {
	logs := withObservedLogger(t)

	LogInfo("formatted record",
		zap.String("recipe", "Nasi Goreng"),
		zap.String("raw_text", "whole scraped page"),
		zap.String("llm_prompt", "full prompt body"),
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Nasi Goreng", fields["recipe"])
	assert.NotContains(t, fields, "raw_text")
	assert.NotContains(t, fields, "llm_prompt")
}
