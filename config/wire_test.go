package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCapabilities_DefaultsToMemoryStore(t *testing.T) {
	caps, err := BuildCapabilities(context.Background(), Default())
	require.NoError(t, err)
	assert.NotNil(t, caps.Store)
	assert.Nil(t, caps.Vector)
	assert.Nil(t, caps.LLM)
}

func TestBuildCapabilities_UnknownStoreBackend(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = "bogus"
	_, err := BuildCapabilities(context.Background(), cfg)
	assert.Error(t, err)
}

func TestBuildCapabilities_UnknownLLMProvider(t *testing.T) {
	cfg := Default()
	cfg.LLM.Provider = "bogus"
	_, err := BuildCapabilities(context.Background(), cfg)
	assert.Error(t, err)
}

func TestBuildCapabilities_WrapsLLMWithRateLimit(t *testing.T) {
	cfg := Default()
	cfg.LLM.Provider = "anthropic"
	cfg.LLM.APIKey = "sk-test"
	cfg.LLM.DefaultModel = "claude-3.5-sonnet"
	cfg.LLM.RequestsPerMinute = 60

	caps, err := BuildCapabilities(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, caps.LLM)
}

func TestBuildProcedureStore_DefaultsToInmem(t *testing.T) {
	store, err := BuildProcedureStore(Default())
	require.NoError(t, err)
	assert.NotNil(t, store)
}

func TestBuildProcedureStore_UnknownBackend(t *testing.T) {
	cfg := Default()
	cfg.Engine.Backend = "bogus"
	_, err := BuildProcedureStore(cfg)
	assert.Error(t, err)
}
