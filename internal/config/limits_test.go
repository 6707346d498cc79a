package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitsWithDefaults(t *testing.T) {
	cfg := Config{RateLimitPerDay: 20, ConversationMemorySize: 5}

	filled := Limits{}.withDefaults(cfg)
	assert.Equal(t, 20, filled.RateLimitPerDay)
	assert.Equal(t, 5, filled.ConversationMemorySize)

	overridden := Limits{RateLimitPerDay: 100, ConversationMemorySize: 10}.withDefaults(cfg)
	assert.Equal(t, 100, overridden.RateLimitPerDay)
	assert.Equal(t, 10, overridden.ConversationMemorySize)
}

func TestNewLimitsHolderWithoutFile(t *testing.T) {
	holder, err := NewLimitsHolder(Config{RateLimitPerDay: 20, ConversationMemorySize: 5})
	require.NoError(t, err)

	limits := holder.Current()
	assert.Equal(t, 20, limits.RateLimitPerDay)
	assert.Equal(t, 5, limits.ConversationMemorySize)
}

func TestStaticLimits(t *testing.T) {
	holder := NewStaticLimits(Limits{RateLimitPerDay: 3, ConversationMemorySize: 2})
	assert.Equal(t, 3, holder.Current().RateLimitPerDay)
	assert.Equal(t, 2, holder.Current().ConversationMemorySize)
}
