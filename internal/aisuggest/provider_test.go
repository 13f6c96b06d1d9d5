package aisuggest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okrhub/okrhub-lambda/internal/aisuggest"
)

func TestDecodeSuggestions(t *testing.T) {
	t.Run("PlainJSON", func(t *testing.T) {
		suggestions, err := aisuggest.DecodeSuggestions(`[{"description":"Ship v1","target":"100"}]`)
		require.NoError(t, err)
		require.Len(t, suggestions, 1)
		assert.Equal(t, "Ship v1", suggestions[0].Description)
		assert.Equal(t, "100", suggestions[0].Target)
	})

	t.Run("FencedJSON", func(t *testing.T) {
		raw := "```json\n[{\"description\":\"Improve latency\",\"target\":\"50ms\"}]\n```"
		suggestions, err := aisuggest.DecodeSuggestions(raw)
		require.NoError(t, err)
		require.Len(t, suggestions, 1)
		assert.Equal(t, "50ms", suggestions[0].Target)
	})

	t.Run("NotJSON", func(t *testing.T) {
		_, err := aisuggest.DecodeSuggestions("sorry, I cannot help with that")
		assert.Error(t, err)
	})
}

func TestBuildUserPromptClampsQuantity(t *testing.T) {
	low := aisuggest.BuildUserPrompt(aisuggest.SuggestionRequest{Objective: "Grow revenue", Quantity: 0})
	assert.True(t, strings.HasPrefix(low, "Propose 3 "))

	high := aisuggest.BuildUserPrompt(aisuggest.SuggestionRequest{Objective: "Grow revenue", Quantity: 50})
	assert.True(t, strings.HasPrefix(high, "Propose 10 "))
}
