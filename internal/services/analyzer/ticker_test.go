package analyzer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkapoor/tradeo/internal/models"
)

func TestValidateTicker(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantRule string
	}{
		{name: "simple ticker", input: "AAPL", expected: "AAPL"},
		{name: "lowercase normalized", input: "aapl", expected: "AAPL"},
		{name: "surrounding whitespace trimmed", input: "  msft  ", expected: "MSFT"},
		{name: "dot suffix allowed", input: "reliance.ns", expected: "RELIANCE.NS"},
		{name: "hyphen allowed", input: "bajaj-auto", expected: "BAJAJ-AUTO"},
		{name: "digits allowed", input: "BRK2", expected: "BRK2"},
		{name: "empty", input: "", wantRule: models.ValidationRuleEmpty},
		{name: "whitespace only", input: "   ", wantRule: models.ValidationRuleEmpty},
		{name: "interior space", input: "ap l!", wantRule: models.ValidationRuleCharacter},
		{name: "punctuation", input: "AAPL$", wantRule: models.ValidationRuleCharacter},
		{name: "too long", input: strings.Repeat("A", MaxTickerLength+1), wantRule: models.ValidationRuleLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateTicker(tt.input)

			if tt.wantRule != "" {
				require.Error(t, err)
				var verr *models.ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, tt.wantRule, verr.Rule)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidateTickerIdempotent(t *testing.T) {
	inputs := []string{"AAPL", " reliance ", "foo.ns", "bajaj-auto"}

	for _, input := range inputs {
		first, err := ValidateTicker(input)
		require.NoError(t, err)

		second, err := ValidateTicker(first)
		require.NoError(t, err)
		assert.Equal(t, first, second, "normalized ticker should pass through unchanged")
	}
}

func TestValidateTickerMaxLengthBoundary(t *testing.T) {
	exact := strings.Repeat("A", MaxTickerLength)
	got, err := ValidateTicker(exact)
	require.NoError(t, err)
	assert.Equal(t, exact, got)
}
