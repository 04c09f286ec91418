// Package analyzer extracts structured stock metrics from unstructured
// upstream text and caches results per ticker and clock hour.
package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rkapoor/tradeo/internal/models"
)

// MaxTickerLength is the longest accepted ticker after normalization.
const MaxTickerLength = 10

var tickerPattern = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// ValidateTicker normalizes a raw ticker string and checks it against the
// ticker contract: non-empty, charset [A-Z0-9.-], length 1-10. On success
// the trimmed, upper-cased ticker is returned. Validation is idempotent:
// a ticker that passed once passes again unchanged.
func ValidateTicker(raw string) (string, error) {
	ticker := strings.ToUpper(strings.TrimSpace(raw))

	if ticker == "" {
		return "", &models.ValidationError{
			Rule:   models.ValidationRuleEmpty,
			Reason: "ticker cannot be empty",
		}
	}

	if !tickerPattern.MatchString(ticker) {
		return "", &models.ValidationError{
			Rule:   models.ValidationRuleCharacter,
			Reason: "ticker contains invalid characters",
		}
	}

	if len(ticker) > MaxTickerLength {
		return "", &models.ValidationError{
			Rule:   models.ValidationRuleLength,
			Reason: fmt.Sprintf("ticker length must be between 1 and %d characters", MaxTickerLength),
		}
	}

	return ticker, nil
}
