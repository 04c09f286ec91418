package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rkapoor/tradeo/internal/models"
)

const (
	// DefaultMaxNewsItems bounds how many news records make it into a summary.
	DefaultMaxNewsItems = 5

	// NoNewsSentinel is returned when the news source yields nothing.
	NoNewsSentinel = "No recent news found."

	maxTitleChars   = 100
	maxContentChars = 300
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// SummarizeNews numbers up to maxItems news records into a citation-friendly
// digest, one line per item: "{index}. {title}: {content} [Ref: {url}]".
// References come back in input order so citation numbers in a generated
// report line up with the digest. Empty input yields NoNewsSentinel and an
// empty reference list.
func SummarizeNews(items []models.NewsItem, maxItems int) (string, []models.NewsReference) {
	if len(items) == 0 {
		return NoNewsSentinel, nil
	}
	if maxItems <= 0 {
		maxItems = DefaultMaxNewsItems
	}
	if len(items) > maxItems {
		items = items[:maxItems]
	}

	var sb strings.Builder
	references := make([]models.NewsReference, 0, len(items))

	for i, item := range items {
		title := item.Title
		if title == "" {
			title = "No title"
		}
		content := item.Content
		if content == "" {
			content = "No content"
		}
		url := item.URL
		if url == "" {
			url = "#"
		}

		title = cleanAndTruncate(title, maxTitleChars)
		content = cleanAndTruncate(content, maxContentChars)

		index := i + 1
		sb.WriteString(fmt.Sprintf("%d. %s: %s [Ref: %s]\n", index, title, content, url))
		references = append(references, models.NewsReference{
			Index: index,
			URL:   url,
			Title: title,
		})
	}

	return sb.String(), references
}

// cleanAndTruncate collapses whitespace runs and truncates to maxLen
// characters, appending an ellipsis marker when truncation occurred.
func cleanAndTruncate(text string, maxLen int) string {
	cleaned := whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")

	runes := []rune(cleaned)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return cleaned
}
