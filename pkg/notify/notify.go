// Package notify assembles story summaries into chat notification
// payloads.
package notify

import (
	"storybot/pkg/bus"
	"storybot/pkg/tracker"
	"storybot/pkg/truncate"
)

// AttachmentColor is the accent stripe used on every story notification.
const AttachmentColor = "#3E7293"

// trackerGlyph prefixes the project line; the workspace defines the
// :tracker: emoji.
const trackerGlyph = ":tracker:"

const (
	// DefaultMaxChars and DefaultMaxLines bound the description summary
	// when the config leaves the budgets unset.
	DefaultMaxChars = 140
	DefaultMaxLines = 5
)

// Formatter turns fetched stories into notification payloads. It is
// pure: no I/O, no mutation of its inputs.
type Formatter struct {
	MaxChars int
	MaxLines int
}

// NewFormatter applies default budgets for non-positive values.
func NewFormatter(maxChars, maxLines int) Formatter {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	return Formatter{MaxChars: maxChars, MaxLines: maxLines}
}

// Story builds the notification for one story. The description is
// compressed to the formatter's budgets; an empty description stays
// empty.
func (f Formatter) Story(story tracker.Story, projectName string) bus.Notification {
	return bus.Notification{
		Fallback:  "Story details for " + story.URL,
		Color:     AttachmentColor,
		Pretext:   trackerGlyph + " " + projectName,
		Title:     story.Name,
		TitleLink: story.URL,
		Body:      truncate.Description(story.Description, f.MaxChars, f.MaxLines),
	}
}
