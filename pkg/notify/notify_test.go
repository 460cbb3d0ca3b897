package notify

import (
	"strings"
	"testing"

	"storybot/pkg/tracker"
)

func TestStoryNotificationFields(t *testing.T) {
	formatter := NewFormatter(140, 5)
	story := tracker.Story{
		ID:          42,
		Name:        "Fix the login flow",
		Description: "Users get logged out after five minutes.",
		URL:         "https://www.pivotaltracker.com/story/show/42",
		Kind:        "story",
		ProjectID:   9,
	}

	got := formatter.Story(story, "Checkout Team")

	if got.Pretext != ":tracker: Checkout Team" {
		t.Fatalf("pretext = %q", got.Pretext)
	}
	if got.Title != story.Name {
		t.Fatalf("title = %q, want %q", got.Title, story.Name)
	}
	if got.TitleLink != story.URL {
		t.Fatalf("title link = %q, want %q", got.TitleLink, story.URL)
	}
	if got.Fallback != "Story details for "+story.URL {
		t.Fatalf("fallback = %q", got.Fallback)
	}
	if got.Color != AttachmentColor {
		t.Fatalf("color = %q, want %q", got.Color, AttachmentColor)
	}
	if got.Body != story.Description {
		t.Fatalf("body = %q, want untruncated description", got.Body)
	}
}

func TestStoryNotificationTruncatesDescription(t *testing.T) {
	formatter := NewFormatter(140, 5)
	story := tracker.Story{
		Name:        "Long one",
		Description: strings.Repeat("a", 200),
	}

	got := formatter.Story(story, "Team")
	if want := strings.Repeat("a", 140) + "..."; got.Body != want {
		t.Fatalf("body = %q, want bounded description", got.Body)
	}
}

func TestStoryNotificationEmptyDescription(t *testing.T) {
	formatter := NewFormatter(140, 5)

	got := formatter.Story(tracker.Story{Name: "No details"}, "Team")
	if got.Body != "" {
		t.Fatalf("body = %q, want empty", got.Body)
	}
}

func TestNewFormatterDefaults(t *testing.T) {
	formatter := NewFormatter(0, -1)
	if formatter.MaxChars != DefaultMaxChars || formatter.MaxLines != DefaultMaxLines {
		t.Fatalf("formatter = %+v, want defaults %d/%d", formatter, DefaultMaxChars, DefaultMaxLines)
	}
}
