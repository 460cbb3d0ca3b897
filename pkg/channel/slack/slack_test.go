package slack

import (
	"testing"

	"storybot/pkg/bus"
	"storybot/pkg/config"

	"github.com/slack-go/slack/slackevents"
)

func TestNewAdapterValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SlackConfig
	}{
		{name: "missing bot token", cfg: config.SlackConfig{AppToken: "xapp-1"}},
		{name: "missing app token", cfg: config.SlackConfig{BotToken: "xoxb-1"}},
		{name: "wrong app token prefix", cfg: config.SlackConfig{BotToken: "xoxb-1", AppToken: "xoxb-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAdapter(tt.cfg, nil); err == nil {
				t.Fatal("expected configuration error")
			}
		})
	}
}

func TestNewAdapterValidConfig(t *testing.T) {
	adapter, err := NewAdapter(config.SlackConfig{BotToken: "xoxb-1", AppToken: "xapp-1"}, nil)
	if err != nil {
		t.Fatalf("NewAdapter error: %v", err)
	}
	if adapter.Name() != "slack" {
		t.Fatalf("Name = %q, want %q", adapter.Name(), "slack")
	}
}

func TestRelayable(t *testing.T) {
	tests := []struct {
		name    string
		message *slackevents.MessageEvent
		want    bool
	}{
		{
			name:    "plain user message",
			message: &slackevents.MessageEvent{User: "U1", Text: "hello", Channel: "C1"},
			want:    true,
		},
		{
			name:    "nil event",
			message: nil,
			want:    false,
		},
		{
			name:    "edited message subtype",
			message: &slackevents.MessageEvent{User: "U1", Text: "hello", SubType: "message_changed"},
			want:    false,
		},
		{
			name:    "bot message",
			message: &slackevents.MessageEvent{BotID: "B1", Text: "hello"},
			want:    false,
		},
		{
			name:    "own message echo",
			message: &slackevents.MessageEvent{User: "UBOT", Text: "hello"},
			want:    false,
		},
		{
			name:    "empty text",
			message: &slackevents.MessageEvent{User: "U1", Text: "   "},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relayable(tt.message, "UBOT"); got != tt.want {
				t.Fatalf("relayable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAttachmentMapping(t *testing.T) {
	notification := bus.Notification{
		Fallback:  "Story details for https://example.com/story/show/42",
		Color:     "#3E7293",
		Pretext:   ":tracker: Checkout Team",
		Title:     "Fix the login flow",
		TitleLink: "https://example.com/story/show/42",
		Body:      "Users get logged out.",
	}

	got := attachment(notification)
	if got.Fallback != notification.Fallback ||
		got.Color != notification.Color ||
		got.Pretext != notification.Pretext ||
		got.Title != notification.Title ||
		got.TitleLink != notification.TitleLink ||
		got.Text != notification.Body {
		t.Fatalf("attachment = %+v, want fields copied from %+v", got, notification)
	}
}
