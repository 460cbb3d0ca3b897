package cmd

import (
	"context"
	"testing"

	channelpkg "storybot/pkg/channel"
	"storybot/pkg/config"
)

type testAdapter struct{ name string }

func (a testAdapter) Name() string { return a.name }

func (a testAdapter) Run(_ context.Context, _ channelpkg.Handler) error { return nil }

func TestEnabledAdaptersRequiresAtLeastOneChannel(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	if _, err := enabledAdapters(cfg, nil); err == nil {
		t.Fatal("expected error when no channels are enabled")
	}
}

func TestEnabledAdaptersRejectsIncompleteSlackConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Channels.Slack.Enabled = true
	cfg.Channels.Slack.BotToken = "xoxb-1"

	if _, err := enabledAdapters(cfg, nil); err == nil {
		t.Fatal("expected error for slack config without app token")
	}
}

func TestEnabledChannelNames(t *testing.T) {
	t.Parallel()

	adapters := []channelpkg.Adapter{testAdapter{name: "slack"}, testAdapter{name: "telegram"}}
	if got := enabledChannelNames(adapters); got != "slack,telegram" {
		t.Fatalf("enabledChannelNames = %q, want %q", got, "slack,telegram")
	}
}
