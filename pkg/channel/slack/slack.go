// Package slack bridges Slack Socket Mode message events into the relay.
package slack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"storybot/pkg/bus"
	"storybot/pkg/channel"
	"storybot/pkg/config"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

const channelName = "slack"
const messagePreviewLimit = 240

// Adapter bridges Slack Events API messages into relay inbound messages
// and posts story notifications back as attachments.
type Adapter struct {
	cfg config.SlackConfig
	log *slog.Logger
}

// NewAdapter validates Slack configuration and constructs an adapter
// instance. Socket Mode needs both a bot token and an app-level token.
func NewAdapter(cfg config.SlackConfig, log *slog.Logger) (*Adapter, error) {
	if strings.TrimSpace(cfg.BotToken) == "" {
		return nil, errors.New("channels.slack.bot_token is required")
	}

	appToken := strings.TrimSpace(cfg.AppToken)
	if appToken == "" {
		return nil, errors.New("channels.slack.app_token is required")
	}
	if !strings.HasPrefix(appToken, "xapp-") {
		return nil, errors.New("channels.slack.app_token must start with xapp-")
	}

	if log == nil {
		log = slog.Default()
	}

	return &Adapter{
		cfg: cfg,
		log: log.With("component", "channel.slack"),
	}, nil
}

// Name returns the channel identifier used in bus metadata and logs.
func (a *Adapter) Name() string {
	return channelName
}

// Run connects to Slack over Socket Mode and forwards plain user messages
// through the shared channel handler. It blocks until the context is
// canceled or the connection fails.
func (a *Adapter) Run(ctx context.Context, handler channel.Handler) error {
	if handler == nil {
		return errors.New("handler is required")
	}

	client := slack.New(
		strings.TrimSpace(a.cfg.BotToken),
		slack.OptionDebug(a.cfg.Debug),
		slack.OptionAppLevelToken(strings.TrimSpace(a.cfg.AppToken)),
	)

	identity, err := client.AuthTestContext(ctx)
	if err != nil {
		return fmt.Errorf("authenticate slack bot: %w", err)
	}

	socketClient := socketmode.New(client)

	go a.consumeEvents(ctx, client, socketClient, identity.UserID, handler)

	a.log.Info("Slack channel started", "bot_user_id", identity.UserID)

	if err := socketClient.RunContext(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run slack socket mode: %w", err)
	}

	return nil
}

func (a *Adapter) consumeEvents(ctx context.Context, client *slack.Client, socketClient *socketmode.Client, botUserID string, handler channel.Handler) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-socketClient.Events:
			if !ok {
				return
			}

			switch evt.Type {
			case socketmode.EventTypeConnecting:
				a.log.Debug("Connecting to Slack")
			case socketmode.EventTypeConnected:
				a.log.Info("Connected to Slack")
			case socketmode.EventTypeConnectionError:
				a.log.Warn("Slack connection error", "data", fmt.Sprint(evt.Data))
			case socketmode.EventTypeEventsAPI:
				apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
				if !ok {
					continue
				}
				if evt.Request != nil {
					socketClient.Ack(*evt.Request)
				}
				a.handleEventsAPI(ctx, client, apiEvent, botUserID, handler)
			}
		}
	}
}

func (a *Adapter) handleEventsAPI(ctx context.Context, client *slack.Client, event slackevents.EventsAPIEvent, botUserID string, handler channel.Handler) {
	if event.Type != slackevents.CallbackEvent {
		return
	}

	message, ok := event.InnerEvent.Data.(*slackevents.MessageEvent)
	if !ok || !relayable(message, botUserID) {
		return
	}

	inbound := bus.InboundMessage{
		Channel:  channelName,
		SenderID: message.User,
		ChatID:   message.Channel,
		Content:  message.Text,
		Metadata: map[string]string{
			"ts": message.TimeStamp,
		},
	}
	a.log.Debug("Received message", "chat_id", inbound.ChatID, "sender_id", inbound.SenderID, "content", previewText(inbound.Content))

	notifications, err := handler(ctx, inbound)
	if err != nil {
		a.log.Error("Failed to process inbound message", "chat_id", inbound.ChatID, "error", err)
	}

	for _, notification := range notifications {
		a.post(ctx, client, inbound.ChatID, notification)
	}
}

// post sends one story summary as the bot's own identity with empty
// primary text; all content lives in the attachment.
func (a *Adapter) post(ctx context.Context, client *slack.Client, chatID string, notification bus.Notification) {
	_, _, err := client.PostMessageContext(ctx, chatID,
		slack.MsgOptionAsUser(true),
		slack.MsgOptionText("", false),
		slack.MsgOptionAttachments(attachment(notification)),
	)
	if err != nil {
		a.log.Error("Failed to post notification", "chat_id", chatID, "title", notification.Title, "error", err)
		return
	}

	a.log.Info("Posted story summary", "chat_id", chatID, "title", notification.Title)
}

// relayable keeps only plain user text messages: no subtypes (edits,
// joins, bot posts carry one), no bot senders, no echoes of our own
// messages.
func relayable(message *slackevents.MessageEvent, botUserID string) bool {
	if message == nil {
		return false
	}
	if message.SubType != "" {
		return false
	}
	if message.BotID != "" {
		return false
	}
	if botUserID != "" && message.User == botUserID {
		return false
	}

	return strings.TrimSpace(message.Text) != ""
}

func attachment(notification bus.Notification) slack.Attachment {
	return slack.Attachment{
		Fallback:  notification.Fallback,
		Color:     notification.Color,
		Pretext:   notification.Pretext,
		Title:     notification.Title,
		TitleLink: notification.TitleLink,
		Text:      notification.Body,
	}
}

// previewText returns a bounded log-safe preview of message text.
func previewText(text string) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= messagePreviewLimit {
		return trimmed
	}

	return trimmed[:messagePreviewLimit] + "..."
}
