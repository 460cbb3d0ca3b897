package channel

import (
	"context"

	"storybot/pkg/bus"
)

// Handler processes one inbound chat message and returns the story
// notifications to post back into the originating conversation, in order.
// A message without story references yields an empty slice.
type Handler func(context.Context, bus.InboundMessage) ([]bus.Notification, error)

// Adapter bridges one external transport (for example Slack) into the
// relay.
type Adapter interface {
	Name() string
	Run(context.Context, Handler) error
}
