// Package relay drives the story notification pipeline: it filters
// inbound chat messages, extracts story references, fetches story and
// project details, and hands formatted summaries back to the channel
// adapters for posting.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"storybot/pkg/bus"
	"storybot/pkg/channel"
	"storybot/pkg/config"
	"storybot/pkg/extract"
	"storybot/pkg/notify"
	"storybot/pkg/tracker"
)

const (
	defaultStatusHost = "0.0.0.0"
	defaultStatusPort = 18791
)

// trackerDomain gates the cheap substring pre-filter that runs before
// the extraction regex.
const trackerDomain = "pivotaltracker.com"

// actionableKind is the only story kind that triggers a notification;
// every other kind is skipped silently.
const actionableKind = "story"

// StoryFetcher is the read surface of the Tracker API the relay needs.
type StoryFetcher interface {
	FetchStory(ctx context.Context, id string) (tracker.Story, error)
	FetchProjectName(ctx context.Context, projectID string) (string, error)
}

// Service runs every configured channel adapter against the shared story
// pipeline and serves health/readiness endpoints.
type Service struct {
	cfg       *config.Config
	log       *slog.Logger
	stories   StoryFetcher
	formatter notify.Formatter
	channels  []channel.Adapter

	mu            sync.RWMutex
	startedAt     time.Time
	channelStates map[string]channelState
}

type channelState struct {
	Running bool   `json:"running"`
	Error   string `json:"error,omitempty"`
}

type statusResponse struct {
	Status        string                  `json:"status"`
	UptimeSeconds int64                   `json:"uptime_seconds"`
	Channels      map[string]channelState `json:"channels"`
}

// NewService wires the tracker client and formatter into a relay service
// for the given adapters.
func NewService(cfg *config.Config, stories StoryFetcher, adapters []channel.Adapter, log *slog.Logger) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if stories == nil {
		return nil, errors.New("tracker client is required")
	}
	if len(adapters) == 0 {
		return nil, errors.New("at least one channel adapter is required")
	}
	if log == nil {
		log = slog.Default()
	}

	channelStates := make(map[string]channelState, len(adapters))
	for _, adapter := range adapters {
		channelStates[adapter.Name()] = channelState{}
	}

	return &Service{
		cfg:           cfg,
		log:           log.With("component", "relay.service"),
		stories:       stories,
		formatter:     notify.NewFormatter(cfg.Tracker.MaxSummaryChars, cfg.Tracker.MaxSummaryLines),
		channels:      adapters,
		channelStates: channelStates,
	}, nil
}

// Run starts the status server and the channel adapters, then blocks
// until the context is canceled or a component fails. An adapter that
// fails to connect surfaces here as a fatal error.
func (s *Service) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	s.startedAt = time.Now().UTC()
	s.mu.Unlock()

	serverErrors := make(chan error, 1)
	go s.runStatusServer(ctx, serverErrors)

	errCh := make(chan error, len(s.channels))
	for _, adapter := range s.channels {
		adapter := adapter
		s.setChannelState(adapter.Name(), channelState{Running: true})

		go func() {
			err := adapter.Run(ctx, s.HandleInbound)
			s.setChannelState(adapter.Name(), channelState{Running: false, Error: errorString(err)})
			if err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("run %s channel: %w", adapter.Name(), err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-serverErrors:
		return err
	case err := <-errCh:
		return err
	}
}

// HandleInbound processes one chat message end to end and returns the
// notifications to post, one per distinct actionable story reference, in
// order of first appearance.
//
// A failed fetch aborts only its own reference: the failure is logged and
// the remaining references are still processed.
func (s *Service) HandleInbound(ctx context.Context, inbound bus.InboundMessage) ([]bus.Notification, error) {
	if !strings.Contains(inbound.Content, trackerDomain) {
		return nil, nil
	}

	ids := extract.StoryIDs(inbound.Content)
	if len(ids) == 0 {
		return nil, nil
	}
	s.log.Debug("Found story references", "channel", inbound.Channel, "chat_id", inbound.ChatID, "count", len(ids))

	notifications := make([]bus.Notification, 0, len(ids))
	for _, id := range ids {
		notification, ok := s.summarize(ctx, id)
		if !ok {
			continue
		}

		notification.ChatID = inbound.ChatID
		notifications = append(notifications, notification)
	}

	return notifications, nil
}

// summarize resolves one story reference into a notification. It reports
// false when the story is not actionable or a fetch failed.
func (s *Service) summarize(ctx context.Context, id string) (bus.Notification, bool) {
	story, err := s.stories.FetchStory(ctx, id)
	if err != nil {
		s.log.Warn("Failed to fetch story", "story_id", id, "error", err)
		return bus.Notification{}, false
	}

	if story.Kind != actionableKind {
		s.log.Debug("Skipping non-story item", "story_id", id, "kind", story.Kind)
		return bus.Notification{}, false
	}

	projectName, err := s.stories.FetchProjectName(ctx, strconv.FormatInt(story.ProjectID, 10))
	if err != nil {
		s.log.Warn("Failed to fetch project name", "story_id", id, "project_id", story.ProjectID, "error", err)
		return bus.Notification{}, false
	}

	return s.formatter.Story(story, projectName), true
}

func (s *Service) runStatusServer(ctx context.Context, errCh chan<- error) {
	host := strings.TrimSpace(s.cfg.Relay.Host)
	if host == "" {
		host = defaultStatusHost
	}

	port := s.cfg.Relay.Port
	if port <= 0 {
		port = defaultStatusPort
	}

	addr := host + ":" + strconv.Itoa(port)
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.log.Info("Relay status server started", "address", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errCh <- fmt.Errorf("start status server: %w", err)
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondStatus(w, http.StatusOK, "ok")
}

func (s *Service) handleReady(w http.ResponseWriter, _ *http.Request) {
	statusCode := http.StatusOK
	status := "ready"
	if !s.isReady() {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	s.respondStatus(w, statusCode, status)
}

func (s *Service) respondStatus(w http.ResponseWriter, statusCode int, status string) {
	payload := s.currentStatus(status)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("Failed to write status response", "error", err)
	}
}

func (s *Service) currentStatus(status string) statusResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uptime := int64(0)
	if !s.startedAt.IsZero() {
		uptime = int64(time.Since(s.startedAt).Seconds())
	}

	channels := make(map[string]channelState, len(s.channelStates))
	for name, state := range s.channelStates {
		channels[name] = state
	}

	return statusResponse{
		Status:        status,
		UptimeSeconds: uptime,
		Channels:      channels,
	}
}

func (s *Service) isReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, state := range s.channelStates {
		if state.Running {
			return true
		}
	}

	return false
}

func (s *Service) setChannelState(name string, state channelState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channelStates[name] = state
}

func errorString(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}
