package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// EmbeddingRefresher is the piece of the embedding store the subscriber
// needs.
type EmbeddingRefresher interface {
	Upsert(ctx context.Context, playerID int) error
}

// Subscriber consumes profile-changed events and refreshes the affected
// player's embedding. A failed refresh is logged and dropped; the
// profile edit that triggered it already succeeded.
type Subscriber struct {
	rdb       *redis.Client
	refresher EmbeddingRefresher
	logger    zerolog.Logger
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewSubscriber(rdb *redis.Client, refresher EmbeddingRefresher, logger zerolog.Logger) *Subscriber {
	return &Subscriber{
		rdb:       rdb,
		refresher: refresher,
		logger:    logger.With().Str("component", "profile_events").Logger(),
		done:      make(chan struct{}),
	}
}

// Start begins consuming in a background goroutine.
func (s *Subscriber) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	pubsub := s.rdb.Subscribe(ctx, ProfileChangedChannel)

	go func() {
		defer close(s.done)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				s.handle(ctx, msg.Payload)
			}
		}
	}()
}

func (s *Subscriber) handle(ctx context.Context, payload string) {
	var event PlayerProfileChanged
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		s.logger.Warn().Err(err).Msg("malformed profile-changed event")
		return
	}

	if err := s.refresher.Upsert(ctx, event.PlayerID); err != nil {
		s.logger.Warn().Err(err).
			Int("player_id", event.PlayerID).
			Str("event_id", event.EventID).
			Msg("embedding refresh from event failed")
		return
	}
	s.logger.Debug().Int("player_id", event.PlayerID).Msg("embedding refreshed from event")
}

// Stop shuts the subscriber down and waits for the consume loop to
// exit.
func (s *Subscriber) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}
