package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

// PublishProfileChanged announces that a player's profile was created
// or edited. Callers treat failures as non-fatal.
func (p *Publisher) PublishProfileChanged(ctx context.Context, playerID int) error {
	event := PlayerProfileChanged{
		EventID:    uuid.NewString(),
		PlayerID:   playerID,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling profile-changed event: %w", err)
	}
	if err := p.rdb.Publish(ctx, ProfileChangedChannel, payload).Err(); err != nil {
		return fmt.Errorf("publishing profile-changed event: %w", err)
	}
	return nil
}
