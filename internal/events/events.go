// Package events carries profile-change notifications over Redis
// pub/sub so embedding refreshes are decoupled from the edit flows that
// trigger them. Delivery is best-effort: a missed event only means a
// stale embedding until the next refresh.
package events

import "time"

// ProfileChangedChannel is the Redis channel profile editors publish to.
const ProfileChangedChannel = "players.profile.changed"

type PlayerProfileChanged struct {
	EventID    string    `json:"event_id"`
	PlayerID   int       `json:"player_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
