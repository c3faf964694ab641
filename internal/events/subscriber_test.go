package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

type recordingRefresher struct {
	mu      sync.Mutex
	ids     []int
	failAll bool
}

func (r *recordingRefresher) Upsert(_ context.Context, playerID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return errors.New("backend down")
	}
	r.ids = append(r.ids, playerID)
	return nil
}

func (r *recordingRefresher) seen() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.ids...)
}

type EventsSuite struct {
	suite.Suite
	redis      *miniredis.Miniredis
	client     *redis.Client
	refresher  *recordingRefresher
	subscriber *Subscriber
	publisher  *Publisher
}

func TestEventsSuite(t *testing.T) {
	suite.Run(t, new(EventsSuite))
}

func (s *EventsSuite) SetupTest() {
	s.redis = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.redis.Addr()})
	s.refresher = &recordingRefresher{}
	s.subscriber = NewSubscriber(s.client, s.refresher, zerolog.Nop())
	s.publisher = NewPublisher(s.client)
	s.subscriber.Start()
}

func (s *EventsSuite) TearDownTest() {
	s.subscriber.Stop()
	s.Require().NoError(s.client.Close())
}

func (s *EventsSuite) TestProfileChangeTriggersRefresh() {
	err := s.publisher.PublishProfileChanged(context.Background(), 42)
	s.Require().NoError(err)

	s.Eventually(func() bool {
		ids := s.refresher.seen()
		return len(ids) == 1 && ids[0] == 42
	}, 2*time.Second, 10*time.Millisecond)
}

func (s *EventsSuite) TestMultipleEventsAllHandled() {
	for _, id := range []int{1, 2, 3} {
		s.Require().NoError(s.publisher.PublishProfileChanged(context.Background(), id))
	}

	s.Eventually(func() bool {
		return len(s.refresher.seen()) == 3
	}, 2*time.Second, 10*time.Millisecond)
	s.ElementsMatch([]int{1, 2, 3}, s.refresher.seen())
}

func (s *EventsSuite) TestRefreshFailureDoesNotStopConsumer() {
	s.refresher.mu.Lock()
	s.refresher.failAll = true
	s.refresher.mu.Unlock()
	s.Require().NoError(s.publisher.PublishProfileChanged(context.Background(), 1))

	// Give the failing event time to be consumed, then recover.
	time.Sleep(50 * time.Millisecond)
	s.refresher.mu.Lock()
	s.refresher.failAll = false
	s.refresher.mu.Unlock()

	s.Require().NoError(s.publisher.PublishProfileChanged(context.Background(), 2))
	s.Eventually(func() bool {
		ids := s.refresher.seen()
		return len(ids) == 1 && ids[0] == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func (s *EventsSuite) TestMalformedPayloadIgnored() {
	s.Require().NoError(s.client.Publish(context.Background(), ProfileChangedChannel, "not json").Err())
	s.Require().NoError(s.publisher.PublishProfileChanged(context.Background(), 5))

	s.Eventually(func() bool {
		ids := s.refresher.seen()
		return len(ids) == 1 && ids[0] == 5
	}, 2*time.Second, 10*time.Millisecond)
}
