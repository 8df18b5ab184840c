// Package notify fans mutations out over Redis pub/sub so read-side
// consumers (dashboards, reports) can refresh on change instead of
// polling, and so the identity-created handler can build profiles.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Topics. One channel per entity family plus the identity lifecycle event.
const (
	TopicIdentityCreated = "identity.created"
	TopicAssetChanged    = "asset.changed"
	TopicRequestChanged  = "request.changed"
	TopicActivityLogged  = "activity.logged"
)

func channel(topic string) string { return "sipinjam:events:" + topic }

// Event is the payload published on every channel.
type Event struct {
	Topic    string            `json:"topic"`
	EntityID string            `json:"entityId"`
	At       time.Time         `json:"at"`
	Fields   map[string]string `json:"fields,omitempty"`
}

type Notifier struct {
	rdb *redis.Client
	lg  *zap.SugaredLogger
}

func New(rdb *redis.Client, lg *zap.SugaredLogger) *Notifier {
	return &Notifier{rdb: rdb, lg: lg}
}

// Publish is fire-and-forget: a dropped notification only delays a
// dashboard refresh, so failures are logged, not propagated.
func (n *Notifier) Publish(ctx context.Context, topic, entityID string, fields map[string]string) {
	ev := Event{Topic: topic, EntityID: entityID, At: time.Now().UTC(), Fields: fields}
	b, err := json.Marshal(ev)
	if err != nil {
		n.lg.Warnw("marshal event", "topic", topic, "error", err)
		return
	}
	if err := n.rdb.Publish(ctx, channel(topic), b).Err(); err != nil {
		n.lg.Warnw("publish event", "topic", topic, "error", err)
	}
}

// Subscribe delivers decoded events for one topic until ctx is done.
func (n *Notifier) Subscribe(ctx context.Context, topic string) <-chan Event {
	out := make(chan Event)
	sub := n.rdb.Subscribe(ctx, channel(topic))
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					n.lg.Warnw("decode event", "topic", topic, "error", err)
					continue
				}
				out <- ev
			}
		}
	}()
	return out
}
