package notify

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChannelNaming(t *testing.T) {
	assert.Equal(t, "sipinjam:events:activity.logged", channel(TopicActivityLogged))
	assert.Equal(t, "sipinjam:events:identity.created", channel(TopicIdentityCreated))
}

// Round trip over a real Redis. Set TEST_REDIS_ADDR to run it.
func TestPublishSubscribeActivity(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, rdb.Ping(ctx).Err())

	n := New(rdb, zap.NewNop().Sugar())
	events := n.Subscribe(ctx, TopicActivityLogged)
	time.Sleep(100 * time.Millisecond) // let the subscription attach

	n.Publish(ctx, TopicActivityLogged, "req-1", map[string]string{"action": "approve"})

	select {
	case ev := <-events:
		assert.Equal(t, TopicActivityLogged, ev.Topic)
		assert.Equal(t, "req-1", ev.EntityID)
		assert.Equal(t, "approve", ev.Fields["action"])
	case <-ctx.Done():
		t.Fatal("no event before timeout")
	}
}
