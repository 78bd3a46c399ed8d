package queue

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const IngestedQueueKey = "newspulse:queue:ingested"

// Publisher announces ids of newly stored news rows.
type Publisher interface {
	Publish(ctx context.Context, ids []int64) error
}

type RedisQueue struct {
	client *redis.Client
	key    string
}

func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = IngestedQueueKey
	}
	return &RedisQueue{client: client, key: key}
}

func (q *RedisQueue) Publish(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	values := make([]interface{}, len(ids))
	for i, id := range ids {
		values[i] = strconv.FormatInt(id, 10)
	}

	if err := q.client.LPush(ctx, q.key, values...).Err(); err != nil {
		return fmt.Errorf("pushing to %s: %w", q.key, err)
	}
	return nil
}

// Pop blocks up to timeout for the oldest queued id.
func (q *RedisQueue) Pop(ctx context.Context, timeout time.Duration) (int64, error) {
	result, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(result[1], 10, 64)
}

func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}

// Nop discards every id. It stands in when no Redis is configured.
type Nop struct{}

func (Nop) Publish(context.Context, []int64) error { return nil }
