package fulfillment

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spacekitchen/burgerhub/internal/queue/redisclient"
)

const cookQueueKey = "burgerhub:cook_queue"

var ErrQueueEmpty = errors.New("cook queue empty")

// CookQueue hands freshly placed order numbers from the API process to the
// fulfillment workers over a redis list.
type CookQueue struct {
	client *redisclient.Client
}

func NewCookQueue(client *redisclient.Client) *CookQueue {
	return &CookQueue{client: client}
}

func (q *CookQueue) Enqueue(ctx context.Context, number int64) error {
	return q.client.Raw().LPush(ctx, cookQueueKey, strconv.FormatInt(number, 10)).Err()
}

// Pop blocks up to timeout for the next order number.
func (q *CookQueue) Pop(ctx context.Context, timeout time.Duration) (int64, error) {
	res, err := q.client.Raw().BRPop(ctx, timeout, cookQueueKey).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrQueueEmpty
		}

		return 0, err
	}

	// BRPop returns [key, value]
	if len(res) != 2 {
		return 0, ErrQueueEmpty
	}

	return strconv.ParseInt(res[1], 10, 64)
}
