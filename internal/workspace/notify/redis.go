package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hypolab/workspace/pkg/idx"
	"github.com/hypolab/workspace/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

// DefaultQueueKey is the Redis list the mail worker pops from.
const DefaultQueueKey = "workspace:emails"

// JobTypeInvitation tags invitation notices in the job envelope.
const JobTypeInvitation = "invitation_email"

// Job is the envelope pushed onto the queue. Payload holds the
// type-specific body.
type Job struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Attempt   int             `json:"attempt"`
	CreatedAt time.Time       `json:"created_at"`
}

// RedisQueue enqueues notices as jobs on a Redis list with RPUSH.
type RedisQueue struct {
	client *redis.Client
	key    string
	now    func() time.Time
}

// NewRedisQueue returns a queue pushing onto key, or DefaultQueueKey when
// key is empty.
func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = DefaultQueueKey
	}
	return &RedisQueue{client: client, key: key, now: time.Now}
}

// Dial connects to the Redis server at url (redis://...) and verifies it
// answers.
func Dial(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (q *RedisQueue) Key() string { return q.key }

func (q *RedisQueue) NotifyInvitation(ctx context.Context, n InvitationNotice) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	job := Job{
		ID:        idx.New().String(),
		Type:      JobTypeInvitation,
		Payload:   body,
		CreatedAt: q.now().UTC(),
	}
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.client.RPush(ctx, q.key, raw).Err(); err != nil {
		return fmt.Errorf("rpush: %w", err)
	}

	slogx.FromContext(ctx).Debug("enqueued invitation notice",
		slog.String("job_id", job.ID),
		slog.String("invitation_id", n.InvitationID),
		slog.Bool("resend", n.Resend),
	)
	return nil
}
