// Package notify publishes job lifecycle events to Redis so downstream
// indexer/exporter collaborators can react without polling the Store. It is
// a pure side-channel: nothing in this module reads state back out of
// Redis, so the Store remains the sole source of truth for job and consumer
// state.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const (
	// ChannelJobDispatched fires when the producer hands a job to a consumer.
	ChannelJobDispatched = "litscan:job:dispatched"
	// ChannelJobFinished fires when a consumer transitions a job to success or error.
	ChannelJobFinished = "litscan:job:finished"
)

// Publisher publishes job lifecycle events. A nil *redis.Client is valid and
// turns every Publish call into a no-op — useful for tests and for CLI tools
// that have no Redis configured.
type Publisher struct {
	rdb *redis.Client
}

// New returns a Publisher backed by rdb. rdb may be nil.
func New(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

type jobEvent struct {
	JobID  string `json:"job_id"`
	Status string `json:"status,omitempty"`
}

// JobDispatched publishes ChannelJobDispatched for jobID. Failures are
// logged and swallowed — notification is best-effort, never load-bearing.
func (p *Publisher) JobDispatched(ctx context.Context, jobID string) {
	p.publish(ctx, ChannelJobDispatched, jobEvent{JobID: jobID})
}

// JobFinished publishes ChannelJobFinished for jobID with its terminal status.
func (p *Publisher) JobFinished(ctx context.Context, jobID, status string) {
	p.publish(ctx, ChannelJobFinished, jobEvent{JobID: jobID, Status: status})
}

func (p *Publisher) publish(ctx context.Context, channel string, event jobEvent) {
	if p == nil || p.rdb == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Warn("notify: marshal event failed", "channel", channel, "err", err)
		return
	}
	if err := p.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		slog.Warn("notify: publish failed", "channel", channel, "err", err)
	}
}
