package store

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

const (
	profileChannel = "changes:profiles"
	reportChannel  = "changes:reports"
)

// Feed carries realtime change events between store clients over redis
// pub/sub. Publishing is fire-and-forget: a dead redis silently drops
// events, it never blocks a write.
type Feed struct {
	client *redis.Client
}

// NewFeed creates a redis-backed change feed.
func NewFeed(addr, password string, db int) *Feed {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Feed{client: redis.NewClient(opts)}
}

// Publish marshals payload and publishes it on channel, ignoring redis errors.
func (f *Feed) Publish(ctx context.Context, channel string, payload interface{}) {
	if f == nil || f.client == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = f.client.Publish(ctx, channel, data).Err()
}

// Subscribe delivers raw messages from channel to fn until ctx is done.
func (f *Feed) Subscribe(ctx context.Context, channel string, fn func([]byte)) error {
	if f == nil || f.client == nil {
		return nil
	}
	sub := f.client.Subscribe(ctx, channel)
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				fn([]byte(msg.Payload))
			}
		}
	}()
	return nil
}

// Close releases the underlying redis connection.
func (f *Feed) Close() error {
	if f == nil || f.client == nil {
		return nil
	}
	return f.client.Close()
}

func decodeProfileEvent(data []byte) (ProfileEvent, bool) {
	var ev ProfileEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		log.Printf("realtime: drop malformed profile event: %v", err)
		return ProfileEvent{}, false
	}
	return ev, true
}

func decodeReportEvent(data []byte) (ReportEvent, bool) {
	var ev ReportEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		log.Printf("realtime: drop malformed report event: %v", err)
		return ReportEvent{}, false
	}
	return ev, true
}
