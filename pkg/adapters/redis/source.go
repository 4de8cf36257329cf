package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/switchboard/internal/compiler"
	"github.com/aretw0/switchboard/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const (
	defaultKey     = "switchboard:toggles"
	defaultChannel = "switchboard:reload"
)

// Source implements ports.RecordSource and ports.Watchable using Redis.
// The batch is kept as a list of JSON documents, so input order survives.
type Source struct {
	client  *backend.Client
	key     string
	channel string
	parser  *compiler.Parser
}

type Option func(*Source)

// WithKey sets the list key holding the definitions.
func WithKey(key string) Option {
	return func(s *Source) {
		s.key = key
	}
}

// WithChannel sets the pub/sub channel used to announce changes.
func WithChannel(channel string) Option {
	return func(s *Source) {
		s.channel = channel
	}
}

// New creates a new Redis source with options.
func New(address, password string, db int, opts ...Option) *Source {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis source from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Source {
	source := &Source{
		client:  client,
		key:     defaultKey,
		channel: defaultChannel,
		parser:  compiler.NewParser(),
	}

	for _, opt := range opts {
		opt(source)
	}

	return source
}

// Records reads the whole list. A missing key is an empty batch.
func (s *Source) Records(ctx context.Context) ([]domain.Record, error) {
	vals, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read toggles from redis: %w", err)
	}

	records := make([]domain.Record, 0, len(vals))
	for i, val := range vals {
		var raw any
		if err := json.Unmarshal([]byte(val), &raw); err != nil {
			return nil, fmt.Errorf("failed to unmarshal toggle #%d: %w", i, err)
		}
		rec, err := s.parser.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("toggle #%d: %w", i, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// Publish replaces the stored batch atomically and announces the change.
func (s *Source) Publish(ctx context.Context, records []domain.Record) error {
	values := make([]any, 0, len(records))
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal toggle %s: %w", rec.Name, err)
		}
		values = append(values, data)
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key)
	if len(values) > 0 {
		pipe.RPush(ctx, s.key, values...)
	}
	pipe.Publish(ctx, s.channel, s.key)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish toggles to redis: %w", err)
	}

	return nil
}

// Watch implements ports.Watchable by subscribing to the change channel.
func (s *Source) Watch(ctx context.Context) (<-chan string, error) {
	sub := s.client.Subscribe(ctx, s.channel)

	// Wait for the subscription to be confirmed so no publish is missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", s.channel, err)
	}

	ch := make(chan string, 1)
	messages := sub.Channel()

	go func() {
		defer close(ch)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				select {
				case ch <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

// Close releases the underlying client.
func (s *Source) Close() error {
	return s.client.Close()
}
