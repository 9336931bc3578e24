// Package notify pushes dashboard change notifications to connected clients
// over PubNub.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pubnub "github.com/pubnub/go/v7"

	"institute-events/config"
	"institute-events/utils"
)

const (
	TypeEventChanged = "event_changed"
	TypeTicketBooked = "ticket_booked"
	TypeTicketStatus = "ticket_status"
	TypeAttendance   = "attendance"
)

// Update is the message body published on the dashboard channel.
type Update struct {
	Type     string    `json:"type"`
	Action   string    `json:"action,omitempty"`
	RecordID string    `json:"record_id,omitempty"`
	EventID  string    `json:"event_id,omitempty"`
	Paths    []string  `json:"paths,omitempty"`
	At       time.Time `json:"at"`
}

type Notifier interface {
	Notify(ctx context.Context, u Update) error
}

// PublishFunc sends one message to a channel.
type PublishFunc func(channel string, message interface{}) error

type Publisher struct {
	channel string
	publish PublishFunc
	breaker *utils.CircuitBreaker
	now     func() time.Time
}

func NewPublisher(channel string, publish PublishFunc) *Publisher {
	return &Publisher{
		channel: channel,
		publish: publish,
		breaker: utils.NewCircuitBreaker("pubnub-"+channel, utils.DefaultBreakerSettings()),
		now:     time.Now,
	}
}

// NewFromConfig returns a PubNub-backed publisher, or Nop when no keys are
// configured.
func NewFromConfig(cfg *config.Config) Notifier {
	if !cfg.PubNubEnabled() {
		slog.Info("pubnub keys not set, dashboard notifications disabled")
		return Nop{}
	}

	pnConfig := pubnub.NewConfigWithUserId(pubnub.UserId(cfg.PubNubUserID))
	pnConfig.PublishKey = cfg.PubNubPublishKey
	pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
	pnConfig.SecretKey = cfg.PubNubSecretKey
	pn := pubnub.NewPubNub(pnConfig)

	return NewPublisher(cfg.PubNubChannel, func(channel string, message interface{}) error {
		_, status, err := pn.Publish().
			Channel(channel).
			Message(message).
			Execute()
		if err != nil {
			return fmt.Errorf("pubnub publish (status %d): %w", status.StatusCode, err)
		}
		return nil
	})
}

func (p *Publisher) Notify(ctx context.Context, u Update) error {
	if u.At.IsZero() {
		u.At = p.now().UTC()
	}
	err := p.breaker.Execute(ctx, func(context.Context) error {
		return p.publish(p.channel, u)
	})
	if err != nil {
		return fmt.Errorf("notify %s: %w", u.Type, err)
	}
	return nil
}

type Nop struct{}

func (Nop) Notify(context.Context, Update) error { return nil }
