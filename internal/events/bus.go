package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
)

const TopicBookingCreated = "booking.created"

// BookingCreated is published after a seat claim commits. Publishing is
// best-effort: a committed booking is never unwound because of it.
type BookingCreated struct {
	BookingID  string    `json:"booking_id"`
	UserName   string    `json:"user_name"`
	BusID      string    `json:"bus_id"`
	ScheduleID string    `json:"schedule_id"`
	SeatNumber int       `json:"seat_number"`
	CreatedAt  time.Time `json:"created_at"`
}

type Publisher interface {
	PublishBookingCreated(ctx context.Context, event BookingCreated) error
}

// Bus is an in-process pub/sub over watermill's gochannel transport.
type Bus struct {
	pubSub *gochannel.GoChannel
	log    *zap.Logger
}

func NewBus(log *zap.Logger) *Bus {
	return &Bus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{}, newZapLoggerAdapter(log)),
		log:    log.With(zap.String("component", "events")),
	}
}

func (b *Bus) PublishBookingCreated(ctx context.Context, event BookingCreated) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", TopicBookingCreated, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := b.pubSub.Publish(TopicBookingCreated, msg); err != nil {
		return fmt.Errorf("publish %s event: %w", TopicBookingCreated, err)
	}

	return nil
}

// RunAuditLog subscribes to booking events and writes one audit line per
// committed booking. Runs until ctx is cancelled or the bus is closed.
func (b *Bus) RunAuditLog(ctx context.Context) error {
	messages, err := b.pubSub.Subscribe(ctx, TopicBookingCreated)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", TopicBookingCreated, err)
	}

	go func() {
		for msg := range messages {
			var event BookingCreated
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				b.log.Error("Failed to decode booking event", zap.Error(err))
				msg.Ack()
				continue
			}

			b.log.Info("Booking recorded",
				zap.String("booking_id", event.BookingID),
				zap.String("user_name", event.UserName),
				zap.String("schedule_id", event.ScheduleID),
				zap.Int("seat_number", event.SeatNumber),
			)
			msg.Ack()
		}
	}()

	return nil
}

func (b *Bus) Close() error {
	return b.pubSub.Close()
}
