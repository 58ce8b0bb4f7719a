package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	portssvc "github.com/velopay/wallet_app/internal/core/ports/services"
	"github.com/velopay/wallet_app/internal/dto"
)

// EventTransferCompleted is the event name carried in every published message.
const EventTransferCompleted = "transfer.completed"

// envelope is the published message shape.
type envelope struct {
	Event string                     `json:"event"`
	Data  dto.TransferCompletedEvent `json:"data"`
}

// RedisNotifier publishes transfer.completed events to per-account Redis
// channels ("<prefix>.<accountID>"), one message to the sender's channel and
// one to the receiver's. Real-time delivery to clients is the subscriber's
// concern; this adapter only raises the event.
type RedisNotifier struct {
	client        *redis.Client
	channelPrefix string
}

// NewRedisNotifier constructs a Redis-backed notifier. channelPrefix is
// typically "users".
func NewRedisNotifier(client *redis.Client, channelPrefix string) *RedisNotifier {
	return &RedisNotifier{client: client, channelPrefix: channelPrefix}
}

var _ portssvc.TransferNotifier = (*RedisNotifier)(nil)

// TransferCompleted publishes the event to both parties' channels.
func (n *RedisNotifier) TransferCompleted(ctx context.Context, event dto.TransferCompletedEvent) error {
	payload, err := json.Marshal(envelope{Event: EventTransferCompleted, Data: event})
	if err != nil {
		return fmt.Errorf("encode transfer event: %w", err)
	}

	for _, accountID := range []int64{event.SenderID, event.ReceiverID} {
		channel := fmt.Sprintf("%s.%d", n.channelPrefix, accountID)
		if err := n.client.Publish(ctx, channel, payload).Err(); err != nil {
			return fmt.Errorf("publish transfer event to %s: %w", channel, err)
		}
	}
	return nil
}
