// Package notifier delivers dispatch events to seller and courier panels.
//
// Every implementation satisfies ports.Notifier. Events are encoded as JSON
// with snake_case keys; consumers key on order_id.
package notifier

import (
	"encoding/json"
	"time"

	"fooddispatch/internal/core/ports"
)

type dispatchMessage struct {
	OrderID    string    `json:"order_id"`
	SellerID   string    `json:"seller_id"`
	CourierID  *string   `json:"courier_id,omitempty"`
	Outcome    string    `json:"outcome"`
	Candidates int       `json:"candidates"`
	Score      float64   `json:"score,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func encode(event ports.DispatchEvent) ([]byte, error) {
	msg := dispatchMessage{
		OrderID:    event.OrderID.String(),
		SellerID:   event.SellerID.String(),
		Outcome:    string(event.Outcome),
		Candidates: event.Candidates,
		Score:      event.Score,
		Reason:     event.Reason,
		OccurredAt: event.OccurredAt.UTC(),
	}
	if event.CourierID != nil {
		id := event.CourierID.String()
		msg.CourierID = &id
	}
	return json.Marshal(msg)
}
