package notify

import (
	"context"
	"fmt"
	"log/slog"
)

// TourSnapshot is the slice of a tour request record the trigger reads.
type TourSnapshot struct {
	Status  string `json:"status"`
	BuyerID string `json:"buyerId"`
}

// ChangeEvent describes one before/after update of a tour request record.
type ChangeEvent struct {
	ID     string        `json:"id"`
	Before *TourSnapshot `json:"before"`
	After  *TourSnapshot `json:"after"`
}

// Payload is handed to the Messenger for device delivery.
type Payload struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

type TokenStore interface {
	// DeliveryToken returns the user's device token. An unknown user or a
	// user without a token yields "" with a nil error.
	DeliveryToken(ctx context.Context, userID string) (string, error)
}

type Messenger interface {
	Send(ctx context.Context, p Payload) error
}

// FailurePolicy decides what happens when token lookup or delivery fails.
type FailurePolicy string

const (
	// PolicyIgnore logs the failure and treats the event as handled.
	PolicyIgnore FailurePolicy = "ignore"
	// PolicyRequeue propagates the failure so the event source redelivers.
	PolicyRequeue FailurePolicy = "requeue"
)

type Notifier struct {
	Tokens    TokenStore
	Messenger Messenger
	Policy    FailurePolicy
	Log       *slog.Logger

	// OnResult, when set, observes the outcome of each actionable event
	// (delivered, no_token, failed).
	OnResult func(outcome string)
}

// HandleChange reacts to a tour record update. Only a status transition with
// a buyer attached is actionable; a missing user or token is a silent no-op.
// The triggering record itself is never touched.
func (n *Notifier) HandleChange(ctx context.Context, evt ChangeEvent) error {
	if evt.Before == nil || evt.After == nil {
		return nil
	}
	if evt.Before.Status == evt.After.Status {
		return nil
	}
	if evt.After.BuyerID == "" {
		return nil
	}

	token, err := n.Tokens.DeliveryToken(ctx, evt.After.BuyerID)
	if err != nil {
		return n.deliveryFailed(evt, fmt.Errorf("token lookup for %s: %w", evt.After.BuyerID, err))
	}
	if token == "" {
		n.result("no_token")
		return nil
	}

	p := Payload{
		Token: token,
		Title: "Tour Update",
		Body:  fmt.Sprintf("Your tour request was %s", evt.After.Status),
		Data: map[string]string{
			"tourId": evt.ID,
			"status": evt.After.Status,
		},
	}
	if err := n.Messenger.Send(ctx, p); err != nil {
		return n.deliveryFailed(evt, fmt.Errorf("send to device: %w", err))
	}
	n.result("delivered")
	return nil
}

func (n *Notifier) deliveryFailed(evt ChangeEvent, err error) error {
	n.result("failed")
	if n.Policy == PolicyRequeue {
		return err
	}
	n.log().Warn("notification delivery failed", "tour_id", evt.ID, "error", err)
	return nil
}

func (n *Notifier) result(outcome string) {
	if n.OnResult != nil {
		n.OnResult(outcome)
	}
}

func (n *Notifier) log() *slog.Logger {
	if n.Log != nil {
		return n.Log
	}
	return slog.Default()
}
