// Package natsevents publishes work order lifecycle events to NATS. Billing
// and notification consumers subscribe to the aker.events.work_order.>
// subject hierarchy.
package natsevents

import (
	"context"
	"encoding/json"
	"fmt"

	"workplans/internal/core/domain/model/workorder"

	"github.com/nats-io/nats.go"
)

const subjectPrefix = "aker.events.work_order"

// eventMessage is the wire representation of one lifecycle event.
type eventMessage struct {
	WorkOrderID string `json:"work_order_id"`
	PlanID      string `json:"work_plan_id"`
	Status      string `json:"status"`
}

// Publisher implements the EventPublisher port over a NATS connection.
// Events are published to aker.events.work_order.<status> so consumers can
// subscribe to individual lifecycle transitions.
type Publisher struct {
	conn *nats.Conn
}

// NewPublisher creates a publisher over an established NATS connection.
// The caller owns the connection lifecycle.
func NewPublisher(conn *nats.Conn) *Publisher {
	return &Publisher{conn: conn}
}

// Publish emits one lifecycle event. Publishing failures do not undo the
// state change that produced the event; callers decide how to surface them.
func (p *Publisher) Publish(_ context.Context, event workorder.Event) error {
	payload, err := json.Marshal(eventMessage{
		WorkOrderID: event.WorkOrderID.String(),
		PlanID:      event.PlanID.String(),
		Status:      event.Status,
	})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("%s.%s", subjectPrefix, event.Status)
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	return nil
}
