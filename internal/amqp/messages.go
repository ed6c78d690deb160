package amqp

import (
	"encoding/json"
	"time"

	"findash/internal/core"
)

// TransactionEventMessage announces a recorded transaction. It carries only
// the id and kind; consumers fetch anything else they need from the store.
type TransactionEventMessage struct {
	ID        string    `json:"id"`
	Kind      core.Kind `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionEventMessage(id string, kind core.Kind) *TransactionEventMessage {
	return &TransactionEventMessage{
		ID:        id,
		Kind:      kind,
		Timestamp: time.Now(),
	}
}

func (m *TransactionEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionEventMessageFromJSON(data []byte) (*TransactionEventMessage, error) {
	var msg TransactionEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// AlertMessage carries one derived notification to downstream consumers
// (push gateways, chat bridges). Alerts are ephemeral, re-deriving them is
// always safe.
type AlertMessage struct {
	Kind      core.NotificationKind `json:"kind"`
	Message   string                `json:"message"`
	Timestamp time.Time             `json:"timestamp"`
}

func NewAlertMessage(n core.Notification) *AlertMessage {
	return &AlertMessage{
		Kind:      n.Kind,
		Message:   n.Message,
		Timestamp: n.Date,
	}
}

func (m *AlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func AlertMessageFromJSON(data []byte) (*AlertMessage, error) {
	var msg AlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
