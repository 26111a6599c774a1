// Package kafka wraps segmentio/kafka-go with CloudEvents-style envelopes.
package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CloudEvent is the JSON envelope written to every topic.
type CloudEvent struct {
	SpecVersion     string          `json:"specversion"`
	ID              string          `json:"id"`
	Source          string          `json:"source"`
	Type            string          `json:"type"`
	Time            time.Time       `json:"time"`
	DataContentType string          `json:"datacontenttype"`
	Data            json.RawMessage `json:"data"`
}

// NewCloudEvent marshals data into a new envelope.
func NewCloudEvent(source, eventType string, data interface{}) (CloudEvent, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return CloudEvent{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.NewString(),
		Source:          source,
		Type:            eventType,
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            raw,
	}, nil
}

// ParseCloudEvent decodes an envelope from a message value.
func ParseCloudEvent(value []byte) (CloudEvent, error) {
	var ce CloudEvent
	if err := json.Unmarshal(value, &ce); err != nil {
		return CloudEvent{}, fmt.Errorf("parse cloud event: %w", err)
	}
	return ce, nil
}

// ParseData decodes the event payload into v.
func (e CloudEvent) ParseData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}
