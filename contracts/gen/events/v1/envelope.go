package v1

import (
	"encoding/json"
	"time"
)

const (
	SpecVersion     = "1.0"
	ContentTypeJSON = "application/json"
)

// Envelope is the canonical event envelope exchanged on the bus.
// EventType is always set by the publisher; consumers route on it and must
// never see a transport-assigned default.
type Envelope struct {
	EventID         string          `json:"id"`
	EventType       string          `json:"type"`
	Topic           string          `json:"topic"`
	SourceService   string          `json:"source"`
	SpecVersion     string          `json:"specversion"`
	OccurredAt      time.Time       `json:"time"`
	PartitionKey    string          `json:"partitionkey,omitempty"`
	DataContentType string          `json:"datacontenttype"`
	Data            json.RawMessage `json:"data"`
}
