package events

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical event shape exchanged with the chat-platform
// gateway. Keep it backward compatible; consumers tolerate unknown payload
// fields.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	SourceService string          `json:"source_service"`
	OccurredAt    time.Time       `json:"occurred_at"`
	TraceID       string          `json:"trace_id"`
	SchemaVersion int             `json:"schema_version"`
	PartitionKey  string          `json:"partition_key"`
	Payload       json.RawMessage `json:"payload"`
}
