package entities

import "time"

// ActivityEntry is the record kept for one consumed event. Recognized is false
// for entries written by a fallback route.
type ActivityEntry struct {
	EventID    string
	EventType  string
	Topic      string
	Source     string
	SubjectID  string
	Route      string
	Recognized bool
	OccurredAt time.Time
	RecordedAt time.Time
}
