package httptransport

type ActivityEntryDTO struct {
	EventID    string `json:"event_id"`
	EventType  string `json:"event_type"`
	Topic      string `json:"topic"`
	Source     string `json:"source,omitempty"`
	SubjectID  string `json:"subject_id,omitempty"`
	Route      string `json:"route"`
	Recognized bool   `json:"recognized"`
	OccurredAt string `json:"occurred_at"`
	RecordedAt string `json:"recorded_at"`
}

type ListActivityResponse struct {
	Items []ActivityEntryDTO `json:"items"`
}
