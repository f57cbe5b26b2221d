package eventmodel

// Task is an opaque kind-tagged record driving HIL and routing queues (§3).
type Task struct {
	TaskID   string         `json:"task_id"`
	Type     TaskType       `json:"type"`
	Status   TaskStatus     `json:"status"`
	ClientID string         `json:"client_id,omitempty"`
	EventID  string         `json:"event_id,omitempty"`
	Payload  map[string]any `json:"payload,omitempty"`
	Notes    string         `json:"notes,omitempty"`
}
