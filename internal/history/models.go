package history

import "time"

// Run is one recorded pipeline execution.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Input      string    `json:"input"`
	Output     string    `json:"output"`
	Mode       string    `json:"mode"`
	State      string    `json:"state"`
	Kind       string    `json:"kind,omitempty"`
	Layers     int       `json:"layers"`
	Bytes      int       `json:"bytes"`
	ContentID  string    `json:"content_id,omitempty"`
	ErrorKind  string    `json:"error_kind,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Succeeded reports whether the run reached the persisted state without error.
func (r Run) Succeeded() bool {
	return r.ErrorKind == "" && r.Error == ""
}

// Duration returns the wall-clock time the run took.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
