package models

// Callback payloads posted to the job's callback URL. The shared secret is
// forwarded unchanged on every payload.

type ProgressNotification struct {
	ProjectID string `json:"project_id"`
	Secret    string `json:"secret"`
	Progress  int    `json:"progress"`
}

type ErrorNotification struct {
	ProjectID string `json:"project_id"`
	Secret    string `json:"secret"`
	Error     string `json:"error"`
}

type ResultNotification struct {
	ProjectID  string    `json:"project_id"`
	Secret     string    `json:"secret"`
	Transcript string    `json:"transcript"`
	Segments   []Segment `json:"segments"`
	Clips      []Clip    `json:"clips"`
}
