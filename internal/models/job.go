package models

type JobStatus string

const (
	JobStatusQueued       JobStatus = "queued"
	JobStatusDownloading  JobStatus = "downloading"
	JobStatusTranscribing JobStatus = "transcribing"
	JobStatusAnalyzing    JobStatus = "analyzing"
	JobStatusExtracting   JobStatus = "extracting"
	JobStatusFinalizing   JobStatus = "finalizing"
	JobStatusDone         JobStatus = "done"
	JobStatusFailed       JobStatus = "failed"
)

// ClipJob is the immutable unit of work accepted by the intake endpoint. It is
// owned exclusively by the pipeline run processing it and is never persisted.
type ClipJob struct {
	VideoURL      string               `json:"video_url" validate:"required,url"`
	ProjectID     string               `json:"project_id" validate:"required"`
	CallbackURL   string               `json:"callback_url" validate:"required,url"`
	Secret        string               `json:"secret" validate:"required"`
	Storage       StorageConfig        `json:"storage" validate:"required"`
	Analysis      *AnalysisConfig      `json:"analysis,omitempty" validate:"omitempty"`
	Transcription *TranscriptionConfig `json:"transcription,omitempty" validate:"omitempty"`
}

type StorageConfig struct {
	Endpoint  string `json:"endpoint" validate:"required,url"`
	Region    string `json:"region" validate:"omitempty"`
	AccessKey string `json:"access_key" validate:"required"`
	SecretKey string `json:"secret_key" validate:"required"`
	Bucket    string `json:"bucket" validate:"required"`
}

type AnalysisConfig struct {
	Endpoint string `json:"endpoint" validate:"omitempty,url"`
	Secret   string `json:"secret" validate:"omitempty"`
}

type TranscriptionConfig struct {
	Language string `json:"language" validate:"omitempty,lte=8"`
	Model    string `json:"model" validate:"omitempty,oneof=tiny base small medium large"`
}

type JobAccepted struct {
	JobID     string    `json:"job_id"`
	ProjectID string    `json:"project_id"`
	Status    JobStatus `json:"status"`
}
