package dto

// ArchiveResponse points at an uploaded report
type ArchiveResponse struct {
	Location string `json:"location"`
}

// HealthResponse reports service liveness
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Pool     any    `json:"pool,omitempty"`
}
