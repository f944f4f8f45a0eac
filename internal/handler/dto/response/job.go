package response

import (
	"time"

	"gin-jobqueue/internal/domain/job"

	"github.com/google/uuid"
)

// AcceptedResponse is returned by every producer endpoint with 202.
type AcceptedResponse struct {
	Message string    `json:"message"`
	JobID   uuid.UUID `json:"jobId"`
}

func Accepted(msg string, j *job.Job) AcceptedResponse {
	return AcceptedResponse{Message: msg, JobID: j.ID()}
}

type JobResponse struct {
	ID           uuid.UUID  `json:"id"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	Priority     int        `json:"priority"`
	Attempts     int        `json:"attempts"`
	MaxAttempts  int        `json:"maxAttempts"`
	Error        *string    `json:"error,omitempty"`
	ScheduledFor time.Time  `json:"scheduledFor"`
	ProcessedAt  *time.Time `json:"processedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Payloads may carry password hashes and are never echoed.
func FromJob(j *job.Job) JobResponse {
	return JobResponse{
		ID:           j.ID(),
		Type:         j.Type().String(),
		Status:       j.Status().String(),
		Priority:     j.Priority(),
		Attempts:     j.Attempts(),
		MaxAttempts:  j.MaxAttempts(),
		Error:        j.Error(),
		ScheduledFor: j.ScheduledFor(),
		ProcessedAt:  j.ProcessedAt(),
		CreatedAt:    j.CreatedAt(),
		UpdatedAt:    j.UpdatedAt(),
	}
}
