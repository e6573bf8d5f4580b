package domain

import "time"

// Interview status values. Feedback submission forces Completed; an update to
// Rescheduled triggers a re-notification. No transitions are defined out of
// Completed or Cancelled.
const (
	InterviewStatusScheduled   = "Scheduled"
	InterviewStatusCompleted   = "Completed"
	InterviewStatusCancelled   = "Cancelled"
	InterviewStatusRescheduled = "Rescheduled"
)

// Feedback is filled only through the feedback endpoint.
type Feedback struct {
	Rating      int    `json:"rating,omitempty"`
	Comments    string `json:"comments,omitempty"`
	Interviewer string `json:"interviewer,omitempty"`
}

type Interview struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	JobID            uint      `gorm:"not null" json:"jobId"`
	CandidateID      uint      `gorm:"not null" json:"candidateId"`
	ScheduledDate    time.Time `gorm:"not null" json:"scheduledDate"`
	Duration         int       `json:"duration"`
	Location         string    `gorm:"size:255" json:"location"`
	MeetingLink      string    `gorm:"size:512" json:"meetingLink,omitempty"`
	Status           string    `gorm:"size:32" json:"status"`
	Feedback         Feedback  `gorm:"serializer:json" json:"feedback"`
	NotificationSent bool      `json:"notificationSent"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (i *Interview) ApplyDefaults() {
	if i.Duration == 0 {
		i.Duration = 60
	}
	if i.Location == "" {
		i.Location = "Virtual"
	}
	if i.Status == "" {
		i.Status = InterviewStatusScheduled
	}
}

func (i *Interview) Validate() error {
	if i.CandidateID == 0 {
		return Validationf("candidate ID is required")
	}
	if i.JobID == 0 {
		return Validationf("job ID is required")
	}
	if i.ScheduledDate.IsZero() {
		return Validationf("scheduled date is required")
	}
	switch i.Status {
	case InterviewStatusScheduled, InterviewStatusCompleted,
		InterviewStatusCancelled, InterviewStatusRescheduled:
	default:
		return Validationf("invalid interview status %q", i.Status)
	}
	if i.Feedback.Rating != 0 && (i.Feedback.Rating < 1 || i.Feedback.Rating > 5) {
		return Validationf("feedback rating must be between 1 and 5")
	}
	return nil
}
