package domain

import (
	"strings"
	"time"
)

// Job type and status values accepted by the API.
const (
	JobTypeFullTime   = "Full-time"
	JobTypePartTime   = "Part-time"
	JobTypeContract   = "Contract"
	JobTypeInternship = "Internship"

	JobStatusOpen   = "Open"
	JobStatusClosed = "Closed"
	JobStatusOnHold = "On Hold"
)

// ParsedJob is the structured result of the AI parse-job operation. Raw keeps
// the full response so nothing the service returned is lost.
type ParsedJob struct {
	Title            string                 `json:"title,omitempty"`
	Requirements     []string               `json:"requirements,omitempty"`
	Responsibilities []string               `json:"responsibilities,omitempty"`
	Skills           []string               `json:"skills,omitempty"`
	Experience       string                 `json:"experience,omitempty"`
	Raw              map[string]interface{} `json:"raw,omitempty"`
}

type Job struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Title            string    `gorm:"size:255;not null" json:"title"`
	Description      string    `gorm:"type:text" json:"description"`
	Requirements     []string  `gorm:"serializer:json" json:"requirements"`
	Responsibilities []string  `gorm:"serializer:json" json:"responsibilities"`
	Skills           []string  `gorm:"serializer:json" json:"skills"`
	ParsedData       ParsedJob `gorm:"serializer:json" json:"parsedData"`
	Summary          string    `gorm:"type:text" json:"summary"`
	Location         string    `gorm:"size:255" json:"location"`
	Company          string    `gorm:"size:255;not null" json:"company"`
	JobType          string    `gorm:"size:32" json:"jobType"`
	Salary           string    `gorm:"size:255" json:"salary"`
	Status           string    `gorm:"size:32" json:"status"`
	FilePath         string    `gorm:"size:512" json:"filePath,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ApplyDefaults fills the enum and free-text defaults the schema carries so a
// minimal create request still produces a complete record.
func (j *Job) ApplyDefaults() {
	if j.Location == "" {
		j.Location = "Remote"
	}
	if j.JobType == "" {
		j.JobType = JobTypeFullTime
	}
	if j.Salary == "" {
		j.Salary = "Competitive"
	}
	if j.Status == "" {
		j.Status = JobStatusOpen
	}
}

func (j *Job) Validate() error {
	j.Title = strings.TrimSpace(j.Title)
	j.Company = strings.TrimSpace(j.Company)
	if j.Title == "" {
		return Validationf("job title is required")
	}
	if j.Company == "" {
		return Validationf("company name is required")
	}
	switch j.JobType {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
	default:
		return Validationf("invalid job type %q", j.JobType)
	}
	switch j.Status {
	case JobStatusOpen, JobStatusClosed, JobStatusOnHold:
	default:
		return Validationf("invalid job status %q", j.Status)
	}
	return nil
}
