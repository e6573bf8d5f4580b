package domain

import (
	"regexp"
	"strings"
	"time"
)

// Candidate status values.
const (
	CandidateStatusNew         = "New"
	CandidateStatusReviewed    = "Reviewed"
	CandidateStatusShortlisted = "Shortlisted"
	CandidateStatusRejected    = "Rejected"
	CandidateStatusHired       = "Hired"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ParsedResume is the structured result of the AI parse-resume operation.
type ParsedResume struct {
	Name       string                   `json:"name,omitempty"`
	Email      string                   `json:"email,omitempty"`
	Phone      string                   `json:"phone,omitempty"`
	Skills     []string                 `json:"skills,omitempty"`
	Experience []map[string]interface{} `json:"experience,omitempty"`
	Education  []map[string]interface{} `json:"education,omitempty"`
	Raw        map[string]interface{}   `json:"raw,omitempty"`
}

// Match links a candidate to a job with the AI match score and detected gaps.
// A candidate holds at most one Match per job; re-matching replaces it.
type Match struct {
	JobID     uint      `json:"jobId"`
	Score     float64   `json:"score"`
	Gaps      []string  `json:"gaps"`
	MatchDate time.Time `json:"matchDate"`
}

type Candidate struct {
	ID         uint                     `gorm:"primaryKey" json:"id"`
	Name       string                   `gorm:"size:255;not null" json:"name"`
	Email      string                   `gorm:"size:255;not null" json:"email"`
	Phone      string                   `gorm:"size:64" json:"phone"`
	Skills     []string                 `gorm:"serializer:json" json:"skills"`
	Experience []map[string]interface{} `gorm:"serializer:json" json:"experience"`
	Education  []map[string]interface{} `gorm:"serializer:json" json:"education"`
	ParsedData ParsedResume             `gorm:"serializer:json" json:"parsedData"`
	Summary    string                   `gorm:"type:text" json:"summary"`
	ResumePath string                   `gorm:"size:512;not null" json:"resumePath"`
	Status     string                   `gorm:"size:32" json:"status"`
	Matches    []Match                  `gorm:"serializer:json" json:"matches"`
	Interviews []uint                   `gorm:"serializer:json" json:"interviews"`
	CreatedAt  time.Time                `json:"createdAt"`
	UpdatedAt  time.Time                `json:"updatedAt"`
}

func (c *Candidate) ApplyDefaults() {
	if c.Status == "" {
		c.Status = CandidateStatusNew
	}
}

func (c *Candidate) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	if c.Name == "" {
		return Validationf("name is required")
	}
	if c.Email == "" {
		return Validationf("email is required")
	}
	if !emailPattern.MatchString(c.Email) {
		return Validationf("invalid email %q", c.Email)
	}
	if c.ResumePath == "" {
		return Validationf("resume path is required")
	}
	switch c.Status {
	case CandidateStatusNew, CandidateStatusReviewed, CandidateStatusShortlisted,
		CandidateStatusRejected, CandidateStatusHired:
	default:
		return Validationf("invalid candidate status %q", c.Status)
	}
	return nil
}

// UpsertMatch replaces the match entry for m.JobID if one exists, otherwise
// appends it. The matches list never holds two entries for the same job.
func (c *Candidate) UpsertMatch(m Match) {
	for i := range c.Matches {
		if c.Matches[i].JobID == m.JobID {
			c.Matches[i] = m
			return
		}
	}
	c.Matches = append(c.Matches, m)
}

// RemoveInterview pulls an interview ID out of the candidate's interview list.
func (c *Candidate) RemoveInterview(interviewID uint) {
	out := c.Interviews[:0]
	for _, id := range c.Interviews {
		if id != interviewID {
			out = append(out, id)
		}
	}
	c.Interviews = out
}
