package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCandidate() *Candidate {
	return &Candidate{
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		ResumePath: "resumes/abc.pdf",
		Status:     CandidateStatusNew,
	}
}

func TestCandidateValidate(t *testing.T) {
	c := validCandidate()
	require.NoError(t, c.Validate())

	t.Run("lowercases email", func(t *testing.T) {
		c := validCandidate()
		c.Email = "Jane.Doe@Example.COM"
		require.NoError(t, c.Validate())
		assert.Equal(t, "jane.doe@example.com", c.Email)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		c := validCandidate()
		c.Email = "not-an-email"
		err := c.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("requires name", func(t *testing.T) {
		c := validCandidate()
		c.Name = "   "
		assert.ErrorIs(t, c.Validate(), ErrValidation)
	})

	t.Run("requires resume path", func(t *testing.T) {
		c := validCandidate()
		c.ResumePath = ""
		assert.ErrorIs(t, c.Validate(), ErrValidation)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		c := validCandidate()
		c.Status = "Pending"
		assert.ErrorIs(t, c.Validate(), ErrValidation)
	})
}

func TestUpsertMatchReplacesExistingEntry(t *testing.T) {
	c := validCandidate()

	c.UpsertMatch(Match{JobID: 7, Score: 0.5, Gaps: []string{"Docker"}, MatchDate: time.Now()})
	c.UpsertMatch(Match{JobID: 9, Score: 0.3, MatchDate: time.Now()})
	require.Len(t, c.Matches, 2)

	c.UpsertMatch(Match{JobID: 7, Score: 0.82, Gaps: []string{"Kubernetes"}, MatchDate: time.Now()})
	require.Len(t, c.Matches, 2, "re-matching the same job must not add an entry")
	assert.Equal(t, 0.82, c.Matches[0].Score)
	assert.Equal(t, []string{"Kubernetes"}, c.Matches[0].Gaps)
}

func TestRemoveInterview(t *testing.T) {
	c := validCandidate()
	c.Interviews = []uint{1, 2, 3}

	c.RemoveInterview(2)
	assert.Equal(t, []uint{1, 3}, c.Interviews)

	c.RemoveInterview(99) // absent ID is a no-op
	assert.Equal(t, []uint{1, 3}, c.Interviews)
}

func TestJobValidate(t *testing.T) {
	job := &Job{Title: "Backend Engineer", Company: "Acme"}
	job.ApplyDefaults()
	require.NoError(t, job.Validate())
	assert.Equal(t, JobTypeFullTime, job.JobType)
	assert.Equal(t, JobStatusOpen, job.Status)
	assert.Equal(t, "Remote", job.Location)
	assert.Equal(t, "Competitive", job.Salary)

	job.Company = ""
	assert.ErrorIs(t, job.Validate(), ErrValidation)
}

func TestInterviewValidate(t *testing.T) {
	iv := &Interview{CandidateID: 1, JobID: 2, ScheduledDate: time.Now().Add(24 * time.Hour)}
	iv.ApplyDefaults()
	require.NoError(t, iv.Validate())
	assert.Equal(t, 60, iv.Duration)
	assert.Equal(t, "Virtual", iv.Location)
	assert.Equal(t, InterviewStatusScheduled, iv.Status)

	t.Run("missing scheduled date", func(t *testing.T) {
		iv := &Interview{CandidateID: 1, JobID: 2, Status: InterviewStatusScheduled, Duration: 30, Location: "HQ"}
		assert.ErrorIs(t, iv.Validate(), ErrValidation)
	})

	t.Run("rating out of range", func(t *testing.T) {
		iv := &Interview{CandidateID: 1, JobID: 2, ScheduledDate: time.Now(), Status: InterviewStatusCompleted, Duration: 60, Location: "HQ"}
		iv.Feedback = Feedback{Rating: 6, Comments: "great", Interviewer: "Sam"}
		assert.ErrorIs(t, iv.Validate(), ErrValidation)
	})
}
