package infrastructure

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"recruitment-system/domain"
)

type captureSender struct {
	messages []*gomail.Message
	err      error
}

func (s *captureSender) DialAndSend(m ...*gomail.Message) error {
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, m...)
	return nil
}

func notificationFixture() (*domain.Candidate, *domain.Job, *domain.Interview) {
	candidate := &domain.Candidate{Name: "Jane Doe", Email: "jane@example.com", Summary: "Strong Go background"}
	job := &domain.Job{Title: "Backend Engineer", Company: "Acme", Summary: "Go services team"}
	interview := &domain.Interview{
		ScheduledDate: time.Date(2026, time.September, 14, 10, 30, 0, 0, time.UTC),
		Duration:      45,
		Location:      "Virtual",
		MeetingLink:   "https://meet.example.com/xyz",
	}
	return candidate, job, interview
}

func TestSendInterviewNotificationSendsBothMessages(t *testing.T) {
	sender := &captureSender{}
	m := NewMailerWithSender(sender, "noreply@acme.com", "hr@acme.com")

	candidate, job, interview := notificationFixture()
	require.NoError(t, m.SendInterviewNotification(candidate, job, interview, false))
	require.Len(t, sender.messages, 2)

	toCandidate := sender.messages[0]
	assert.Equal(t, []string{"jane@example.com"}, toCandidate.GetHeader("To"))
	assert.Equal(t, []string{"Interview Scheduled: Backend Engineer at Acme"}, toCandidate.GetHeader("Subject"))

	toHR := sender.messages[1]
	assert.Equal(t, []string{"hr@acme.com"}, toHR.GetHeader("To"))
	assert.Equal(t, []string{"HR Notification: Interview Scheduled: Backend Engineer at Acme"}, toHR.GetHeader("Subject"))
}

func TestRescheduledSubject(t *testing.T) {
	candidate, job, interview := notificationFixture()
	sender := &captureSender{}
	m := NewMailerWithSender(sender, "noreply@acme.com", "hr@acme.com")

	require.NoError(t, m.SendInterviewNotification(candidate, job, interview, true))
	assert.Equal(t, []string{"RESCHEDULED: Interview for Backend Engineer at Acme"}, sender.messages[0].GetHeader("Subject"))
}

func TestCandidateBodyContents(t *testing.T) {
	candidate, job, interview := notificationFixture()

	body := candidateBody(candidate, job, interview, false)
	assert.Contains(t, body, "Hello Jane Doe")
	assert.Contains(t, body, "Monday, September 14, 2026")
	assert.Contains(t, body, "10:30 AM")
	assert.Contains(t, body, "45 minutes")
	assert.Contains(t, body, "https://meet.example.com/xyz")
	assert.Contains(t, body, "Go services team")
}

func TestBodyDefaultsWhenSummaryAndLinkMissing(t *testing.T) {
	candidate, job, interview := notificationFixture()
	job.Summary = ""
	candidate.Summary = ""
	candidate.Phone = ""
	interview.MeetingLink = ""

	assert.Contains(t, candidateBody(candidate, job, interview, false), noSummary)
	assert.NotContains(t, candidateBody(candidate, job, interview, false), "Meeting Link")

	hr := hrBody(candidate, job, interview, true)
	assert.Contains(t, hr, noSummary)
	assert.Contains(t, hr, "Not provided")
	assert.Contains(t, hr, "Interview Rescheduled")
}

func TestTransportFailureIsDeliveryError(t *testing.T) {
	candidate, job, interview := notificationFixture()
	m := NewMailerWithSender(&captureSender{err: errors.New("smtp down")}, "noreply@acme.com", "hr@acme.com")

	err := m.SendInterviewNotification(candidate, job, interview, false)
	var dErr *domain.DeliveryError
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, "jane@example.com", dErr.Recipient)
}

func TestNilMailerFailsWithDeliveryError(t *testing.T) {
	candidate, job, interview := notificationFixture()
	var m *Mailer

	err := m.SendInterviewNotification(candidate, job, interview, false)
	var dErr *domain.DeliveryError
	require.ErrorAs(t, err, &dErr)
}
