package infrastructure

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"recruitment-system/domain"
)

const noSummary = "No summary available."

// MailSender abstracts the SMTP dialer so tests can substitute a fake.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer composes and sends the interview notification emails: one to the
// candidate, one to the HR inbox. Transport failures surface as
// *domain.DeliveryError and are treated as non-fatal by the handlers.
type Mailer struct {
	sender MailSender
	from   string
	hrAddr string
}

func NewMailer(cfg *Config) *Mailer {
	if cfg.EmailHost == "" {
		return nil
	}
	return &Mailer{
		sender: gomail.NewDialer(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPass),
		from:   cfg.EmailFrom,
		hrAddr: cfg.EmailUser,
	}
}

// NewMailerWithSender wires a custom transport.
func NewMailerWithSender(sender MailSender, from, hrAddr string) *Mailer {
	return &Mailer{sender: sender, from: from, hrAddr: hrAddr}
}

// SendInterviewNotification delivers both messages. Safe to call on a nil
// Mailer (unconfigured transport): it fails with a DeliveryError so the
// caller leaves notificationSent unset.
func (m *Mailer) SendInterviewNotification(candidate *domain.Candidate, job *domain.Job, interview *domain.Interview, rescheduled bool) error {
	if m == nil {
		return &domain.DeliveryError{Recipient: candidate.Email, Err: fmt.Errorf("mail transport not configured")}
	}

	subject := interviewSubject(job, rescheduled)

	toCandidate := gomail.NewMessage()
	toCandidate.SetAddressHeader("From", m.from, job.Company+" Recruitment")
	toCandidate.SetHeader("To", candidate.Email)
	toCandidate.SetHeader("Subject", subject)
	toCandidate.SetBody("text/html", candidateBody(candidate, job, interview, rescheduled))

	toHR := gomail.NewMessage()
	toHR.SetAddressHeader("From", m.from, "Recruitment System")
	toHR.SetHeader("To", m.hrAddr)
	toHR.SetHeader("Subject", "HR Notification: "+subject)
	toHR.SetBody("text/html", hrBody(candidate, job, interview, rescheduled))

	if err := m.sender.DialAndSend(toCandidate, toHR); err != nil {
		return &domain.DeliveryError{Recipient: candidate.Email, Err: err}
	}
	return nil
}

func interviewSubject(job *domain.Job, rescheduled bool) string {
	if rescheduled {
		return fmt.Sprintf("RESCHEDULED: Interview for %s at %s", job.Title, job.Company)
	}
	return fmt.Sprintf("Interview Scheduled: %s at %s", job.Title, job.Company)
}

func candidateBody(candidate *domain.Candidate, job *domain.Job, interview *domain.Interview, rescheduled bool) string {
	verb := "scheduled"
	heading := "Interview Scheduled"
	if rescheduled {
		verb = "rescheduled"
		heading = "Your interview has been rescheduled"
	}

	summary := job.Summary
	if summary == "" {
		summary = noSummary
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2>", heading)
	fmt.Fprintf(&b, "<p>Hello %s,</p>", candidate.Name)
	fmt.Fprintf(&b, "<p>We are pleased to inform you that an interview has been %s for the position of <strong>%s</strong> at <strong>%s</strong>.</p>",
		verb, job.Title, job.Company)
	b.WriteString("<h3>Interview Details:</h3><ul>")
	writeInterviewDetails(&b, interview)
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<h3>Job Description Summary:</h3><p>%s</p>", summary)
	b.WriteString("<p>Please be prepared to discuss your qualifications and experience related to this position. If you need to reschedule or have any questions, please contact us as soon as possible.</p>")
	fmt.Fprintf(&b, "<p>Best regards,<br>Recruitment Team<br>%s</p>", job.Company)
	return b.String()
}

func hrBody(candidate *domain.Candidate, job *domain.Job, interview *domain.Interview, rescheduled bool) string {
	verb := "Scheduled"
	if rescheduled {
		verb = "Rescheduled"
	}

	phone := candidate.Phone
	if phone == "" {
		phone = "Not provided"
	}
	summary := candidate.Summary
	if summary == "" {
		summary = noSummary
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Interview %s</h2>", verb)
	fmt.Fprintf(&b, "<p>An interview has been %s for the following candidate:</p>", strings.ToLower(verb))
	b.WriteString("<h3>Candidate Information:</h3><ul>")
	fmt.Fprintf(&b, "<li><strong>Name:</strong> %s</li>", candidate.Name)
	fmt.Fprintf(&b, "<li><strong>Email:</strong> %s</li>", candidate.Email)
	fmt.Fprintf(&b, "<li><strong>Phone:</strong> %s</li>", phone)
	b.WriteString("</ul><h3>Interview Details:</h3><ul>")
	fmt.Fprintf(&b, "<li><strong>Position:</strong> %s</li>", job.Title)
	writeInterviewDetails(&b, interview)
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<h3>Candidate Summary:</h3><p>%s</p>", summary)
	b.WriteString("<p>Please ensure all necessary preparations are made for the interview.</p>")
	return b.String()
}

func writeInterviewDetails(b *strings.Builder, interview *domain.Interview) {
	fmt.Fprintf(b, "<li><strong>Date:</strong> %s</li>", interview.ScheduledDate.Format("Monday, January 2, 2006"))
	fmt.Fprintf(b, "<li><strong>Time:</strong> %s</li>", interview.ScheduledDate.Format("03:04 PM"))
	fmt.Fprintf(b, "<li><strong>Duration:</strong> %d minutes</li>", interview.Duration)
	fmt.Fprintf(b, "<li><strong>Location:</strong> %s</li>", interview.Location)
	if interview.MeetingLink != "" {
		fmt.Fprintf(b, "<li><strong>Meeting Link:</strong> <a href=%q>%s</a></li>", interview.MeetingLink, interview.MeetingLink)
	}
}
