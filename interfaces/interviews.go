package interfaces

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"recruitment-system/domain"
	"recruitment-system/infrastructure"
)

type candidateRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type jobRef struct {
	Title   string `json:"title"`
	Company string `json:"company"`
}

// interviewView is an interview with its candidate and job references
// resolved for read responses. A dangling reference (deleted candidate or
// job) leaves the field null.
type interviewView struct {
	domain.Interview
	Candidate *candidateRef `json:"candidate"`
	Job       *jobRef       `json:"job"`
}

// withRefs resolves candidate names/emails and job titles/companies for a set
// of interviews in two batch lookups. Lookup failures degrade to bare records.
func (h *HTTPHandler) withRefs(interviews []domain.Interview) []interviewView {
	candidateIDs := make([]uint, 0, len(interviews))
	jobIDs := make([]uint, 0, len(interviews))
	for _, iv := range interviews {
		candidateIDs = append(candidateIDs, iv.CandidateID)
		jobIDs = append(jobIDs, iv.JobID)
	}

	candidates, cErr := h.Store.FindCandidatesByIDs(candidateIDs)
	jobs, jErr := h.Store.FindJobsByIDs(jobIDs)
	if cErr != nil || jErr != nil {
		logrus.Warn("failed to resolve interview references")
	}

	views := make([]interviewView, 0, len(interviews))
	for _, iv := range interviews {
		v := interviewView{Interview: iv}
		if candidate, found := candidates[iv.CandidateID]; found {
			v.Candidate = &candidateRef{Name: candidate.Name, Email: candidate.Email}
		}
		if job, found := jobs[iv.JobID]; found {
			v.Job = &jobRef{Title: job.Title, Company: job.Company}
		}
		views = append(views, v)
	}
	return views
}

// ListInterviews returns all interviews ordered by scheduled date, with their
// candidate and job references resolved.
func (h *HTTPHandler) ListInterviews(c *gin.Context) {
	interviews, err := h.Store.ListInterviews()
	if err != nil {
		failErr(c, err)
		return
	}
	okList(c, h.withRefs(interviews), len(interviews))
}

func (h *HTTPHandler) GetInterview(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}

	interview, err := h.Store.FindInterviewByID(id)
	if err != nil {
		if err == domain.ErrNotFound {
			fail(c, http.StatusNotFound, "Interview not found")
			return
		}
		failErr(c, err)
		return
	}
	ok(c, h.withRefs([]domain.Interview{*interview})[0])
}

type scheduleRequest struct {
	CandidateID uint      `json:"candidateId"`
	JobID       uint      `json:"jobId"`
	Scheduled   time.Time `json:"scheduledDate"`
	Duration    int       `json:"duration"`
	Location    string    `json:"location"`
	MeetingLink string    `json:"meetingLink"`
}

// CreateInterview schedules an interview: both referenced entities must
// exist, the interview ID is appended to the candidate's interview list, and
// a notification is attempted best-effort.
func (h *HTTPHandler) CreateInterview(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.CandidateID == 0 || req.JobID == 0 || req.Scheduled.IsZero() {
		fail(c, http.StatusBadRequest, "Please provide candidate ID, job ID, and scheduled date")
		return
	}

	candidate, err := h.Store.FindCandidateByID(req.CandidateID)
	if err != nil {
		if err == domain.ErrNotFound {
			fail(c, http.StatusNotFound, "Candidate not found")
			return
		}
		failErr(c, err)
		return
	}

	job, err := h.Store.FindJobByID(req.JobID)
	if err != nil {
		if err == domain.ErrNotFound {
			fail(c, http.StatusNotFound, "Job not found")
			return
		}
		failErr(c, err)
		return
	}

	interview := domain.Interview{
		CandidateID:   req.CandidateID,
		JobID:         req.JobID,
		ScheduledDate: req.Scheduled,
		Duration:      req.Duration,
		Location:      req.Location,
		MeetingLink:   req.MeetingLink,
		Status:        domain.InterviewStatusScheduled,
	}
	if err := h.Store.CreateInterview(&interview); err != nil {
		failErr(c, err)
		return
	}

	candidate.Interviews = append(candidate.Interviews, interview.ID)
	if err := h.Store.SaveCandidate(candidate); err != nil {
		failErr(c, err)
		return
	}

	h.notify(candidate, job, &interview, false)

	if err := h.Events.Publish(infrastructure.EventInterviewScheduled, gin.H{
		"interviewId": interview.ID,
		"candidateId": candidate.ID,
		"jobId":       job.ID,
	}); err != nil {
		logrus.WithError(err).Warn("failed to publish interview.scheduled event")
	}

	created(c, interview)
}

// notify attempts the email notification and records success on the
// interview. Delivery failure is logged; notificationSent stays false.
func (h *HTTPHandler) notify(candidate *domain.Candidate, job *domain.Job, interview *domain.Interview, rescheduled bool) {
	if err := h.Mailer.SendInterviewNotification(candidate, job, interview, rescheduled); err != nil {
		logrus.WithError(err).WithField("interview", interview.ID).Warn("interview notification failed")
		return
	}
	interview.NotificationSent = true
	if err := h.Store.SaveInterview(interview); err != nil {
		logrus.WithError(err).Warn("failed to record notification flag")
	}
}

// AvailableSlots forwards the currently scheduled interviews to the AI
// scheduler and returns its slot suggestions.
func (h *HTTPHandler) AvailableSlots(c *gin.Context) {
	interviews, err := h.Store.ListScheduledInterviews()
	if err != nil {
		failErr(c, err)
		return
	}

	slots := make([]gin.H, 0, len(interviews))
	for _, iv := range interviews {
		slots = append(slots, gin.H{"scheduledDate": iv.ScheduledDate, "duration": iv.Duration})
	}

	result, err := h.AI.ScheduleSlots(c.Request.Context(), slots, nil)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, result)
}

// UpdateInterview overlays the request body onto the stored interview. An
// update that sets status to Rescheduled always triggers exactly one more
// notification attempt, regardless of the previous notificationSent value.
func (h *HTTPHandler) UpdateInterview(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}

	interview, err := h.Store.FindInterviewByID(id)
	if err != nil {
		if err == domain.ErrNotFound {
			fail(c, http.StatusNotFound, "Interview not found")
			return
		}
		failErr(c, err)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := json.Unmarshal(body, interview); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	interview.ID = id

	var probe struct {
		Status string `json:"status"`
	}
	_ = json.Unmarshal(body, &probe)

	if err := h.Store.SaveInterview(interview); err != nil {
		failErr(c, err)
		return
	}

	if probe.Status == domain.InterviewStatusRescheduled {
		candidate, cErr := h.Store.FindCandidateByID(interview.CandidateID)
		job, jErr := h.Store.FindJobByID(interview.JobID)
		if cErr != nil || jErr != nil {
			logrus.WithField("interview", interview.ID).Warn("cannot notify: candidate or job missing")
		} else {
			h.notify(candidate, job, interview, true)
			if err := h.Events.Publish(infrastructure.EventInterviewRescheduled, gin.H{
				"interviewId": interview.ID,
			}); err != nil {
				logrus.WithError(err).Warn("failed to publish interview.rescheduled event")
			}
		}
	}

	ok(c, interview)
}

type feedbackRequest struct {
	Rating      int    `json:"rating"`
	Comments    string `json:"comments"`
	Interviewer string `json:"interviewer"`
}

// AddFeedback records interview feedback and forces the status to Completed.
func (h *HTTPHandler) AddFeedback(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Rating == 0 || req.Comments == "" || req.Interviewer == "" {
		fail(c, http.StatusBadRequest, "Please provide rating, comments, and interviewer")
		return
	}

	interview, err := h.Store.FindInterviewByID(id)
	if err != nil {
		if err == domain.ErrNotFound {
			fail(c, http.StatusNotFound, "Interview not found")
			return
		}
		failErr(c, err)
		return
	}

	interview.Feedback = domain.Feedback{
		Rating:      req.Rating,
		Comments:    req.Comments,
		Interviewer: req.Interviewer,
	}
	interview.Status = domain.InterviewStatusCompleted

	if err := h.Store.SaveInterview(interview); err != nil {
		failErr(c, err)
		return
	}
	ok(c, interview)
}

// DeleteInterview removes the record and pulls its ID out of the candidate's
// interview list.
func (h *HTTPHandler) DeleteInterview(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}

	interview, err := h.Store.FindInterviewByID(id)
	if err != nil {
		if err == domain.ErrNotFound {
			fail(c, http.StatusNotFound, "Interview not found")
			return
		}
		failErr(c, err)
		return
	}

	if candidate, err := h.Store.FindCandidateByID(interview.CandidateID); err == nil {
		candidate.RemoveInterview(interview.ID)
		if err := h.Store.SaveCandidate(candidate); err != nil {
			logrus.WithError(err).Warn("failed to prune interview reference from candidate")
		}
	}

	if err := h.Store.DeleteInterview(id); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{})
}
