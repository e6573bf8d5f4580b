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

// ListCandidates returns all candidates, newest first.
func (h *HTTPHandler) ListCandidates(c *gin.Context) {
	candidates, err := h.Store.ListCandidates()
	if err != nil {
		failErr(c, err)
		return
	}
	okList(c, candidates, len(candidates))
}

func (h *HTTPHandler) GetCandidate(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}

	candidate, err := h.Store.FindCandidateByID(id)
	if err != nil {
		if err == domain.ErrNotFound {
			fail(c, http.StatusNotFound, "Candidate not found")
			return
		}
		failErr(c, err)
		return
	}
	ok(c, candidate)
}

// CreateCandidate stores the uploaded resume under a unique name, then tries
// to enrich the record through the AI service. Enrichment failure is logged
// and the candidate is created from the user-supplied fields alone; the
// stored file is not rolled back.
func (h *HTTPHandler) CreateCandidate(c *gin.Context) {
	header, err := c.FormFile("resume")
	if err != nil {
		fail(c, http.StatusBadRequest, "Please upload a resume file")
		return
	}
	if header.Size > maxUploadSize {
		fail(c, http.StatusBadRequest, "Resume file exceeds the 10 MB limit")
		return
	}

	resumePath, err := h.Files.Save(infrastructure.FileKindResume, header)
	if err != nil {
		failErr(c, err)
		return
	}

	candidate := domain.Candidate{
		Name:       c.PostForm("name"),
		Email:      c.PostForm("email"),
		Phone:      c.PostForm("phone"),
		ResumePath: resumePath,
		Status:     domain.CandidateStatusNew,
	}
	if candidate.Name == "" {
		candidate.Name = "Unknown"
	}
	if candidate.Email == "" {
		candidate.Email = "unknown@example.com"
	}

	if err := h.enrichCandidate(c, &candidate, resumePath); err != nil {
		logrus.WithError(err).Warn("AI resume enrichment failed, continuing without parsed data")
	}

	if err := h.Store.CreateCandidate(&candidate); err != nil {
		failErr(c, err)
		return
	}

	if err := h.Events.Publish(infrastructure.EventCandidateCreated, gin.H{"candidateId": candidate.ID}); err != nil {
		logrus.WithError(err).Warn("failed to publish candidate.created event")
	}

	created(c, candidate)
}

// enrichCandidate extracts resume text and fills the parsed fields and the
// summary from the AI service. Parsed values override the user-supplied ones.
func (h *HTTPHandler) enrichCandidate(c *gin.Context, candidate *domain.Candidate, resumePath string) error {
	data, err := h.Files.Read(resumePath)
	if err != nil {
		return err
	}

	content, err := infrastructure.ExtractText(data, resumePath)
	if err != nil {
		return err
	}

	parsed, err := h.AI.ParseResume(c.Request.Context(), content)
	if err != nil {
		return err
	}

	summary, err := h.AI.Summarize(c.Request.Context(), content, "resume")
	if err != nil {
		return err
	}

	if parsed.Name != "" {
		candidate.Name = parsed.Name
	}
	if parsed.Email != "" {
		candidate.Email = parsed.Email
	}
	if parsed.Phone != "" {
		candidate.Phone = parsed.Phone
	}
	candidate.Skills = parsed.Skills
	candidate.Experience = parsed.Experience
	candidate.Education = parsed.Education
	candidate.ParsedData = parsed
	candidate.Summary = summary
	return nil
}

// MatchCandidate scores the candidate against a job and upserts the match
// entry on the candidate. The whole request fails if either AI call fails:
// the endpoint's only purpose is the AI result.
func (h *HTTPHandler) MatchCandidate(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	jobID, valid := parseID(c, "jobId")
	if !valid {
		return
	}

	candidate, err := h.Store.FindCandidateByID(id)
	if err != nil {
		if err == domain.ErrNotFound {
			fail(c, http.StatusNotFound, "Candidate not found")
			return
		}
		failErr(c, err)
		return
	}

	job, err := h.Store.FindJobByID(jobID)
	if err != nil {
		if err == domain.ErrNotFound {
			fail(c, http.StatusNotFound, "Job not found")
			return
		}
		failErr(c, err)
		return
	}

	score, _, err := h.AI.Match(c.Request.Context(), candidate.ParsedData, job.ParsedData)
	if err != nil {
		failErr(c, err)
		return
	}

	gaps, err := h.AI.DetectGaps(c.Request.Context(), candidate.ParsedData, job.ParsedData)
	if err != nil {
		failErr(c, err)
		return
	}

	candidate.UpsertMatch(domain.Match{
		JobID:     job.ID,
		Score:     score,
		Gaps:      gaps,
		MatchDate: time.Now(),
	})

	if err := h.Store.SaveCandidate(candidate); err != nil {
		failErr(c, err)
		return
	}

	if err := h.Events.Publish(infrastructure.EventCandidateMatched, gin.H{
		"candidateId": candidate.ID,
		"jobId":       job.ID,
		"score":       score,
	}); err != nil {
		logrus.WithError(err).Warn("failed to publish candidate.matched event")
	}

	ok(c, gin.H{
		"candidate":  candidate,
		"matchScore": score,
		"gaps":       gaps,
	})
}

// UpdateCandidate overlays the request body onto the stored candidate and
// re-validates.
func (h *HTTPHandler) UpdateCandidate(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}

	candidate, err := h.Store.FindCandidateByID(id)
	if err != nil {
		if err == domain.ErrNotFound {
			fail(c, http.StatusNotFound, "Candidate not found")
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
	if err := json.Unmarshal(body, candidate); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	candidate.ID = id

	if err := h.Store.SaveCandidate(candidate); err != nil {
		failErr(c, err)
		return
	}
	ok(c, candidate)
}

// DeleteCandidate removes the resume file, then the record. Interviews that
// reference the candidate are left in place; their candidateId dangles.
func (h *HTTPHandler) DeleteCandidate(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}

	candidate, err := h.Store.FindCandidateByID(id)
	if err != nil {
		if err == domain.ErrNotFound {
			fail(c, http.StatusNotFound, "Candidate not found")
			return
		}
		failErr(c, err)
		return
	}

	if err := h.Files.Remove(candidate.ResumePath); err != nil {
		logrus.WithError(err).WithField("path", candidate.ResumePath).Warn("failed to remove resume file")
	}

	if err := h.Store.DeleteCandidate(id); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{})
}
