package interfaces

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"recruitment-system/domain"
	"recruitment-system/infrastructure"
)

// ListJobs returns all jobs, newest first.
func (h *HTTPHandler) ListJobs(c *gin.Context) {
	jobs, err := h.Store.ListJobs()
	if err != nil {
		failErr(c, err)
		return
	}
	okList(c, jobs, len(jobs))
}

func (h *HTTPHandler) GetJob(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}

	job, err := h.Store.FindJobByID(id)
	if err != nil {
		if err == domain.ErrNotFound {
			fail(c, http.StatusNotFound, "Job not found")
			return
		}
		failErr(c, err)
		return
	}
	ok(c, job)
}

// CreateJob accepts job fields as JSON or multipart form. A multipart
// "jobDescription" file is stored and its text parsed and summarized by the
// AI service; AI failure degrades to the user-supplied fields only.
func (h *HTTPHandler) CreateJob(c *gin.Context) {
	var job domain.Job

	if c.ContentType() == "application/json" {
		if err := c.ShouldBindJSON(&job); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
	} else {
		job.Title = c.PostForm("title")
		job.Company = c.PostForm("company")
		job.Description = c.PostForm("description")
		job.Location = c.PostForm("location")
		job.JobType = c.PostForm("jobType")
		job.Salary = c.PostForm("salary")
		job.Status = c.PostForm("status")
	}

	if job.Title == "" || job.Company == "" {
		fail(c, http.StatusBadRequest, "Please provide job title and company")
		return
	}

	if header, err := c.FormFile("jobDescription"); err == nil {
		if header.Size > maxUploadSize {
			fail(c, http.StatusBadRequest, "Job description file exceeds the 10 MB limit")
			return
		}
		relPath, err := h.Files.Save(infrastructure.FileKindJob, header)
		if err != nil {
			failErr(c, err)
			return
		}
		job.FilePath = relPath

		if err := h.enrichJob(c, &job, relPath); err != nil {
			logrus.WithError(err).Warn("AI job enrichment failed, continuing without parsed data")
		}
	}

	if err := h.Store.CreateJob(&job); err != nil {
		failErr(c, err)
		return
	}
	created(c, job)
}

// enrichJob extracts text from the stored job description file and fills the
// parsed fields and summary from the AI service.
func (h *HTTPHandler) enrichJob(c *gin.Context, job *domain.Job, relPath string) error {
	data, err := h.Files.Read(relPath)
	if err != nil {
		return err
	}

	content, err := infrastructure.ExtractText(data, relPath)
	if err != nil {
		return err
	}

	parsed, err := h.AI.ParseJob(c.Request.Context(), content)
	if err != nil {
		return err
	}

	summary, err := h.AI.Summarize(c.Request.Context(), content, "job")
	if err != nil {
		return err
	}

	job.Requirements = parsed.Requirements
	job.Responsibilities = parsed.Responsibilities
	job.Skills = parsed.Skills
	job.ParsedData = parsed
	job.Summary = summary
	return nil
}

// UpdateJob overlays the request body onto the stored job and re-validates.
func (h *HTTPHandler) UpdateJob(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}

	job, err := h.Store.FindJobByID(id)
	if err != nil {
		if err == domain.ErrNotFound {
			fail(c, http.StatusNotFound, "Job not found")
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
	if err := json.Unmarshal(body, job); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	job.ID = id

	if err := h.Store.SaveJob(job); err != nil {
		failErr(c, err)
		return
	}
	ok(c, job)
}

// DeleteJob removes the uploaded description file first, then the record.
// The file removal is kept even if the record delete fails afterwards.
func (h *HTTPHandler) DeleteJob(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}

	job, err := h.Store.FindJobByID(id)
	if err != nil {
		if err == domain.ErrNotFound {
			fail(c, http.StatusNotFound, "Job not found")
			return
		}
		failErr(c, err)
		return
	}

	if err := h.Files.Remove(job.FilePath); err != nil {
		logrus.WithError(err).WithField("path", job.FilePath).Warn("failed to remove job description file")
	}

	if err := h.Store.DeleteJob(id); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{})
}
