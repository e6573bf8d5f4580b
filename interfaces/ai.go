package interfaces

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitment-system/infrastructure"
)

// AI proxy endpoints. These exist so the frontend can reach the AI service
// through the backend; a failed AI call fails the whole request here.

// contentFromRequest accepts either a multipart "file" upload (run through
// text extraction) or a JSON body with a "content" field. On failure it writes
// the 400 response itself, either missingMsg or the size-limit message, and
// returns ok=false.
func (h *HTTPHandler) contentFromRequest(c *gin.Context, missingMsg string) (content, typ string, ok bool) {
	if header, err := c.FormFile("file"); err == nil {
		if header.Size > maxUploadSize {
			fail(c, http.StatusBadRequest, "File exceeds the 10 MB limit")
			return "", "", false
		}

		src, err := header.Open()
		if err != nil {
			fail(c, http.StatusBadRequest, missingMsg)
			return "", "", false
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			fail(c, http.StatusBadRequest, missingMsg)
			return "", "", false
		}
		text, err := infrastructure.ExtractText(data, header.Filename)
		if err != nil {
			fail(c, http.StatusBadRequest, missingMsg)
			return "", "", false
		}
		return text, c.PostForm("type"), true
	}

	var req struct {
		Content string `json:"content"`
		Type    string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		fail(c, http.StatusBadRequest, missingMsg)
		return "", "", false
	}
	return req.Content, req.Type, true
}

func (h *HTTPHandler) AIParseResume(c *gin.Context) {
	content, _, found := h.contentFromRequest(c, "Please provide a resume file or content")
	if !found {
		return
	}

	result, err := h.AI.Call(c.Request.Context(), "parse-resume", gin.H{"content": content})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, result)
}

func (h *HTTPHandler) AIParseJob(c *gin.Context) {
	content, _, found := h.contentFromRequest(c, "Please provide a job description file or content")
	if !found {
		return
	}

	result, err := h.AI.Call(c.Request.Context(), "parse-job", gin.H{"content": content})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, result)
}

func (h *HTTPHandler) AIMatch(c *gin.Context) {
	var req struct {
		Resume map[string]interface{} `json:"resume"`
		Job    map[string]interface{} `json:"job"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Resume == nil || req.Job == nil {
		fail(c, http.StatusBadRequest, "Please provide resume and job data")
		return
	}

	result, err := h.AI.Call(c.Request.Context(), "match", gin.H{"resume": req.Resume, "job": req.Job})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, result)
}

func (h *HTTPHandler) AIDetectGaps(c *gin.Context) {
	var req struct {
		Resume map[string]interface{} `json:"resume"`
		Job    map[string]interface{} `json:"job"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Resume == nil || req.Job == nil {
		fail(c, http.StatusBadRequest, "Please provide resume and job data")
		return
	}

	result, err := h.AI.Call(c.Request.Context(), "detect-gaps", gin.H{"resume": req.Resume, "job": req.Job})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, result)
}

func (h *HTTPHandler) AISummarize(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
		Type    string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		fail(c, http.StatusBadRequest, "Please provide content to summarize")
		return
	}
	if req.Type == "" {
		req.Type = "general"
	}

	summary, err := h.AI.Summarize(c.Request.Context(), req.Content, req.Type)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"summary": summary})
}

func (h *HTTPHandler) AIScheduleSlots(c *gin.Context) {
	var req struct {
		ExistingSlots interface{} `json:"existingSlots"`
		Preferences   interface{} `json:"preferences"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.AI.ScheduleSlots(c.Request.Context(), req.ExistingSlots, req.Preferences)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, result)
}
