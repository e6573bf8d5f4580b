package interfaces

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"recruitment-system/domain"
	"recruitment-system/infrastructure"
)

// maxUploadSize caps every uploaded file (resumes, job descriptions, AI proxy
// files) at 10 MB.
const maxUploadSize = 10 << 20

type HTTPHandler struct {
	Store  *infrastructure.Store
	AI     *infrastructure.AIClient
	Mailer *infrastructure.Mailer
	Events *infrastructure.EventPublisher
	Files  *infrastructure.FileStore
}

func NewHTTPHandler(router *gin.Engine, store *infrastructure.Store, ai *infrastructure.AIClient,
	mailer *infrastructure.Mailer, events *infrastructure.EventPublisher, files *infrastructure.FileStore) {

	h := &HTTPHandler{Store: store, AI: ai, Mailer: mailer, Events: events, Files: files}

	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Recruitment System API"})
	})

	api := router.Group("/api")

	jobs := api.Group("/jobs")
	jobs.GET("", h.ListJobs)
	jobs.GET("/:id", h.GetJob)
	jobs.POST("", h.CreateJob)
	jobs.PUT("/:id", h.UpdateJob)
	jobs.DELETE("/:id", h.DeleteJob)

	candidates := api.Group("/candidates")
	candidates.GET("", h.ListCandidates)
	candidates.GET("/:id", h.GetCandidate)
	candidates.POST("", h.CreateCandidate)
	candidates.PUT("/:id", h.UpdateCandidate)
	candidates.DELETE("/:id", h.DeleteCandidate)
	candidates.POST("/:id/match/:jobId", h.MatchCandidate)

	interviews := api.Group("/interviews")
	interviews.GET("", h.ListInterviews)
	interviews.GET("/slots/available", h.AvailableSlots)
	interviews.GET("/:id", h.GetInterview)
	interviews.POST("", h.CreateInterview)
	interviews.PUT("/:id", h.UpdateInterview)
	interviews.POST("/:id/feedback", h.AddFeedback)
	interviews.DELETE("/:id", h.DeleteInterview)

	ai_ := api.Group("/ai")
	ai_.POST("/parse-resume", h.AIParseResume)
	ai_.POST("/parse-job", h.AIParseJob)
	ai_.POST("/match", h.AIMatch)
	ai_.POST("/detect-gaps", h.AIDetectGaps)
	ai_.POST("/summarize", h.AISummarize)
	ai_.POST("/schedule-slots", h.AIScheduleSlots)
}

// Every endpoint answers with the same envelope: {success, data|error, count?}.

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func okList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// failErr maps the domain error taxonomy onto HTTP statuses: validation 400,
// missing references 404, everything else (store, AI, transport) 500.
func failErr(c *gin.Context, err error) {
	var aiErr *domain.AIServiceError
	switch {
	case errors.Is(err, domain.ErrValidation):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.As(err, &aiErr):
		fail(c, http.StatusInternalServerError, aiErr.Error())
	default:
		fail(c, http.StatusInternalServerError, err.Error())
	}
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(param)), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
