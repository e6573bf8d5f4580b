package interfaces

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"

	"recruitment-system/domain"
	"recruitment-system/infrastructure"
)

type fakeSender struct {
	calls int
	err   error
}

func (s *fakeSender) DialAndSend(m ...*gomail.Message) error {
	s.calls++
	return s.err
}

type testEnv struct {
	router *gin.Engine
	store  *infrastructure.Store
	files  *infrastructure.FileStore
	sender *fakeSender
}

// aiDown answers every AI operation with a 500.
func aiDown(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "ai service unavailable", http.StatusInternalServerError)
}

// aiStub answers each operation with a fixed healthy response.
func aiStub(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/parse-resume":
		_, _ = w.Write([]byte(`{"name":"Jane Doe","email":"jane@example.com","phone":"555-0100","skills":["Go"]}`))
	case "/parse-job":
		_, _ = w.Write([]byte(`{"requirements":["5y Go"],"responsibilities":["Build services"],"skills":["Go","SQL"]}`))
	case "/summarize":
		_, _ = w.Write([]byte(`{"summary":"Short summary."}`))
	case "/match":
		_, _ = w.Write([]byte(`{"score":0.82}`))
	case "/detect-gaps":
		_, _ = w.Write([]byte(`{"gaps":["Kubernetes"]}`))
	case "/schedule-slots":
		_, _ = w.Write([]byte(`{"slots":["2026-09-14T10:00:00Z"]}`))
	default:
		http.NotFound(w, r)
	}
}

func newTestEnv(t *testing.T, aiHandler http.HandlerFunc) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, infrastructure.Migrate(db))
	store := infrastructure.NewStore(db)

	files, err := infrastructure.NewFileStore(t.TempDir())
	require.NoError(t, err)

	aiSrv := httptest.NewServer(aiHandler)
	t.Cleanup(aiSrv.Close)

	sender := &fakeSender{}
	mailer := infrastructure.NewMailerWithSender(sender, "noreply@example.com", "hr@example.com")

	router := gin.New()
	NewHTTPHandler(router, store, infrastructure.NewAIClient(aiSrv.URL), mailer, nil, files)

	return &testEnv{router: router, store: store, files: files, sender: sender}
}

type envelope struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path string, body []byte, contentType string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func (e *testEnv) doJSON(t *testing.T, method, path string, payload interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return e.do(t, method, path, body, "application/json")
}

// multipartUpload builds a multipart body with one file part and form fields.
func multipartUpload(t *testing.T, fileField, filename string, content []byte, fields map[string]string) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if fileField != "" {
		part, err := mw.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return buf.Bytes(), mw.FormDataContentType()
}

func TestRootBanner(t *testing.T) {
	env := newTestEnv(t, aiStub)
	w, _ := env.do(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Recruitment System API")
}

func TestCORSHeadersOnRequests(t *testing.T) {
	env := newTestEnv(t, aiStub)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCreateJobRejectsOversizedFile(t *testing.T) {
	env := newTestEnv(t, aiStub)

	body, contentType := multipartUpload(t, "jobDescription", "jd.txt",
		bytes.Repeat([]byte("x"), maxUploadSize+1),
		map[string]string{"title": "Backend Engineer", "company": "Acme"})

	w, resp := env.do(t, http.MethodPost, "/api/jobs", body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Error, "10 MB limit")

	jobs, err := env.store.ListJobs()
	require.NoError(t, err)
	assert.Empty(t, jobs, "no job is created for an oversized upload")
}

func TestAIParseResumeRejectsOversizedFile(t *testing.T) {
	env := newTestEnv(t, aiStub)

	body, contentType := multipartUpload(t, "file", "resume.txt",
		bytes.Repeat([]byte("x"), maxUploadSize+1), nil)

	w, resp := env.do(t, http.MethodPost, "/api/ai/parse-resume", body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Error, "10 MB limit")
}

func TestCreateJobRequiresTitleAndCompany(t *testing.T) {
	env := newTestEnv(t, aiStub)

	w, env2 := env.doJSON(t, http.MethodPost, "/api/jobs", gin.H{"title": "Backend Engineer"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env2.Success)
	assert.Contains(t, env2.Error, "job title and company")
}

func TestCreateAndGetJob(t *testing.T) {
	env := newTestEnv(t, aiStub)

	w, resp := env.doJSON(t, http.MethodPost, "/api/jobs", gin.H{
		"title":   "Backend Engineer",
		"company": "Acme",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var job domain.Job
	require.NoError(t, json.Unmarshal(resp.Data, &job))
	assert.NotZero(t, job.ID)
	assert.Equal(t, domain.JobStatusOpen, job.Status)
	assert.Equal(t, domain.JobTypeFullTime, job.JobType)

	w, resp = env.do(t, http.MethodGet, "/api/jobs", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, resp.Count)
}

func TestCreateJobWithFileDegradesWhenAIDown(t *testing.T) {
	env := newTestEnv(t, aiDown)

	body, contentType := multipartUpload(t, "jobDescription", "jd.txt",
		[]byte("We need a Go engineer."),
		map[string]string{"title": "Backend Engineer", "company": "Acme"})

	w, resp := env.do(t, http.MethodPost, "/api/jobs", body, contentType)
	require.Equal(t, http.StatusCreated, w.Code)

	var job domain.Job
	require.NoError(t, json.Unmarshal(resp.Data, &job))
	assert.NotEmpty(t, job.FilePath, "uploaded file is kept even when AI fails")
	assert.Empty(t, job.Requirements)
	assert.Empty(t, job.Summary)
	assert.True(t, env.files.Exists(job.FilePath))
}

func TestCreateJobWithFileParsesDescription(t *testing.T) {
	env := newTestEnv(t, aiStub)

	body, contentType := multipartUpload(t, "jobDescription", "jd.txt",
		[]byte("We need a Go engineer."),
		map[string]string{"title": "Backend Engineer", "company": "Acme"})

	w, resp := env.do(t, http.MethodPost, "/api/jobs", body, contentType)
	require.Equal(t, http.StatusCreated, w.Code)

	var job domain.Job
	require.NoError(t, json.Unmarshal(resp.Data, &job))
	assert.Equal(t, []string{"5y Go"}, job.Requirements)
	assert.Equal(t, []string{"Go", "SQL"}, job.Skills)
	assert.Equal(t, "Short summary.", job.Summary)
}

func TestUpdateJobRevalidates(t *testing.T) {
	env := newTestEnv(t, aiStub)

	job := &domain.Job{Title: "Backend Engineer", Company: "Acme"}
	require.NoError(t, env.store.CreateJob(job))

	w, resp := env.doJSON(t, http.MethodPut, "/api/jobs/1", gin.H{"title": "Staff Engineer"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated domain.Job
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, "Staff Engineer", updated.Title)

	w, _ = env.doJSON(t, http.MethodPut, "/api/jobs/1", gin.H{"title": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetJobNotFound(t *testing.T) {
	env := newTestEnv(t, aiStub)

	w, resp := env.do(t, http.MethodGet, "/api/jobs/99", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Job not found", resp.Error)
}

func TestDeleteJobRemovesFile(t *testing.T) {
	env := newTestEnv(t, aiDown)

	body, contentType := multipartUpload(t, "jobDescription", "jd.txt",
		[]byte("desc"), map[string]string{"title": "Backend Engineer", "company": "Acme"})
	w, resp := env.do(t, http.MethodPost, "/api/jobs", body, contentType)
	require.Equal(t, http.StatusCreated, w.Code)

	var job domain.Job
	require.NoError(t, json.Unmarshal(resp.Data, &job))
	require.True(t, env.files.Exists(job.FilePath))

	w, _ = env.do(t, http.MethodDelete, "/api/jobs/1", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.files.Exists(job.FilePath))
}

func TestAISummarizeProxy(t *testing.T) {
	env := newTestEnv(t, aiStub)

	w, resp := env.doJSON(t, http.MethodPost, "/api/ai/summarize", gin.H{"content": "long text"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), "Short summary.")

	w, _ = env.doJSON(t, http.MethodPost, "/api/ai/summarize", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAIMatchProxyFailsWhenServiceDown(t *testing.T) {
	env := newTestEnv(t, aiDown)

	w, resp := env.doJSON(t, http.MethodPost, "/api/ai/match", gin.H{
		"resume": gin.H{"skills": []string{"Go"}},
		"job":    gin.H{"skills": []string{"Go", "Kubernetes"}},
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, resp.Error, "AI service error")
}

func TestAIParseResumeRequiresContent(t *testing.T) {
	env := newTestEnv(t, aiStub)

	w, resp := env.doJSON(t, http.MethodPost, "/api/ai/parse-resume", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Error, "resume file or content")

	w, _ = env.doJSON(t, http.MethodPost, "/api/ai/parse-resume", gin.H{"content": "resume text"})
	assert.Equal(t, http.StatusOK, w.Code)
}
