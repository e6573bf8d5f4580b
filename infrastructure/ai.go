package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"recruitment-system/domain"
)

// aiTimeout bounds every call to the AI service. There is no retry: callers
// decide whether a failure is fatal or a degradation.
const aiTimeout = 30 * time.Second

// AIClient forwards operations to the external AI recruitment service.
// Operations: parse-resume, parse-job, match, detect-gaps, summarize,
// schedule-slots.
type AIClient struct {
	baseURL string
	client  *http.Client
}

func NewAIClient(baseURL string) *AIClient {
	return &AIClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: aiTimeout},
	}
}

// Call POSTs payload as JSON to {base}/{operation} and returns the decoded
// JSON object. Timeouts and non-2xx responses become *domain.AIServiceError.
func (a *AIClient) Call(ctx context.Context, operation string, payload interface{}) (map[string]interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &domain.AIServiceError{Operation: operation, Message: err.Error()}
	}

	url := fmt.Sprintf("%s/%s", a.baseURL, operation)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &domain.AIServiceError{Operation: operation, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &domain.AIServiceError{Operation: operation, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.AIServiceError{Operation: operation, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.AIServiceError{
			Operation: operation,
			Message:   fmt.Sprintf("status %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	var result map[string]interface{}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &domain.AIServiceError{Operation: operation, Message: "invalid JSON response: " + err.Error()}
	}
	return result, nil
}

// ParseResume extracts structured candidate data from raw resume text.
func (a *AIClient) ParseResume(ctx context.Context, content string) (domain.ParsedResume, error) {
	var parsed domain.ParsedResume
	result, err := a.Call(ctx, "parse-resume", map[string]interface{}{"content": content})
	if err != nil {
		return parsed, err
	}
	decodeInto(result, &parsed)
	parsed.Raw = result
	return parsed, nil
}

// ParseJob extracts structured job data from raw job description text.
func (a *AIClient) ParseJob(ctx context.Context, content string) (domain.ParsedJob, error) {
	var parsed domain.ParsedJob
	result, err := a.Call(ctx, "parse-job", map[string]interface{}{"content": content})
	if err != nil {
		return parsed, err
	}
	decodeInto(result, &parsed)
	parsed.Raw = result
	return parsed, nil
}

// Summarize returns a short summary of content. typ is "resume", "job" or
// "general".
func (a *AIClient) Summarize(ctx context.Context, content, typ string) (string, error) {
	result, err := a.Call(ctx, "summarize", map[string]interface{}{
		"content": content,
		"type":    typ,
	})
	if err != nil {
		return "", err
	}
	summary, _ := result["summary"].(string)
	return summary, nil
}

// Match scores a parsed resume against a parsed job.
func (a *AIClient) Match(ctx context.Context, resume, job interface{}) (float64, map[string]interface{}, error) {
	result, err := a.Call(ctx, "match", map[string]interface{}{
		"resume": resume,
		"job":    job,
	})
	if err != nil {
		return 0, nil, err
	}
	score, _ := result["score"].(float64)
	return score, result, nil
}

// DetectGaps lists skills the job asks for that the resume lacks.
func (a *AIClient) DetectGaps(ctx context.Context, resume, job interface{}) ([]string, error) {
	result, err := a.Call(ctx, "detect-gaps", map[string]interface{}{
		"resume": resume,
		"job":    job,
	})
	if err != nil {
		return nil, err
	}

	var gaps []string
	if raw, ok := result["gaps"].([]interface{}); ok {
		for _, g := range raw {
			if s, ok := g.(string); ok {
				gaps = append(gaps, s)
			}
		}
	}
	return gaps, nil
}

// ScheduleSlots asks the AI scheduler for open interview slots given the
// already booked ones.
func (a *AIClient) ScheduleSlots(ctx context.Context, existingSlots, preferences interface{}) (map[string]interface{}, error) {
	return a.Call(ctx, "schedule-slots", map[string]interface{}{
		"existingSlots": existingSlots,
		"preferences":   preferences,
	})
}

// decodeInto copies the known fields of a generic JSON object into a typed
// struct by round-tripping through encoding/json.
func decodeInto(m map[string]interface{}, out interface{}) {
	b, err := json.Marshal(m)
	if err != nil {
		return
	}
	_ = json.Unmarshal(b, out)
}
