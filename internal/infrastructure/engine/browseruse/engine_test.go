package browseruse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/logger"
)

type fakeCloud struct {
	mu          sync.Mutex
	statuses    []string
	polls       int
	received    RunTaskRequest
	stopped     string
	output      string
	statusCode  int
	authHeaders []string
}

func (f *fakeCloud) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /run-task", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.authHeaders = append(f.authHeaders, r.Header.Get("Authorization"))
		if f.statusCode != 0 {
			w.WriteHeader(f.statusCode)
			_, _ = w.Write([]byte(`{"detail":"nope"}`))
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&f.received)
		_ = json.NewEncoder(w).Encode(RunTaskResponse{ID: "task_1", LiveURL: "https://live/task_1"})
	})

	mux.HandleFunc("GET /task/task_1/status", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		status := f.statuses[len(f.statuses)-1]
		if f.polls < len(f.statuses) {
			status = f.statuses[f.polls]
		}
		f.polls++
		_ = json.NewEncoder(w).Encode(status)
	})

	mux.HandleFunc("GET /task/task_1", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(TaskDetails{
			ID:             "task_1",
			Output:         f.output,
			Status:         StatusFinished,
			PublicShareURL: "https://share/task_1",
			Steps:          []TaskStep{{Step: 1}, {Step: 2}, {Step: 3}},
		})
	})

	mux.HandleFunc("PUT /stop-task", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.stopped = r.URL.Query().Get("task_id")
	})

	return mux
}

type stubEvaluator struct {
	report string
}

func (s *stubEvaluator) Evaluate(ctx context.Context, instruction, report string) entity.Verdict {
	s.report = report
	return entity.Verdict{Outcome: entity.OutcomeSuccess, Notes: "confirmed"}
}

func newEngine(t *testing.T, cloud *fakeCloud, cfg Config, eval *stubEvaluator) *Engine {
	t.Helper()
	srv := httptest.NewServer(cloud.handler())
	t.Cleanup(srv.Close)

	if cfg.PollInterval == 0 {
		cfg.PollInterval = time.Millisecond
	}
	return NewEngine(NewClient(srv.URL+"/", "key_123", srv.Client()), cfg, eval, logger.NewNop())
}

func sampleTask() entity.AutomationTask {
	return entity.AutomationTask{
		SubmissionID: "sub_1",
		TargetURL:    "https://forms.gle/abc",
		TargetName:   "Acme Ventures",
		Instruction:  "Fill the form",
		Config: entity.BrowserUseConfig{
			MaxAgentSteps:         45,
			UseAdblock:            true,
			UseProxy:              true,
			ProxyCountryCode:      "us",
			BrowserViewportWidth:  1280,
			BrowserViewportHeight: 960,
			EnablePublicShare:     true,
		},
	}
}

func TestEngine_RunFinished(t *testing.T) {
	cloud := &fakeCloud{statuses: []string{StatusCreated, StatusRunning, StatusFinished}, output: "Submitted!"}
	eval := &stubEvaluator{}
	engine := newEngine(t, cloud, Config{LLMModel: "gpt-4.1"}, eval)

	result, err := engine.Run(context.Background(), sampleTask())
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeSuccess, result.Outcome)
	assert.Equal(t, "confirmed", result.Notes)
	assert.Equal(t, "task_1", result.SessionID)
	assert.Equal(t, "https://share/task_1", result.ShareURL)
	assert.Equal(t, "https://live/task_1", result.LiveURL)
	assert.Equal(t, 3, result.Steps)
	assert.Equal(t, "Submitted!", eval.report)

	cloud.mu.Lock()
	defer cloud.mu.Unlock()
	assert.Equal(t, "Fill the form", cloud.received.Task)
	assert.Equal(t, "gpt-4.1", cloud.received.LLMModel)
	assert.Equal(t, 45, cloud.received.MaxAgentSteps)
	assert.Equal(t, "us", cloud.received.ProxyCountryCode)
	assert.Equal(t, []string{"Bearer key_123"}, cloud.authHeaders)
	assert.Equal(t, 3, cloud.polls)
}

func TestEngine_TaskModelOverridesDefault(t *testing.T) {
	cloud := &fakeCloud{statuses: []string{StatusFinished}}
	engine := newEngine(t, cloud, Config{LLMModel: "gpt-4.1"}, &stubEvaluator{})

	task := sampleTask()
	task.Config.LLMModel = "claude-sonnet"
	_, err := engine.Run(context.Background(), task)
	require.NoError(t, err)

	cloud.mu.Lock()
	defer cloud.mu.Unlock()
	assert.Equal(t, "claude-sonnet", cloud.received.LLMModel)
}

func TestEngine_RunFailedTask(t *testing.T) {
	cloud := &fakeCloud{statuses: []string{StatusRunning, StatusFailed}}
	eval := &stubEvaluator{}
	engine := newEngine(t, cloud, Config{}, eval)

	result, err := engine.Run(context.Background(), sampleTask())
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeFailure, result.Outcome)
	assert.Equal(t, "Browser task failed", result.Notes)
	assert.Empty(t, eval.report)
}

func TestEngine_TimeoutStopsTask(t *testing.T) {
	cloud := &fakeCloud{statuses: []string{StatusRunning}}
	engine := newEngine(t, cloud, Config{Timeout: 30 * time.Millisecond, PollInterval: 5 * time.Millisecond}, &stubEvaluator{})

	result, err := engine.Run(context.Background(), sampleTask())
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomePartial, result.Outcome)
	assert.Equal(t, entity.SubmissionInProgress, result.Outcome.Status())

	cloud.mu.Lock()
	defer cloud.mu.Unlock()
	assert.Equal(t, "task_1", cloud.stopped)
}

func TestEngine_Unauthorized(t *testing.T) {
	cloud := &fakeCloud{statusCode: http.StatusUnauthorized}
	engine := newEngine(t, cloud, Config{}, &stubEvaluator{})

	_, err := engine.Run(context.Background(), sampleTask())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_APIError(t *testing.T) {
	cloud := &fakeCloud{statusCode: http.StatusUnprocessableEntity}
	srv := httptest.NewServer(cloud.handler())
	defer srv.Close()

	_, err := NewClient(srv.URL, "k", nil).RunTask(context.Background(), RunTaskRequest{Task: "x"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "nope")
}
