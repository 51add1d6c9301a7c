package handler

import (
	"bytes"
	"context"
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/errors"
	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
	"github.com/johnquangdev/interview-assistant/internal/infrastructure/realtime"
	"github.com/johnquangdev/interview-assistant/internal/usecase/faq"
	"github.com/johnquangdev/interview-assistant/internal/usecase/interview"
	"github.com/johnquangdev/interview-assistant/pkg/config"
	"github.com/johnquangdev/interview-assistant/pkg/nlp"
	"github.com/johnquangdev/interview-assistant/pkg/validator"
)

type apiEnvelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Info    string            `json:"info"`
	Details map[string]string `json:"details"`
	Data    json.RawMessage   `json:"data"`
}

type testAPI struct {
	e           *echo.Echo
	registry    *realtime.Registry
	store       *interview.Store
	transcripts *fakeTranscriptStore
}

type fakeTranscriptStore struct {
	ids []uuid.UUID
	err error
}

func (f *fakeTranscriptStore) TranscriptURL(_ context.Context, id uuid.UUID, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://files.example.com/transcripts/" + id.String() + ".json?expires=" + expiry.String(), nil
}

func (f *fakeTranscriptStore) ListTranscripts(context.Context) ([]uuid.UUID, error) {
	return f.ids, f.err
}

func newTestAPI(t *testing.T, checks map[string]HealthCheck) *testAPI {
	t.Helper()
	return newTestAPIWith(t, checks, true)
}

// newTestAPIWith builds the API; archive selects whether transcript archiving is on
func newTestAPIWith(t *testing.T, checks map[string]HealthCheck, archive bool) *testAPI {
	t.Helper()
	logger := zap.NewNop()
	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Realtime: config.RealtimeConfig{
			HeartbeatInterval: time.Minute,
			WriteTimeout:      time.Second,
			PongTimeout:       5 * time.Second,
			SendBuffer:        16,
			MaxMessageBytes:   1024,
		},
		Interview: config.InterviewConfig{LockMode: config.LockModeBlock, SummaryTTL: time.Hour},
	}

	registry := realtime.NewRegistry(cfg.Realtime.SendBuffer, logger)
	store := interview.NewStore()
	supervisor := interview.NewSupervisor(interview.Dependencies{
		Store: store,
		Questions: interview.StaticQuestions{
			{ID: "technical-1", Category: entities.QuestionCategoryTechnical, Text: "What is OOP?", ReferenceAnswer: "objects encapsulate state and behavior"},
			{ID: "hr-1", Category: entities.QuestionCategoryHR, Text: "Why us?", ReferenceAnswer: "the mission and the team"},
		},
		Scorer:      nlp.NewLexicalScorer(),
		Sentiment:   nlp.NewLexiconAnalyzer(),
		Broadcaster: realtime.NewBroadcaster(registry, logger),
		Validator:   validator.New(),
		Config:      cfg.Interview,
		Logger:      logger,
	})

	transcripts := &fakeTranscriptStore{}
	var transcriptStore TranscriptStore
	if archive {
		transcriptStore = transcripts
	}
	assistant := faq.NewAssistant([]faq.Entry{
		{Question: "How long does the interview take?", Answer: "About 20-30 minutes."},
	}, nil, logger)

	e := echo.New()
	e.Validator = validator.New()
	NewRouter(cfg, Handlers{
		Interview:   NewInterviewHandler(supervisor, logger),
		Handoffs:    NewHandoffsHandler(supervisor, logger),
		Transcripts: NewTranscriptsHandler(transcriptStore, supervisor, 15*time.Minute, logger),
		FAQ:         NewFAQHandler(assistant, logger),
		Realtime:    NewRealtimeHandler(registry, cfg.Realtime, nil, logger),
	}, registry, store, checks).Setup(e)

	return &testAPI{e: e, registry: registry, store: store, transcripts: transcripts}
}

func (a *testAPI) do(t *testing.T, method, path, body string) (int, apiEnvelope) {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	var env apiEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: invalid JSON %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, env
}

const validStart = `{"candidate":{"name":"Ada","email":"ada@example.com","skills":["go"]}}`

func (a *testAPI) start(t *testing.T) string {
	t.Helper()
	status, env := a.do(t, http.MethodPost, "/v1/interviews", validStart)
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %+v", status, env)
	}
	var session struct {
		ID              string `json:"id"`
		State           string `json:"state"`
		Room            string `json:"room"`
		CurrentQuestion struct {
			ID string `json:"id"`
		} `json:"current_question"`
	}
	if err := json.Unmarshal(env.Data, &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.State != string(entities.SessionStateInProgress) || session.CurrentQuestion.ID != "technical-1" {
		t.Fatalf("unexpected session %+v", session)
	}
	if session.Room != "interview_"+session.ID {
		t.Fatalf("unexpected room %q", session.Room)
	}
	return session.ID
}

type outcomeBody struct {
	State           string `json:"state"`
	Cursor          int    `json:"cursor"`
	HandoffReason   string `json:"handoff_reason"`
	AlreadyResolved bool   `json:"already_resolved"`
	Record          *struct {
		QuestionID string `json:"question_id"`
	} `json:"record"`
}

func decodeOutcome(t *testing.T, env apiEnvelope) outcomeBody {
	t.Helper()
	var out outcomeBody
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode outcome: %v", err)
	}
	return out
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, map[string]HealthCheck{
		"storage": func(context.Context) error { return stdErrors.New("bucket missing") },
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	api.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "degraded" || body.Components["storage"] != "bucket missing" {
		t.Fatalf("unexpected health %+v", body)
	}
}

func TestInterviewFlow(t *testing.T) {
	api := newTestAPI(t, nil)
	id := api.start(t)
	base := "/v1/interviews/" + id

	status, env := api.do(t, http.MethodPost, base+"/answers", `{"answer":"I want to talk to a recruiter"}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %+v", status, env)
	}
	out := decodeOutcome(t, env)
	if out.State != string(entities.SessionStateAwaitingHandoff) || out.Cursor != 0 || out.HandoffReason == "" {
		t.Fatalf("expected handoff, got %+v", out)
	}

	status, env = api.do(t, http.MethodPost, base+"/answers", `{"answer":"hello?"}`)
	if status != http.StatusConflict || env.Code != int(errors.ErrorCode_INTERVIEW_INVALID_STATE) {
		t.Fatalf("expected 409 invalid state, got %d %+v", status, env)
	}

	status, env = api.do(t, http.MethodGet, base+"/summary", "")
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for incomplete summary, got %d", status)
	}

	status, env = api.do(t, http.MethodPost, base+"/handoff/resolve", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %+v", status, env)
	}
	if out := decodeOutcome(t, env); out.State != string(entities.SessionStateInProgress) || out.Cursor != 1 {
		t.Fatalf("expected resumed session on question 2, got %+v", out)
	}

	status, env = api.do(t, http.MethodPost, base+"/answers", `{"answer":"   "}`)
	if status != http.StatusBadRequest || env.Code != int(errors.ErrorCode_INTERVIEW_EMPTY_ANSWER) {
		t.Fatalf("expected 400 empty answer, got %d %+v", status, env)
	}

	status, env = api.do(t, http.MethodPost, base+"/answers", `{"answer":"I admire the mission and the team"}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %+v", status, env)
	}
	if out := decodeOutcome(t, env); out.State != string(entities.SessionStateComplete) {
		t.Fatalf("expected complete, got %+v", out)
	}

	status, env = api.do(t, http.MethodPost, base+"/handoff/resolve", "")
	if status != http.StatusOK || !decodeOutcome(t, env).AlreadyResolved {
		t.Fatalf("expected already_resolved, got %d %+v", status, env)
	}

	status, env = api.do(t, http.MethodGet, base+"/summary", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %+v", status, env)
	}
	var summary struct {
		AnswerCount int     `json:"answer_count"`
		TotalScore  float64 `json:"total_score"`
	}
	if err := json.Unmarshal(env.Data, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.AnswerCount != 2 {
		t.Fatalf("expected 2 answers, got %d", summary.AnswerCount)
	}

	status, env = api.do(t, http.MethodGet, "/v1/analytics/overview", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var stats entities.AnalyticsSnapshot
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("decode analytics: %v", err)
	}
	if stats.TotalSessions != 1 || stats.CompletedSessions != 1 || stats.HandoffsTriggered != 1 {
		t.Fatalf("unexpected analytics %+v", stats)
	}
}

func TestStartInterview_InvalidCandidate(t *testing.T) {
	api := newTestAPI(t, nil)

	status, env := api.do(t, http.MethodPost, "/v1/interviews", `{"candidate":{"name":"Ada","email":"not-an-email"}}`)
	if status != http.StatusBadRequest || env.Code != int(errors.ErrorCode_INTERVIEW_INVALID_CANDIDATE) {
		t.Fatalf("expected 400 invalid candidate, got %d %+v", status, env)
	}
	if env.Details["email"] != "email" {
		t.Fatalf("expected email field detail, got %v", env.Details)
	}
	if api.store.Count() != 0 {
		t.Fatalf("no session must be stored")
	}
}

func TestStartInterview_ExplicitQuestions(t *testing.T) {
	api := newTestAPI(t, nil)

	body := `{"candidate":{"name":"Ada","email":"ada@example.com"},
		"questions":[{"category":"behavioral","text":"Tell me about a conflict","reference_answer":"listen and resolve"}]}`
	status, env := api.do(t, http.MethodPost, "/v1/interviews", body)
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d %+v", status, env)
	}
	var session struct {
		Total int `json:"total"`
	}
	_ = json.Unmarshal(env.Data, &session)
	if session.Total != 1 {
		t.Fatalf("expected 1 question, got %d", session.Total)
	}

	bad := `{"candidate":{"name":"Ada","email":"ada@example.com"},
		"questions":[{"category":"trivia","text":"?","reference_answer":"!"}]}`
	status, env = api.do(t, http.MethodPost, "/v1/interviews", bad)
	if status != http.StatusBadRequest || env.Code != int(errors.ErrorCode_INVALID_ARGUMENT) {
		t.Fatalf("expected 400 invalid argument, got %d %+v", status, env)
	}
}

func TestUnknownSession(t *testing.T) {
	api := newTestAPI(t, nil)

	for _, path := range []string{"/v1/interviews/" + uuid.NewString(), "/v1/interviews/not-a-uuid"} {
		status, env := api.do(t, http.MethodGet, path, "")
		if status != http.StatusNotFound || env.Code != int(errors.ErrorCode_INTERVIEW_SESSION_NOT_FOUND) {
			t.Fatalf("%s: expected 404, got %d %+v", path, status, env)
		}
	}
}

func TestRealtime_ObserverReceivesUpdates(t *testing.T) {
	api := newTestAPI(t, nil)
	srv := httptest.NewServer(api.e)
	defer srv.Close()

	id := api.start(t)

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/dashboard", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()

	room := interview.RoomFor(uuid.MustParse(id))
	if err := ws.WriteJSON(realtime.ClientMessage{Action: realtime.ActionJoin, Room: room}); err != nil {
		t.Fatalf("write: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for len(api.registry.Members(room)) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("observer never joined %s", room)
		}
		time.Sleep(5 * time.Millisecond)
	}

	if status, env := api.do(t, http.MethodPost, "/v1/interviews/"+id+"/answers", `{"answer":"objects encapsulate state"}`); status != http.StatusOK {
		t.Fatalf("expected 200, got %d %+v", status, env)
	}

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var frame struct {
		Type string `json:"type"`
		Data struct {
			SessionID  string `json:"session_id"`
			UpdateType string `json:"update_type"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &frame); err != nil {
		t.Fatalf("decode frame %s: %v", raw, err)
	}
	if frame.Type != string(entities.EventTypeInterviewUpdate) || frame.Data.SessionID != id ||
		frame.Data.UpdateType != string(entities.UpdateTypeAnswerSubmitted) {
		t.Fatalf("unexpected frame %s", raw)
	}
}

func TestPendingHandoffs(t *testing.T) {
	api := newTestAPI(t, nil)
	id := api.start(t)
	api.start(t)

	if status, env := api.do(t, http.MethodPost, "/v1/interviews/"+id+"/answers", `{"answer":"I want to talk to a recruiter"}`); status != http.StatusOK {
		t.Fatalf("expected 200, got %d %+v", status, env)
	}

	status, env := api.do(t, http.MethodGet, "/v1/handoffs/pending", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d %+v", status, env)
	}
	var list struct {
		Count    int `json:"count"`
		Handoffs []struct {
			SessionID        string `json:"session_id"`
			CandidateEmail   string `json:"candidate_email"`
			TriggeringAnswer struct {
				CandidateText string `json:"candidate_text"`
			} `json:"triggering_answer"`
		} `json:"handoffs"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Count != 1 || list.Handoffs[0].SessionID != id || list.Handoffs[0].CandidateEmail != "ada@example.com" {
		t.Fatalf("unexpected pending list %+v", list)
	}
	if list.Handoffs[0].TriggeringAnswer.CandidateText != "I want to talk to a recruiter" {
		t.Fatalf("unexpected triggering answer %+v", list.Handoffs[0].TriggeringAnswer)
	}

	for _, limit := range []string{"0", "501", "ten"} {
		status, env := api.do(t, http.MethodGet, "/v1/handoffs/pending?limit="+limit, "")
		if status != http.StatusBadRequest || env.Code != int(errors.ErrorCode_INVALID_ARGUMENT) {
			t.Fatalf("limit %s: expected 400, got %d %+v", limit, status, env)
		}
	}

	if status, _ := api.do(t, http.MethodPost, "/v1/interviews/"+id+"/handoff/resolve", ""); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	_, env = api.do(t, http.MethodGet, "/v1/handoffs/pending?limit=10", "")
	if err := json.Unmarshal(env.Data, &list); err != nil || list.Count != 0 {
		t.Fatalf("expected an empty list after resolve, got %+v %v", list, err)
	}
}

func TestTranscripts(t *testing.T) {
	api := newTestAPI(t, nil)
	id := api.start(t)
	path := "/v1/interviews/" + id + "/transcript"

	status, env := api.do(t, http.MethodGet, path, "")
	if status != http.StatusConflict || env.Code != int(errors.ErrorCode_INTERVIEW_INVALID_STATE) {
		t.Fatalf("expected 409 before completion, got %d %+v", status, env)
	}

	for _, answer := range []string{"objects encapsulate state", "the mission and the team"} {
		if status, env := api.do(t, http.MethodPost, "/v1/interviews/"+id+"/answers", `{"answer":"`+answer+`"}`); status != http.StatusOK {
			t.Fatalf("expected 200, got %d %+v", status, env)
		}
	}

	status, env = api.do(t, http.MethodGet, path, "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d %+v", status, env)
	}
	var link struct {
		URL       string    `json:"url"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := json.Unmarshal(env.Data, &link); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(link.URL, id) || !strings.HasSuffix(link.URL, "expires=15m0s") || link.ExpiresAt.IsZero() {
		t.Fatalf("unexpected link %+v", link)
	}

	api.transcripts.ids = []uuid.UUID{uuid.MustParse(id)}
	status, env = api.do(t, http.MethodGet, "/v1/transcripts", "")
	var list struct {
		SessionIDs []string `json:"session_ids"`
		Count      int      `json:"count"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil || status != http.StatusOK {
		t.Fatalf("expected 200 with a list, got %d %v", status, err)
	}
	if list.Count != 1 || list.SessionIDs[0] != id {
		t.Fatalf("unexpected transcript list %+v", list)
	}

	api.transcripts.err = stdErrors.New("connection refused")
	for _, p := range []string{path, "/v1/transcripts"} {
		status, env := api.do(t, http.MethodGet, p, "")
		if status != http.StatusInternalServerError || env.Code != int(errors.ErrorCode_INTEGRATION_STORAGE_FAILED) {
			t.Fatalf("%s: expected 500 storage failure, got %d %+v", p, status, env)
		}
	}

	status, env = api.do(t, http.MethodGet, "/v1/interviews/"+uuid.NewString()+"/transcript", "")
	if status != http.StatusNotFound || env.Code != int(errors.ErrorCode_INTERVIEW_SESSION_NOT_FOUND) {
		t.Fatalf("expected 404 for unknown session, got %d %+v", status, env)
	}
}

func TestTranscripts_ArchiveDisabled(t *testing.T) {
	api := newTestAPIWith(t, nil, false)
	id := api.start(t)

	for _, p := range []string{"/v1/interviews/" + id + "/transcript", "/v1/transcripts"} {
		status, env := api.do(t, http.MethodGet, p, "")
		if status != http.StatusNotFound || env.Code != int(errors.ErrorCode_NOT_FOUND) {
			t.Fatalf("%s: expected 404, got %d %+v", p, status, env)
		}
	}
}

func TestFAQ(t *testing.T) {
	api := newTestAPI(t, nil)

	var answer struct {
		Answer string `json:"answer"`
		Source string `json:"source"`
	}
	status, env := api.do(t, http.MethodPost, "/v1/faq", `{"question":"how long does the interview take"}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d %+v", status, env)
	}
	if err := json.Unmarshal(env.Data, &answer); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if answer.Source != string(faq.SourceStatic) || answer.Answer != "About 20-30 minutes." {
		t.Fatalf("unexpected answer %+v", answer)
	}

	_, env = api.do(t, http.MethodPost, "/v1/faq", `{"question":"Is there a dress code?"}`)
	if err := json.Unmarshal(env.Data, &answer); err != nil || answer.Source != string(faq.SourceNone) {
		t.Fatalf("expected no answer without a fallback, got %+v %v", answer, err)
	}

	for _, body := range []string{`{}`, `{"question":"   "}`} {
		status, env := api.do(t, http.MethodPost, "/v1/faq", body)
		if status != http.StatusBadRequest || env.Code != int(errors.ErrorCode_INVALID_ARGUMENT) {
			t.Fatalf("%s: expected 400, got %d %+v", body, status, env)
		}
	}
}
