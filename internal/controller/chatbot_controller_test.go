package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"linen-chatbot-be/internal/constant"
	"linen-chatbot-be/internal/dto"
	"linen-chatbot-be/internal/entity"
	"linen-chatbot-be/internal/pkg/serverutils"
	"linen-chatbot-be/internal/repository/memory"
	"linen-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newChatbotApp(t *testing.T) (*fiber.App, *memory.SessionRepository) {
	t.Helper()
	sessions := memory.NewSessionRepository(time.Hour)
	chat := service.NewChatbotService(service.ChatbotDeps{Sessions: sessions})
	escalation := service.NewEscalationService(service.EscalationDeps{Sessions: sessions})

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewChatbotController(chat, escalation).RegisterRoutes(app.Group("/api"))
	return app, sessions
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func createSession(t *testing.T, app *fiber.App) dto.ChatSessionResponse {
	t.Helper()
	code, env := do(t, app, http.MethodPost, "/api/chatbot/v1/session", "")
	require.Equal(t, http.StatusCreated, code)

	var session dto.ChatSessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &session))
	return session
}

func TestChatbotController_Conversation(t *testing.T) {
	app, _ := newChatbotApp(t)
	session := createSession(t, app)
	require.Len(t, session.Messages, 1)

	code, env := do(t, app, http.MethodPost, "/api/chatbot/v1/session/"+session.Id.String()+"/message",
		`{"text":"What is Thread Count (TC) and why does it matter?"}`)
	require.Equal(t, http.StatusOK, code)

	var sent dto.SendMessageResponse
	require.NoError(t, json.Unmarshal(env.Data, &sent))
	assert.Equal(t, "prod-1", sent.FaqId)
	assert.NotEmpty(t, sent.Reply.Suggestions)

	code, env = do(t, app, http.MethodGet, "/api/chatbot/v1/session/"+session.Id.String(), "")
	require.Equal(t, http.StatusOK, code)
	var after dto.ChatSessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &after))
	assert.Len(t, after.Messages, 3)

	code, _ = do(t, app, http.MethodDelete, "/api/chatbot/v1/session/"+session.Id.String(), "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = do(t, app, http.MethodGet, "/api/chatbot/v1/session/"+session.Id.String(), "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestChatbotController_SendMessageErrors(t *testing.T) {
	app, sessions := newChatbotApp(t)
	session := createSession(t, app)
	busy := createSession(t, app)
	_, _, _ = sessions.Update(busy.Id, func(s *entity.ChatSession) error {
		s.State = constant.ChatSessionStateAwaitingResponse
		return nil
	})

	tests := []struct {
		name     string
		path     string
		body     string
		wantCode int
	}{
		{name: "bad id", path: "/api/chatbot/v1/session/not-a-uuid/message", body: `{"text":"hi"}`, wantCode: 400},
		{name: "bad body", path: "/api/chatbot/v1/session/" + session.Id.String() + "/message", body: `{"text":`, wantCode: 400},
		{name: "missing text", path: "/api/chatbot/v1/session/" + session.Id.String() + "/message", body: `{}`, wantCode: 400},
		{name: "blank text", path: "/api/chatbot/v1/session/" + session.Id.String() + "/message", body: `{"text":"   "}`, wantCode: 400},
		{name: "too long", path: "/api/chatbot/v1/session/" + session.Id.String() + "/message", body: `{"text":"` + strings.Repeat("a", 1001) + `"}`, wantCode: 400},
		{name: "unknown session", path: "/api/chatbot/v1/session/" + uuid.NewString() + "/message", body: `{"text":"hi"}`, wantCode: 404},
		{name: "reply pending", path: "/api/chatbot/v1/session/" + busy.Id.String() + "/message", body: `{"text":"hi"}`, wantCode: 409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(t, app, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantCode, env.Code)
		})
	}
}

func TestChatbotController_Ask(t *testing.T) {
	app, _ := newChatbotApp(t)

	code, env := do(t, app, http.MethodPost, "/api/chatbot/v1/ask", `{"query":"hello"}`)
	require.Equal(t, http.StatusOK, code)

	var res dto.AskResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "greeting", res.Source)

	code, _ = do(t, app, http.MethodPost, "/api/chatbot/v1/ask", `{"query":""}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestChatbotController_FAQs(t *testing.T) {
	app, _ := newChatbotApp(t)

	code, env := do(t, app, http.MethodGet, "/api/chatbot/v1/faqs?category=products", "")
	require.Equal(t, http.StatusOK, code)
	var list []dto.FAQResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 12)

	code, env = do(t, app, http.MethodGet, "/api/chatbot/v1/faqs/categories", "")
	require.Equal(t, http.StatusOK, code)
	var cats dto.FAQCategoriesResponse
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	assert.Equal(t, "General", cats.Categories[0])
	assert.Contains(t, cats.Categories, "Products")

	code, _ = do(t, app, http.MethodGet, "/api/chatbot/v1/faqs/prod-1", "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = do(t, app, http.MethodGet, "/api/chatbot/v1/faqs/missing", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, env = do(t, app, http.MethodGet, "/api/chatbot/v1/quick-questions", "")
	require.Equal(t, http.StatusOK, code)
	var quick dto.QuickQuestionsResponse
	require.NoError(t, json.Unmarshal(env.Data, &quick))
	assert.NotEmpty(t, quick.Questions)
}

func TestChatbotController_EscalateWithoutChannel(t *testing.T) {
	app, _ := newChatbotApp(t)
	session := createSession(t, app)

	code, _ := do(t, app, http.MethodPost, "/api/chatbot/v1/session/"+session.Id.String()+"/escalate",
		`{"name":"Priya","email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, app, http.MethodPost, "/api/chatbot/v1/session/"+session.Id.String()+"/escalate",
		`{"name":"Priya","email":"priya@hotel.in"}`)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrEmptyMessage, 400},
		{service.ErrInvalidCredentials, 401},
		{service.ErrSessionNotFound, 404},
		{service.ErrFAQNotFound, 404},
		{service.ErrSessionBusy, 409},
		{service.ErrStoreUnavailable, 503},
		{service.ErrEscalationUnavailable, 503},
		{fiber.NewError(fiber.StatusTeapot, "tea"), 418},
		{context.Canceled, 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorStatus(tt.err), tt.err.Error())
	}
}
