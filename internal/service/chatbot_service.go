package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"linen-chatbot-be/internal/constant"
	"linen-chatbot-be/internal/dto"
	"linen-chatbot-be/internal/entity"
	"linen-chatbot-be/internal/mapper"
	"linen-chatbot-be/internal/pkg/logger"
	"linen-chatbot-be/internal/pkg/metrics"
	"linen-chatbot-be/internal/repository/memory"
	"linen-chatbot-be/internal/tracer"
	"linen-chatbot-be/pkg/faq"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// IChatbotService defines the chatbot service interface
type IChatbotService interface {
	CreateSession(ctx context.Context) (*dto.ChatSessionResponse, error)
	GetSession(ctx context.Context, sessionId uuid.UUID) (*dto.ChatSessionResponse, error)
	EndSession(ctx context.Context, sessionId uuid.UUID) error
	SendMessage(ctx context.Context, sessionId uuid.UUID, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error)
	ListFAQs(ctx context.Context, category string) ([]dto.FAQResponse, error)
	GetFAQ(ctx context.Context, id string) (*dto.FAQResponse, error)
	Categories(ctx context.Context) *dto.FAQCategoriesResponse
	QuickQuestions(ctx context.Context) *dto.QuickQuestionsResponse
}

// PopularityCounter counts FAQ hits.
type PopularityCounter interface {
	Increment(ctx context.Context, faqID string) error
}

// ChatbotDeps are the chatbot collaborators. Publisher and Popularity may be nil.
type ChatbotDeps struct {
	Engine      *faq.Engine
	Sessions    *memory.SessionRepository
	Publisher   IPublisherService
	Popularity  PopularityCounter
	Metrics     metrics.Recorder
	Logger      logger.ILogger
	TypingDelay time.Duration
}

type chatbotService struct {
	engine      *faq.Engine
	sessions    *memory.SessionRepository
	publisher   IPublisherService
	popularity  PopularityCounter
	metrics     metrics.Recorder
	logger      logger.ILogger
	tracer      trace.Tracer
	mapper      *mapper.ChatMapper
	typingDelay time.Duration
	now         func() time.Time
}

func NewChatbotService(deps ChatbotDeps) IChatbotService {
	if deps.Engine == nil {
		deps.Engine = faq.Default()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}

	cs := &chatbotService{
		engine:      deps.Engine,
		sessions:    deps.Sessions,
		publisher:   deps.Publisher,
		popularity:  deps.Popularity,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		tracer:      otel.Tracer(tracer.Name),
		mapper:      mapper.NewChatMapper(),
		typingDelay: deps.TypingDelay,
		now:         time.Now,
	}

	cs.sessions.OnEvicted(func(string) {
		cs.metrics.SetActiveSessions(cs.sessions.Count())
	})
	return cs
}

// CreateSession opens an idle session greeted with the starter questions.
func (cs *chatbotService) CreateSession(ctx context.Context) (*dto.ChatSessionResponse, error) {
	now := cs.now()
	session := &entity.ChatSession{
		Id:        uuid.New(),
		State:     constant.ChatSessionStateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	session.Append(entity.ChatMessage{
		Id:          uuid.New(),
		Text:        constant.WelcomeMessage,
		Sender:      constant.ChatMessageSenderBot,
		Timestamp:   now,
		Suggestions: faq.QuickQuestions(),
	})

	cs.sessions.Save(session)
	cs.metrics.SetActiveSessions(cs.sessions.Count())
	cs.logger.Info("CHATBOT", "Session created", map[string]interface{}{"session_id": session.Id.String()})

	return cs.mapper.ChatSessionToResponse(session), nil
}

func (cs *chatbotService) GetSession(ctx context.Context, sessionId uuid.UUID) (*dto.ChatSessionResponse, error) {
	session, ok := cs.sessions.Get(sessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cs.mapper.ChatSessionToResponse(session), nil
}

// EndSession drops the session, as when the widget is closed.
func (cs *chatbotService) EndSession(ctx context.Context, sessionId uuid.UUID) error {
	if !cs.sessions.Delete(sessionId) {
		return ErrSessionNotFound
	}
	cs.logger.Info("CHATBOT", "Session ended", map[string]interface{}{"session_id": sessionId.String()})
	return nil
}

// SendMessage records the user message, waits out the typing delay and appends the bot reply.
// A second message while a reply is pending is rejected. Cancelling ctx during the delay
// discards the reply and returns the session to idle.
func (cs *chatbotService) SendMessage(ctx context.Context, sessionId uuid.UUID, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	text := strings.TrimSpace(request.Text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	ctx, span := cs.tracer.Start(ctx, "chatbot.SendMessage", trace.WithAttributes(
		attribute.String("chat.session_id", sessionId.String()),
	))
	defer span.End()

	sent := entity.ChatMessage{
		Id:        uuid.New(),
		Text:      text,
		Sender:    constant.ChatMessageSenderUser,
		Timestamp: cs.now(),
	}

	_, found, err := cs.sessions.Update(sessionId, func(s *entity.ChatSession) error {
		if s.State == constant.ChatSessionStateAwaitingResponse {
			return ErrSessionBusy
		}
		s.Append(sent)
		s.State = constant.ChatSessionStateAwaitingResponse
		return nil
	})
	if !found {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := cs.wait(ctx); err != nil {
		cs.resetToIdle(sessionId)
		span.SetStatus(codes.Error, "cancelled")
		cs.logger.Info("CHATBOT", "Pending reply discarded", map[string]interface{}{"session_id": sessionId.String()})
		return nil, err
	}

	started := time.Now()
	resp := cs.engine.Respond(text)
	suggestions := cs.engine.RelatedQuestions(resp.Text, text)
	elapsed := time.Since(started)

	reply := entity.ChatMessage{
		Id:          uuid.New(),
		Text:        resp.Text,
		Sender:      constant.ChatMessageSenderBot,
		Timestamp:   cs.now(),
		Suggestions: suggestions,
	}

	_, found, _ = cs.sessions.Update(sessionId, func(s *entity.ChatSession) error {
		s.Append(reply)
		s.State = constant.ChatSessionStateIdle
		return nil
	})
	if !found {
		// ended while the reply was pending
		return nil, ErrSessionNotFound
	}

	span.SetAttributes(
		attribute.String("chat.source", string(resp.Source)),
		attribute.Int("chat.score", resp.Score),
	)
	cs.record(ctx, sessionId.String(), text, resp, elapsed)

	return &dto.SendMessageResponse{
		SessionId: sessionId,
		Sent:      cs.mapper.ChatMessageToResponse(&sent),
		Reply:     cs.mapper.ChatMessageToResponse(&reply),
		Source:    string(resp.Source),
		FaqId:     faqID(resp),
		Score:     resp.Score,
	}, nil
}

func (cs *chatbotService) wait(ctx context.Context) error {
	if cs.typingDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(cs.typingDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (cs *chatbotService) resetToIdle(sessionId uuid.UUID) {
	_, _, _ = cs.sessions.Update(sessionId, func(s *entity.ChatSession) error {
		s.State = constant.ChatSessionStateIdle
		return nil
	})
}

// Ask answers one question without a session.
func (cs *chatbotService) Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error) {
	query := strings.TrimSpace(request.Query)
	if query == "" {
		return nil, ErrEmptyMessage
	}

	started := time.Now()
	resp := cs.engine.Respond(query)
	suggestions := cs.engine.RelatedQuestions(resp.Text, query)
	cs.record(ctx, "", query, resp, time.Since(started))

	return &dto.AskResponse{
		Answer:      resp.Text,
		Suggestions: suggestions,
		Topic:       faq.RelatedTopic(resp.Text, query),
		Source:      string(resp.Source),
		FaqId:       faqID(resp),
		Score:       resp.Score,
	}, nil
}

func (cs *chatbotService) ListFAQs(ctx context.Context, category string) ([]dto.FAQResponse, error) {
	corpus := cs.engine.Corpus()

	var records []faq.Record
	if strings.TrimSpace(category) == "" {
		records = corpus.Records()
	} else {
		records = corpus.ByCategory(category)
	}

	out := make([]dto.FAQResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toFAQResponse(r))
	}
	return out, nil
}

func (cs *chatbotService) GetFAQ(ctx context.Context, id string) (*dto.FAQResponse, error) {
	r, ok := cs.engine.Corpus().Find(id)
	if !ok {
		return nil, ErrFAQNotFound
	}
	res := toFAQResponse(r)
	return &res, nil
}

func (cs *chatbotService) Categories(ctx context.Context) *dto.FAQCategoriesResponse {
	return &dto.FAQCategoriesResponse{Categories: cs.engine.Corpus().Categories()}
}

func (cs *chatbotService) QuickQuestions(ctx context.Context) *dto.QuickQuestionsResponse {
	return &dto.QuickQuestionsResponse{Questions: faq.QuickQuestions()}
}

// record reports a reply to metrics, the popularity counter and the interaction log.
// Failures are logged and never reach the caller.
func (cs *chatbotService) record(ctx context.Context, sessionId, query string, resp faq.Response, elapsed time.Duration) {
	cs.metrics.ObserveResponse(string(resp.Source), resp.Score, elapsed)

	if cs.popularity != nil && resp.Record != nil {
		if err := cs.popularity.Increment(ctx, resp.Record.ID); err != nil {
			cs.logger.Warn("CHATBOT", "Failed to count FAQ hit", map[string]interface{}{"error": err.Error(), "faq_id": resp.Record.ID})
		}
	}

	if cs.publisher == nil {
		return
	}
	payload, err := json.Marshal(dto.ChatInteractionMessage{
		SessionId:  sessionId,
		Query:      query,
		Tokens:     resp.Tokens,
		Outcome:    string(resp.Source),
		FaqId:      faqID(resp),
		Score:      resp.Score,
		OccurredAt: cs.now().UTC(),
	})
	if err != nil {
		cs.logger.Error("CHATBOT", "Failed to encode interaction", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := cs.publisher.Publish(context.WithoutCancel(ctx), payload); err != nil {
		cs.logger.Warn("CHATBOT", "Failed to publish interaction", map[string]interface{}{"error": err.Error()})
	}
}

func faqID(resp faq.Response) string {
	if resp.Record == nil {
		return ""
	}
	return resp.Record.ID
}

func toFAQResponse(r faq.Record) dto.FAQResponse {
	return dto.FAQResponse{
		Id:       r.ID,
		Question: r.Question,
		Answer:   r.Answer,
		Category: r.Category,
	}
}
