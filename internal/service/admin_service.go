package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"linen-chatbot-be/internal/config"
	"linen-chatbot-be/internal/dto"
	"linen-chatbot-be/internal/mapper"
	"linen-chatbot-be/internal/repository/cache"
	"linen-chatbot-be/internal/repository/contract"
	"linen-chatbot-be/internal/repository/specification"
	"linen-chatbot-be/pkg/faq"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminRole        = "admin"
	adminTokenExpiry = 24 * time.Hour
	defaultPageLimit = 50
	maxPageLimit     = 200
	defaultTopLimit  = 10
)

type IAdminService interface {
	Login(ctx context.Context, request *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
	ListInteractions(ctx context.Context, request *dto.InteractionListRequest) (*dto.InteractionListResponse, error)
	OutcomeCounts(ctx context.Context) ([]dto.OutcomeCountResponse, error)
	TopQuestions(ctx context.Context, limit int) ([]dto.TopQuestionResponse, error)
}

// PopularityReader lists the most answered FAQ records.
type PopularityReader interface {
	Top(ctx context.Context, n int) ([]cache.FAQHit, error)
}

type adminService struct {
	keys         config.APIKeys
	interactions contract.ChatInteractionRepository
	popularity   PopularityReader
	corpus       *faq.Corpus
	mapper       *mapper.ChatMapper
}

// NewAdminService accepts nil interactions or popularity; the matching endpoints then report ErrStoreUnavailable.
func NewAdminService(keys config.APIKeys, interactions contract.ChatInteractionRepository, popularity PopularityReader, corpus *faq.Corpus) IAdminService {
	return &adminService{
		keys:         keys,
		interactions: interactions,
		popularity:   popularity,
		corpus:       corpus,
		mapper:       mapper.NewChatMapper(),
	}
}

func (s *adminService) Login(ctx context.Context, request *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if s.keys.AdminEmail == "" || s.keys.AdminPassword == "" || s.keys.JWTSecret == "" {
		return nil, ErrInvalidCredentials
	}
	if !strings.EqualFold(strings.TrimSpace(request.Email), s.keys.AdminEmail) {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.keys.AdminPassword), []byte(request.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(adminTokenExpiry)
	claims := jwt.MapClaims{
		"user_id": s.keys.AdminEmail,
		"role":    AdminRole,
		"exp":     expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.keys.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign admin token: %w", err)
	}

	return &dto.AdminLoginResponse{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

func (s *adminService) ListInteractions(ctx context.Context, request *dto.InteractionListRequest) (*dto.InteractionListResponse, error) {
	if s.interactions == nil {
		return nil, ErrStoreUnavailable
	}

	limit := request.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := request.Offset
	if offset < 0 {
		offset = 0
	}

	filter := specification.ByOutcome{Outcome: request.Outcome}

	total, err := s.interactions.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items, err := s.interactions.FindAll(ctx,
		filter,
		specification.NewestFirst{},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.InteractionListResponse{Items: make([]dto.InteractionResponse, 0, len(items)), Total: total}
	for _, i := range items {
		res.Items = append(res.Items, s.mapper.ChatInteractionToResponse(i))
	}
	return res, nil
}

func (s *adminService) OutcomeCounts(ctx context.Context) ([]dto.OutcomeCountResponse, error) {
	if s.interactions == nil {
		return nil, ErrStoreUnavailable
	}

	rows, err := s.interactions.CountByOutcome(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OutcomeCountResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.OutcomeCountResponse{Outcome: r.Outcome, Count: r.Count})
	}
	return out, nil
}

// TopQuestions joins the hit counters with the corpus. Ids no longer in the corpus are skipped.
func (s *adminService) TopQuestions(ctx context.Context, limit int) ([]dto.TopQuestionResponse, error) {
	if s.popularity == nil {
		return nil, ErrStoreUnavailable
	}
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	hits, err := s.popularity.Top(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TopQuestionResponse, 0, len(hits))
	for _, h := range hits {
		rec, ok := s.corpus.Find(h.ID)
		if !ok {
			continue
		}
		out = append(out, dto.TopQuestionResponse{
			FaqId:    rec.ID,
			Question: rec.Question,
			Category: rec.Category,
			Hits:     h.Hits,
		})
	}
	return out, nil
}
