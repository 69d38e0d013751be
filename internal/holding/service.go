package holding

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/folio/internal/sanitize"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=holding
type Repository interface {
	CreateHolding(ctx context.Context, h *Holding) error
	GetHolding(ctx context.Context, id uuid.UUID) (*Holding, error)
	FindBySymbol(ctx context.Context, userID uuid.UUID, symbol string) (*Holding, error)
	ListHoldings(ctx context.Context, userID uuid.UUID) ([]*Holding, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID   uuid.UUID
	Symbol   string
	Name     string
	Exchange string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Holding, error) {
	symbol := NormalizeSymbol(params.Symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrInvalid)
	}

	if params.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: user is required", ErrInvalid)
	}

	exchange := NormalizeSymbol(params.Exchange)
	if exchange == "" {
		exchange = "NSE"
	}

	h := &Holding{
		UserID:   params.UserID,
		Symbol:   symbol,
		Name:     sanitize.Text(params.Name),
		Exchange: exchange,
	}
	if err := s.repo.CreateHolding(ctx, h); err != nil {
		return nil, err
	}

	return h, nil
}

// Ensure returns the user's holding for symbol, creating it when missing.
func (s *Service) Ensure(ctx context.Context, userID uuid.UUID, symbol string) (*Holding, error) {
	h, err := s.repo.FindBySymbol(ctx, userID, NormalizeSymbol(symbol))
	if err == nil {
		return h, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	return s.Create(ctx, CreateParams{UserID: userID, Symbol: symbol})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Holding, error) {
	return s.repo.GetHolding(ctx, id)
}

// GetOwned returns the holding only if it belongs to userID.
func (s *Service) GetOwned(ctx context.Context, userID, id uuid.UUID) (*Holding, error) {
	h, err := s.repo.GetHolding(ctx, id)
	if err != nil {
		return nil, err
	}

	if h.UserID != userID {
		return nil, ErrNotFound
	}

	return h, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Holding, error) {
	return s.repo.ListHoldings(ctx, userID)
}
