package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/recyclelect/storefront-backend/internal/pricing"
	"github.com/recyclelect/storefront-backend/pkg/enums"
	"github.com/recyclelect/storefront-backend/pkg/errors"
)

// LineInput is one cart line captured at submit time.
type LineInput struct {
	ProductID      string
	Name           string
	Quantity       int
	UnitPriceCents int64
}

// CreateInput captures everything needed to record a submitted checkout.
type CreateInput struct {
	SessionID      string
	DeliveryMethod enums.DeliveryMethod
	Lines          []LineInput
	Quote          pricing.Quote
}

// Service records and serves per-session order history.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*Order, error)
	ListBySession(ctx context.Context, sessionID string) ([]Order, error)
	GetByReference(ctx context.Context, sessionID, reference string) (*Order, error)
	MarkShipped(ctx context.Context, reference, trackingCode string) error
	MarkDelivered(ctx context.Context, reference string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Order, error) {
	if input.SessionID == "" {
		return nil, errors.New(errors.CodeValidation, "session id is required")
	}
	if len(input.Lines) == 0 {
		return nil, errors.New(errors.CodeValidation, "order needs at least one line")
	}

	reference, err := s.repo.NextReference(ctx, s.now())
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(input.Lines))
	for _, line := range input.Lines {
		lines = append(lines, Line{
			ProductID:      line.ProductID,
			Name:           line.Name,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
		})
	}

	order := &Order{
		ID:                 uuid.NewString(),
		Reference:          reference,
		SessionID:          input.SessionID,
		Status:             enums.OrderStatusProcessing,
		DeliveryMethod:     input.DeliveryMethod,
		ItemCount:          input.Quote.TotalItems,
		SubtotalCents:      input.Quote.SubtotalCents,
		DeliveryFeeCents:   input.Quote.DeliveryFeeCents,
		UpgradesTotalCents: input.Quote.UpgradesTotalCents,
		GrandTotalCents:    input.Quote.GrandTotalCents,
		SavingsCents:       input.Quote.SavingsCents,
		Lines:              lines,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) ListBySession(ctx context.Context, sessionID string) ([]Order, error) {
	return s.repo.ListBySession(ctx, sessionID)
}

func (s *service) GetByReference(ctx context.Context, sessionID, reference string) (*Order, error) {
	return s.repo.GetByReference(ctx, sessionID, reference)
}

func (s *service) MarkShipped(ctx context.Context, reference, trackingCode string) error {
	if trackingCode == "" {
		return errors.New(errors.CodeValidation, "tracking code is required")
	}
	return s.repo.UpdateStatus(ctx, reference, enums.OrderStatusShipped, trackingCode)
}

func (s *service) MarkDelivered(ctx context.Context, reference string) error {
	return s.repo.UpdateStatus(ctx, reference, enums.OrderStatusDelivered, "")
}
