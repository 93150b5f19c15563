package checkout

import (
	"context"

	"github.com/recyclelect/storefront-backend/internal/cart"
	"github.com/recyclelect/storefront-backend/internal/orders"
	"github.com/recyclelect/storefront-backend/internal/pricing"
	"github.com/recyclelect/storefront-backend/pkg/enums"
	"github.com/recyclelect/storefront-backend/pkg/errors"
)

// Snapshot pairs the wizard state with a live price quote for the
// session's cart.
type Snapshot struct {
	State *State        `json:"state"`
	Quote pricing.Quote `json:"quote"`
}

// Service drives the two-step checkout wizard: upgrades, then payment.
// Submit turns the draft into a persisted order and empties the cart.
type Service interface {
	Begin(ctx context.Context, sessionID string, method enums.DeliveryMethod) (Snapshot, error)
	Get(ctx context.Context, sessionID string) (Snapshot, error)
	SelectDelivery(ctx context.Context, sessionID string, method enums.DeliveryMethod) (Snapshot, error)
	SelectUpgrade(ctx context.Context, sessionID, categoryID, optionID string) (Snapshot, error)
	Advance(ctx context.Context, sessionID string) (Snapshot, error)
	Back(ctx context.Context, sessionID string) (Snapshot, error)
	UpdateForm(ctx context.Context, sessionID string, form PaymentForm) (Snapshot, error)
	Submit(ctx context.Context, sessionID string) (*orders.Order, error)
	Cancel(ctx context.Context, sessionID string) error
}

type service struct {
	repo       Repository
	carts      cart.Service
	calculator *pricing.Calculator
	resolver   pricing.Resolver
	orders     orders.Service
}

func NewService(repo Repository, carts cart.Service, calculator *pricing.Calculator, resolver pricing.Resolver, orderSvc orders.Service) Service {
	return &service{
		repo:       repo,
		carts:      carts,
		calculator: calculator,
		resolver:   resolver,
		orders:     orderSvc,
	}
}

// Begin starts a fresh wizard, replacing any abandoned draft for the
// session. The cart must contain at least one item.
func (s *service) Begin(ctx context.Context, sessionID string, method enums.DeliveryMethod) (Snapshot, error) {
	if method == "" {
		method = enums.DeliveryMethodStandard
	}
	if !method.IsValid() {
		return Snapshot{}, errors.New(errors.CodeValidation, "unknown delivery method")
	}
	items, err := s.carts.Items(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	if items.IsEmpty() {
		return Snapshot{}, errors.New(errors.CodeStateConflict, "cannot start checkout with an empty cart")
	}

	state := newState(method)
	if err := s.repo.Save(ctx, sessionID, state); err != nil {
		return Snapshot{}, err
	}
	return s.snapshot(state, items), nil
}

func (s *service) Get(ctx context.Context, sessionID string) (Snapshot, error) {
	state, items, err := s.load(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return s.snapshot(state, items), nil
}

func (s *service) SelectDelivery(ctx context.Context, sessionID string, method enums.DeliveryMethod) (Snapshot, error) {
	if !method.IsValid() {
		return Snapshot{}, errors.New(errors.CodeValidation, "unknown delivery method")
	}
	state, items, err := s.load(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	if state.Step == enums.CheckoutStepSubmitted {
		return Snapshot{}, errors.New(errors.CodeStateConflict, "checkout already submitted")
	}
	state.DeliveryMethod = method
	if err := s.repo.Save(ctx, sessionID, state); err != nil {
		return Snapshot{}, err
	}
	return s.snapshot(state, items), nil
}

// SelectUpgrade records an option choice for a category; an empty
// option id clears the category. Only valid on the upgrades step.
func (s *service) SelectUpgrade(ctx context.Context, sessionID, categoryID, optionID string) (Snapshot, error) {
	state, items, err := s.load(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	if state.Step != enums.CheckoutStepUpgrades {
		return Snapshot{}, errors.New(errors.CodeStateConflict, "upgrades can only change on the upgrades step")
	}
	if optionID == "" {
		delete(state.Upgrades, categoryID)
	} else {
		if !s.calculator.HasUpgrade(categoryID, optionID) {
			return Snapshot{}, errors.New(errors.CodeValidation, "unknown upgrade option").
				WithDetails(map[string]string{"category": categoryID, "option": optionID})
		}
		state.Upgrades[categoryID] = optionID
	}
	if err := s.repo.Save(ctx, sessionID, state); err != nil {
		return Snapshot{}, err
	}
	return s.snapshot(state, items), nil
}

func (s *service) Advance(ctx context.Context, sessionID string) (Snapshot, error) {
	state, items, err := s.load(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	switch state.Step {
	case enums.CheckoutStepUpgrades:
		state.Step = enums.CheckoutStepPayment
	case enums.CheckoutStepPayment:
		return Snapshot{}, errors.New(errors.CodeStateConflict, "payment step completes via submit")
	default:
		return Snapshot{}, errors.New(errors.CodeStateConflict, "checkout already submitted")
	}
	if err := s.repo.Save(ctx, sessionID, state); err != nil {
		return Snapshot{}, err
	}
	return s.snapshot(state, items), nil
}

// Back returns to the previous step. On the first step it is a no-op,
// leaving the wizard where it is.
func (s *service) Back(ctx context.Context, sessionID string) (Snapshot, error) {
	state, items, err := s.load(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	if state.Step == enums.CheckoutStepSubmitted {
		return Snapshot{}, errors.New(errors.CodeStateConflict, "checkout already submitted")
	}
	if state.Step == enums.CheckoutStepPayment {
		state.Step = enums.CheckoutStepUpgrades
		if err := s.repo.Save(ctx, sessionID, state); err != nil {
			return Snapshot{}, err
		}
	}
	return s.snapshot(state, items), nil
}

func (s *service) UpdateForm(ctx context.Context, sessionID string, form PaymentForm) (Snapshot, error) {
	state, items, err := s.load(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	if state.Step != enums.CheckoutStepPayment {
		return Snapshot{}, errors.New(errors.CodeStateConflict, "payment form belongs to the payment step")
	}
	state.Form = form
	if err := s.repo.Save(ctx, sessionID, state); err != nil {
		return Snapshot{}, err
	}
	return s.snapshot(state, items), nil
}

// Submit finalizes the checkout: the quote is frozen into an order, the
// cart empties, and the wizard state is discarded.
func (s *service) Submit(ctx context.Context, sessionID string) (*orders.Order, error) {
	state, items, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Step != enums.CheckoutStepPayment {
		return nil, errors.New(errors.CodeStateConflict, "submit is only valid on the payment step")
	}
	if missing := state.Form.MissingFields(); len(missing) > 0 {
		return nil, errors.New(errors.CodeValidation, "payment form is incomplete").
			WithDetails(map[string]any{"missing_fields": missing})
	}
	if items.IsEmpty() {
		return nil, errors.New(errors.CodeStateConflict, "cart emptied during checkout")
	}

	quote := s.calculator.QuoteFor(items, state.DeliveryMethod, state.Upgrades)
	lines := make([]orders.LineInput, 0, len(items))
	for id, qty := range items {
		line := orders.LineInput{ProductID: id, Quantity: qty}
		if product, ok := s.resolver.Resolve(id); ok {
			line.Name = product.Name
			line.UnitPriceCents = product.PriceCents
		}
		lines = append(lines, line)
	}

	order, err := s.orders.Create(ctx, orders.CreateInput{
		SessionID:      sessionID,
		DeliveryMethod: state.DeliveryMethod,
		Lines:          lines,
		Quote:          quote,
	})
	if err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel discards the wizard state. The cart is untouched.
func (s *service) Cancel(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}

func (s *service) load(ctx context.Context, sessionID string) (*State, cart.Cart, error) {
	state, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if state == nil {
		return nil, nil, errors.New(errors.CodeNotFound, "no checkout in progress")
	}
	items, err := s.carts.Items(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	return state, items, nil
}

func (s *service) snapshot(state *State, items cart.Cart) Snapshot {
	return Snapshot{
		State: state,
		Quote: s.calculator.QuoteFor(items, state.DeliveryMethod, state.Upgrades),
	}
}
