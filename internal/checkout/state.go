package checkout

import (
	"strings"

	"github.com/recyclelect/storefront-backend/pkg/enums"
)

// PaymentForm is the buyer-facing form captured on the payment step.
// Submission requires every field to be filled in; no field content is
// verified beyond presence, card data included, because no payment
// processor is attached.
type PaymentForm struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	CardNumber string `json:"card_number"`
	CardExpiry string `json:"card_expiry"`
	CardCVV    string `json:"card_cvv"`
}

// MissingFields lists the form fields still blank, in display order.
func (f PaymentForm) MissingFields() []string {
	fields := []struct {
		name  string
		value string
	}{
		{"first_name", f.FirstName},
		{"last_name", f.LastName},
		{"email", f.Email},
		{"address", f.Address},
		{"city", f.City},
		{"postal_code", f.PostalCode},
		{"card_number", f.CardNumber},
		{"card_expiry", f.CardExpiry},
		{"card_cvv", f.CardCVV},
	}
	missing := make([]string, 0)
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// Complete reports whether every form field is filled.
func (f PaymentForm) Complete() bool {
	return len(f.MissingFields()) == 0
}

// State is the in-progress checkout for one session.
type State struct {
	Step           enums.CheckoutStep   `json:"step"`
	DeliveryMethod enums.DeliveryMethod `json:"delivery_method"`
	Upgrades       map[string]string    `json:"upgrades"`
	Form           PaymentForm          `json:"form"`
}

func newState(method enums.DeliveryMethod) *State {
	return &State{
		Step:           enums.CheckoutStepUpgrades,
		DeliveryMethod: method,
		Upgrades:       make(map[string]string),
	}
}
