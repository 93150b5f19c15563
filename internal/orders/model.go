package orders

import (
	"time"

	"github.com/recyclelect/storefront-backend/pkg/enums"
)

// Order is a submitted checkout, persisted with a full price snapshot
// so later catalog edits never rewrite history.
type Order struct {
	ID                 string               `gorm:"primaryKey;type:text" json:"id"`
	Reference          string               `gorm:"uniqueIndex;not null" json:"reference"`
	SessionID          string               `gorm:"index;not null" json:"-"`
	Status             enums.OrderStatus    `gorm:"not null" json:"status"`
	DeliveryMethod     enums.DeliveryMethod `gorm:"not null" json:"delivery_method"`
	ItemCount          int                  `json:"item_count"`
	SubtotalCents      int64                `json:"subtotal_cents"`
	DeliveryFeeCents   int64                `json:"delivery_fee_cents"`
	UpgradesTotalCents int64                `json:"upgrades_total_cents"`
	GrandTotalCents    int64                `json:"grand_total_cents"`
	SavingsCents       int64                `json:"savings_cents"`
	TrackingCode       string               `json:"tracking_code,omitempty"`
	Lines              []Line               `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"-"`
}

// Line is one ordered product at the price it sold for.
type Line struct {
	ID             uint   `gorm:"primaryKey" json:"-"`
	OrderID        string `gorm:"index;not null" json:"-"`
	ProductID      string `gorm:"not null" json:"product_id"`
	Name           string `json:"name"`
	Quantity       int    `gorm:"not null" json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}
