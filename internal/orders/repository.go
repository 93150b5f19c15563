package orders

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/recyclelect/storefront-backend/pkg/enums"
	"github.com/recyclelect/storefront-backend/pkg/errors"
)

// Repository persists orders in the relational store.
type Repository interface {
	Create(ctx context.Context, order *Order) error
	ListBySession(ctx context.Context, sessionID string) ([]Order, error)
	GetByReference(ctx context.Context, sessionID, reference string) (*Order, error)
	UpdateStatus(ctx context.Context, reference string, status enums.OrderStatus, trackingCode string) error
	NextReference(ctx context.Context, now time.Time) (string, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// AutoMigrate creates the order tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Order{}, &Line{})
}

func (r *gormRepository) Create(ctx context.Context, order *Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return errors.Wrap(errors.CodeDependency, err, "inserting order")
	}
	return nil
}

func (r *gormRepository) ListBySession(ctx context.Context, sessionID string) ([]Order, error) {
	var found []Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&found).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "listing orders")
	}
	return found, nil
}

func (r *gormRepository) GetByReference(ctx context.Context, sessionID, reference string) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("session_id = ? AND reference = ?", sessionID, reference).
		First(&order).Error
	if err == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "loading order")
	}
	return &order, nil
}

func (r *gormRepository) UpdateStatus(ctx context.Context, reference string, status enums.OrderStatus, trackingCode string) error {
	updates := map[string]any{"status": status}
	if trackingCode != "" {
		updates["tracking_code"] = trackingCode
	}
	result := r.db.WithContext(ctx).
		Model(&Order{}).
		Where("reference = ?", reference).
		Updates(updates)
	if result.Error != nil {
		return errors.Wrap(errors.CodeDependency, result.Error, "updating order status")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.CodeNotFound, "order not found")
	}
	return nil
}

// NextReference issues the next CMD-YYYY-NNN reference for the given
// year. The sequence restarts every year.
func (r *gormRepository) NextReference(ctx context.Context, now time.Time) (string, error) {
	year := now.UTC().Year()
	prefix := fmt.Sprintf("CMD-%d-", year)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&Order{}).
		Where("reference LIKE ?", prefix+"%").
		Count(&count).Error
	if err != nil {
		return "", errors.Wrap(errors.CodeDependency, err, "counting order references")
	}
	return fmt.Sprintf("%s%03d", prefix, count+1), nil
}
