package postgres

import (
	"context"
	"time"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// commissionRepository implements the domain.CommissionRepository interface using GORM.
type commissionRepository struct {
	db *gorm.DB
}

// NewCommissionRepository is the constructor for commissionRepository.
func NewCommissionRepository(db *gorm.DB) repository.CommissionRepository {
	return &commissionRepository{db: db}
}

func (repo *commissionRepository) Create(ctx context.Context, commission *entity.Commission) error {
	commissionM := fromCommissionDomain(commission)

	if err := repo.db.WithContext(ctx).Create(commissionM).Error; err != nil {
		return errors.Wrap(err, "failed to create commission")
	}

	commission.ID = commissionM.ID
	commission.CreatedAt = commissionM.CreatedAt

	return nil
}

// FindByVendorInRange returns a vendor's commissions created within
// [from, to], both ends inclusive, oldest-first.
func (repo *commissionRepository) FindByVendorInRange(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]*entity.Commission, error) {
	var commissionMs []model.CommissionModel
	err := repo.db.WithContext(ctx).
		Where("vendor_id = ? AND created_at >= ? AND created_at <= ?", vendorID, from, to).
		Order("created_at ASC").
		Find(&commissionMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list commissions")
	}

	commissions := make([]*entity.Commission, 0, len(commissionMs))
	for i := range commissionMs {
		commissions = append(commissions, toCommissionDomain(&commissionMs[i]))
	}

	return commissions, nil
}

func toCommissionDomain(m *model.CommissionModel) *entity.Commission {
	return &entity.Commission{
		ID:               m.ID,
		OrderID:          m.OrderID,
		OrderItemID:      m.OrderItemID,
		VendorID:         m.VendorID,
		CommissionRate:   m.CommissionRate,
		CommissionAmount: m.CommissionAmount,
		VendorEarning:    m.VendorEarning,
		CreatedAt:        m.CreatedAt,
	}
}

func fromCommissionDomain(commission *entity.Commission) *model.CommissionModel {
	return &model.CommissionModel{
		ID:               commission.ID,
		OrderID:          commission.OrderID,
		OrderItemID:      commission.OrderItemID,
		VendorID:         commission.VendorID,
		CommissionRate:   commission.CommissionRate,
		CommissionAmount: commission.CommissionAmount,
		VendorEarning:    commission.VendorEarning,
	}
}
