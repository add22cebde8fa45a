package postgres

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// settlementRepository implements the domain.SettlementRepository interface using GORM.
type settlementRepository struct {
	db *gorm.DB
}

// NewSettlementRepository is the constructor for settlementRepository.
func NewSettlementRepository(db *gorm.DB) repository.SettlementRepository {
	return &settlementRepository{db: db}
}

func (repo *settlementRepository) Create(ctx context.Context, settlement *entity.Settlement) error {
	settlementM := fromSettlementDomain(settlement)

	if err := repo.db.WithContext(ctx).Create(settlementM).Error; err != nil {
		return errors.Wrap(err, "failed to create settlement")
	}

	settlement.ID = settlementM.ID

	return nil
}

func (repo *settlementRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Settlement, error) {
	var settlementM model.SettlementModel
	err := repo.db.WithContext(ctx).
		Preload("Vendor").
		Where("id = ?", id).
		First(&settlementM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSettlementNotFound
		}

		return nil, errors.Wrap(err, "failed to find settlement by id")
	}

	return toSettlementDomain(&settlementM), nil
}

// List returns all settlements newest-first with shop names attached.
func (repo *settlementRepository) List(ctx context.Context) ([]*entity.Settlement, error) {
	var settlementMs []model.SettlementModel
	err := repo.db.WithContext(ctx).
		Preload("Vendor").
		Order("generated_at DESC").
		Find(&settlementMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list settlements")
	}

	settlements := make([]*entity.Settlement, 0, len(settlementMs))
	for i := range settlementMs {
		settlements = append(settlements, toSettlementDomain(&settlementMs[i]))
	}

	return settlements, nil
}

func (repo *settlementRepository) Update(ctx context.Context, settlement *entity.Settlement) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SettlementModel{}).
		Where("id = ?", settlement.ID).
		Updates(map[string]any{
			"status":  string(settlement.Status),
			"paid_at": settlement.PaidAt,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update settlement")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSettlementNotFound
	}

	return nil
}

func toSettlementDomain(m *model.SettlementModel) *entity.Settlement {
	settlement := &entity.Settlement{
		ID:              m.ID,
		VendorID:        m.VendorID,
		GrossSales:      m.GrossSales,
		CommissionTotal: m.CommissionTotal,
		Amount:          m.Amount,
		PeriodFrom:      m.PeriodFrom,
		PeriodTo:        m.PeriodTo,
		Status:          entity.SettlementStatus(m.Status),
		GeneratedAt:     m.GeneratedAt,
		PaidAt:          m.PaidAt,
	}
	if m.Vendor != nil {
		settlement.ShopName = m.Vendor.ShopName
	}

	return settlement
}

func fromSettlementDomain(settlement *entity.Settlement) *model.SettlementModel {
	return &model.SettlementModel{
		ID:              settlement.ID,
		VendorID:        settlement.VendorID,
		GrossSales:      settlement.GrossSales,
		CommissionTotal: settlement.CommissionTotal,
		Amount:          settlement.Amount,
		PeriodFrom:      settlement.PeriodFrom,
		PeriodTo:        settlement.PeriodTo,
		Status:          string(settlement.Status),
		GeneratedAt:     settlement.GeneratedAt,
		PaidAt:          settlement.PaidAt,
	}
}
