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

// vendorRepository implements the domain.VendorRepository interface using GORM.
type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository is the constructor for vendorRepository.
func NewVendorRepository(db *gorm.DB) repository.VendorRepository {
	return &vendorRepository{db: db}
}

func (repo *vendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	vendorM := fromVendorDomain(vendor)

	if err := repo.db.WithContext(ctx).Create(vendorM).Error; err != nil {
		return errors.Wrap(err, "failed to create vendor")
	}

	vendor.ID = vendorM.ID
	vendor.CreatedAt = vendorM.CreatedAt
	vendor.UpdatedAt = vendorM.UpdatedAt

	return nil
}

func (repo *vendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	var vendorM model.VendorModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&vendorM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to find vendor by id")
	}

	return toVendorDomain(&vendorM), nil
}

func (repo *vendorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Vendor, error) {
	var vendorM model.VendorModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&vendorM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to find vendor by user id")
	}

	return toVendorDomain(&vendorM), nil
}

// List returns vendors newest-first with owner details preloaded, optionally
// filtered by moderation status.
func (repo *vendorRepository) List(ctx context.Context, status *entity.ApprovalStatus) ([]*entity.Vendor, error) {
	query := repo.db.WithContext(ctx).Preload("User").Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var vendorMs []model.VendorModel
	if err := query.Find(&vendorMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list vendors")
	}

	vendors := make([]*entity.Vendor, 0, len(vendorMs))
	for i := range vendorMs {
		vendor := toVendorDomain(&vendorMs[i])
		if vendorMs[i].User != nil {
			vendor.OwnerName = vendorMs[i].User.Name
			vendor.OwnerEmail = vendorMs[i].User.Email
		}
		vendors = append(vendors, vendor)
	}

	return vendors, nil
}

// UpdateStatus sets the moderation status and returns the updated vendor.
func (repo *vendorRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ApprovalStatus) (*entity.Vendor, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.VendorModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to update vendor status")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrVendorNotFound
	}

	return repo.FindByID(ctx, id)
}

func toVendorDomain(m *model.VendorModel) *entity.Vendor {
	return &entity.Vendor{
		ID:        m.ID,
		UserID:    m.UserID,
		ShopName:  m.ShopName,
		Status:    entity.ApprovalStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromVendorDomain(vendor *entity.Vendor) *model.VendorModel {
	return &model.VendorModel{
		ID:       vendor.ID,
		UserID:   vendor.UserID,
		ShopName: vendor.ShopName,
		Status:   string(vendor.Status),
	}
}
