package postgres

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productRepository implements the domain.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return repo.findByID(ctx, id, false)
}

// FindByIDForUpdate takes a SELECT ... FOR UPDATE row lock. It must run
// inside TransactionManager.Execute; the lock is released on commit or
// rollback.
func (repo *productRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return repo.findByID(ctx, id, true)
}

func (repo *productRepository) findByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*entity.Product, error) {
	query := repo.db.WithContext(ctx)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var productM model.ProductModel
	if err := query.Where("id = ?", id).First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// DecrementStock subtracts qty guarded by stock >= qty, so stock can never
// go negative even outside a row lock.
func (repo *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return repository.ErrStockExhausted
		}

		return errors.Wrap(result.Error, "failed to decrement stock")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStockExhausted
	}

	return nil
}

// ListPublic returns approved, visible products newest-first with shop names.
func (repo *productRepository) ListPublic(ctx context.Context) ([]*entity.Product, error) {
	var productMs []model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Vendor").
		Where("status = ? AND is_visible = ?", string(entity.ApprovalApproved), true).
		Order("created_at DESC").
		Find(&productMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list public products")
	}

	return toProductDomainList(productMs), nil
}

func (repo *productRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.Product, error) {
	var productMs []model.ProductModel
	err := repo.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&productMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vendor products")
	}

	return toProductDomainList(productMs), nil
}

func (repo *productRepository) List(ctx context.Context, status *entity.ApprovalStatus) ([]*entity.Product, error) {
	query := repo.db.WithContext(ctx).Preload("Vendor").Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var productMs []model.ProductModel
	if err := query.Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return toProductDomainList(productMs), nil
}

// Update persists the full editable state of a product in one write.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"title":       product.Title,
			"description": product.Description,
			"price":       product.Price,
			"stock":       product.Stock,
			"status":      string(product.Status),
			"is_visible":  product.IsVisible,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func (repo *productRepository) UpdateModeration(ctx context.Context, id uuid.UUID, status entity.ApprovalStatus, visible bool) (*entity.Product, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"is_visible": visible,
		})
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to update product moderation")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrProductNotFound
	}

	return repo.FindByID(ctx, id)
}

func (repo *productRepository) SetVisibility(ctx context.Context, id uuid.UUID, visible bool) (*entity.Product, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Update("is_visible", visible)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to update product visibility")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrProductNotFound
	}

	return repo.FindByID(ctx, id)
}

// Delete removes a product only when the vendor owns it, so ownership and
// existence are checked in one statement.
func (repo *productRepository) Delete(ctx context.Context, id, vendorID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", id, vendorID).
		Delete(&model.ProductModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func toProductDomain(m *model.ProductModel) *entity.Product {
	product := &entity.Product{
		ID:          m.ID,
		VendorID:    m.VendorID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Stock:       m.Stock,
		Status:      entity.ApprovalStatus(m.Status),
		IsVisible:   m.IsVisible,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Vendor != nil {
		product.ShopName = m.Vendor.ShopName
	}

	return product
}

func toProductDomainList(ms []model.ProductModel) []*entity.Product {
	products := make([]*entity.Product, 0, len(ms))
	for i := range ms {
		products = append(products, toProductDomain(&ms[i]))
	}

	return products
}

func fromProductDomain(product *entity.Product) *model.ProductModel {
	return &model.ProductModel{
		ID:          product.ID,
		VendorID:    product.VendorID,
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Status:      string(product.Status),
		IsVisible:   product.IsVisible,
	}
}
