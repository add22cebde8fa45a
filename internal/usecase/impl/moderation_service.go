package impl

import (
	"context"
	"log/slog"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// moderationService implements the ModerationUsecase interface.
type moderationService struct {
	vendorRepo  repository.VendorRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// NewModerationService is the constructor for moderationService.
func NewModerationService(
	vendorRepo repository.VendorRepository,
	productRepo repository.ProductRepository,
	logger *slog.Logger,
) usecase.ModerationUsecase {
	return &moderationService{
		vendorRepo:  vendorRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

func (srv *moderationService) ListVendors(ctx context.Context, status *entity.ApprovalStatus) ([]*entity.Vendor, error) {
	vendors, err := srv.vendorRepo.List(ctx, status)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vendors")
	}

	return vendors, nil
}

func (srv *moderationService) ApproveVendor(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	return srv.setVendorStatus(ctx, id, entity.ApprovalApproved)
}

func (srv *moderationService) RejectVendor(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	return srv.setVendorStatus(ctx, id, entity.ApprovalRejected)
}

func (srv *moderationService) setVendorStatus(ctx context.Context, id uuid.UUID, status entity.ApprovalStatus) (*entity.Vendor, error) {
	vendor, err := srv.vendorRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to update vendor status")
	}

	srv.logger.Info("Vendor moderated", "vendorID", id, "status", status)

	return vendor, nil
}

func (srv *moderationService) ListProducts(ctx context.Context, status *entity.ApprovalStatus) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx, status)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// ApproveProduct approves a product and makes it visible in one write.
func (srv *moderationService) ApproveProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return srv.setProductModeration(ctx, id, entity.ApprovalApproved, true)
}

// RejectProduct rejects a product and hides it in one write.
func (srv *moderationService) RejectProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return srv.setProductModeration(ctx, id, entity.ApprovalRejected, false)
}

func (srv *moderationService) setProductModeration(ctx context.Context, id uuid.UUID, status entity.ApprovalStatus, visible bool) (*entity.Product, error) {
	product, err := srv.productRepo.UpdateModeration(ctx, id, status, visible)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to update product moderation")
	}

	srv.logger.Info("Product moderated", "productID", id, "status", status, "visible", visible)

	return product, nil
}

func (srv *moderationService) SetProductVisibility(ctx context.Context, id uuid.UUID, visible bool) (*entity.Product, error) {
	product, err := srv.productRepo.SetVisibility(ctx, id, visible)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to update product visibility")
	}

	srv.logger.Info("Product visibility changed", "productID", id, "visible", visible)

	return product, nil
}
