package impl

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// settlementService implements the SettlementUsecase interface.
type settlementService struct {
	txManager      repository.TransactionManager
	settlementRepo repository.SettlementRepository
	commissionRepo repository.CommissionRepository
	vendorRepo     repository.VendorRepository
	logger         *slog.Logger
}

// NewSettlementService is the constructor for settlementService.
func NewSettlementService(
	txManager repository.TransactionManager,
	settlementRepo repository.SettlementRepository,
	commissionRepo repository.CommissionRepository,
	vendorRepo repository.VendorRepository,
	logger *slog.Logger,
) usecase.SettlementUsecase {
	return &settlementService{
		txManager:      txManager,
		settlementRepo: settlementRepo,
		commissionRepo: commissionRepo,
		vendorRepo:     vendorRepo,
		logger:         logger,
	}
}

// GenerateSettlement aggregates a vendor's commissions over [from, to] into
// a PENDING payout snapshot. Commission rows themselves are never mutated.
func (srv *settlementService) GenerateSettlement(ctx context.Context, input *usecase.GenerateSettlementInput) (*entity.Settlement, error) {
	if input.To.Before(input.From) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("period end must not precede period start")
	}

	if _, err := srv.vendorRepo.FindByID(ctx, input.VendorID); err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to fetch vendor")
	}

	var settlement *entity.Settlement

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		commissions, err := repos.NewCommissionRepository().FindByVendorInRange(ctx, input.VendorID, input.From, input.To)
		if err != nil {
			return errors.Wrap(err, "failed to fetch commissions")
		}
		if len(commissions) == 0 {
			return domainerrors.ErrNoEarnings
		}

		grossSales := decimal.Zero
		commissionTotal := decimal.Zero
		netAmount := decimal.Zero
		for _, c := range commissions {
			grossSales = grossSales.Add(c.CommissionAmount).Add(c.VendorEarning)
			commissionTotal = commissionTotal.Add(c.CommissionAmount)
			netAmount = netAmount.Add(c.VendorEarning)
		}

		settlement = &entity.Settlement{
			VendorID:        input.VendorID,
			GrossSales:      grossSales,
			CommissionTotal: commissionTotal,
			Amount:          netAmount,
			PeriodFrom:      input.From,
			PeriodTo:        input.To,
			Status:          entity.SettlementPending,
			GeneratedAt:     time.Now(),
		}

		if err := repos.NewSettlementRepository().Create(ctx, settlement); err != nil {
			return errors.Wrap(err, "failed to create settlement")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Settlement generated",
		"settlementID", settlement.ID,
		"vendorID", settlement.VendorID,
		"amount", settlement.Amount.String(),
	)

	return settlement, nil
}

// MarkSettlementPaid transitions PENDING to PAID inside a transaction so two
// concurrent payment calls cannot both succeed.
func (srv *settlementService) MarkSettlementPaid(ctx context.Context, id uuid.UUID) (*entity.Settlement, error) {
	var settlement *entity.Settlement

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		settlementRepo := repos.NewSettlementRepository()

		found, err := settlementRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrSettlementNotFound) {
				return domainerrors.ErrSettlementNotFound
			}

			return errors.Wrap(err, "failed to fetch settlement")
		}

		if found.Status == entity.SettlementPaid {
			return domainerrors.ErrSettlementAlreadyPaid
		}

		now := time.Now()
		found.Status = entity.SettlementPaid
		found.PaidAt = &now

		if err := settlementRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update settlement")
		}

		settlement = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Settlement paid", "settlementID", settlement.ID, "vendorID", settlement.VendorID)

	return settlement, nil
}

// ListSettlements returns all settlements newest-first.
func (srv *settlementService) ListSettlements(ctx context.Context) ([]*entity.Settlement, error) {
	settlements, err := srv.settlementRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list settlements")
	}

	return settlements, nil
}

// GetVendorEarnings builds the vendor-facing earnings report over [from, to].
// An empty period is not an error here; the report just sums to zero.
func (srv *settlementService) GetVendorEarnings(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (*usecase.VendorEarnings, error) {
	if to.Before(from) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("period end must not precede period start")
	}

	commissions, err := srv.commissionRepo.FindByVendorInRange(ctx, vendorID, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch commissions")
	}

	report := &usecase.VendorEarnings{
		Details: make([]usecase.EarningDetail, 0, len(commissions)),
	}
	total := decimal.Zero
	for _, c := range commissions {
		total = total.Add(c.VendorEarning)
		report.Details = append(report.Details, usecase.EarningDetail{
			ID:            c.ID.String(),
			OrderID:       c.OrderID.String(),
			VendorEarning: c.VendorEarning,
			Date:          c.CreatedAt,
		})
	}
	report.Summary.TotalEarnings = total

	return report, nil
}
