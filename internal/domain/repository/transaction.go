package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a
// specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// Otherwise, it's committed. All repository operations within the function
	// use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific
// transaction, so all operations inside one Execute call share its
// atomicity and locks.
type RepositoryFactory interface {
	// NewUserRepository returns a UserRepository bound to the current transaction.
	NewUserRepository() UserRepository

	// NewVendorRepository returns a VendorRepository bound to the current transaction.
	NewVendorRepository() VendorRepository

	// NewProductRepository returns a ProductRepository bound to the current transaction.
	NewProductRepository() ProductRepository

	// NewOrderRepository returns an OrderRepository bound to the current transaction.
	NewOrderRepository() OrderRepository

	// NewCommissionRepository returns a CommissionRepository bound to the current transaction.
	NewCommissionRepository() CommissionRepository

	// NewSettlementRepository returns a SettlementRepository bound to the current transaction.
	NewSettlementRepository() SettlementRepository

	// NewRefreshTokenRepository returns a RefreshTokenRepository bound to the current transaction.
	NewRefreshTokenRepository() RefreshTokenRepository
}
