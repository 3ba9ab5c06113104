package procurement

import (
	"context"

	"github.com/partsflow/backend/internal/domain/procurement"
)

// TransactionScope provides transactional access to procurement repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. Receiving uses this to persist the goods receipt and the
// updated order as one unit: either both land or neither does.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to procurement repositories
// sharing one underlying database transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the purchase order repository scoped to the current transaction
	OrderRepo() procurement.PurchaseOrderRepository
	// ReceiptRepo returns the goods receipt repository scoped to the current transaction
	ReceiptRepo() procurement.GoodsReceiptRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests or when transactional guarantees are not required.
type NoOpTransactionScope struct {
	orderRepo   procurement.PurchaseOrderRepository
	receiptRepo procurement.GoodsReceiptRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(orderRepo procurement.PurchaseOrderRepository, receiptRepo procurement.GoodsReceiptRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:   orderRepo,
		receiptRepo: receiptRepo,
	}
}

// Execute runs the function without transactional guarantees
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the purchase order repository
func (s *NoOpTransactionScope) OrderRepo() procurement.PurchaseOrderRepository {
	return s.orderRepo
}

// ReceiptRepo returns the goods receipt repository
func (s *NoOpTransactionScope) ReceiptRepo() procurement.GoodsReceiptRepository {
	return s.receiptRepo
}
