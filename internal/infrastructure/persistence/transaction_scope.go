package persistence

import (
	"context"

	appprocurement "github.com/partsflow/backend/internal/application/procurement"
	"github.com/partsflow/backend/internal/domain/procurement"
	"gorm.io/gorm"
)

// GormTransactionScope implements the procurement transaction scope on
// top of a GORM transaction. Repositories handed to the callback share
// the transaction, so the receipt insert and the order update commit or
// roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appprocurement.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{
			orderRepo:   NewGormPurchaseOrderRepository(tx),
			receiptRepo: NewGormGoodsReceiptRepository(tx),
		})
	})
}

type gormTransactionalRepositories struct {
	orderRepo   procurement.PurchaseOrderRepository
	receiptRepo procurement.GoodsReceiptRepository
}

func (r *gormTransactionalRepositories) OrderRepo() procurement.PurchaseOrderRepository {
	return r.orderRepo
}

func (r *gormTransactionalRepositories) ReceiptRepo() procurement.GoodsReceiptRepository {
	return r.receiptRepo
}
