package sales

import (
	"context"

	"github.com/datamark/backend/internal/domain/sales"
)

// TransactionalRepositories provides access to the repositories a sale
// commit needs, all bound to the same database transaction.
type TransactionalRepositories interface {
	// Sales returns the sale repository scoped to the current transaction
	Sales() sales.SaleRepository

	// Stock returns the stock decrementer scoped to the current transaction
	Stock() sales.StockDecrementer
}

// TransactionScope executes a function atomically. If the function
// returns an error everything done through the repositories is rolled
// back, including any stock decrements that already succeeded.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}
