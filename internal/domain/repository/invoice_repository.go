package repository

import (
	"context"
	"errors"

	"github.com/mcg25035/smilepay-adapter-api/internal/domain/entity"
)

// ErrNotFound is returned by Delete when the invoice does not exist.
var ErrNotFound = errors.New("repository: invoice not found")

// InvoiceRepository is the single source of truth for invoice state. Reads
// return records that do not alias the store; callers may mutate them freely.
// Concurrency discipline (per-invoice critical sections) is owned by the
// payment service, not by the repository.
type InvoiceRepository interface {
	// GetByID returns (nil, nil) when the invoice does not exist.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// Put inserts or fully replaces the invoice and its line items.
	Put(ctx context.Context, invoice *entity.Invoice) error
	// Delete removes the invoice; deleting an absent id is an error.
	Delete(ctx context.Context, id string) error
}
