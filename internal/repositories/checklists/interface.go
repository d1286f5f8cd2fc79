package checklists

import (
	"context"

	"github.com/dmitrijs2005/fleetcheck/internal/models"
)

// Repository describes the record store operations used by services.
type Repository interface {
	// ListAll returns every record in stored order. Never fails.
	ListAll(ctx context.Context) []models.Checklist

	// GetByID returns the record with id, or false when absent or unreadable.
	GetByID(ctx context.Context, id string) (models.Checklist, bool)

	// Upsert replaces the record with the same id in place, or appends it.
	// The record is stored as given.
	Upsert(ctx context.Context, c models.Checklist) error

	// DeleteByID removes the record with id and rewrites the collection,
	// even when no record matched.
	DeleteByID(ctx context.Context, id string) error
}
