package accounts

import (
	"context"

	"github.com/dmitrijs2005/fleetcheck/internal/models"
)

// Repository persists the account registry as one collection.
type Repository interface {
	// Load returns the registry. found is false when nothing was ever
	// written. A backend or decode failure is returned as an error.
	Load(ctx context.Context) (accounts []models.Account, found bool, err error)

	// Save rewrites the whole registry.
	Save(ctx context.Context, accounts []models.Account) error
}
