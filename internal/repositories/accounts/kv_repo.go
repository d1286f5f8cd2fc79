// Package accounts persists the account registry under the "accounts" key as
// a JSON array.
package accounts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/fleetcheck/internal/common"
	"github.com/dmitrijs2005/fleetcheck/internal/kv"
	"github.com/dmitrijs2005/fleetcheck/internal/models"
)

type KVRepository struct {
	backend kv.Backend
}

func NewKVRepository(backend kv.Backend) *KVRepository {
	return &KVRepository{backend: backend}
}

func (r *KVRepository) Load(ctx context.Context) ([]models.Account, bool, error) {
	raw, found, err := r.backend.Get(ctx, common.KeyAccounts)
	if err != nil {
		return nil, false, fmt.Errorf("%w: load accounts: %v", common.ErrStorage, err)
	}
	if !found {
		return nil, false, nil
	}

	var accounts []models.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, true, fmt.Errorf("%w: decode accounts: %v", common.ErrStorage, err)
	}
	return accounts, true, nil
}

func (r *KVRepository) Save(ctx context.Context, accounts []models.Account) error {
	if accounts == nil {
		accounts = []models.Account{}
	}
	data, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	if err := r.backend.Set(ctx, common.KeyAccounts, string(data)); err != nil {
		return fmt.Errorf("%w: save accounts: %v", common.ErrStorage, err)
	}
	return nil
}

// FindByEmail returns the index of the account with exactly this email, or -1.
func FindByEmail(accounts []models.Account, email string) int {
	for i, a := range accounts {
		if a.Email == email {
			return i
		}
	}
	return -1
}
