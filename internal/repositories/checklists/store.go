package checklists

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/fleetcheck/internal/common"
	"github.com/dmitrijs2005/fleetcheck/internal/kv"
	"github.com/dmitrijs2005/fleetcheck/internal/logging"
	"github.com/dmitrijs2005/fleetcheck/internal/models"
)

type Store struct {
	backend kv.Backend
	log     logging.Logger

	// mu serializes load-modify-write cycles within the process.
	mu sync.Mutex
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

func NewStore(backend kv.Backend, opts ...Option) *Store {
	s := &Store{backend: backend, log: logging.NewNop()}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("component", "checklist_store")
	return s
}

// collection is one loaded snapshot plus its index. The index points at the
// first record carrying each id.
type collection struct {
	records []models.Checklist
	index   map[string]int
}

func newCollection(records []models.Checklist) *collection {
	c := &collection{records: records, index: make(map[string]int, len(records))}
	for i, r := range records {
		if _, dup := c.index[r.ID]; !dup {
			c.index[r.ID] = i
		}
	}
	return c
}

func (s *Store) load(ctx context.Context) (*collection, error) {
	raw, found, err := s.backend.Get(ctx, common.KeyChecklists)
	if err != nil {
		return nil, fmt.Errorf("%w: load checklists: %v", common.ErrStorage, err)
	}
	if !found || raw == "" {
		return newCollection(nil), nil
	}

	var records []models.Checklist
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: decode checklists: %v", common.ErrStorage, err)
	}
	return newCollection(records), nil
}

func (s *Store) save(ctx context.Context, records []models.Checklist) error {
	if records == nil {
		records = []models.Checklist{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode checklists: %w", err)
	}
	if err := s.backend.Set(ctx, common.KeyChecklists, string(data)); err != nil {
		return fmt.Errorf("%w: save checklists: %v", common.ErrStorage, err)
	}
	return nil
}

// loadOrEmpty is the fail-closed read used by the query paths.
func (s *Store) loadOrEmpty(ctx context.Context) *collection {
	col, err := s.load(ctx)
	if err != nil {
		s.log.Warn(ctx, "checklists unreadable, treating as empty", "err", err)
		return newCollection(nil)
	}
	return col
}

func (s *Store) ListAll(ctx context.Context) []models.Checklist {
	col := s.loadOrEmpty(ctx)
	out := make([]models.Checklist, len(col.records))
	for i, r := range col.records {
		out[i] = r.Clone()
	}
	return out
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Checklist, bool) {
	col := s.loadOrEmpty(ctx)
	i, ok := col.index[id]
	if !ok {
		return models.Checklist{}, false
	}
	return col.records[i].Clone(), true
}

func (s *Store) Upsert(ctx context.Context, c models.Checklist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, err := s.load(ctx)
	if err != nil {
		return err
	}

	rec := c.Clone()
	records := col.records
	if i, ok := col.index[rec.ID]; ok {
		records[i] = rec
	} else {
		records = append(records, rec)
	}

	if err := s.save(ctx, records); err != nil {
		return err
	}
	s.log.Debug(ctx, "checklist upserted", "id", rec.ID, "total", len(records))
	return nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Checklist, 0, len(col.records))
	for _, r := range col.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}

	if err := s.save(ctx, kept); err != nil {
		return err
	}
	s.log.Debug(ctx, "checklist deleted", "id", id, "removed", len(col.records)-len(kept))
	return nil
}
