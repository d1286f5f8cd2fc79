// Package services contains the application services the FleetCheck CLI
// drives. This file defines the checklist service: seeding new records,
// validated saves, scoped listing and lookup, and random auto-fill.
package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/fleetcheck/internal/common"
	"github.com/dmitrijs2005/fleetcheck/internal/logging"
	"github.com/dmitrijs2005/fleetcheck/internal/models"
	"github.com/dmitrijs2005/fleetcheck/internal/repositories/checklists"
	"github.com/dmitrijs2005/fleetcheck/internal/visibility"
)

// ChecklistService defines the checklist operations for the CLI.
//
// Contract:
//   - New: a catalog-seeded record owned by the viewer. Nothing is stored.
//   - Save: validate, stamp and upsert a record.
//   - List: visible records, newest first.
//   - Get/Delete: a record the viewer cannot see behaves as absent.
//   - AutoFill: random test data over an existing record.
//
// Every method that touches the store honors ctx.
type ChecklistService interface {
	New(v visibility.Viewer) (models.Checklist, error)
	Save(ctx context.Context, v visibility.Viewer, c models.Checklist) (models.Checklist, error)
	List(ctx context.Context, v visibility.Viewer) []models.Checklist
	Get(ctx context.Context, v visibility.Viewer, id string) (models.Checklist, error)
	Delete(ctx context.Context, v visibility.Viewer, id string) error
	AutoFill(c models.Checklist, rng *rand.Rand) models.Checklist
}

type checklistService struct {
	store checklists.Repository
	now   func() time.Time
	newID func() (string, error)
	log   logging.Logger
}

type Option func(*checklistService)

func WithClock(now func() time.Time) Option {
	return func(s *checklistService) { s.now = now }
}

// WithIDGenerator replaces UUIDv7 record ids.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *checklistService) { s.newID = gen }
}

func WithLogger(l logging.Logger) Option {
	return func(s *checklistService) { s.log = l }
}

// NewChecklistService constructs a ChecklistService over the record store.
func NewChecklistService(store checklists.Repository, opts ...Option) ChecklistService {
	s := &checklistService{
		store: store,
		now:   time.Now,
		newID: func() (string, error) {
			id, err := uuid.NewV7()
			if err != nil {
				return "", err
			}
			return id.String(), nil
		},
		log: logging.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("component", "checklists")
	return s
}

func subject(v visibility.Viewer) string {
	if v == nil {
		return ""
	}
	return v.SubjectID()
}

func (s *checklistService) New(v visibility.Viewer) (models.Checklist, error) {
	sub := subject(v)
	if sub == "" {
		return models.Checklist{}, common.ErrUnauthenticated
	}
	id, err := s.newID()
	if err != nil {
		return models.Checklist{}, fmt.Errorf("generate checklist id: %w", err)
	}
	return models.NewChecklist(id, sub, s.now()), nil
}

// Save validates c and upserts it.
//
// Plate and driver must be non-blank and the sections must match the
// catalog. Section titles, emojis and item names always come from the
// catalog; only statuses and notes are taken from c. For a stored id the stored author and createdAt win, and a
// viewer who cannot see the stored record gets common.ErrorNotFound.
// updatedAt is stamped with the current time, never before createdAt.
func (s *checklistService) Save(ctx context.Context, v visibility.Viewer, c models.Checklist) (models.Checklist, error) {
	sub := subject(v)
	if sub == "" {
		return models.Checklist{}, common.ErrUnauthenticated
	}
	if strings.TrimSpace(c.ID) == "" {
		return models.Checklist{}, fmt.Errorf("%w: checklist id is required", common.ErrValidation)
	}
	if strings.TrimSpace(c.Plate) == "" {
		return models.Checklist{}, fmt.Errorf("%w: plate is required", common.ErrValidation)
	}
	if strings.TrimSpace(c.Driver) == "" {
		return models.Checklist{}, fmt.Errorf("%w: driver is required", common.ErrValidation)
	}
	if err := models.ValidateStructure(c); err != nil {
		return models.Checklist{}, err
	}

	now := s.now().UTC()
	out := models.CatalogLabels(c)

	if stored, ok := s.store.GetByID(ctx, c.ID); ok {
		if !visibility.CanSee(stored, v) {
			return models.Checklist{}, common.ErrorNotFound
		}
		out.UserID = stored.UserID
		out.CreatedAt = stored.CreatedAt
	} else {
		if out.UserID == "" || !v.IsAdmin() {
			out.UserID = sub
		}
		if out.CreatedAt.IsZero() {
			out.CreatedAt = now
		}
	}

	out.UpdatedAt = now
	if out.UpdatedAt.Before(out.CreatedAt) {
		out.UpdatedAt = out.CreatedAt
	}

	if err := s.store.Upsert(ctx, out); err != nil {
		return models.Checklist{}, err
	}
	s.log.Info(ctx, "checklist saved", "id", out.ID, "plate", out.Plate, "by", sub)
	return out, nil
}

func (s *checklistService) List(ctx context.Context, v visibility.Viewer) []models.Checklist {
	all := s.store.ListAll(ctx)
	models.SortNewestFirst(all)
	return visibility.VisibleRecords(all, v)
}

func (s *checklistService) Get(ctx context.Context, v visibility.Viewer, id string) (models.Checklist, error) {
	c, ok := s.store.GetByID(ctx, id)
	if !ok || !visibility.CanSee(c, v) {
		return models.Checklist{}, common.ErrorNotFound
	}
	return c, nil
}

func (s *checklistService) Delete(ctx context.Context, v visibility.Viewer, id string) error {
	c, ok := s.store.GetByID(ctx, id)
	if !ok || !visibility.CanSee(c, v) {
		return common.ErrorNotFound
	}
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "checklist deleted", "id", id, "by", subject(v))
	return nil
}

var autoFillStatuses = []models.Status{models.StatusOK, models.StatusRegular, models.StatusBad}

// AutoFill returns c with random header fields, statuses and notes. The
// id, author, date, time and createdAt of c are kept.
func (s *checklistService) AutoFill(c models.Checklist, rng *rand.Rand) models.Checklist {
	out := c.Clone()
	out.Plate = randomPlate(rng)
	out.Km = strconv.Itoa(10000 + rng.IntN(100000))
	out.Driver = "Motorista Teste " + strconv.Itoa(rng.IntN(100))
	out.GeneralNotes = "Checklist preenchido automaticamente para fins de teste."
	out.DriverSignature = "M. Teste"
	out.InspectorSignature = "I. Resp."

	out.Sections = models.CatalogSections()
	for i := range out.Sections {
		sec := &out.Sections[i]
		if rng.Float64() > 0.7 {
			sec.SectionNotes = "Nota aleatória para a seção " + sec.Title + "."
		}
		for j := range sec.Items {
			it := &sec.Items[j]
			it.Status = autoFillStatuses[rng.IntN(len(autoFillStatuses))]
			if rng.Float64() > 0.8 {
				it.Notes = "Observação para " + it.Name + "."
			}
		}
	}
	return out
}

func randomPlate(rng *rand.Rand) string {
	var b strings.Builder
	for range 3 {
		b.WriteByte(byte('A' + rng.IntN(26)))
	}
	b.WriteByte('-')
	for range 4 {
		b.WriteByte(byte('0' + rng.IntN(10)))
	}
	return b.String()
}
