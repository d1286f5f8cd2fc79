package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fleetcheck/internal/common"
	"github.com/dmitrijs2005/fleetcheck/internal/kv/kvtest"
	"github.com/dmitrijs2005/fleetcheck/internal/kv/memory"
	"github.com/dmitrijs2005/fleetcheck/internal/models"
	"github.com/dmitrijs2005/fleetcheck/internal/repositories/checklists"
	"github.com/dmitrijs2005/fleetcheck/internal/session"
)

type viewer struct {
	admin bool
	sub   string
}

func (v viewer) IsAdmin() bool     { return v.admin }
func (v viewer) SubjectID() string { return v.sub }

var (
	admin = viewer{admin: true, sub: "admin-001"}
	ana   = viewer{sub: "ana"}
	bob   = viewer{sub: "bob"}
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newService(t *testing.T) (ChecklistService, *fakeClock, *kvtest.Faulty) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)}
	n := 0
	faulty := kvtest.NewFaulty(memory.New())
	svc := NewChecklistService(checklists.NewStore(faulty),
		WithClock(clock.now),
		WithIDGenerator(func() (string, error) {
			n++
			return "c" + strconv.Itoa(n), nil
		}),
	)
	return svc, clock, faulty
}

func filled(t *testing.T, svc ChecklistService, v viewer) models.Checklist {
	t.Helper()
	c, err := svc.New(v)
	require.NoError(t, err)
	c.Plate = "ABC-1234"
	c.Driver = "João"
	return c
}

func TestNew(t *testing.T) {
	svc, clock, _ := newService(t)

	c, err := svc.New(ana)
	require.NoError(t, err)
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, "ana", c.UserID)
	assert.Equal(t, "2026-03-10", c.Date)
	assert.Equal(t, "09:30", c.Time)
	assert.Equal(t, clock.t, c.CreatedAt)
	assert.NoError(t, models.ValidateStructure(c))

	_, err = svc.New(nil)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestNew_IDGeneratorFailure(t *testing.T) {
	svc := NewChecklistService(checklists.NewStore(memory.New()),
		WithIDGenerator(func() (string, error) { return "", errors.New("entropy") }))
	_, err := svc.New(ana)
	require.Error(t, err)
}

func TestNew_DefaultIDsAreUUIDv7(t *testing.T) {
	svc := NewChecklistService(checklists.NewStore(memory.New()))
	c, err := svc.New(ana)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7`), c.ID)
}

func TestSave_Validation(t *testing.T) {
	svc, _, f := newService(t)
	ctx := context.Background()

	c := filled(t, svc, ana)
	c.Plate = "  "
	_, err := svc.Save(ctx, ana, c)
	assert.ErrorIs(t, err, common.ErrValidation)

	c = filled(t, svc, ana)
	c.Driver = ""
	_, err = svc.Save(ctx, ana, c)
	assert.ErrorIs(t, err, common.ErrValidation)

	c = filled(t, svc, ana)
	c.Sections[0].Items = c.Sections[0].Items[1:]
	_, err = svc.Save(ctx, ana, c)
	assert.ErrorIs(t, err, models.ErrStructureMismatch)

	_, err = svc.Save(ctx, nil, filled(t, svc, ana))
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	assert.Equal(t, 0, f.Sets, "nothing written")
}

func TestSave_StampsAndPersists(t *testing.T) {
	svc, clock, _ := newService(t)
	ctx := context.Background()

	c := filled(t, svc, ana)
	created := c.CreatedAt

	clock.t = clock.t.Add(time.Hour)
	saved, err := svc.Save(ctx, ana, c)
	require.NoError(t, err)
	assert.Equal(t, created, saved.CreatedAt)
	assert.Equal(t, clock.t, saved.UpdatedAt)

	got, err := svc.Get(ctx, ana, c.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestSave_UpdatedNeverBeforeCreated(t *testing.T) {
	svc, clock, _ := newService(t)

	c := filled(t, svc, ana)
	c.CreatedAt = clock.t.Add(time.Hour)
	saved, err := svc.Save(context.Background(), ana, c)
	require.NoError(t, err)
	assert.Equal(t, saved.CreatedAt, saved.UpdatedAt)
}

func TestSave_ExistingKeepsAuthorAndCreatedAt(t *testing.T) {
	svc, clock, _ := newService(t)
	ctx := context.Background()

	first, err := svc.Save(ctx, ana, filled(t, svc, ana))
	require.NoError(t, err)

	edit := first.Clone()
	edit.UserID = "admin-001"
	edit.CreatedAt = time.Time{}
	edit.GeneralNotes = "revisado"
	clock.t = clock.t.Add(24 * time.Hour)

	saved, err := svc.Save(ctx, admin, edit)
	require.NoError(t, err)
	assert.Equal(t, "ana", saved.UserID)
	assert.Equal(t, first.CreatedAt, saved.CreatedAt)
	assert.Equal(t, clock.t, saved.UpdatedAt)

	list := svc.List(ctx, ana)
	require.Len(t, list, 1)
	assert.Equal(t, "revisado", list[0].GeneralNotes)
}

func TestSave_CannotOverwriteOthers(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	mine, err := svc.Save(ctx, ana, filled(t, svc, ana))
	require.NoError(t, err)

	hijack := mine.Clone()
	hijack.Plate = "XXX-0000"
	_, err = svc.Save(ctx, bob, hijack)
	require.ErrorIs(t, err, common.ErrorNotFound)

	got, err := svc.Get(ctx, ana, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABC-1234", got.Plate)
}

func TestSave_UserCannotAssignForeignAuthor(t *testing.T) {
	svc, _, _ := newService(t)

	c := filled(t, svc, bob)
	saved, err := svc.Save(context.Background(), ana, c)
	require.NoError(t, err)
	assert.Equal(t, "ana", saved.UserID)
}

func TestSave_BlankUserIDIsFilled(t *testing.T) {
	svc, _, _ := newService(t)

	c := filled(t, svc, admin)
	c.UserID = ""
	saved, err := svc.Save(context.Background(), admin, c)
	require.NoError(t, err)
	assert.Equal(t, "admin-001", saved.UserID)
}

func TestSave_KeepsCatalogLabels(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	c := filled(t, svc, ana)
	c.Sections[0].Title = "HACKED"
	c.Sections[0].Emoji = "X"
	c.Sections[0].Items[0].Name = "renamed item"
	c.Sections[0].Items[0].Status = models.StatusRegular
	c.Sections[0].SectionNotes = "ok"

	_, err := svc.Save(ctx, ana, c)
	require.NoError(t, err)

	got, err := svc.Get(ctx, ana, c.ID)
	require.NoError(t, err)
	want := models.CatalogSections()[0]
	assert.Equal(t, want.Title, got.Sections[0].Title)
	assert.Equal(t, want.Emoji, got.Sections[0].Emoji)
	assert.Equal(t, want.Items[0].Name, got.Sections[0].Items[0].Name)
	assert.Equal(t, models.StatusRegular, got.Sections[0].Items[0].Status)
	assert.Equal(t, "ok", got.Sections[0].SectionNotes)
}

func TestSave_StorageFailure(t *testing.T) {
	svc, _, f := newService(t)
	f.SetErr = errors.New("disk full")

	_, err := svc.Save(context.Background(), ana, filled(t, svc, ana))
	require.ErrorIs(t, err, common.ErrStorage)
}

func TestList_ScopedAndNewestFirst(t *testing.T) {
	svc, clock, _ := newService(t)
	ctx := context.Background()

	var saved []models.Checklist
	for _, v := range []viewer{ana, bob, ana} {
		c := filled(t, svc, v)
		s, err := svc.Save(ctx, v, c)
		require.NoError(t, err)
		saved = append(saved, s)
		clock.t = clock.t.Add(time.Minute)
	}

	adminList := svc.List(ctx, admin)
	assert.Equal(t, []string{"c3", "c2", "c1"}, idsOf(adminList))

	assert.Equal(t, []string{"c3", "c1"}, idsOf(svc.List(ctx, ana)))
	assert.Equal(t, []string{"c2"}, idsOf(svc.List(ctx, bob)))
	assert.Empty(t, svc.List(ctx, nil))
	assert.Empty(t, svc.List(ctx, viewer{}))
}

func TestList_WithNilSession(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	_, err := svc.Save(ctx, ana, filled(t, svc, ana))
	require.NoError(t, err)

	var none *session.Session
	assert.Empty(t, svc.List(ctx, none))
}

func TestGetDelete_Scoped(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	c, err := svc.Save(ctx, ana, filled(t, svc, ana))
	require.NoError(t, err)

	_, err = svc.Get(ctx, bob, c.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, bob, c.ID), common.ErrorNotFound)

	_, err = svc.Get(ctx, admin, c.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, ana, c.ID))
	_, err = svc.Get(ctx, ana, c.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, ana, c.ID), common.ErrorNotFound)
}

func TestDelete_StorageFailure(t *testing.T) {
	svc, _, f := newService(t)
	ctx := context.Background()
	c, err := svc.Save(ctx, ana, filled(t, svc, ana))
	require.NoError(t, err)

	f.SetErr = errors.New("read-only")
	require.ErrorIs(t, svc.Delete(ctx, admin, c.ID), common.ErrStorage)

	f.SetErr = nil
	_, err = svc.Get(ctx, ana, c.ID)
	assert.NoError(t, err)
}

var platePattern = regexp.MustCompile(`^[A-Z]{3}-[0-9]{4}$`)

func TestAutoFill(t *testing.T) {
	svc, _, _ := newService(t)
	base := filled(t, svc, ana)
	rng := rand.New(rand.NewPCG(1, 2))

	for range 50 {
		c := svc.AutoFill(base, rng)

		assert.Equal(t, base.ID, c.ID)
		assert.Equal(t, base.UserID, c.UserID)
		assert.Equal(t, base.CreatedAt, c.CreatedAt)
		assert.Equal(t, base.Date, c.Date)
		assert.Regexp(t, platePattern, c.Plate)

		km, err := strconv.Atoi(c.Km)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, km, 10000)
		assert.Less(t, km, 110000)

		assert.Regexp(t, `^Motorista Teste \d{1,2}$`, c.Driver)
		assert.Equal(t, "M. Teste", c.DriverSignature)
		assert.Equal(t, "I. Resp.", c.InspectorSignature)
		require.NoError(t, models.ValidateStructure(c))

		for _, s := range c.Sections {
			for _, it := range s.Items {
				assert.True(t, it.Status.IsSet(), "%s/%s", s.ID, it.ID)
			}
		}
	}

	for _, s := range base.Sections {
		for _, it := range s.Items {
			assert.False(t, it.Status.IsSet(), "input is not modified")
		}
	}
}

func TestAutoFill_Deterministic(t *testing.T) {
	svc, _, _ := newService(t)
	base := filled(t, svc, ana)

	a := svc.AutoFill(base, rand.New(rand.NewPCG(7, 7)))
	b := svc.AutoFill(base, rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, a, b)
}

func idsOf(records []models.Checklist) []string {
	out := []string{}
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
