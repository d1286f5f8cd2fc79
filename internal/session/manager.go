package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/fleetcheck/internal/common"
	"github.com/dmitrijs2005/fleetcheck/internal/kv"
	"github.com/dmitrijs2005/fleetcheck/internal/logging"
	"github.com/dmitrijs2005/fleetcheck/internal/models"
	"github.com/dmitrijs2005/fleetcheck/internal/repositories/accounts"
)

// DefaultSeedAdmin is written to an empty registry by Bootstrap.
var DefaultSeedAdmin = models.Account{
	ID:    "admin-001",
	Email: "admin@example.com",
	Name:  "Administrador",
	Role:  models.RoleAdmin,
}

// Manager owns the account registry and the current session. Its methods
// are safe for concurrent use.
type Manager struct {
	backend  kv.Backend
	accounts accounts.Repository
	codec    Codec
	log      logging.Logger
	now      func() time.Time
	newID    func() (string, error)
	seed     models.Account

	mu      sync.Mutex
	current *Session
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithCodec replaces the default PlainCodec.
func WithCodec(c Codec) Option {
	return func(m *Manager) { m.codec = c }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator replaces UUIDv7 account ids.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(m *Manager) { m.newID = gen }
}

func WithSeedAdmin(a models.Account) Option {
	return func(m *Manager) { m.seed = a }
}

// WithAccounts overrides the registry repository (defaults to one over the
// same backend).
func WithAccounts(r accounts.Repository) Option {
	return func(m *Manager) { m.accounts = r }
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func NewManager(backend kv.Backend, opts ...Option) *Manager {
	m := &Manager{
		backend: backend,
		codec:   PlainCodec{},
		log:     logging.NewNop(),
		now:     time.Now,
		newID:   newUUIDv7,
		seed:    DefaultSeedAdmin,
	}
	for _, o := range opts {
		o(m)
	}
	if m.accounts == nil {
		m.accounts = accounts.NewKVRepository(backend)
	}
	m.log = m.log.With("component", "session")
	return m
}

func (m *Manager) clock() time.Time { return m.now().UTC() }

// Bootstrap seeds the admin account into an absent or empty registry, then
// restores the persisted session, if any. It is safe to call repeatedly.
//
// An unreadable registry is left alone. A missing or undecodable credential
// leaves no current session. Only a failed seed write is returned.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	registry, _, err := m.accounts.Load(ctx)
	switch {
	case err != nil:
		m.log.Warn(ctx, "account registry unreadable, skipping seed", "err", err)
	case len(registry) == 0:
		admin := m.seed
		if admin.CreatedAt.IsZero() {
			admin.CreatedAt = m.clock()
		}
		registry = []models.Account{admin}
		if err := m.accounts.Save(ctx, registry); err != nil {
			return err
		}
		m.log.Info(ctx, "seeded admin account", "email", admin.Email)
	}

	m.current = m.restore(ctx, registry)
	return nil
}

func (m *Manager) restore(ctx context.Context, registry []models.Account) *Session {
	token, found, err := m.backend.Get(ctx, common.KeySession)
	if err != nil {
		m.log.Warn(ctx, "session unreadable, starting signed out", "err", err)
		return nil
	}
	if !found || token == "" {
		return nil
	}

	claims, err := m.codec.Decode(token)
	if err != nil {
		m.log.Warn(ctx, "stored credential rejected, starting signed out", "err", err)
		return nil
	}

	acc := claims.Account()
	for _, a := range registry {
		if a.ID == acc.ID {
			acc.CreatedAt = a.CreatedAt
			break
		}
	}
	return &Session{Token: token, Account: acc, IssuedAt: claims.IssuedAt}
}

// Register creates a user account, persists it and signs it in. The role is
// always user. The email is matched exactly as given. password is wiped and
// otherwise ignored.
//
// If the credential cannot be persisted the previous registry is restored,
// so a failed Register leaves no account behind.
func (m *Manager) Register(ctx context.Context, email string, password []byte, name string) (models.Account, error) {
	defer common.WipeByteArray(password)

	if email == "" {
		return models.Account{}, fmt.Errorf("%w: email is required", common.ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	registry, _, err := m.accounts.Load(ctx)
	if err != nil {
		return models.Account{}, err
	}
	if accounts.FindByEmail(registry, email) >= 0 {
		return models.Account{}, common.ErrDuplicateAccount
	}

	id, err := m.newID()
	if err != nil {
		return models.Account{}, fmt.Errorf("generate account id: %w", err)
	}
	acc := models.Account{
		ID:        id,
		Email:     email,
		Name:      strings.TrimSpace(name),
		Role:      models.RoleUser,
		CreatedAt: m.clock(),
	}

	sess, err := m.mint(acc)
	if err != nil {
		return models.Account{}, err
	}

	updated := append(append([]models.Account(nil), registry...), acc)
	if err := m.accounts.Save(ctx, updated); err != nil {
		return models.Account{}, err
	}

	if err := m.persist(ctx, sess); err != nil {
		if rbErr := m.accounts.Save(ctx, registry); rbErr != nil {
			m.log.Error(ctx, "account rollback failed", "id", acc.ID, "err", rbErr)
		}
		return models.Account{}, err
	}
	m.log.Info(ctx, "account registered", "id", acc.ID, "email", acc.Email)
	return acc, nil
}

// Login signs in the account with exactly this email. password is wiped and
// otherwise ignored.
func (m *Manager) Login(ctx context.Context, email string, password []byte) (models.Account, error) {
	defer common.WipeByteArray(password)

	m.mu.Lock()
	defer m.mu.Unlock()

	registry, _, err := m.accounts.Load(ctx)
	if err != nil {
		return models.Account{}, err
	}
	i := accounts.FindByEmail(registry, email)
	if i < 0 {
		return models.Account{}, common.ErrAccountNotFound
	}

	acc := registry[i]
	if err := m.signIn(ctx, acc); err != nil {
		return models.Account{}, err
	}
	return acc, nil
}

// signIn mints and persists a credential for acc and makes it current.
func (m *Manager) signIn(ctx context.Context, acc models.Account) error {
	sess, err := m.mint(acc)
	if err != nil {
		return err
	}
	return m.persist(ctx, sess)
}

func (m *Manager) mint(acc models.Account) (*Session, error) {
	issued := m.clock()
	token, err := m.codec.Mint(ClaimsFor(acc, issued))
	if err != nil {
		return nil, fmt.Errorf("mint credential: %w", err)
	}
	return &Session{Token: token, Account: acc, IssuedAt: issued}, nil
}

// persist writes the credential of sess. The current session only changes
// once the write succeeded.
func (m *Manager) persist(ctx context.Context, sess *Session) error {
	if err := m.backend.Set(ctx, common.KeySession, sess.Token); err != nil {
		return fmt.Errorf("%w: save session: %v", common.ErrStorage, err)
	}
	m.current = sess
	m.log.Debug(ctx, "session started", "sub", sess.Account.ID, "role", sess.Account.Role)
	return nil
}

// Logout removes the persisted credential. The current session is kept if
// the backend fails.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.backend.Remove(ctx, common.KeySession); err != nil {
		return fmt.Errorf("%w: remove session: %v", common.ErrStorage, err)
	}
	if m.current != nil {
		m.log.Debug(ctx, "session ended", "sub", m.current.SubjectID())
	}
	m.current = nil
	return nil
}

// Current returns a copy of the current session.
func (m *Manager) Current() (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.clone(), m.current != nil
}

// Accounts returns the registry. Used by admin listings.
func (m *Manager) Accounts(ctx context.Context) ([]models.Account, error) {
	registry, _, err := m.accounts.Load(ctx)
	if err != nil {
		return nil, err
	}
	return registry, nil
}
