package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/everkeep/everkeep/internal/common"
	"github.com/everkeep/everkeep/internal/dbx"
	"github.com/everkeep/everkeep/internal/server/config"
	"github.com/everkeep/everkeep/internal/server/models"
	entriesrepo "github.com/everkeep/everkeep/internal/server/repositories/entries"
	refreshrepo "github.com/everkeep/everkeep/internal/server/repositories/refreshtokens"
	usersrepo "github.com/everkeep/everkeep/internal/server/repositories/users"
)

// In-memory fakes standing in for the postgres repositories. The fake
// manager hands out the same instances regardless of the DB handle, so
// transactional code paths still work against sqlmock.

type fakeUsersRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User

	failWith error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: make(map[uuid.UUID]models.User)}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return nil, common.ErrAlreadyExists
		}
	}
	f.users[u.ID] = *u
	copied := *u
	return &copied, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return nil, common.ErrNotFound
	}
	f.users[u.ID] = *u
	copied := *u
	return &copied, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsersRepo) ListByStatus(ctx context.Context, status models.AccountStatus) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		if u.Status == status {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

type fakeEntriesRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]models.Entry

	failWith error
}

func newFakeEntriesRepo() *fakeEntriesRepo {
	return &fakeEntriesRepo{entries: make(map[uuid.UUID]models.Entry)}
}

func (f *fakeEntriesRepo) Create(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.entries[e.ID] = *e
	copied := *e
	return &copied, nil
}

func (f *fakeEntriesRepo) Get(ctx context.Context, id, ownerID uuid.UUID) (*models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok || e.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	copied := e
	return &copied, nil
}

func (f *fakeEntriesRepo) List(ctx context.Context, ownerID uuid.UUID) ([]models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Entry
	for _, e := range f.entries {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntriesRepo) ListByStatus(ctx context.Context, ownerID uuid.UUID, status models.EntryStatus) ([]models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Entry
	for _, e := range f.entries {
		if e.OwnerID == ownerID && e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntriesRepo) Update(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.entries[e.ID]
	if !ok || existing.OwnerID != e.OwnerID {
		return nil, common.ErrNotFound
	}
	f.entries[e.ID] = *e
	copied := *e
	return &copied, nil
}

func (f *fakeEntriesRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok || e.OwnerID != ownerID {
		return false, nil
	}
	delete(f.entries, id)
	return true, nil
}

type fakeRefreshRepo struct {
	mu     sync.Mutex
	tokens map[string]models.RefreshToken

	createErr error
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{tokens: make(map[string]models.RefreshToken)}
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID uuid.UUID, token string, validity time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[token] = models.RefreshToken{Token: token, UserID: userID, Expires: time.Now().Add(validity)}
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rt, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := rt
	return &copied, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	e *fakeEntriesRepo
	r *fakeRefreshRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: newFakeUsersRepo(),
		e: newFakeEntriesRepo(),
		r: newFakeRefreshRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error     { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository           { return m.u }
func (m *fakeRepoManager) Entries(db dbx.DBTX) entriesrepo.Repository       { return m.e }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshrepo.Repository { return m.r }

// --- shared helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
}
