package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/dailyjournal/internal/common"
	"github.com/dmitrijs2005/dailyjournal/internal/dbx"
	"github.com/dmitrijs2005/dailyjournal/internal/server/models"
	"github.com/dmitrijs2005/dailyjournal/internal/server/repositories/entries"
	"github.com/dmitrijs2005/dailyjournal/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// memEntries is an in-memory entries.Repository with the same ordering and
// range semantics as the PostgreSQL one.
type memEntries struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Entry

	listErr error
}

func newMemEntries() *memEntries {
	return &memEntries{rows: map[int64]models.Entry{}}
}

func cloneEntry(e models.Entry) *models.Entry {
	if e.Mood != nil {
		m := *e.Mood
		e.Mood = &m
	}
	return &e
}

func (m *memEntries) Create(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	row := *e
	row.ID = m.nextID
	row.CreatedAt = row.CreatedAt.UTC()
	m.rows[row.ID] = row
	return cloneEntry(row), nil
}

func (m *memEntries) Get(ctx context.Context, id int64) (*models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneEntry(row), nil
}

func (m *memEntries) sorted(desc bool) []models.Entry {
	out := make([]models.Entry, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if desc {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if desc {
			return a.ID > b.ID
		}
		return a.ID < b.ID
	})
	return out
}

func (m *memEntries) List(ctx context.Context, limit, offset int) ([]*models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	all := m.sorted(true)
	out := make([]*models.Entry, 0)
	for i := offset; i < len(all) && len(out) < limit; i++ {
		out = append(out, cloneEntry(all[i]))
	}
	return out, nil
}

func (m *memEntries) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.rows)), nil
}

func (m *memEntries) SelectBetween(ctx context.Context, from, to time.Time) ([]*models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Entry, 0)
	for _, r := range m.sorted(false) {
		if !r.CreatedAt.Before(from) && !r.CreatedAt.After(to) {
			out = append(out, cloneEntry(r))
		}
	}
	return out, nil
}

func (m *memEntries) Update(ctx context.Context, id int64, content string, mood *string, createdAt *time.Time) (*models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	row.Content = content
	row.Mood = mood
	if createdAt != nil {
		row.CreatedAt = createdAt.UTC()
	}
	m.rows[id] = row
	return cloneEntry(row), nil
}

func (m *memEntries) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.rows, id)
	return nil
}

type fakeUsersRepo struct {
	byName map[string]*models.User

	createCalls int
	createErr   error
	getErr      error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byName: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byName[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = int64(len(f.byName) + 1)
	u.IsActive = true
	u.CreatedAt = time.Now().UTC()
	f.byName[u.UserName] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	e *memEntries
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository        { return m.u }
func (m *fakeRepoManager) Entries(db dbx.DBTX) entries.Repository    { return m.e }
