package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/dailyjournal/internal/common"
	"github.com/dmitrijs2005/dailyjournal/internal/logging"
	"github.com/dmitrijs2005/dailyjournal/internal/server/metrics"
	"github.com/dmitrijs2005/dailyjournal/internal/server/models"
	"github.com/dmitrijs2005/dailyjournal/internal/server/services"
	"github.com/dmitrijs2005/dailyjournal/internal/timex"
	"github.com/stretchr/testify/require"
)

const goodToken = "good-token"

type fakeUsers struct {
	loginErr error
}

func (f *fakeUsers) Login(ctx context.Context, userName, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	if userName == "admin" && password == "admin123" {
		return goodToken, nil
	}
	return "", common.ErrorUnauthorized
}

func (f *fakeUsers) Authenticate(ctx context.Context, token string) (*models.User, error) {
	switch token {
	case goodToken:
		return &models.User{ID: 1, UserName: "admin", IsActive: true, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}, nil
	case "expired":
		return nil, common.ErrTokenExpired
	}
	return nil, common.ErrInvalidToken
}

type fakeEntries struct {
	lastInput services.EntryInput
	lastID    int64
	lastPage  [2]int
	lastRange [2]string

	entry *models.Entry
	page  *models.EntryPage
	days  map[string][]*models.Entry
	err   error
}

func (f *fakeEntries) Create(ctx context.Context, in services.EntryInput) (*models.Entry, error) {
	f.lastInput = in
	return f.entry, f.err
}

func (f *fakeEntries) Get(ctx context.Context, id int64) (*models.Entry, error) {
	f.lastID = id
	return f.entry, f.err
}

func (f *fakeEntries) List(ctx context.Context, page, pageSize int) (*models.EntryPage, error) {
	f.lastPage = [2]int{page, pageSize}
	return f.page, f.err
}

func (f *fakeEntries) GetByDateRange(ctx context.Context, startDate, endDate string) (map[string][]*models.Entry, error) {
	f.lastRange = [2]string{startDate, endDate}
	return f.days, f.err
}

func (f *fakeEntries) Update(ctx context.Context, id int64, in services.EntryInput) (*models.Entry, error) {
	f.lastID = id
	f.lastInput = in
	return f.entry, f.err
}

func (f *fakeEntries) Delete(ctx context.Context, id int64) error {
	f.lastID = id
	return f.err
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type testEnv struct {
	handler http.Handler
	users   *fakeUsers
	entries *fakeEntries
	pinger  *fakePinger
	metrics *metrics.Metrics
	zone    *timex.Zone
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	zone, err := timex.LoadZone("UTC+8")
	require.NoError(t, err)

	env := &testEnv{
		users:   &fakeUsers{},
		entries: &fakeEntries{},
		pinger:  &fakePinger{},
		metrics: metrics.New(),
		zone:    zone,
	}
	env.handler = NewRouter(Deps{
		Users:        env.users,
		Entries:      env.entries,
		DB:           pingerFunc(func(ctx context.Context) error { return env.pinger.err }),
		Zone:         zone,
		Logger:       logging.Nop{},
		Metrics:      env.metrics,
		LoginLimiter: NewRateLimiter(600, 100, logging.Nop{}, env.metrics),
		CORSOrigins:  []string{"http://localhost:3000"},
	})
	return env
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func (env *testEnv) do(method, target, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) authed(method, target, body string) *httptest.ResponseRecorder {
	return env.do(method, target, body, "Authorization", "Bearer "+goodToken, "Content-Type", "application/json")
}

var errBoom = errors.New("boom")

func ptr[T any](v T) *T { return &v }
