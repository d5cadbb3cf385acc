// Package httpapi exposes the journal over a JSON HTTP API: bearer-token
// login, entry CRUD, pagination and calendar lookups.
package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/dailyjournal/internal/logging"
	"github.com/dmitrijs2005/dailyjournal/internal/server/metrics"
	"github.com/dmitrijs2005/dailyjournal/internal/server/models"
	"github.com/dmitrijs2005/dailyjournal/internal/server/services"
	"github.com/dmitrijs2005/dailyjournal/internal/timex"
	"github.com/gorilla/mux"
)

// UserService is the part of services.UserService the API needs.
type UserService interface {
	Login(ctx context.Context, userName, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// EntryService is the part of services.EntryService the API needs.
type EntryService interface {
	Create(ctx context.Context, in services.EntryInput) (*models.Entry, error)
	Get(ctx context.Context, id int64) (*models.Entry, error)
	List(ctx context.Context, page, pageSize int) (*models.EntryPage, error)
	GetByDateRange(ctx context.Context, startDate, endDate string) (map[string][]*models.Entry, error)
	Update(ctx context.Context, id int64, in services.EntryInput) (*models.Entry, error)
	Delete(ctx context.Context, id int64) error
}

// Pinger reports database reachability for /healthz.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps bundles what the router needs.
type Deps struct {
	Users        UserService
	Entries      EntryService
	DB           Pinger
	Zone         *timex.Zone
	Logger       logging.Logger
	Metrics      *metrics.Metrics
	LoginLimiter *RateLimiter
	CORSOrigins  []string
}

type api struct {
	users   UserService
	entries EntryService
	db      Pinger
	zone    *timex.Zone
	logger  logging.Logger
	metrics *metrics.Metrics
}

// NewRouter builds the complete HTTP handler. Trailing slashes are optional
// on every route and CORS preflight requests are answered before routing.
func NewRouter(d Deps) http.Handler {
	a := &api{
		users:   d.Users,
		entries: d.Entries,
		db:      d.DB,
		zone:    d.Zone,
		logger:  d.Logger,
		metrics: d.Metrics,
	}

	r := mux.NewRouter()
	r.Use(loggingMiddleware(d.Logger))
	if d.Metrics != nil {
		r.Use(metricsMiddleware(d.Metrics))
		r.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/healthz", a.handleHealth).Methods(http.MethodGet)

	var login http.Handler = http.HandlerFunc(a.handleToken)
	if d.LoginLimiter != nil {
		login = d.LoginLimiter.Handler(login)
	}
	r.Handle("/token", login).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()
	protected.Use(authMiddleware(d.Users, d.Logger))

	protected.HandleFunc("/users/me", a.handleMe).Methods(http.MethodGet)
	protected.HandleFunc("/entries", a.handleCreateEntry).Methods(http.MethodPost)
	protected.HandleFunc("/entries", a.handleListEntries).Methods(http.MethodGet)
	protected.HandleFunc("/entries/calendar", a.handleCalendar).Methods(http.MethodGet)
	protected.HandleFunc("/entries/{id:[0-9]+}", a.handleGetEntry).Methods(http.MethodGet)
	protected.HandleFunc("/entries/{id:[0-9]+}", a.handleUpdateEntry).Methods(http.MethodPut)
	protected.HandleFunc("/entries/{id:[0-9]+}", a.handleDeleteEntry).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Not Found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Detail: "Method Not Allowed"})
	})

	return corsMiddleware(d.CORSOrigins)(trimSlash(r))
}
