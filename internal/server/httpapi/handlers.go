package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/dailyjournal/internal/common"
	"github.com/dmitrijs2005/dailyjournal/internal/server/services"
	"github.com/gorilla/mux"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxBodyBytes    = 1 << 20
)

func (a *api) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := a.db.PingContext(r.Context()); err != nil {
		a.logger.Error(r.Context(), "health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (a *api) recordLogin(result string) {
	if a.metrics != nil {
		a.metrics.RecordLogin(result)
	}
}

func (a *api) recordWrite(op string) {
	if a.metrics != nil {
		a.metrics.RecordEntryWrite(op)
	}
}

// handleToken implements the OAuth2 password flow: form fields username and
// password in, bearer token out.
func (a *api) handleToken(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, r, a.logger, fmt.Errorf("%w: invalid form body", errBadRequest))
		return
	}

	userName := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if userName == "" || password == "" {
		writeError(w, r, a.logger, fmt.Errorf("%w: username and password are required", common.ErrorValidation))
		return
	}

	token, err := a.users.Login(r.Context(), userName, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			a.recordLogin("failure")
			a.logger.Info(r.Context(), "login failed",
				"request_id", requestIDFrom(r.Context()), "username", userName)
			writeUnauthorized(w, "Incorrect username or password")
			return
		}
		a.recordLogin("error")
		writeError(w, r, a.logger, err)
		return
	}

	a.recordLogin("success")
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: common.TokenType})
}

func (a *api) handleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFrom(r.Context())
	if !ok {
		writeUnauthorized(w, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, userResponse{
		UserName:  u.UserName,
		IsActive:  u.IsActive,
		CreatedAt: a.zone.Format(u.CreatedAt),
	})
}

func (a *api) decodeEntry(r *http.Request, w http.ResponseWriter) (services.EntryInput, error) {
	var req entryRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return services.EntryInput{}, fmt.Errorf("%w: invalid JSON body", errBadRequest)
	}

	in := services.EntryInput{Content: req.Content, Mood: req.Mood}
	if req.CreatedAt != nil && *req.CreatedAt != "" {
		t, err := a.zone.ParseTimestamp(*req.CreatedAt)
		if err != nil {
			return services.EntryInput{}, err
		}
		in.CreatedAt = &t
	}
	return in, nil
}

func (a *api) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	in, err := a.decodeEntry(r, w)
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}

	e, err := a.entries.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}

	a.recordWrite("create")
	writeJSON(w, http.StatusCreated, toEntryResponse(a.zone, e))
}

func intQuery(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", common.ErrorValidation, name)
	}
	return n, nil
}

func (a *api) handleListEntries(w http.ResponseWriter, r *http.Request) {
	page, err := intQuery(r, "page", defaultPage)
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}
	size, err := intQuery(r, "page_size", defaultPageSize)
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}

	p, err := a.entries.List(r.Context(), page, size)
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, pageResponse{
		Items:   toEntryResponses(a.zone, p.Items),
		Total:   p.Total,
		Page:    p.Page,
		Size:    p.Size,
		HasMore: p.HasMore,
	})
}

func (a *api) handleCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end := q.Get("start_date"), q.Get("end_date")
	if start == "" || end == "" {
		writeError(w, r, a.logger, fmt.Errorf("%w: start_date and end_date are required", common.ErrorValidation))
		return
	}

	days, err := a.entries.GetByDateRange(r.Context(), start, end)
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}

	out := make(map[string][]entryResponse, len(days))
	for day, list := range days {
		out[day] = toEntryResponses(a.zone, list)
	}
	writeJSON(w, http.StatusOK, out)
}

func entryID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, common.ErrorNotFound
	}
	return id, nil
}

func (a *api) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}

	e, err := a.entries.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(a.zone, e))
}

func (a *api) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}

	in, err := a.decodeEntry(r, w)
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}

	e, err := a.entries.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}

	a.recordWrite("update")
	writeJSON(w, http.StatusOK, toEntryResponse(a.zone, e))
}

func (a *api) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		writeError(w, r, a.logger, err)
		return
	}

	if err := a.entries.Delete(r.Context(), id); err != nil {
		writeError(w, r, a.logger, err)
		return
	}

	a.recordWrite("delete")
	writeJSON(w, http.StatusOK, messageResponse{Message: "Entry deleted successfully"})
}

var (
	_ UserService  = (*services.UserService)(nil)
	_ EntryService = (*services.EntryService)(nil)
)
