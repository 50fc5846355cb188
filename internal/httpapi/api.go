package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi"
	"github.com/go-chi/httprate"
	"github.com/mmynk/grindtracker/internal/auth"
	"github.com/mmynk/grindtracker/internal/ledger"
	"github.com/mmynk/grindtracker/internal/middleware"
	"github.com/mmynk/grindtracker/internal/service"
)

// API holds the collaborators behind the REST routes.
type API struct {
	Authenticator auth.Authenticator
	Tokens        *auth.JWTManager
	Sessions      *ledger.SessionLedger
	Stats         *ledger.StatsAggregator
	Notes         *ledger.NoteBook
	Settings      *ledger.SettingsManager
	Logger        *slog.Logger

	// AuthRateLimit caps register and login calls per IP per minute. Zero disables it.
	AuthRateLimit int
}

// Routes mounts the /api subtree on r.
func (a *API) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if a.AuthRateLimit > 0 {
				r.Use(httprate.LimitByIP(a.AuthRateLimit, 1*time.Minute))
			}
			r.Post("/register", a.register)
			r.Post("/login", a.login)
		})
		r.Post("/logout", a.logout)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.HTTPAuth(a.Tokens, func(w http.ResponseWriter, err error) {
				writeError(w, http.StatusUnauthorized, err.Error())
			}))

			r.Get("/me", a.me)

			r.Get("/sessions", a.listSessions)
			r.Post("/sessions", a.createSession)
			r.Delete("/sessions/{id}", a.deleteSession)

			r.Get("/bankroll", a.getBankroll)
			r.Post("/bankroll/reconcile", a.reconcileBankroll)

			r.Get("/player-notes", a.listNotes)
			r.Post("/player-notes", a.createNote)
			r.Delete("/player-notes/{id}", a.deleteNote)

			r.Get("/settings", a.getSettings)
			r.Put("/settings", a.updateSettings)

			r.Get("/stats", a.stats)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not found")
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// fail writes the HTTP form of a core error. Store failures never expose their detail.
func (a *API) fail(w http.ResponseWriter, err error) {
	var status int
	switch service.Code(err) {
	case connect.CodeInvalidArgument:
		status = http.StatusBadRequest
	case connect.CodeAlreadyExists:
		status = http.StatusConflict
	case connect.CodeNotFound:
		status = http.StatusNotFound
	case connect.CodeUnauthenticated:
		status = http.StatusUnauthorized
	default:
		writeError(w, http.StatusInternalServerError, service.ErrInternal.Error())
		return
	}
	writeError(w, status, err.Error())
}

// decode reads a JSON body into v. An empty body leaves v at its zero value.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return &ledger.ValidationError{Fields: []string{"body"}}
	}
	return nil
}
