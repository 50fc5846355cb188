package httpapi

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/mmynk/grindtracker/internal/ledger"
	"github.com/mmynk/grindtracker/internal/middleware"
	"github.com/mmynk/grindtracker/internal/models"
	"github.com/mmynk/grindtracker/internal/service"
)

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var body service.RegisterRequest
	if err := decode(r, &body); err != nil {
		a.fail(w, err)
		return
	}

	user, err := a.Authenticator.Register(r.Context(), body.Username, body.Email, body.Password)
	if err != nil {
		a.Logger.Warn("Registration failed", "username", body.Username, "error", err)
		a.fail(w, err)
		return
	}
	a.signIn(w, user)
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var body service.LoginRequest
	if err := decode(r, &body); err != nil {
		a.fail(w, err)
		return
	}

	user, err := a.Authenticator.Authenticate(r.Context(), body.Username, body.Password)
	if err != nil {
		a.Logger.Warn("Login failed", "login", body.Username, "error", err)
		a.fail(w, err)
		return
	}
	a.signIn(w, user)
}

func (a *API) signIn(w http.ResponseWriter, user *models.User) {
	token, err := a.Tokens.Generate(user)
	if err != nil {
		a.Logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, service.ErrInternal.Error())
		return
	}
	http.SetCookie(w, middleware.NewTokenCookie(token, a.Tokens.TokenDuration()))
	writeJSON(w, http.StatusOK, service.AuthResponse{Success: true, User: user, Token: token})
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, middleware.ClearTokenCookie())
	writeJSON(w, http.StatusOK, service.SuccessResponse{Success: true})
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	user, err := a.Authenticator.User(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.GetCurrentUserResponse{User: user})
}

func (a *API) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := a.Sessions.ListSessions(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.ListSessionsResponse{Sessions: sessions})
}

func (a *API) createSession(w http.ResponseWriter, r *http.Request) {
	var body service.CreateSessionRequest
	if err := decode(r, &body); err != nil {
		a.fail(w, err)
		return
	}

	session, err := a.Sessions.CreateSession(r.Context(), middleware.GetUserID(r.Context()), ledger.NewSession{
		Date:      body.Date,
		PlayTime:  body.PlayTime,
		StudyTime: body.StudyTime,
		Games:     body.Games,
		Hands:     body.Hands,
		Earnings:  body.Earnings,
		Notes:     body.Notes,
	})
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.CreateSessionResponse{Success: true, Session: session})
}

func (a *API) deleteSession(w http.ResponseWriter, r *http.Request) {
	err := a.Sessions.DeleteSession(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.SuccessResponse{Success: true})
}

func (a *API) getBankroll(w http.ResponseWriter, r *http.Request) {
	amount, err := a.Sessions.Bankroll(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.GetBankrollResponse{Amount: amount})
}

func (a *API) reconcileBankroll(w http.ResponseWriter, r *http.Request) {
	amount, drift, err := a.Sessions.ReconcileBankroll(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.ReconcileBankrollResponse{Success: true, Amount: amount, Drift: drift})
}

func (a *API) listNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := a.Notes.ListNotes(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.ListNotesResponse{Notes: notes})
}

func (a *API) createNote(w http.ResponseWriter, r *http.Request) {
	var body service.CreateNoteRequest
	if err := decode(r, &body); err != nil {
		a.fail(w, err)
		return
	}

	note, err := a.Notes.CreateNote(r.Context(), middleware.GetUserID(r.Context()), ledger.NewNote{
		PlayerName: body.PlayerName,
		Category:   body.Category,
		NoteText:   body.NoteText,
	})
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.CreateNoteResponse{Success: true, Note: note})
}

func (a *API) deleteNote(w http.ResponseWriter, r *http.Request) {
	err := a.Notes.DeleteNote(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.SuccessResponse{Success: true})
}

func (a *API) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.Settings.GetSettings(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.SettingsResponse{Settings: settings})
}

func (a *API) updateSettings(w http.ResponseWriter, r *http.Request) {
	var body service.UpdateSettingsRequest
	if err := decode(r, &body); err != nil {
		a.fail(w, err)
		return
	}

	_, err := a.Settings.UpdateSettings(r.Context(), middleware.GetUserID(r.Context()), body.WeeklyGoals, body.SessionNotes)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.SuccessResponse{Success: true})
}

// stats accepts an optional asOf RFC 3339 query parameter.
func (a *API) stats(w http.ResponseWriter, r *http.Request) {
	asOf, err := service.ParseAsOf(r.URL.Query().Get("asOf"))
	if err != nil {
		a.fail(w, err)
		return
	}

	report, err := a.Stats.ComputeStats(r.Context(), middleware.GetUserID(r.Context()), asOf)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
