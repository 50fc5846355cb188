package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/grindtracker/internal/auth"
	"github.com/mmynk/grindtracker/internal/ledger"
	"github.com/mmynk/grindtracker/internal/middleware"
	"github.com/mmynk/grindtracker/internal/storage/sqlite"
)

type testClients struct {
	auth     *AuthServiceClient
	sessions *SessionServiceClient
	notes    *NoteServiceClient
	settings *SettingsServiceClient
	store    *sqlite.SQLiteStore
}

// setupTestServer serves every Connect service over a real SQLite temp file.
func setupTestServer(t *testing.T) *testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewJWTManager("service-test-secret-123", time.Hour)

	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(tokens, logger, PublicProcedures...),
		middleware.LoggingInterceptor(logger),
	)

	authPath, authHandler := NewAuthServiceHandler(
		NewAuthService(auth.NewPasswordAuthenticator(store), tokens, logger), interceptors)
	sessionPath, sessionHandler := NewSessionServiceHandler(
		NewSessionService(ledger.NewSessionLedger(store, logger), ledger.NewStatsAggregator(store, logger, nil), logger), interceptors)
	notePath, noteHandler := NewNoteServiceHandler(
		NewNoteService(ledger.NewNoteBook(store, logger), logger), interceptors)
	settingsPath, settingsHandler := NewSettingsServiceHandler(
		NewSettingsService(ledger.NewSettingsManager(store, logger), logger), interceptors)

	mux := http.NewServeMux()
	mux.Handle(authPath, authHandler)
	mux.Handle(sessionPath, sessionHandler)
	mux.Handle(notePath, noteHandler)
	mux.Handle(settingsPath, settingsHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testClients{
		auth:     NewAuthServiceClient(http.DefaultClient, server.URL),
		sessions: NewSessionServiceClient(http.DefaultClient, server.URL),
		notes:    NewNoteServiceClient(http.DefaultClient, server.URL),
		settings: NewSettingsServiceClient(http.DefaultClient, server.URL),
		store:    store,
	}
}

// authed wraps msg in a request carrying the bearer token.
func authed[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func register(t *testing.T, c *testClients, username string) string {
	t.Helper()
	resp, err := c.auth.Register.CallUnary(context.Background(), connect.NewRequest(&RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret1",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Msg.Token == "" {
		t.Fatal("expected token in response")
	}
	return resp.Msg.Token
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected code %v, got %v (%v)", want, got, err)
	}
}

func TestAuthService(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	resp, err := c.auth.Register.CallUnary(ctx, connect.NewRequest(&RegisterRequest{
		Username: "shark",
		Email:    "shark@example.com",
		Password: "secret1",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Msg.User == nil || resp.Msg.User.Username != "shark" || !resp.Msg.Success {
		t.Fatalf("unexpected register response: %+v", resp.Msg)
	}
	if cookie := resp.Header().Get("Set-Cookie"); !strings.Contains(cookie, "token=") || !strings.Contains(cookie, "HttpOnly") {
		t.Errorf("expected httpOnly token cookie, got %q", cookie)
	}

	t.Run("duplicate", func(t *testing.T) {
		_, err := c.auth.Register.CallUnary(ctx, connect.NewRequest(&RegisterRequest{
			Username: "shark2",
			Email:    "shark@example.com",
			Password: "secret1",
		}))
		assertCode(t, err, connect.CodeAlreadyExists)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := c.auth.Register.CallUnary(ctx, connect.NewRequest(&RegisterRequest{Username: "x"}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := c.auth.Register.CallUnary(ctx, connect.NewRequest(&RegisterRequest{
			Username: "fish",
			Email:    "fish@example.com",
			Password: "12345",
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("login by email", func(t *testing.T) {
		login, err := c.auth.Login.CallUnary(ctx, connect.NewRequest(&LoginRequest{
			Username: "shark@example.com",
			Password: "secret1",
		}))
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		me, err := c.auth.GetCurrentUser.CallUnary(ctx, authed(login.Msg.Token, &GetCurrentUserRequest{}))
		if err != nil {
			t.Fatalf("GetCurrentUser failed: %v", err)
		}
		if me.Msg.User.ID != resp.Msg.User.ID || me.Msg.User.Email != "shark@example.com" {
			t.Errorf("unexpected current user: %+v", me.Msg.User)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := c.auth.Login.CallUnary(ctx, connect.NewRequest(&LoginRequest{Username: "shark", Password: "nope!!"}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})

	t.Run("no token", func(t *testing.T) {
		_, err := c.auth.GetCurrentUser.CallUnary(ctx, connect.NewRequest(&GetCurrentUserRequest{}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})

	t.Run("cookie token", func(t *testing.T) {
		req := connect.NewRequest(&GetCurrentUserRequest{})
		req.Header().Set("Cookie", "token="+resp.Msg.Token)
		if _, err := c.auth.GetCurrentUser.CallUnary(ctx, req); err != nil {
			t.Fatalf("GetCurrentUser with cookie failed: %v", err)
		}
	})

	t.Run("logout clears cookie", func(t *testing.T) {
		out, err := c.auth.Logout.CallUnary(ctx, connect.NewRequest(&LogoutRequest{}))
		if err != nil {
			t.Fatalf("Logout failed: %v", err)
		}
		if cookie := out.Header().Get("Set-Cookie"); !strings.Contains(cookie, "Max-Age=0") {
			t.Errorf("expected expiring cookie, got %q", cookie)
		}
	})
}

func TestSessionService(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	alice := register(t, c, "alice")
	bob := register(t, c, "bob")

	a, err := c.sessions.CreateSession.CallUnary(ctx, authed(alice, &CreateSessionRequest{
		Date:     "2024-05-01",
		PlayTime: 3600,
		Games:    4,
		Earnings: 50,
	}))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if a.Msg.Session == nil || a.Msg.Session.ID == "" {
		t.Fatalf("expected created session, got %+v", a.Msg)
	}
	if _, err := c.sessions.CreateSession.CallUnary(ctx, authed(alice, &CreateSessionRequest{
		Date:     "2024-05-02T20:30:00+02:00",
		Earnings: -20,
	})); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	bankroll, err := c.sessions.GetBankroll.CallUnary(ctx, authed(alice, &GetBankrollRequest{}))
	if err != nil {
		t.Fatalf("GetBankroll failed: %v", err)
	}
	if bankroll.Msg.Amount != 30 {
		t.Errorf("bankroll = %v, want 30", bankroll.Msg.Amount)
	}

	list, err := c.sessions.ListSessions.CallUnary(ctx, authed(alice, &ListSessionsRequest{}))
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(list.Msg.Sessions) != 2 || list.Msg.Sessions[0].Date != "2024-05-02T18:30:00Z" {
		t.Fatalf("unexpected sessions: %+v", list.Msg.Sessions)
	}

	t.Run("invalid date", func(t *testing.T) {
		_, err := c.sessions.CreateSession.CallUnary(ctx, authed(alice, &CreateSessionRequest{Date: "soon"}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("other user cannot delete", func(t *testing.T) {
		_, err := c.sessions.DeleteSession.CallUnary(ctx, authed(bob, &DeleteSessionRequest{ID: a.Msg.Session.ID}))
		assertCode(t, err, connect.CodeNotFound)

		other, err := c.sessions.ListSessions.CallUnary(ctx, authed(bob, &ListSessionsRequest{}))
		if err != nil {
			t.Fatalf("ListSessions failed: %v", err)
		}
		if len(other.Msg.Sessions) != 0 {
			t.Errorf("bob sees %d sessions, want 0", len(other.Msg.Sessions))
		}
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := c.sessions.GetStats.CallUnary(ctx, authed(alice, &GetStatsRequest{AsOf: "2024-05-03T00:00:00Z"}))
		if err != nil {
			t.Fatalf("GetStats failed: %v", err)
		}
		if stats.Msg.TotalEarnings != 30 || stats.Msg.DaysThisWeek != 2 || stats.Msg.WeekGames != 4 {
			t.Errorf("unexpected stats: %+v", stats.Msg)
		}

		_, err = c.sessions.GetStats.CallUnary(ctx, authed(alice, &GetStatsRequest{AsOf: "yesterday"}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("delete reverts bankroll", func(t *testing.T) {
		if _, err := c.sessions.DeleteSession.CallUnary(ctx, authed(alice, &DeleteSessionRequest{ID: a.Msg.Session.ID})); err != nil {
			t.Fatalf("DeleteSession failed: %v", err)
		}
		bankroll, err := c.sessions.GetBankroll.CallUnary(ctx, authed(alice, &GetBankrollRequest{}))
		if err != nil {
			t.Fatalf("GetBankroll failed: %v", err)
		}
		if bankroll.Msg.Amount != -20 {
			t.Errorf("bankroll = %v, want -20", bankroll.Msg.Amount)
		}

		_, err = c.sessions.DeleteSession.CallUnary(ctx, authed(alice, &DeleteSessionRequest{ID: a.Msg.Session.ID}))
		assertCode(t, err, connect.CodeNotFound)
	})

	t.Run("reconcile", func(t *testing.T) {
		me, err := c.auth.GetCurrentUser.CallUnary(ctx, authed(alice, &GetCurrentUserRequest{}))
		if err != nil {
			t.Fatalf("GetCurrentUser failed: %v", err)
		}
		if err := c.store.SetBankroll(ctx, me.Msg.User.ID, 5); err != nil {
			t.Fatalf("SetBankroll failed: %v", err)
		}
		out, err := c.sessions.ReconcileBankroll.CallUnary(ctx, authed(alice, &ReconcileBankrollRequest{}))
		if err != nil {
			t.Fatalf("ReconcileBankroll failed: %v", err)
		}
		if out.Msg.Amount != -20 || out.Msg.Drift != 25 {
			t.Errorf("reconcile = %+v, want amount -20 drift 25", out.Msg)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		_, err := c.sessions.ListSessions.CallUnary(ctx, authed("garbage", &ListSessionsRequest{}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})
}

func TestNoteAndSettingsServices(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	alice := register(t, c, "alice")
	bob := register(t, c, "bob")

	_, err := c.notes.CreateNote.CallUnary(ctx, authed(alice, &CreateNoteRequest{PlayerName: "villain"}))
	assertCode(t, err, connect.CodeInvalidArgument)

	created, err := c.notes.CreateNote.CallUnary(ctx, authed(alice, &CreateNoteRequest{
		PlayerName: "villain",
		Category:   "fish",
		NoteText:   "calls too wide",
	}))
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	notes, err := c.notes.ListNotes.CallUnary(ctx, authed(alice, &ListNotesRequest{}))
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes.Msg.Notes) != 1 || notes.Msg.Notes[0].PlayerName != "villain" {
		t.Fatalf("unexpected notes: %+v", notes.Msg.Notes)
	}

	_, err = c.notes.DeleteNote.CallUnary(ctx, authed(bob, &DeleteNoteRequest{ID: created.Msg.Note.ID}))
	assertCode(t, err, connect.CodeNotFound)
	if _, err := c.notes.DeleteNote.CallUnary(ctx, authed(alice, &DeleteNoteRequest{ID: created.Msg.Note.ID})); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}

	settings, err := c.settings.GetSettings.CallUnary(ctx, authed(alice, &GetSettingsRequest{}))
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.Msg.Settings.WeeklyGoals != "" {
		t.Errorf("expected blank settings, got %+v", settings.Msg.Settings)
	}
	if _, err := c.settings.UpdateSettings.CallUnary(ctx, authed(alice, &UpdateSettingsRequest{WeeklyGoals: "20h"})); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	settings, err = c.settings.GetSettings.CallUnary(ctx, authed(alice, &GetSettingsRequest{}))
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.Msg.Settings.WeeklyGoals != "20h" {
		t.Errorf("WeeklyGoals = %q, want 20h", settings.Msg.Settings.WeeklyGoals)
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		err  error
		want connect.Code
	}{
		{&ledger.ValidationError{Fields: []string{"date"}}, connect.CodeInvalidArgument},
		{auth.ErrWeakPassword, connect.CodeInvalidArgument},
		{auth.ErrUserExists, connect.CodeAlreadyExists},
		{ledger.ErrNotFound, connect.CodeNotFound},
		{auth.ErrInvalidToken, connect.CodeUnauthenticated},
		{auth.ErrInvalidCredentials, connect.CodeUnauthenticated},
		{ledger.ErrStoreFailure, connect.CodeInternal},
		{errors.New("boom"), connect.CodeInternal},
	}
	for _, tt := range tests {
		if got := Code(tt.err); got != tt.want {
			t.Errorf("Code(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}

	var connectErr *connect.Error
	if !errors.As(toConnectError(ledger.ErrStoreFailure), &connectErr) || connectErr.Message() != ErrInternal.Error() {
		t.Errorf("store failure detail leaked: %v", connectErr)
	}
}
