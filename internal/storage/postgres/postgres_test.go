package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mmynk/grindtracker/internal/models"
	"github.com/mmynk/grindtracker/internal/storage"
)

func newStoreWithMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return NewWithDB(db), mock
}

func TestCreateUser_InsertsUserBankrollAndSettingsInTx(t *testing.T) {
	store, mock := newStoreWithMock(t)
	user := &models.User{ID: "u1", Username: "alice", Email: "a@example.com", PasswordHash: "h", CreatedAt: 1}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("u1", "alice", "a@example.com", "h", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bankroll")).
		WithArgs("u1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_settings")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUser_UniqueViolationRollsBack(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := store.CreateUser(context.Background(), &models.User{ID: "u1", Username: "alice"})
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetUserByLogin_NotFound(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1 OR email = $1")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetUserByLogin(context.Background(), "ghost")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListSessions_ScansRowsInOrder(t *testing.T) {
	store, mock := newStoreWithMock(t)

	cols := []string{"id", "user_id", "date", "play_time", "study_time", "games", "hands", "earnings", "notes", "created_at"}
	rows := sqlmock.NewRows(cols).
		AddRow("s2", "u1", "2024-05-02", int64(3600), int64(0), int64(4), int64(300), 25.5, "", int64(20)).
		AddRow("s1", "u1", "2024-05-01", int64(7200), int64(600), int64(2), int64(150), -10.0, "bad run", int64(10))
	mock.ExpectQuery(regexp.QuoteMeta("FROM sessions WHERE user_id = $1")).
		WithArgs("u1").
		WillReturnRows(rows)

	sessions, err := store.ListSessions(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListSessions error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != "s2" || sessions[1].Earnings != -10.0 || sessions[1].Notes != "bad run" {
		t.Fatalf("unexpected sessions: %+v %+v", sessions[0], sessions[1])
	}
}

func TestDeleteSession_NoRowsIsNotFound(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions WHERE id = $1 AND user_id = $2")).
		WithArgs("s1", "u2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeleteSession(context.Background(), "u2", "s1")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWithTx_AdjustsBankrollInsideTransaction(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sessions")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bankroll")).
		WithArgs("u1", 42.0, sqlmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := store.WithTx(context.Background(), func(ctx context.Context, tx storage.Ledger) error {
		if err := tx.InsertSession(ctx, &models.Session{UserID: "u1", Date: "2024-05-01", Earnings: 42}); err != nil {
			return err
		}
		return tx.AdjustBankroll(ctx, "u1", 42)
	})
	if err == nil {
		t.Fatal("expected error from failing bankroll update")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetSettings_Missing(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_settings WHERE user_id = $1")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"weekly_goals", "session_notes"}))

	_, err := store.GetSettings(context.Background(), "u1")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
