package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/mmynk/grindtracker/internal/ledger"
	"github.com/mmynk/grindtracker/internal/middleware"
	"github.com/mmynk/grindtracker/internal/models"
)

// SessionService implements the SessionService RPC interface: the session
// ledger, the bankroll it maintains, and the stats derived from it.
type SessionService struct {
	sessions *ledger.SessionLedger
	stats    *ledger.StatsAggregator
	logger   *slog.Logger
}

func NewSessionService(sessions *ledger.SessionLedger, stats *ledger.StatsAggregator, logger *slog.Logger) *SessionService {
	return &SessionService{sessions: sessions, stats: stats, logger: logger}
}

func (s *SessionService) ListSessions(ctx context.Context, req *connect.Request[ListSessionsRequest]) (*connect.Response[ListSessionsResponse], error) {
	sessions, err := s.sessions.ListSessions(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ListSessionsResponse{Sessions: sessions}), nil
}

func (s *SessionService) CreateSession(ctx context.Context, req *connect.Request[CreateSessionRequest]) (*connect.Response[CreateSessionResponse], error) {
	session, err := s.sessions.CreateSession(ctx, middleware.GetUserID(ctx), newSession(req.Msg))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&CreateSessionResponse{Success: true, Session: session}), nil
}

func (s *SessionService) DeleteSession(ctx context.Context, req *connect.Request[DeleteSessionRequest]) (*connect.Response[SuccessResponse], error) {
	if err := s.sessions.DeleteSession(ctx, middleware.GetUserID(ctx), req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&SuccessResponse{Success: true}), nil
}

func (s *SessionService) GetBankroll(ctx context.Context, req *connect.Request[GetBankrollRequest]) (*connect.Response[GetBankrollResponse], error) {
	amount, err := s.sessions.Bankroll(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GetBankrollResponse{Amount: amount}), nil
}

// ReconcileBankroll rewrites the bankroll from the session rows and reports
// how far it had drifted.
func (s *SessionService) ReconcileBankroll(ctx context.Context, req *connect.Request[ReconcileBankrollRequest]) (*connect.Response[ReconcileBankrollResponse], error) {
	amount, drift, err := s.sessions.ReconcileBankroll(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ReconcileBankrollResponse{Success: true, Amount: amount, Drift: drift}), nil
}

func (s *SessionService) GetStats(ctx context.Context, req *connect.Request[GetStatsRequest]) (*connect.Response[models.StatsReport], error) {
	asOf, err := ParseAsOf(req.Msg.AsOf)
	if err != nil {
		return nil, toConnectError(err)
	}
	report, err := s.stats.ComputeStats(ctx, middleware.GetUserID(ctx), asOf)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&report), nil
}

func newSession(m *CreateSessionRequest) ledger.NewSession {
	return ledger.NewSession{
		Date:      m.Date,
		PlayTime:  m.PlayTime,
		StudyTime: m.StudyTime,
		Games:     m.Games,
		Hands:     m.Hands,
		Earnings:  m.Earnings,
		Notes:     m.Notes,
	}
}
