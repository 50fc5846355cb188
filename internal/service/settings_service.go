package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/mmynk/grindtracker/internal/ledger"
	"github.com/mmynk/grindtracker/internal/middleware"
)

// SettingsService implements the SettingsService RPC interface.
type SettingsService struct {
	settings *ledger.SettingsManager
	logger   *slog.Logger
}

func NewSettingsService(settings *ledger.SettingsManager, logger *slog.Logger) *SettingsService {
	return &SettingsService{settings: settings, logger: logger}
}

func (s *SettingsService) GetSettings(ctx context.Context, req *connect.Request[GetSettingsRequest]) (*connect.Response[SettingsResponse], error) {
	settings, err := s.settings.GetSettings(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&SettingsResponse{Settings: settings}), nil
}

func (s *SettingsService) UpdateSettings(ctx context.Context, req *connect.Request[UpdateSettingsRequest]) (*connect.Response[SuccessResponse], error) {
	_, err := s.settings.UpdateSettings(ctx, middleware.GetUserID(ctx), req.Msg.WeeklyGoals, req.Msg.SessionNotes)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&SuccessResponse{Success: true}), nil
}
