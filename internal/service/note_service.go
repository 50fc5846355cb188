package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/mmynk/grindtracker/internal/ledger"
	"github.com/mmynk/grindtracker/internal/middleware"
)

// NoteService implements the NoteService RPC interface.
type NoteService struct {
	notes  *ledger.NoteBook
	logger *slog.Logger
}

func NewNoteService(notes *ledger.NoteBook, logger *slog.Logger) *NoteService {
	return &NoteService{notes: notes, logger: logger}
}

func (s *NoteService) ListNotes(ctx context.Context, req *connect.Request[ListNotesRequest]) (*connect.Response[ListNotesResponse], error) {
	notes, err := s.notes.ListNotes(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ListNotesResponse{Notes: notes}), nil
}

func (s *NoteService) CreateNote(ctx context.Context, req *connect.Request[CreateNoteRequest]) (*connect.Response[CreateNoteResponse], error) {
	note, err := s.notes.CreateNote(ctx, middleware.GetUserID(ctx), ledger.NewNote{
		PlayerName: req.Msg.PlayerName,
		Category:   req.Msg.Category,
		NoteText:   req.Msg.NoteText,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&CreateNoteResponse{Success: true, Note: note}), nil
}

func (s *NoteService) DeleteNote(ctx context.Context, req *connect.Request[DeleteNoteRequest]) (*connect.Response[SuccessResponse], error) {
	if err := s.notes.DeleteNote(ctx, middleware.GetUserID(ctx), req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&SuccessResponse{Success: true}), nil
}
