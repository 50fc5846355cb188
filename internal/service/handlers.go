package service

import (
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/grindtracker/internal/models"
)

// Fully-qualified service names.
const (
	AuthServiceName     = "grindtracker.v1.AuthService"
	SessionServiceName  = "grindtracker.v1.SessionService"
	NoteServiceName     = "grindtracker.v1.NoteService"
	SettingsServiceName = "grindtracker.v1.SettingsService"
)

// Procedure paths. They are the HTTP routes Connect serves each RPC on.
const (
	AuthServiceRegisterProcedure       = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure          = "/" + AuthServiceName + "/Login"
	AuthServiceLogoutProcedure         = "/" + AuthServiceName + "/Logout"
	AuthServiceGetCurrentUserProcedure = "/" + AuthServiceName + "/GetCurrentUser"

	SessionServiceListSessionsProcedure      = "/" + SessionServiceName + "/ListSessions"
	SessionServiceCreateSessionProcedure     = "/" + SessionServiceName + "/CreateSession"
	SessionServiceDeleteSessionProcedure     = "/" + SessionServiceName + "/DeleteSession"
	SessionServiceGetBankrollProcedure       = "/" + SessionServiceName + "/GetBankroll"
	SessionServiceReconcileBankrollProcedure = "/" + SessionServiceName + "/ReconcileBankroll"
	SessionServiceGetStatsProcedure          = "/" + SessionServiceName + "/GetStats"

	NoteServiceListNotesProcedure  = "/" + NoteServiceName + "/ListNotes"
	NoteServiceCreateNoteProcedure = "/" + NoteServiceName + "/CreateNote"
	NoteServiceDeleteNoteProcedure = "/" + NoteServiceName + "/DeleteNote"

	SettingsServiceGetSettingsProcedure    = "/" + SettingsServiceName + "/GetSettings"
	SettingsServiceUpdateSettingsProcedure = "/" + SettingsServiceName + "/UpdateSettings"
)

// PublicProcedures can be called without an identity.
var PublicProcedures = []string{
	AuthServiceRegisterProcedure,
	AuthServiceLoginProcedure,
	AuthServiceLogoutProcedure,
}

// IsProcedurePath reports whether path belongs to one of the Connect services.
func IsProcedurePath(path string) bool {
	return strings.HasPrefix(path, "/grindtracker.v1.")
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{WithJSON()}, opts...)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc *AuthService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceRegisterProcedure, connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...))
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(AuthServiceLogoutProcedure, connect.NewUnaryHandler(AuthServiceLogoutProcedure, svc.Logout, opts...))
	mux.Handle(AuthServiceGetCurrentUserProcedure, connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...))
	return "/" + AuthServiceName + "/", mux
}

// NewSessionServiceHandler builds an HTTP handler from the service implementation.
func NewSessionServiceHandler(svc *SessionService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(SessionServiceListSessionsProcedure, connect.NewUnaryHandler(SessionServiceListSessionsProcedure, svc.ListSessions, opts...))
	mux.Handle(SessionServiceCreateSessionProcedure, connect.NewUnaryHandler(SessionServiceCreateSessionProcedure, svc.CreateSession, opts...))
	mux.Handle(SessionServiceDeleteSessionProcedure, connect.NewUnaryHandler(SessionServiceDeleteSessionProcedure, svc.DeleteSession, opts...))
	mux.Handle(SessionServiceGetBankrollProcedure, connect.NewUnaryHandler(SessionServiceGetBankrollProcedure, svc.GetBankroll, opts...))
	mux.Handle(SessionServiceReconcileBankrollProcedure, connect.NewUnaryHandler(SessionServiceReconcileBankrollProcedure, svc.ReconcileBankroll, opts...))
	mux.Handle(SessionServiceGetStatsProcedure, connect.NewUnaryHandler(SessionServiceGetStatsProcedure, svc.GetStats, opts...))
	return "/" + SessionServiceName + "/", mux
}

// NewNoteServiceHandler builds an HTTP handler from the service implementation.
func NewNoteServiceHandler(svc *NoteService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(NoteServiceListNotesProcedure, connect.NewUnaryHandler(NoteServiceListNotesProcedure, svc.ListNotes, opts...))
	mux.Handle(NoteServiceCreateNoteProcedure, connect.NewUnaryHandler(NoteServiceCreateNoteProcedure, svc.CreateNote, opts...))
	mux.Handle(NoteServiceDeleteNoteProcedure, connect.NewUnaryHandler(NoteServiceDeleteNoteProcedure, svc.DeleteNote, opts...))
	return "/" + NoteServiceName + "/", mux
}

// NewSettingsServiceHandler builds an HTTP handler from the service implementation.
func NewSettingsServiceHandler(svc *SettingsService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(SettingsServiceGetSettingsProcedure, connect.NewUnaryHandler(SettingsServiceGetSettingsProcedure, svc.GetSettings, opts...))
	mux.Handle(SettingsServiceUpdateSettingsProcedure, connect.NewUnaryHandler(SettingsServiceUpdateSettingsProcedure, svc.UpdateSettings, opts...))
	return "/" + SettingsServiceName + "/", mux
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{WithJSON()}, opts...)
}

// AuthServiceClient is a client for the AuthService.
type AuthServiceClient struct {
	Register       *connect.Client[RegisterRequest, AuthResponse]
	Login          *connect.Client[LoginRequest, AuthResponse]
	Logout         *connect.Client[LogoutRequest, SuccessResponse]
	GetCurrentUser *connect.Client[GetCurrentUserRequest, GetCurrentUserResponse]
}

// NewAuthServiceClient constructs a client for the AuthService at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &AuthServiceClient{
		Register:       connect.NewClient[RegisterRequest, AuthResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		Login:          connect.NewClient[LoginRequest, AuthResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		Logout:         connect.NewClient[LogoutRequest, SuccessResponse](httpClient, baseURL+AuthServiceLogoutProcedure, opts...),
		GetCurrentUser: connect.NewClient[GetCurrentUserRequest, GetCurrentUserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
	}
}

// SessionServiceClient is a client for the SessionService.
type SessionServiceClient struct {
	ListSessions      *connect.Client[ListSessionsRequest, ListSessionsResponse]
	CreateSession     *connect.Client[CreateSessionRequest, CreateSessionResponse]
	DeleteSession     *connect.Client[DeleteSessionRequest, SuccessResponse]
	GetBankroll       *connect.Client[GetBankrollRequest, GetBankrollResponse]
	ReconcileBankroll *connect.Client[ReconcileBankrollRequest, ReconcileBankrollResponse]
	GetStats          *connect.Client[GetStatsRequest, models.StatsReport]
}

// NewSessionServiceClient constructs a client for the SessionService at baseURL.
func NewSessionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SessionServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &SessionServiceClient{
		ListSessions:      connect.NewClient[ListSessionsRequest, ListSessionsResponse](httpClient, baseURL+SessionServiceListSessionsProcedure, opts...),
		CreateSession:     connect.NewClient[CreateSessionRequest, CreateSessionResponse](httpClient, baseURL+SessionServiceCreateSessionProcedure, opts...),
		DeleteSession:     connect.NewClient[DeleteSessionRequest, SuccessResponse](httpClient, baseURL+SessionServiceDeleteSessionProcedure, opts...),
		GetBankroll:       connect.NewClient[GetBankrollRequest, GetBankrollResponse](httpClient, baseURL+SessionServiceGetBankrollProcedure, opts...),
		ReconcileBankroll: connect.NewClient[ReconcileBankrollRequest, ReconcileBankrollResponse](httpClient, baseURL+SessionServiceReconcileBankrollProcedure, opts...),
		GetStats:          connect.NewClient[GetStatsRequest, models.StatsReport](httpClient, baseURL+SessionServiceGetStatsProcedure, opts...),
	}
}

// NoteServiceClient is a client for the NoteService.
type NoteServiceClient struct {
	ListNotes  *connect.Client[ListNotesRequest, ListNotesResponse]
	CreateNote *connect.Client[CreateNoteRequest, CreateNoteResponse]
	DeleteNote *connect.Client[DeleteNoteRequest, SuccessResponse]
}

// NewNoteServiceClient constructs a client for the NoteService at baseURL.
func NewNoteServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *NoteServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &NoteServiceClient{
		ListNotes:  connect.NewClient[ListNotesRequest, ListNotesResponse](httpClient, baseURL+NoteServiceListNotesProcedure, opts...),
		CreateNote: connect.NewClient[CreateNoteRequest, CreateNoteResponse](httpClient, baseURL+NoteServiceCreateNoteProcedure, opts...),
		DeleteNote: connect.NewClient[DeleteNoteRequest, SuccessResponse](httpClient, baseURL+NoteServiceDeleteNoteProcedure, opts...),
	}
}

// SettingsServiceClient is a client for the SettingsService.
type SettingsServiceClient struct {
	GetSettings    *connect.Client[GetSettingsRequest, SettingsResponse]
	UpdateSettings *connect.Client[UpdateSettingsRequest, SuccessResponse]
}

// NewSettingsServiceClient constructs a client for the SettingsService at baseURL.
func NewSettingsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SettingsServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &SettingsServiceClient{
		GetSettings:    connect.NewClient[GetSettingsRequest, SettingsResponse](httpClient, baseURL+SettingsServiceGetSettingsProcedure, opts...),
		UpdateSettings: connect.NewClient[UpdateSettingsRequest, SuccessResponse](httpClient, baseURL+SettingsServiceUpdateSettingsProcedure, opts...),
	}
}
