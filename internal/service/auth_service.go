package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/mmynk/grindtracker/internal/auth"
	"github.com/mmynk/grindtracker/internal/middleware"
	"github.com/mmynk/grindtracker/internal/models"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Register creates a new user account and signs it in.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[AuthResponse], error) {
	s.logger.Info("Register request", "username", req.Msg.Username, "email", req.Msg.Email)

	user, err := s.authenticator.Register(ctx, req.Msg.Username, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "username", req.Msg.Username, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "username", user.Username)
	return s.signIn(user)
}

// Login authenticates a user by username or email and returns a token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[AuthResponse], error) {
	s.logger.Info("Login request", "login", req.Msg.Username)

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "login", req.Msg.Username, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID)
	return s.signIn(user)
}

func (s *AuthService) signIn(user *models.User) (*connect.Response[AuthResponse], error) {
	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, ErrInternal)
	}

	resp := connect.NewResponse(&AuthResponse{Success: true, User: user, Token: token})
	resp.Header().Add("Set-Cookie", middleware.NewTokenCookie(token, s.jwtManager.TokenDuration()).String())
	return resp, nil
}

// Logout clears the token cookie. Tokens are stateless, so a client holding
// one in memory must discard it itself.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[LogoutRequest]) (*connect.Response[SuccessResponse], error) {
	s.logger.Info("Logout request")
	resp := connect.NewResponse(&SuccessResponse{Success: true})
	resp.Header().Add("Set-Cookie", middleware.ClearTokenCookie().String())
	return resp, nil
}

// GetCurrentUser returns the currently authenticated user's information.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	// Get user ID from context (set by auth middleware)
	userID := middleware.GetUserID(ctx)

	user, err := s.authenticator.User(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GetCurrentUserResponse{User: user}), nil
}
