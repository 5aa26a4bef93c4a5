package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/caseflow/internal/crypto"
	"github.com/iudanet/caseflow/internal/server/storage"
	"github.com/iudanet/caseflow/internal/validation"
	"github.com/iudanet/caseflow/pkg/api"
)

// AuthHandler обрабатывает запросы авторизации мобильных агентов
type AuthHandler struct {
	logger       *slog.Logger
	userStorage  storage.UserStorage
	tokenStorage storage.TokenStorage
	jwtConfig    JWTConfig
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, tokenStorage storage.TokenStorage, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		userStorage:  userStorage,
		tokenStorage: tokenStorage,
		jwtConfig:    jwtConfig,
	}
}

// Login обрабатывает POST /api/mobile/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, http.StatusBadRequest, api.CodeMissingUsername, "invalid request body")
		return
	}

	if req.Username == "" {
		sendError(h.logger, w, http.StatusBadRequest, api.CodeMissingUsername, "username is required")
		return
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		h.logger.WarnContext(ctx, "invalid username", slog.String("username", req.Username), slog.Any("error", err))
		sendError(h.logger, w, http.StatusBadRequest, api.CodeMissingUsername, err.Error())
		return
	}

	user, err := h.userStorage.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("username", req.Username))
			sendError(h.logger, w, http.StatusUnauthorized, api.CodeInvalidCredentials, "invalid credentials")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternalError, "internal server error")
		return
	}

	// Контроль доступа по платформе: полевые агенты работают только
	// с мобильного клиента, остальные роли — только с веба
	platform := r.Header.Get(api.HeaderPlatform)
	isMobile := strings.EqualFold(platform, api.PlatformMobile)
	if user.Role == storage.RoleFieldAgent && !isMobile {
		h.logger.WarnContext(ctx, "field agent login from non-mobile platform",
			slog.String("username", req.Username), slog.String("platform", platform))
		sendError(h.logger, w, http.StatusForbidden, api.CodeFieldAgentMobileOnly,
			"field agents must use the mobile application")
		return
	}
	if user.Role != storage.RoleFieldAgent && isMobile {
		h.logger.WarnContext(ctx, "non-field-agent login from mobile platform",
			slog.String("username", req.Username), slog.String("role", user.Role))
		sendError(h.logger, w, http.StatusForbidden, api.CodeNonFieldAgentWebOnly,
			"this account cannot use the mobile application")
		return
	}

	if err := crypto.CheckPassword(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, crypto.ErrPasswordMismatch) {
			h.logger.WarnContext(ctx, "login failed: invalid password", slog.String("username", req.Username))
			sendError(h.logger, w, http.StatusUnauthorized, api.CodeInvalidCredentials, "invalid credentials")
			return
		}
		h.logger.ErrorContext(ctx, "failed to check password", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternalError, "internal server error")
		return
	}

	accessToken, expiresIn, err := GenerateAccessToken(h.jwtConfig, user.ID, user.Username, user.Role)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternalError, "internal server error")
		return
	}

	refreshToken, expiresAt, err := GenerateRefreshToken(h.jwtConfig)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate refresh token", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternalError, "internal server error")
		return
	}

	deviceID := req.DeviceID
	if deviceID == "" {
		deviceID = r.Header.Get(api.HeaderDeviceID)
	}

	token := &storage.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		DeviceID:  deviceID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	if err := h.tokenStorage.SaveRefreshToken(ctx, token); err != nil {
		h.logger.ErrorContext(ctx, "failed to save refresh token", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternalError, "internal server error")
		return
	}

	// Не критичная ошибка, логируем но не прерываем
	if err := h.userStorage.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		h.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("username", req.Username),
		slog.String("user_id", user.ID),
		slog.String("device_id", deviceID))

	resp := api.LoginResponse{
		Success: true,
		Data: &api.TokenData{
			User: api.UserInfo{
				ID:       user.ID,
				Username: user.Username,
				Name:     user.Name,
				Role:     user.Role,
			},
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    expiresIn,
		},
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Refresh обрабатывает POST /api/mobile/auth/refresh
// Обновление пары токенов с ротацией refresh token
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode refresh request", slog.Any("error", err))
		sendError(h.logger, w, http.StatusBadRequest, api.CodeInvalidCredentials, "invalid request body")
		return
	}
	if req.RefreshToken == "" {
		sendError(h.logger, w, http.StatusUnauthorized, api.CodeInvalidCredentials, "refresh token is required")
		return
	}

	storedToken, err := h.tokenStorage.GetRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			h.logger.WarnContext(ctx, "refresh token not found")
			sendError(h.logger, w, http.StatusUnauthorized, api.CodeInvalidCredentials, "invalid refresh token")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get refresh token", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternalError, "internal server error")
		return
	}

	if time.Now().After(storedToken.ExpiresAt) {
		h.logger.WarnContext(ctx, "refresh token expired", slog.String("user_id", storedToken.UserID))
		sendError(h.logger, w, http.StatusUnauthorized, api.CodeInvalidCredentials, "refresh token expired")
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, storedToken.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternalError, "internal server error")
		return
	}

	newAccessToken, expiresIn, err := GenerateAccessToken(h.jwtConfig, user.ID, user.Username, user.Role)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternalError, "internal server error")
		return
	}

	newRefreshToken, newExpiresAt, err := GenerateRefreshToken(h.jwtConfig)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate refresh token", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternalError, "internal server error")
		return
	}

	// Удаляем старый refresh token
	if err := h.tokenStorage.DeleteRefreshToken(ctx, req.RefreshToken); err != nil {
		h.logger.WarnContext(ctx, "failed to delete old refresh token", slog.Any("error", err))
		// Продолжаем выполнение
	}

	newToken := &storage.RefreshToken{
		Token:     newRefreshToken,
		UserID:    user.ID,
		DeviceID:  storedToken.DeviceID,
		ExpiresAt: newExpiresAt,
		CreatedAt: time.Now(),
	}
	if err := h.tokenStorage.SaveRefreshToken(ctx, newToken); err != nil {
		h.logger.ErrorContext(ctx, "failed to save refresh token", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternalError, "internal server error")
		return
	}

	h.logger.InfoContext(ctx, "tokens refreshed successfully", slog.String("user_id", user.ID))

	resp := api.LoginResponse{
		Success: true,
		Data: &api.TokenData{
			User: api.UserInfo{
				ID:       user.ID,
				Username: user.Username,
				Name:     user.Name,
				Role:     user.Role,
			},
			AccessToken:  newAccessToken,
			RefreshToken: newRefreshToken,
			ExpiresIn:    expiresIn,
		},
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Logout обрабатывает POST /api/mobile/auth/logout
// Удаляет все refresh tokens пользователя
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("user id not found in context")
		sendError(h.logger, w, http.StatusUnauthorized, api.CodeAccessControlError, "unauthorized")
		return
	}

	deletedCount, err := h.tokenStorage.DeleteUserTokens(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete user tokens", slog.Any("error", err))
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternalError, "internal server error")
		return
	}

	h.logger.InfoContext(ctx, "user logged out successfully",
		slog.String("user_id", userID),
		slog.Int("tokens_deleted", deletedCount))

	sendJSON(h.logger, w, api.Response{Success: true, Message: "logged out"}, http.StatusOK)
}
