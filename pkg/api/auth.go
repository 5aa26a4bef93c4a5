package api

// LoginRequest представляет запрос на аутентификацию полевого агента
type LoginRequest struct {
	Username string `json:"username"` // username пользователя
	Password string `json:"password"` // пароль (передается только по TLS)
	DeviceID string `json:"deviceId,omitempty"`
}

// UserInfo краткая информация о пользователе в ответе на логин
type UserInfo struct {
	ID       string `json:"id"`       // UUID пользователя
	Username string `json:"username"` // username
	Name     string `json:"name"`     // отображаемое имя
	Role     string `json:"role"`     // роль: FIELD_AGENT, BACKEND_USER, ADMIN
}

// TokenData содержит токены доступа и данные пользователя
type TokenData struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"accessToken"`  // JWT access token
	RefreshToken string   `json:"refreshToken"` // refresh token
	ExpiresIn    int64    `json:"expiresIn"`    // время жизни access token в секундах
}

// LoginResponse представляет ответ на POST /api/mobile/auth/login
type LoginResponse struct {
	Data    *TokenData `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   *Error     `json:"error,omitempty"`
	Success bool       `json:"success"`
}

// RefreshRequest представляет запрос на обновление access token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
