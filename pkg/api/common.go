package api

// Заголовки, по которым сервер определяет платформу клиента
const (
	HeaderAppVersion = "X-App-Version"
	HeaderPlatform   = "X-Platform"
	HeaderDeviceID   = "X-Device-ID"
)

// Значения платформы для заголовка X-Platform и WS handshake.
// Сравнение на сервере регистронезависимое.
const (
	PlatformMobile = "MOBILE"
	PlatformWeb    = "WEB"
)

// Коды ошибок, возвращаемые сервером в теле ответа
const (
	CodeMissingUsername       = "MISSING_USERNAME"
	CodeFieldAgentMobileOnly  = "FIELD_AGENT_MOBILE_ONLY"
	CodeNonFieldAgentWebOnly  = "NON_FIELD_AGENT_WEB_ONLY"
	CodeAccessControlError    = "ACCESS_CONTROL_ERROR"
	CodeInvalidLimit          = "INVALID_LIMIT"
	CodeInvalidTimestamp      = "INVALID_TIMESTAMP"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeCaseNotFound          = "CASE_NOT_FOUND"
	CodeInternalError         = "INTERNAL_ERROR"
)

// Error представляет структурированную ошибку в теле ответа сервера
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// Response базовый конверт ответа сервера: {success, message?, error?}
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   *Error `json:"error,omitempty"`
}
