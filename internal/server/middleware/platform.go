package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/caseflow/pkg/api"
)

// PlatformMiddleware пропускает на мобильные эндпоинты только запросы
// мобильного клиента: X-Platform должен быть MOBILE (регистр не важен),
// X-App-Version — непустым. Запросы без этих заголовков получают 403.
func PlatformMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			platform := r.Header.Get(api.HeaderPlatform)
			appVersion := r.Header.Get(api.HeaderAppVersion)

			if !strings.EqualFold(platform, api.PlatformMobile) || appVersion == "" {
				logger.Warn("mobile endpoint access denied",
					"path", r.URL.Path,
					"platform", platform,
					"app_version", appVersion,
					"remote_addr", r.RemoteAddr,
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"success":false,"error":{"code":"ACCESS_CONTROL_ERROR","message":"mobile client headers required"}}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
