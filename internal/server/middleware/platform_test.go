package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/caseflow/pkg/api"
)

func TestPlatformMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		platform   string
		appVersion string
		wantStatus int
	}{
		{name: "mobile client", platform: "MOBILE", appVersion: "1.2.0", wantStatus: http.StatusOK},
		{name: "lowercase platform", platform: "mobile", appVersion: "1.2.0", wantStatus: http.StatusOK},
		{name: "web platform", platform: "WEB", appVersion: "1.2.0", wantStatus: http.StatusForbidden},
		{name: "missing platform", platform: "", appVersion: "1.2.0", wantStatus: http.StatusForbidden},
		{name: "missing app version", platform: "MOBILE", appVersion: "", wantStatus: http.StatusForbidden},
		{name: "bare curl request", platform: "", appVersion: "", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/mobile/cases", nil)
			if tt.platform != "" {
				req.Header.Set(api.HeaderPlatform, tt.platform)
			}
			if tt.appVersion != "" {
				req.Header.Set(api.HeaderAppVersion, tt.appVersion)
			}

			w := httptest.NewRecorder()
			PlatformMiddleware(testLogger())(next).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
			if tt.wantStatus == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), api.CodeAccessControlError)
			}
		})
	}
}
