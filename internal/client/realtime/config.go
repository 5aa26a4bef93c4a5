package realtime

import (
	"time"

	"github.com/iudanet/caseflow/pkg/api"
)

// Config параметры realtime-канала. Пресеты различаются только
// числами: сам канал один и тот же для мобильной и веб-платформы.
type Config struct {
	URL                  string        // ws:// или wss:// адрес
	Platform             string        // значение для handshake (MOBILE/WEB)
	DeviceID             string
	BackoffBase          time.Duration // базовая задержка переподключения
	BackoffCap           time.Duration // потолок задержки переподключения
	ConnectThrottle      time.Duration // минимальный интервал между ручными попытками
	DialTimeout          time.Duration // таймаут установления соединения
	PingInterval         time.Duration
	PongWait             time.Duration
	MaxReconnectAttempts int // 0 = без ограничения
}

// MobileConfig пресет мобильного агента
func MobileConfig(url, deviceID string) Config {
	return Config{
		URL:                  url,
		Platform:             api.PlatformMobile,
		DeviceID:             deviceID,
		BackoffBase:          3 * time.Second,
		BackoffCap:           60 * time.Second,
		ConnectThrottle:      10 * time.Second,
		DialTimeout:          10 * time.Second,
		PingInterval:         30 * time.Second,
		PongWait:             60 * time.Second,
		MaxReconnectAttempts: 10,
	}
}

// WebConfig пресет веб-клиента
func WebConfig(url string) Config {
	return Config{
		URL:                  url,
		Platform:             api.PlatformWeb,
		BackoffBase:          time.Second,
		BackoffCap:           30 * time.Second,
		ConnectThrottle:      5 * time.Second,
		DialTimeout:          10 * time.Second,
		PingInterval:         30 * time.Second,
		PongWait:             60 * time.Second,
		MaxReconnectAttempts: 5,
	}
}

// backoffDelay возвращает задержку перед попыткой attempt (нумерация с 1):
// max(base, base*2^(attempt-1)), не больше cap
func backoffDelay(base, cap time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= cap {
			return cap
		}
	}
	if delay < base {
		return base
	}
	if delay > cap {
		return cap
	}
	return delay
}
