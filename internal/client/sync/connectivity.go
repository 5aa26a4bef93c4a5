package sync

import (
	"net"
	"net/url"
	"time"
)

// dialConnectivity проверяет доступность сервера TCP-соединением.
// Дешевая проверка перед сетевыми операциями; сам запрос все равно
// может упасть, и тогда сработает офлайн-ветка операции.
type dialConnectivity struct {
	addr    string
	timeout time.Duration
}

// NewDialConnectivity создает проверку сети по адресу сервера
func NewDialConnectivity(serverURL string, timeout time.Duration) (Connectivity, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, err
	}

	host := u.Host
	if u.Port() == "" {
		switch u.Scheme {
		case "https":
			host = net.JoinHostPort(u.Hostname(), "443")
		default:
			host = net.JoinHostPort(u.Hostname(), "80")
		}
	}

	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	return &dialConnectivity{addr: host, timeout: timeout}, nil
}

func (d *dialConnectivity) IsOnline() bool {
	conn, err := net.DialTimeout("tcp", d.addr, d.timeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
