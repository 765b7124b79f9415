package testutils

import (
	"crypto/tls"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// TestServer is a test HTTPS server with tracing capabilities. It serves the
// httptest certificate, valid for example.com and 127.0.0.1.
type TestServer struct {
	*httptest.Server
	Addr string

	mu          sync.Mutex
	serverNames []string
}

// ServerNames returns the SNI host names received so far, one per handshake.
func (ts *TestServer) ServerNames() []string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]string(nil), ts.serverNames...)
}

// TraceListener wraps net.Listener to trace accept events
type TraceListener struct {
	net.Listener
	t *testing.T
}

func (l *TraceListener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		l.t.Logf("[Server] Accept error: %v", err)
		return conn, err
	}
	l.t.Logf("[Server] Accepted connection from: %v", conn.RemoteAddr())
	return conn, nil
}

// NewTestServer starts a test HTTPS server answering GET /hello. It is closed
// when the test ends.
func NewTestServer(t *testing.T) *TestServer {
	ts := &TestServer{}

	mux := http.NewServeMux()
	mux.HandleFunc("/hello", func(w http.ResponseWriter, r *http.Request) {
		t.Logf("[Server] Handling %s request to %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Hello, from a simple HTTPS server!"})
	})

	server := httptest.NewUnstartedServer(mux)
	server.Listener = &TraceListener{Listener: server.Listener, t: t}
	server.TLS = &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS13,
		GetConfigForClient: func(hello *tls.ClientHelloInfo) (*tls.Config, error) {
			t.Logf("[Server] TLS ClientHello from %v: Version=%x, ServerName=%s",
				hello.Conn.RemoteAddr(), hello.SupportedVersions, hello.ServerName)
			ts.mu.Lock()
			ts.serverNames = append(ts.serverNames, hello.ServerName)
			ts.mu.Unlock()
			return nil, nil
		},
	}
	server.Config.WriteTimeout = 10 * time.Second
	server.Config.ReadTimeout = 10 * time.Second
	server.StartTLS()
	t.Cleanup(server.Close)

	ts.Server = server
	ts.Addr = server.Listener.Addr().String()
	return ts
}
