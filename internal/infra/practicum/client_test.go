package practicum

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"
	"time"

	domain "homework_status_bot/internal/domain/practicum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_RejectsBadEndpoint(t *testing.T) {
	_, err := NewHTTPClient("ftp://example.com/statuses", "token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http or https")

	_, err = NewHTTPClient("://bad", "token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid homework API endpoint")
}

func TestHomeworkStatuses_SendsTokenAndFromDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "OAuth secret", r.Header.Get("Authorization"))
		assert.Equal(t, "1699998800", r.URL.Query().Get("from_date"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"homeworks": [], "current_date": 1700000000}`))
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, "secret")
	require.NoError(t, err)

	resp, err := c.HomeworkStatuses(context.Background(), 1699998800)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"homeworks": [], "current_date": 1700000000}`, string(resp.Body))
}

func TestHomeworkStatuses_NonSuccessIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, "secret")
	require.NoError(t, err)

	resp, err := c.HomeworkStatuses(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHomeworkStatuses_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url, "secret")
	require.NoError(t, err)

	_, err = c.HomeworkStatuses(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.NotContains(t, err.Error(), "from_date")
}

func TestHomeworkStatuses_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, "secret")
	require.NoError(t, err)
	c.httpClient.Timeout = 50 * time.Millisecond

	_, err = c.HomeworkStatuses(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func resetServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		conn, _, err := w.(http.Hijacker).Hijack()
		if err != nil {
			return
		}
		if tcp, ok := conn.(*net.TCPConn); ok {
			_ = tcp.SetLinger(0)
		}
		_ = conn.Close()
	}))
}

func TestHomeworkStatuses_ConnectionResetIsStable(t *testing.T) {
	srv := resetServer()
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, "secret")
	require.NoError(t, err)

	_, first := c.HomeworkStatuses(context.Background(), 1)
	_, second := c.HomeworkStatuses(context.Background(), 1)

	var te *domain.TransportError
	require.True(t, errors.As(first, &te))
	assert.Equal(t, "connection reset", te.Reason)
	assert.Equal(t, first.Error(), second.Error())
	assert.Equal(t, "homework API unreachable: connection reset", first.Error())
}

func TestTransportReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"deadline", context.DeadlineExceeded, "timeout"},
		{"reset", &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}, "connection reset"},
		{"eof", io.EOF, "connection reset"},
		{"refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, "connection refused"},
		{"dns", &net.DNSError{Err: "no such host", Name: "practicum.example"}, "DNS lookup failed for practicum.example"},
		{"other op", &net.OpError{Op: "write", Net: "tcp", Err: errors.New("broken pipe")}, "write: broken pipe"},
		{"plain", errors.New("tls: bad certificate"), "tls: bad certificate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transportReason(tt.err))
		})
	}
}
