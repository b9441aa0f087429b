package middleware

import (
	"bufio"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type flusherWriter struct {
	http.ResponseWriter
	flushed bool
}

func (m *flusherWriter) Flush() { m.flushed = true }

type hijackerWriter struct {
	http.ResponseWriter
	hijacked bool
}

func (m *hijackerWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	m.hijacked = true
	return nil, nil, nil
}

// bareWriter implements neither http.Flusher nor http.Hijacker.
type bareWriter struct{ header http.Header }

func (m *bareWriter) Header() http.Header {
	if m.header == nil {
		m.header = make(http.Header)
	}
	return m.header
}
func (m *bareWriter) Write(b []byte) (int, error) { return len(b), nil }
func (m *bareWriter) WriteHeader(int)             {}

func TestStatusRecorder_FirstStatusWins(t *testing.T) {
	rec := newStatusRecorder(httptest.NewRecorder())
	rec.WriteHeader(http.StatusNotFound)
	rec.WriteHeader(http.StatusOK)
	assert.Equal(t, http.StatusNotFound, rec.status)
}

func TestStatusRecorder_CountsBytes(t *testing.T) {
	rec := newStatusRecorder(httptest.NewRecorder())
	_, _ = rec.Write([]byte("hello"))
	_, _ = rec.Write([]byte("!"))
	assert.Equal(t, 6, rec.bytes)
	assert.Equal(t, http.StatusOK, rec.status)
}

func TestStatusRecorder_ReusesExisting(t *testing.T) {
	inner := newStatusRecorder(httptest.NewRecorder())
	assert.Same(t, inner, newStatusRecorder(inner))
}

func TestStatusRecorder_Flush(t *testing.T) {
	mock := &flusherWriter{ResponseWriter: httptest.NewRecorder()}
	newStatusRecorder(mock).Flush()
	assert.True(t, mock.flushed)

	// no-op without a Flusher underneath
	newStatusRecorder(&bareWriter{}).Flush()
}

func TestStatusRecorder_Hijack(t *testing.T) {
	mock := &hijackerWriter{ResponseWriter: httptest.NewRecorder()}
	_, _, err := newStatusRecorder(mock).Hijack()
	assert.NoError(t, err)
	assert.True(t, mock.hijacked)

	_, _, err = newStatusRecorder(&bareWriter{}).Hijack()
	assert.ErrorIs(t, err, http.ErrNotSupported)
}
