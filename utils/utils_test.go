package utils

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal(t, "2m:5s", FormatTime(125*time.Second))
	assert.Equal(t, "1h:1m:1s", FormatTime(time.Hour+time.Minute+time.Second))
}

func TestDownloadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("image bytes"))
	}))
	defer srv.Close()

	f, err := DownloadImage(srv.URL + "/cat.png")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	defer f.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(f)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", buf.String())

	_, err = DownloadImage(srv.URL + "/missing")
	assert.Error(t, err)
}

func TestSpinner(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, aurora.NewAurora(false))
	s.Start("Working...")
	time.Sleep(10 * time.Millisecond)
	s.Stop()
	assert.Contains(t, buf.String(), "Working...")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
