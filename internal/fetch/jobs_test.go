package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	html  string
	err   error
	calls int
}

func (r *stubRenderer) Render(_ context.Context, _ string) (string, error) {
	r.calls++
	return r.html, r.err
}

func serveHTML(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestJobFetcher_ExtractsDescription(t *testing.T) {
	long := strings.Repeat("Build data pipelines with Python and Airflow. ", 20)
	server := serveHTML(t, `<html><body><nav>Jobs</nav><div class="job-description"><p>`+long+`</p></div></body></html>`)
	renderer := &stubRenderer{}

	text, err := NewJobFetcher(nil, renderer, nil).FetchJobDescription(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, strings.TrimSpace(long), text)
	assert.Zero(t, renderer.calls)
}

func TestJobFetcher_BrowserFallback(t *testing.T) {
	server := serveHTML(t, `<html><body><div id="root"></div></body></html>`)
	renderer := &stubRenderer{html: `<html><body><main><p>Rendered posting: Docker, Kubernetes</p></main></body></html>`}

	text, err := NewJobFetcher(nil, renderer, nil).FetchJobDescription(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, 1, renderer.calls)
	assert.Equal(t, "Rendered posting: Docker, Kubernetes", text)
}

func TestJobFetcher_BrowserFailureKeepsHTTPText(t *testing.T) {
	server := serveHTML(t, `<html><body><main>Short posting</main></body></html>`)
	renderer := &stubRenderer{err: errors.New("chrome missing")}

	text, err := NewJobFetcher(nil, renderer, nil).FetchJobDescription(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Short posting", text)
}

func TestJobFetcher_EmptyPage(t *testing.T) {
	server := serveHTML(t, `<html><body><script>render()</script></body></html>`)

	_, err := NewJobFetcher(nil, nil, nil).FetchJobDescription(context.Background(), server.URL)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "no job description text found", fetchErr.Message)
}

func TestJobFetcher_HTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewJobFetcher(nil, nil, nil).FetchJobDescription(context.Background(), server.URL)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "HTTP status 502")
}

func TestJobFetcher_TruncatesLongPostings(t *testing.T) {
	server := serveHTML(t, `<html><body><main>`+strings.Repeat("é", MaxJobDescriptionRunes+10)+`</main></body></html>`)

	text, err := NewJobFetcher(nil, nil, nil).FetchJobDescription(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, []rune(text), MaxJobDescriptionRunes)
}
