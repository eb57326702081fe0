package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	// Create test server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "text/html", result.ContentType)
}

func TestURL_SendsHeaders(t *testing.T) {
	var gotAgent, gotCustom string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotCustom = r.Header.Get("X-Directory")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.Headers = map[string]string{"X-Directory": "accelerators"}
	_, err := URL(context.Background(), server.URL, opts)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, gotAgent)
	assert.Equal(t, "accelerators", gotCustom)
}

func TestURL_InvalidURL(t *testing.T) {
	_, err := URL(context.Background(), "not-a-valid-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.NotNil(t, result) // Result is returned even on error
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "404")
}

func TestURL_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	addr := server.URL
	server.Close()

	result, err := URL(context.Background(), addr, nil)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "HTTP request failed")
}

func TestExtractRows(t *testing.T) {
	html := `
	<html>
		<body>
			<div class="notion-table-view-row">
				<div class="notion-table-view-cell">  Y
					Combinator </div>
				<div class="notion-table-view-cell">Mountain View</div>
			</div>
			<div class="notion-collection-item">
				<div class="notion-table-view-cell">Techstars</div>
			</div>
			<div class="notion-table-view-row"></div>
		</body>
	</html>`

	rows, err := ExtractRows(html, ".notion-table-view-row, .notion-collection-item", ".notion-table-view-cell")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Y Combinator", "Mountain View"}, rows[0])
	assert.Equal(t, []string{"Techstars"}, rows[1])
	assert.Empty(t, rows[2])
}

func TestExtractRows_NoMatches(t *testing.T) {
	rows, err := ExtractRows("<html><body><p>nothing</p></body></html>", "tr", "td")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "Accelerator Directory", PageTitle("<html><head><title> Accelerator\n Directory </title></head></html>"))
	assert.Equal(t, "", PageTitle("<html></html>"))
}
