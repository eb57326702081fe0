package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireChrome(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return
		}
	}
	t.Skip("no Chrome or Chromium binary found")
}

func TestRenderOptions_Defaults(t *testing.T) {
	opts := RenderOptions{}.withDefaults()
	assert.Equal(t, 30*time.Second, opts.NavigationTimeout)
	assert.Equal(t, 10*time.Second, opts.WaitTimeout)
	assert.Equal(t, 10*time.Second, opts.CaptureTimeout)

	custom := RenderOptions{NavigationTimeout: time.Second, WaitTimeout: 2 * time.Second, CaptureTimeout: 3 * time.Second}.withDefaults()
	assert.Equal(t, time.Second, custom.NavigationTimeout)
	assert.Equal(t, 2*time.Second, custom.WaitTimeout)
	assert.Equal(t, 3*time.Second, custom.CaptureTimeout)
}

func TestRender_InvalidURL(t *testing.T) {
	_, err := Render(context.Background(), "directory", RenderOptions{})
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestInspect_InvalidURL(t *testing.T) {
	err := Inspect(context.Background(), "", false)
	assert.Error(t, err)
}

func TestRender_ScriptBuiltRows(t *testing.T) {
	requireChrome(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><div id="root"></div><script>
			document.getElementById("root").innerHTML =
				'<div data-block-id="b1"><div class="notion-table-view-row"><div class="notion-table-view-cell">Y Combinator</div></div></div>';
		</script></body></html>`))
	}))
	defer server.Close()

	html, err := Render(context.Background(), server.URL, RenderOptions{
		NavigationTimeout: 20 * time.Second,
		WaitSelector:      "[data-block-id]",
		WaitTimeout:       5 * time.Second,
	})
	require.NoError(t, err)

	rows, err := ExtractRows(html, ".notion-table-view-row", ".notion-table-view-cell")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Y Combinator", rows[0][0])
}

func TestRender_SelectorTimeout(t *testing.T) {
	requireChrome(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>static</p></body></html>`))
	}))
	defer server.Close()

	_, err := Render(context.Background(), server.URL, RenderOptions{
		WaitSelector: "[data-block-id]",
		WaitTimeout:  500 * time.Millisecond,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not appear")
}
