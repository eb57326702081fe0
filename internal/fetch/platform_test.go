package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://www.notion.so/Accelerators-1234abcd", PlatformNotion},
		{"https://founders.notion.site/directory", PlatformNotion},
		{"https://airtable.com/shrXXXXXXXX", PlatformAirtable},
		{"https://example.com/accelerators", PlatformUnknown},
		{"https://notion.so.example.com/page", PlatformUnknown},
		{"://bad url", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformSelectors(t *testing.T) {
	notion := PlatformSelectors(PlatformNotion)
	assert.Equal(t, "[data-block-id]", notion.Ready)
	assert.Contains(t, notion.Row, ".notion-table-view-row")
	assert.Contains(t, notion.Row, ".notion-collection-item")
	assert.Equal(t, ".notion-table-view-cell", notion.Cell)

	generic := PlatformSelectors(PlatformUnknown)
	assert.Equal(t, "td", generic.Cell)
}

func TestPlatformFromType(t *testing.T) {
	assert.Equal(t, PlatformNotion, PlatformFromType("notion", "https://example.com"))
	assert.Equal(t, PlatformAirtable, PlatformFromType("Airtable", ""))
	assert.Equal(t, PlatformNotion, PlatformFromType("html", "https://x.notion.site/page"))
	assert.Equal(t, PlatformUnknown, PlatformFromType("html", "https://example.com"))
}
