// Package fetch - platform.go provides directory platform detection and row selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known directory hosting platform.
type Platform string

const (
	// PlatformNotion is a published Notion page or database
	PlatformNotion Platform = "notion"
	// PlatformAirtable is a shared Airtable view
	PlatformAirtable Platform = "airtable"
	// PlatformUnknown is an unrecognized platform, scraped as plain HTML tables
	PlatformUnknown Platform = "unknown"
)

// Selectors locate the rows of a directory page and the cells inside each row.
type Selectors struct {
	// Ready must match before a rendered page is read.
	Ready string
	Row   string
	Cell  string
}

// DetectPlatform identifies the directory platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())

	if strings.HasSuffix(host, "notion.site") || strings.HasSuffix(host, "notion.so") {
		return PlatformNotion
	}

	if strings.HasSuffix(host, "airtable.com") {
		return PlatformAirtable
	}

	return PlatformUnknown
}

// PlatformSelectors returns the row selectors for a platform.
func PlatformSelectors(platform Platform) Selectors {
	switch platform {
	case PlatformNotion:
		return Selectors{
			Ready: "[data-block-id]",
			Row:   ".notion-table-view-row, .notion-collection-item",
			Cell:  ".notion-table-view-cell",
		}
	case PlatformAirtable:
		return Selectors{
			Ready: ".dataRow",
			Row:   ".dataRow",
			Cell:  ".cell",
		}
	default:
		return Selectors{
			Ready: "table",
			Row:   "table tbody tr",
			Cell:  "td",
		}
	}
}

// PlatformFromType maps a source descriptor type onto a platform,
// falling back to the URL when the type is not a platform name.
func PlatformFromType(sourceType, urlStr string) Platform {
	switch Platform(strings.ToLower(sourceType)) {
	case PlatformNotion:
		return PlatformNotion
	case PlatformAirtable:
		return PlatformAirtable
	}
	return DetectPlatform(urlStr)
}
