package timezones

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const enDash = '–'

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// foldDashes replaces en-dashes with ASCII hyphens so offsets written as
// "GMT–05:00" match like "GMT-05:00".
func foldDashes(s string) string {
	if !strings.ContainsRune(s, enDash) {
		return s
	}
	out, _, err := transform.String(runes.Map(func(r rune) rune {
		if r == enDash {
			return '-'
		}
		return r
	}), s)
	if err != nil {
		return strings.ReplaceAll(s, string(enDash), "-")
	}
	return out
}

// cleanText strips markup and decodes entities: "Hawaii &amp; Aleutian"
// becomes "Hawaii & Aleutian".
func cleanText(raw string) string {
	if raw == "" {
		return ""
	}
	if !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	return html.UnescapeString(textSanitizer().Sanitize(raw))
}

func normalizeName(s string) string {
	return norm.NFC.String(s)
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
