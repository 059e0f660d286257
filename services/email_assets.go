package services

import (
	"fmt"
	"html/template"
	"os"
	"strings"
	"sync"
)

var (
	emailLogoOnce   sync.Once
	emailLogoCached string
)

// emailLogoHTML returns the header mark used by outbound email. When
// EMAIL_LOGO_URLS names one or more hosted images they replace the default
// monogram disc. Computed once per process.
func emailLogoHTML() string {
	emailLogoOnce.Do(func() {
		emailLogoCached = renderEmailLogo(parseLogoList(os.Getenv("EMAIL_LOGO_URLS")))
	})
	return emailLogoCached
}

func renderEmailLogo(urls []string) string {
	snippets := make([]string, 0, len(urls))
	for _, url := range urls {
		if snippet := renderLogoURL(url); snippet != "" {
			snippets = append(snippets, snippet)
		}
	}

	if len(snippets) == 0 {
		return fmt.Sprintf(`<table role="presentation" cellpadding="0" cellspacing="0" style="margin:0 auto 20px;"><tr><td style="width:80px;height:80px;background:linear-gradient(135deg, %s 0%%, #d4b42e 100%%);border-radius:50%%;text-align:center;vertical-align:middle;"><span style="font-size:36px;font-weight:700;color:%s;line-height:80px;">O</span></td></tr></table>`,
			brandGold, brandDark)
	}

	return fmt.Sprintf(`<div style="text-align:center;margin:0 auto 20px auto;">%s</div>`, strings.Join(snippets, ""))
}

func renderLogoURL(url string) string {
	escaped := template.HTMLEscapeString(strings.TrimSpace(url))
	if escaped == "" {
		return ""
	}
	return fmt.Sprintf(`<span style="display:inline-block;margin:0 12px;"><img src="%s" alt="OMI Global Productions" style="display:block;height:64px;width:auto;max-width:100%%;object-fit:contain;" /></span>`, escaped)
}

// parseLogoList splits a comma, semicolon or newline separated URL list.
func parseLogoList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		switch r {
		case ',', ';', '\n', '\r':
			return true
		}
		return false
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
