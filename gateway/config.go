package gateway

import (
	"strings"
)

// Config carries the gateway credentials and limits. It is populated by the
// application's config loader and injected here so the client never reads
// the environment directly.
type Config struct {
	KeyID              string
	KeySecret          string
	WebhookSecret      string
	Sandbox            bool
	AcceptedCurrencies []string
	MinOrderAmount     float64 // major units, 0 disables the check
	MaxOrderAmount     float64 // major units, 0 disables the check
	TimeoutSeconds     int64
}

// IsConfigured reports whether both API credentials are present.
func (c Config) IsConfigured() bool {
	return c.KeyID != "" && c.KeySecret != ""
}

// AcceptsCurrency reports whether the given ISO 4217 code is enabled.
// An empty list accepts everything.
func (c Config) AcceptsCurrency(currency string) bool {
	if len(c.AcceptedCurrencies) == 0 {
		return true
	}
	for _, cur := range c.AcceptedCurrencies {
		if strings.EqualFold(strings.TrimSpace(cur), currency) {
			return true
		}
	}
	return false
}

// ParseCurrencyList splits a comma-separated currency string into a clean
// uppercase list, dropping empty entries.
func ParseCurrencyList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
