// Package device derives human-readable labels and stable fingerprints from
// client user-agent strings. Labels are attached to request context and audit
// events; fingerprints are embedded in access tokens so the auth layer can
// spot a token presented from a materially different client environment.
package device

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/mssola/useragent"
)

// Service computes device fingerprints. Fingerprinting can be disabled
// entirely, in which case ComputeFingerprint returns an empty string and
// comparisons never report drift.
type Service struct {
	enabled bool
}

func NewService(enabled bool) *Service {
	return &Service{enabled: enabled}
}

// ParseUserAgent renders a user-agent string as a short display label such as
// "Chrome on Mac OS X 10.15.7". Unknown agents still produce a non-empty label.
func ParseUserAgent(raw string) string {
	if raw == "" {
		return "Unknown Device"
	}

	parsed := useragent.New(raw)
	browser, _ := parsed.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}

	// Mobile platforms ("iPhone", "iPad") read better than their full OS
	// strings, so prefer the platform name there.
	where := parsed.OSInfo().FullName
	if parsed.Mobile() && parsed.Platform() != "" {
		where = parsed.Platform()
	}
	if where == "" {
		where = parsed.Platform()
	}
	if where == "" {
		where = "Unknown Platform"
	}

	return strings.Join(strings.Fields(browser+" on "+where), " ")
}

// ComputeFingerprint hashes the stable parts of a user-agent: browser name,
// major version, OS name and platform. Patch-level browser updates keep the
// same fingerprint; a browser or OS change does not.
func (s *Service) ComputeFingerprint(raw string) string {
	if !s.enabled {
		return ""
	}

	parsed := useragent.New(raw)
	browser, version := parsed.Browser()
	major, _, _ := strings.Cut(version, ".")
	canonical := strings.Join([]string{browser, major, parsed.OSInfo().Name, parsed.Platform()}, "|")

	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// CompareFingerprints reports whether stored and current match, and whether a
// mismatch should be treated as drift. Empty fingerprints (fingerprinting
// disabled, or tokens minted before it was enabled) never count as drift.
func (s *Service) CompareFingerprints(stored, current string) (matched bool, drift bool) {
	if stored == "" || current == "" {
		return false, false
	}
	if stored == current {
		return true, false
	}
	return false, true
}
