// Package privacy holds helpers for keeping personal data out of logs.
package privacy

import (
	"fmt"
	"net"
	"strings"
)

// AnonymizeIP truncates an IP address to a network prefix safe for logging:
// the last octet is zeroed for IPv4 and everything past the /64 boundary is
// dropped for IPv6. Unparseable input is replaced entirely.
func AnonymizeIP(ip string) string {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return "unknown"
	}

	if v4 := parsed.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.0", v4[0], v4[1], v4[2])
	}

	masked := parsed.Mask(net.CIDRMask(64, 128))
	return masked.String() + "/64"
}
