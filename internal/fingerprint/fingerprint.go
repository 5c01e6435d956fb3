// Package fingerprint derives a correlation key for anonymous commenters
// from request headers and the client address.
//
// The result is best-effort correlation, not proof of device: shared proxies
// collide, and any header change (browser update, spoofing) yields a new
// fingerprint. It exists so moderation can group comments that likely came
// from the same client, nothing stronger.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// FromSignals computes the fingerprint for the five identifying signals.
// Absent signals are passed as empty strings; an all-empty input is legal
// and produces the (weak) fingerprint of the empty signal set. The output
// is a 64-character lowercase hex string and is deterministic.
func FromSignals(userAgent, acceptLanguage, acceptEncoding, connection, remoteAddr string) string {
	data := strings.Join([]string{userAgent, acceptLanguage, acceptEncoding, connection, remoteAddr}, "|")
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// FromRequest extracts the signals from a Fiber request context.
func FromRequest(c *fiber.Ctx) string {
	return FromSignals(
		c.Get(fiber.HeaderUserAgent),
		c.Get(fiber.HeaderAcceptLanguage),
		c.Get(fiber.HeaderAcceptEncoding),
		c.Get(fiber.HeaderConnection),
		c.IP(),
	)
}
