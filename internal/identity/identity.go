// Package identity derives the pseudonymous visitor key and device class for
// a scan. Keys are time-bucketed on purpose: the timestamp is hashed along
// with IP and user agent, so the same visitor produces a different key on
// every scan. Unique-visitor counts are an approximation, not a persistent
// identity, and that privacy posture must not be "improved" away.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/avct/uasurfer"
)

const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
	DeviceUnknown = "unknown"
)

// AnonymousKeyLength is the fixed width of every derived visitor key.
const AnonymousKeyLength = 16

// DeriveAnonymousKey hashes ip:user_agent:timestamp into a fixed-width opaque
// token. Missing IP or user agent degrade to the literal "unknown" so the
// function never fails.
func DeriveAnonymousKey(ipAddress, userAgent string, timestamp time.Time) string {
	if ipAddress == "" {
		ipAddress = "unknown"
	}
	if userAgent == "" {
		userAgent = "unknown"
	}

	// RFC3339Nano keeps sub-second precision, so scans in the same second
	// still derive distinct keys.
	data := ipAddress + ":" + userAgent + ":" + timestamp.UTC().Format(time.RFC3339Nano)
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])[:AnonymousKeyLength]
}

// ClassifyDevice buckets a user-agent string into mobile, tablet, desktop or
// unknown. Anything unparsable degrades to unknown.
func ClassifyDevice(userAgent string) string {
	if userAgent == "" {
		return DeviceUnknown
	}

	ua := uasurfer.Parse(userAgent)
	switch ua.DeviceType {
	case uasurfer.DevicePhone:
		return DeviceMobile
	case uasurfer.DeviceTablet:
		return DeviceTablet
	case uasurfer.DeviceComputer:
		return DeviceDesktop
	default:
		return DeviceUnknown
	}
}

// HashUserAgent keeps a truncated digest of the raw user agent for abuse
// analysis without storing the string itself.
func HashUserAgent(userAgent string) string {
	if userAgent == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(userAgent))
	return hex.EncodeToString(sum[:])[:64]
}
