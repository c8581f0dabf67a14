package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
	"time"
)

// CampaignCodeLength is the fixed width of every public campaign code.
const CampaignCodeLength = 14

// GenerateCampaignCode returns a random 14-character code drawn from the
// URL-safe base64 alphabet. Uniqueness is enforced by the caller against the
// store, not here.
func GenerateCampaignCode() string {
	// 11 random bytes encode to 15 url-safe chars without padding; trim to 14.
	buf := make([]byte, 11)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand should never fail; fall back to a timestamp-seeded code
		// so campaign creation still works.
		return fallbackCode()
	}
	return base64.RawURLEncoding.EncodeToString(buf)[:CampaignCodeLength]
}

func fallbackCode() string {
	timestamp := time.Now().UnixNano()
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(999999))
	raw := fmt.Sprintf("%d%06d", timestamp, randomNum.Int64())
	return base64.RawURLEncoding.EncodeToString([]byte(raw))[:CampaignCodeLength]
}

// GenerateUUID creates a random UUID v4 string.
func GenerateUUID() string {
	uuid := make([]byte, 16)
	if _, err := rand.Read(uuid); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}

	// Version 4, RFC4122 variant
	uuid[6] = (uuid[6] & 0x0F) | 0x40
	uuid[8] = (uuid[8] & 0x3F) | 0x80

	return fmt.Sprintf("%x-%x-%x-%x-%x",
		uuid[0:4], uuid[4:6], uuid[6:8], uuid[8:10], uuid[10:])
}
