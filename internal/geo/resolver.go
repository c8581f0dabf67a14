// Package geo resolves scan coordinates to a city and country. The production
// resolver is deliberately a no-op: an earlier variant called an external IP
// lookup inline and stalled the scan-and-redirect path, so enrichment stays
// off until it can run as a background step decoupled from the write.
package geo

// Resolver maps an IP address to coarse location data. Nil results mean
// "unknown" and are stored as such.
type Resolver interface {
	Resolve(ipAddress string) (city, country *string)
}

// NoopResolver always reports an unknown location.
type NoopResolver struct{}

func (NoopResolver) Resolve(string) (*string, *string) {
	return nil, nil
}
