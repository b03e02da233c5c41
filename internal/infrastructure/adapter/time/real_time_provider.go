package time

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
)

// RealTimeProvider implements the TimeProvider interface with the wall clock
// in a fixed location. Calendar windows (scan year, expense months) are cut in
// that location.
type RealTimeProvider struct {
	location *time.Location
}

// NewRealTimeProvider creates a real time provider in the local time zone
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{location: time.Local}
}

// NewRealTimeProviderIn creates a real time provider for a named IANA zone.
// An empty name means the local zone.
func NewRealTimeProviderIn(name string) (core.TimeProvider, error) {
	if name == "" {
		return NewRealTimeProvider(), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	return &RealTimeProvider{location: loc}, nil
}

// Now returns the current time in the provider location
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().In(p.location)
}

// Since returns the time elapsed since t
func (p *RealTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(time.Since(t))
}

// Location returns the zone used for calendar windows
func (p *RealTimeProvider) Location() *time.Location {
	return p.location
}

// WithTimeout returns a context that will be canceled after the specified timeout
func (p *RealTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}
