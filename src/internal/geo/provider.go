// FILE: loglens/src/internal/geo/provider.go
package geo

import (
	"context"
	"errors"
	"net"

	"loglens/src/internal/core"
)

var ErrInvalidAddress = errors.New("invalid IP address")

// Provider is a source of location data for IP addresses.
// An empty record with a nil error means the source knows nothing about the address.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, ip net.IP) (core.GeoRecord, error)
	Close() error
}
