// Package mx resolves the mail exchangers responsible for a domain. It wraps
// the platform DNS resolver behind a small interface so the verification
// pipeline can be tested without real lookups.
package mx

import (
	"context"
)

// Record describes one mail exchanger advertised by a domain.
type Record struct {
	Host string // Host is the exchanger hostname without the trailing dot.
	Pref uint16 // Pref ranks exchangers; lower values are preferred.
}

// Resolver is the abstraction over MX resolution.
//
//go:generate mockgen -package mockmx -source=interface.go -destination=mock/mockmx.go *
type Resolver interface {
	// LookupMX returns the domain's mail exchangers sorted by ascending
	// preference value (most preferred first). A domain that cannot receive
	// mail yields an ErrUnresolvable error.
	LookupMX(ctx context.Context, domain string) ([]Record, error)
}
