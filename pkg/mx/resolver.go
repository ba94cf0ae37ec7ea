package mx

import (
	"context"
	"net"
	"sort"
	"strings"
	"time"
	"verifier/pkg/serrors"
)

// ErrUnresolvable marks domains that cannot receive mail: the lookup failed
// (NXDOMAIN, network error, timeout), returned no exchangers, or returned a
// null MX.
var ErrUnresolvable = serrors.NewKind("DOMAIN_UNRESOLVABLE") //nolint: gochecknoglobals

// LookupFunc performs the raw MX query. Tests inject a fake; the default is
// net.DefaultResolver.
type LookupFunc func(ctx context.Context, domain string) ([]*net.MX, error)

// Options configures a Client.
type Options struct {
	// Timeout bounds a single lookup. Zero leaves only the caller's context
	// deadline in effect.
	Timeout time.Duration
	// Lookup overrides the DNS query. Defaults to net.DefaultResolver.LookupMX.
	Lookup LookupFunc
}

// Client resolves mail exchangers through the standard resolver.
type Client struct {
	timeout time.Duration
	lookup  LookupFunc
}

// New constructs a Client from the given options.
func New(opts Options) *Client {
	lookup := opts.Lookup
	if lookup == nil {
		lookup = net.DefaultResolver.LookupMX
	}

	return &Client{timeout: opts.Timeout, lookup: lookup}
}

// LookupMX implements Resolver. Partial answers returned alongside a lookup
// error are kept; only an empty answer makes the error fatal.
func (c *Client) LookupMX(ctx context.Context, domain string) ([]Record, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	mxs, err := c.lookup(ctx, domain)
	if err != nil && len(mxs) == 0 {
		return nil, serrors.Wrap(ErrUnresolvable, err, "could not resolve mail exchangers for %q", domain)
	}
	if len(mxs) == 0 {
		return nil, serrors.With(ErrUnresolvable, "domain %q has no mail exchangers", domain)
	}
	// RFC 7505: a single "." exchanger advertises that the domain accepts no
	// mail at all.
	if len(mxs) == 1 && (mxs[0].Host == "." || mxs[0].Host == "") {
		return nil, serrors.With(ErrUnresolvable, "domain %q declines mail (null MX)", domain)
	}

	records := make([]Record, 0, len(mxs))
	for _, m := range mxs {
		if m == nil {
			continue
		}
		host := strings.TrimSuffix(m.Host, ".")
		if host == "" {
			continue
		}
		records = append(records, Record{Host: host, Pref: m.Pref})
	}
	if len(records) == 0 {
		return nil, serrors.With(ErrUnresolvable, "domain %q has no usable mail exchangers", domain)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Pref != records[j].Pref {
			return records[i].Pref < records[j].Pref
		}

		return records[i].Host < records[j].Host
	})

	return records, nil
}

// Ensure Client conforms to the Resolver interface at compile time.
var _ Resolver = (*Client)(nil)
