package mx_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
	"verifier/pkg/mx"

	"github.com/stretchr/testify/require"
)

func TestLookupMXSortsByPreference(t *testing.T) {
	client := mx.New(mx.Options{
		Lookup: func(_ context.Context, domain string) ([]*net.MX, error) {
			require.Equal(t, "example.com", domain)

			return []*net.MX{
				{Host: "backup.example.com.", Pref: 20},
				{Host: "mx2.example.com.", Pref: 10},
				{Host: "mx1.example.com.", Pref: 10},
				{Host: "primary.example.com.", Pref: 5},
			}, nil
		},
	})

	records, err := client.LookupMX(context.Background(), "example.com")
	require.NoError(t, err)
	require.Equal(t, []mx.Record{
		{Host: "primary.example.com", Pref: 5},
		{Host: "mx1.example.com", Pref: 10},
		{Host: "mx2.example.com", Pref: 10},
		{Host: "backup.example.com", Pref: 20},
	}, records)
}

func TestLookupMXLookupFailure(t *testing.T) {
	lookupErr := &net.DNSError{Err: "no such host", Name: "nope.test", IsNotFound: true}
	client := mx.New(mx.Options{
		Lookup: func(context.Context, string) ([]*net.MX, error) {
			return nil, lookupErr
		},
	})

	_, err := client.LookupMX(context.Background(), "nope.test")
	require.ErrorIs(t, err, mx.ErrUnresolvable)
	require.ErrorIs(t, err, lookupErr, "the DNS cause should stay in the chain")
}

func TestLookupMXNoRecords(t *testing.T) {
	client := mx.New(mx.Options{
		Lookup: func(context.Context, string) ([]*net.MX, error) {
			return []*net.MX{}, nil
		},
	})

	_, err := client.LookupMX(context.Background(), "no-mx.test")
	require.ErrorIs(t, err, mx.ErrUnresolvable)
	require.Contains(t, err.Error(), "no mail exchangers")
}

func TestLookupMXNullMX(t *testing.T) {
	client := mx.New(mx.Options{
		Lookup: func(context.Context, string) ([]*net.MX, error) {
			return []*net.MX{{Host: ".", Pref: 0}}, nil
		},
	})

	_, err := client.LookupMX(context.Background(), "refuses-mail.test")
	require.ErrorIs(t, err, mx.ErrUnresolvable)
	require.Contains(t, err.Error(), "null MX")
}

func TestLookupMXKeepsPartialAnswer(t *testing.T) {
	client := mx.New(mx.Options{
		Lookup: func(context.Context, string) ([]*net.MX, error) {
			return []*net.MX{{Host: "mx.example.com.", Pref: 10}}, errors.New("truncated response")
		},
	})

	records, err := client.LookupMX(context.Background(), "example.com")
	require.NoError(t, err)
	require.Equal(t, []mx.Record{{Host: "mx.example.com", Pref: 10}}, records)
}

func TestLookupMXSkipsUnusableHosts(t *testing.T) {
	client := mx.New(mx.Options{
		Lookup: func(context.Context, string) ([]*net.MX, error) {
			return []*net.MX{
				{Host: ".", Pref: 0},
				{Host: "mx.example.com.", Pref: 10},
				nil,
			}, nil
		},
	})

	records, err := client.LookupMX(context.Background(), "example.com")
	require.NoError(t, err)
	require.Equal(t, []mx.Record{{Host: "mx.example.com", Pref: 10}}, records)
}

func TestLookupMXAppliesTimeout(t *testing.T) {
	client := mx.New(mx.Options{
		Timeout: time.Second,
		Lookup: func(ctx context.Context, _ string) ([]*net.MX, error) {
			deadline, ok := ctx.Deadline()
			require.True(t, ok, "lookup context should carry a deadline")
			require.LessOrEqual(t, time.Until(deadline), time.Second)

			return []*net.MX{{Host: "mx.example.com.", Pref: 10}}, nil
		},
	})

	_, err := client.LookupMX(context.Background(), "example.com")
	require.NoError(t, err)
}
