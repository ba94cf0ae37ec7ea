// Package smtpprobe infers mailbox existence by driving a partial SMTP
// handshake (banner, EHLO, MAIL FROM, RCPT TO) against a mail exchanger and
// classifying the reply to the recipient declaration. No message is ever
// sent; the session always ends with QUIT.
//
// Protocol logic lives in a pure state machine (Advance); Client supplies the
// transport mechanics around it: dialing, the single wall-clock session
// deadline, reply buffering and connection teardown.
package smtpprobe

import (
	"context"
)

// Prober is the abstraction over mailbox probing.
//
//go:generate mockgen -package mockprobe -source=interface.go -destination=mock/mockprobe.go *
type Prober interface {
	// Probe runs one handshake against host, declaring from as the return
	// path and to as the recipient under test. A settled verdict (accepted or
	// rejected) comes back as a Result; sessions that never reach the verdict
	// (dial failures, timeouts, protocol anomalies) come back as kinded
	// errors whose message is the outcome reason.
	Probe(ctx context.Context, host, from, to string) (Result, error)
}
