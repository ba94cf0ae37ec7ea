package smtpprobe

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"time"
	"verifier/pkg/logger"
	"verifier/pkg/serrors"

	"github.com/go-faster/errors"

	"go.uber.org/zap"
)

// Probe failure kinds. Rejection by the remote server is not among them: a
// server that answers the recipient declaration, even negatively, produced a
// settled Result.
var (
	// ErrTimedOut marks sessions cut off by the wall-clock budget.
	ErrTimedOut = serrors.NewKind("PROBE_TIMED_OUT")
	// ErrConnection marks dial failures and sessions that died mid-handshake.
	ErrConnection = serrors.NewKind("PROBE_CONNECTION")
	// ErrProtocol marks unexpected or malformed replies before the verdict.
	ErrProtocol = serrors.NewKind("PROBE_PROTOCOL")
)

// DialFunc opens the transport connection. Tests inject net.Pipe ends here.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

const (
	defaultPort    = 25
	defaultTimeout = 5 * time.Second
	defaultHello   = "localhost"
)

// Options configures a Client.
type Options struct {
	// HelloDomain is announced in the EHLO command. Defaults to "localhost";
	// deployments should set their real host name.
	HelloDomain string
	// Port is the remote SMTP port. Defaults to 25.
	Port int
	// Timeout is the wall-clock budget for one whole session, connect
	// included. Defaults to 5s.
	Timeout time.Duration
	// Dial overrides the transport dialer. Defaults to a plain net.Dialer.
	Dial DialFunc
}

// Client runs probe sessions. It holds no per-session state and is safe for
// concurrent use; every Probe call owns its connection and buffer exclusively.
type Client struct {
	helloDomain string
	port        int
	timeout     time.Duration
	dial        DialFunc
}

// New constructs a Client from the given options.
func New(opts Options) *Client {
	if opts.HelloDomain == "" {
		opts.HelloDomain = defaultHello
	}
	if opts.Port == 0 {
		opts.Port = defaultPort
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Dial == nil {
		opts.Dial = (&net.Dialer{}).DialContext
	}

	return &Client{
		helloDomain: opts.HelloDomain,
		port:        opts.Port,
		timeout:     opts.Timeout,
		dial:        opts.Dial,
	}
}

// Probe implements Prober. One connection is opened and always closed before
// returning, whatever the outcome.
func (c *Client) Probe(ctx context.Context, host, from, to string) (Result, error) {
	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	addr := net.JoinHostPort(host, strconv.Itoa(c.port))
	conn, err := c.dial(ctx, "tcp", addr)
	if err != nil {
		if isTimeout(err) {
			return Result{}, serrors.Wrap(ErrTimedOut, err, "timed out")
		}

		return Result{}, serrors.Wrap(ErrConnection, err, "connection failed")
	}
	defer func() {
		_ = conn.Close()
	}()
	_ = conn.SetDeadline(deadline)

	reader := bufio.NewReader(conn)
	state := StateBanner
	var verdict *Result

	for !state.Terminal() {
		code, err := readReply(reader)
		if err != nil {
			return Result{}, classifyIOError(err, verdict)
		}
		logger.Debug(ctx, "smtp reply",
			zap.Stringer("state", state),
			zap.Int("code", code),
			zap.String("host", host))

		next, command, v := Advance(state, code)
		if v != nil {
			verdict = v
		}

		switch command {
		case SendHello:
			err = writeLine(conn, "EHLO "+c.helloDomain)
		case SendMailFrom:
			err = writeLine(conn, "MAIL FROM:<"+from+">")
		case SendRcptTo:
			err = writeLine(conn, "RCPT TO:<"+to+">")
		case SendQuit:
			// best effort; the channel may no longer be writable
			_ = writeLine(conn, "QUIT")
		case SendNothing:
		}
		if err != nil {
			return Result{}, classifyIOError(err, verdict)
		}

		state = next
	}

	if state == StateAborted {
		return Result{}, serrors.With(ErrProtocol, "%s", verdict.Reason)
	}

	logger.Debug(ctx, "probe settled",
		zap.String("host", host),
		zap.Bool("deliverable", verdict.Deliverable),
		zap.Int("code", verdict.Code))

	return *verdict, nil
}

// readReply consumes one reply group and returns the code of its final line.
// Continuation lines of a multi-line reply (hyphen after the code) are
// discarded; only the last complete line classifies the group.
func readReply(r *bufio.Reader) (int, error) {
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return 0, errors.Wrap(err, "read reply")
		}
		line = strings.TrimRight(line, "\r\n")
		if len(line) >= 4 && line[3] == '-' {
			continue
		}
		if len(line) < 3 {
			return 0, errors.Errorf("short reply line %q", line)
		}
		code, err := strconv.Atoi(line[:3])
		if err != nil {
			return 0, errors.Wrapf(err, "malformed reply line %q", line)
		}

		return code, nil
	}
}

// writeLine transmits one CRLF-terminated command line.
func writeLine(conn net.Conn, line string) error {
	if _, err := conn.Write([]byte(line + "\r\n")); err != nil {
		return errors.Wrapf(err, "write %q", strings.Fields(line)[0])
	}

	return nil
}

// classifyIOError turns a transport failure into a kinded error whose message
// is the outcome reason. A verdict recorded before the failure (an abort on
// the way to QUIT) takes precedence over the generic reasons.
func classifyIOError(err error, verdict *Result) error {
	if isTimeout(err) {
		return serrors.Wrap(ErrTimedOut, err, "timed out")
	}
	if verdict != nil {
		return serrors.Wrap(ErrProtocol, err, "%s", verdict.Reason)
	}

	return serrors.Wrap(ErrConnection, err, "unknown error during probe")
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}

// Ensure Client conforms to the Prober interface at compile time.
var _ Prober = (*Client)(nil)
