package verifier

import (
	"context"
	"fmt"
	"strings"
	"time"
	"verifier/internal/config"
	"verifier/pkg/domain"
	"verifier/pkg/logger"
	"verifier/pkg/metrics"
	"verifier/pkg/mx"
	"verifier/pkg/serrors"
	"verifier/pkg/smtpprobe"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// UnverifiablePolicy selects how domains from the unverifiable set are
// handled. Some providers accept every RCPT TO or reject all of them during
// the handshake, so a probe verdict for them carries no signal.
type UnverifiablePolicy string

const (
	// PolicyOff ignores the unverifiable set entirely.
	PolicyOff UnverifiablePolicy = "off"
	// PolicyReject probes listed domains but relabels rejections and
	// protocol anomalies to unknown. Acceptance, timeouts and connection
	// failures keep their regular outcome.
	PolicyReject UnverifiablePolicy = "reject"
	// PolicyAlways never probes listed domains; once their mail exchangers
	// resolve, the outcome is unknown.
	PolicyAlways UnverifiablePolicy = "always"
)

// Defaults applied by New when the corresponding option is unset.
const (
	DefaultBatchLimit       = 1000
	DefaultBatchConcurrency = 4
	DefaultMailFrom         = "verify@localhost"
)

type (
	// Options configure how verifications run. These settings are typically
	// derived from application configuration via NewOptions.
	Options struct {
		// MailFrom is the sender address declared during probes.
		MailFrom string
		// BatchLimit caps the number of addresses per batch request.
		BatchLimit int
		// BatchConcurrency bounds the worker pool draining a batch. One
		// means sequential processing.
		BatchConcurrency int
		// UnverifiableDomains lists domains whose probe verdicts are not
		// trustworthy, matched case-insensitively.
		UnverifiableDomains []string
		// UnverifiablePolicy decides what to do with listed domains.
		UnverifiablePolicy UnverifiablePolicy
	}

	Deps struct {
		Resolver mx.Resolver
		Prober   smtpprobe.Prober
		// Meter is optional; the global meter provider is used when nil.
		Meter metric.Meter
	}

	// verifier is the concrete implementation of the Verifier interface.
	// It chains the syntax check, exchanger resolution and the mailbox probe
	// into a single outcome per address.
	verifier struct {
		// options holds runtime configuration that affects probing and batching.
		options Options
		// deps holds the resolver and prober collaborators.
		deps          Deps
		unverifiable  map[string]struct{}
		tracer        trace.Tracer
		verifications metric.Int64Counter
		probeSeconds  metric.Float64Histogram
	}
)

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MailFrom:            cfg.Verify.MailFrom,
		BatchLimit:          cfg.Verify.BatchLimit,
		BatchConcurrency:    cfg.Verify.BatchConcurrency,
		UnverifiableDomains: cfg.Verify.UnverifiableDomains,
		UnverifiablePolicy:  UnverifiablePolicy(cfg.Verify.UnverifiablePolicy),
	}
}

// New creates a new Verifier instance backed by the provided resolver and
// prober and configured with the given options. Zero option fields fall back
// to package defaults.
func New(deps Deps, options Options) (Verifier, error) {
	if options.MailFrom == "" {
		options.MailFrom = DefaultMailFrom
	}
	if options.BatchLimit <= 0 {
		options.BatchLimit = DefaultBatchLimit
	}
	if options.BatchConcurrency <= 0 {
		options.BatchConcurrency = DefaultBatchConcurrency
	}
	if options.UnverifiablePolicy == "" {
		options.UnverifiablePolicy = PolicyOff
	}
	if deps.Meter == nil {
		deps.Meter = otel.Meter("verifier")
	}

	verifications, err := deps.Meter.Int64Counter("verifications",
		metric.WithDescription("Completed verifications by outcome status."))
	if err != nil {
		return nil, fmt.Errorf("could not create verifications counter: %w", err)
	}

	probeSeconds, err := deps.Meter.Float64Histogram("probe_duration_seconds",
		metric.WithDescription("Wall-clock duration of SMTP probe sessions."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create probe duration histogram: %w", err)
	}

	unverifiable := make(map[string]struct{}, len(options.UnverifiableDomains))
	for _, d := range options.UnverifiableDomains {
		unverifiable[strings.ToLower(d)] = struct{}{}
	}

	return &verifier{
		options:       options,
		deps:          deps,
		unverifiable:  unverifiable,
		tracer:        otel.Tracer("verifier"),
		verifications: verifications,
		probeSeconds:  probeSeconds,
	}, nil
}

// Verify checks a single address and settles it as exactly one outcome.
// Syntax and resolution failures short-circuit before any connection is
// opened; when skipProbe is set the pipeline stops after resolution and the
// address settles as unknown. Verify never returns an error, every failure
// is absorbed into the outcome's reason.
func (v *verifier) Verify(ctx context.Context, email string, skipProbe bool) domain.Outcome {
	ctx, span := v.tracer.Start(ctx, "verifier.Verify")
	defer span.End()

	outcome := v.verify(ctx, email, skipProbe)

	span.SetAttributes(attribute.String("verify.status", string(outcome.Status)))
	v.verifications.Add(ctx, 1,
		metric.WithAttributes(attribute.String("status", string(outcome.Status))))
	if ce := logger.Get(ctx).Check(zapcore.DebugLevel, "verification settled"); ce != nil {
		ce.Write(zap.String("status", string(outcome.Status)), zap.String("reason", outcome.Reason))
	}

	return outcome
}

func (v *verifier) verify(ctx context.Context, email string, skipProbe bool) domain.Outcome {
	if err := CheckSyntax(email); err != nil {
		return domain.Invalid(reasonFromError(err))
	}

	_, domainPart, _ := splitAddress(email)
	ctx = logger.WithFields(ctx, zap.String("domain", domainPart))

	exchangers, err := v.deps.Resolver.LookupMX(ctx, domainPart)
	if err != nil {
		logger.Debug(ctx, "mail exchanger resolution failed", zap.Error(err))

		return domain.Invalid(reasonFromError(err))
	}

	if v.options.UnverifiablePolicy == PolicyAlways && v.listed(domainPart) {
		return domain.Unknown(concealedReason(domainPart))
	}

	if skipProbe {
		return domain.Unknown("domain-level deliverability confirmed but mailbox not attempted")
	}

	// Only the most-preferred exchanger is contacted; its verdict stands
	// without failover.
	start := time.Now()
	result, err := v.deps.Prober.Probe(ctx, exchangers[0].Host, v.options.MailFrom, email)
	v.probeSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		logger.Debug(ctx, "probe did not settle", zap.Error(err))
		if v.options.UnverifiablePolicy == PolicyReject && v.listed(domainPart) && errors.Is(err, smtpprobe.ErrProtocol) {
			return domain.Unknown(concealedReason(domainPart))
		}

		return domain.Invalid(reasonFromError(err))
	}

	if result.Deliverable {
		return domain.Valid(result.Reason)
	}
	if v.options.UnverifiablePolicy == PolicyReject && v.listed(domainPart) {
		return domain.Unknown(concealedReason(domainPart))
	}

	return domain.Invalid(result.Reason)
}

// listed reports whether the domain belongs to the configured unverifiable
// set. Matching is case-insensitive; DNS names compare that way.
func (v *verifier) listed(domainPart string) bool {
	_, ok := v.unverifiable[strings.ToLower(domainPart)]

	return ok
}

func concealedReason(domainPart string) string {
	return fmt.Sprintf("domain %s conceals mailbox existence; result inconclusive", domainPart)
}

// reasonFromError turns a pipeline error into the human-readable reason
// attached to the outcome.
func reasonFromError(err error) string {
	var sErr *serrors.Error
	if errors.As(err, &sErr) && sErr.Message() != "" {
		return sErr.Message()
	}
	if err != nil {
		return err.Error()
	}

	return "unknown error during probe"
}

var _ Verifier = (*verifier)(nil)
