package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, request
// authentication, the verification pipeline, and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response.
		// Zero disables the deadline; large batch verifications can exceed any sane fixed value
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"0" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request,
		// sized to cover a full batch of slow probes
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30m" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Auth contains request authentication settings
	Auth struct {
		// Secret is the HMAC secret used to sign and verify bearer tokens
		Secret string `env:"AUTH_SECRET" env-default:"" yaml:"secret"`
	} `yaml:"auth"`

	// RateLimit contains the per-client request budget
	RateLimit struct {
		// RPS is the sustained number of requests per second allowed per client IP
		RPS float64 `env:"RATE_LIMIT_RPS" env-default:"10" yaml:"rps"`
		// Burst is the maximum burst size allowed on top of the sustained rate
		Burst int `env:"RATE_LIMIT_BURST" env-default:"20" yaml:"burst"`
	} `yaml:"rateLimit"`

	// Verify contains all verification pipeline related configurations
	Verify struct {
		// MailFrom is the sender address declared in the MAIL FROM step of a probe
		MailFrom string `env:"VERIFY_MAIL_FROM" env-default:"verify@localhost" yaml:"mailFrom"`
		// HelloDomain is the domain announced in the EHLO greeting of a probe
		HelloDomain string `env:"VERIFY_HELLO_DOMAIN" env-default:"localhost" yaml:"helloDomain"`
		// SMTPPort is the TCP port probes connect to on the mail exchanger
		SMTPPort int `env:"VERIFY_SMTP_PORT" env-default:"25" yaml:"smtpPort"`
		// ProbeTimeout is the wall-clock budget for a whole probe session, dialing included
		ProbeTimeout time.Duration `env:"VERIFY_PROBE_TIMEOUT" env-default:"5s" yaml:"probeTimeout"`
		// DNSTimeout bounds a single mail exchanger lookup
		DNSTimeout time.Duration `env:"VERIFY_DNS_TIMEOUT" env-default:"5s" yaml:"dnsTimeout"`
		// BatchLimit caps the number of addresses accepted in one batch request
		BatchLimit int `env:"VERIFY_BATCH_LIMIT" env-default:"1000" yaml:"batchLimit"`
		// BatchConcurrency bounds the worker pool a batch is drained with
		BatchConcurrency int `env:"VERIFY_BATCH_CONCURRENCY" env-default:"4" yaml:"batchConcurrency"`
		// UnverifiableDomains lists domains whose probe verdicts carry no signal
		UnverifiableDomains []string `env:"VERIFY_UNVERIFIABLE_DOMAINS" yaml:"unverifiableDomains"`
		// UnverifiablePolicy decides how listed domains are labeled: off, reject or always
		UnverifiablePolicy string `env:"VERIFY_UNVERIFIABLE_POLICY" env-default:"off" yaml:"unverifiablePolicy"`
	} `yaml:"verify"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
