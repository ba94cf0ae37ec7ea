// Package main provides the CLI entrypoint for the email verification service.
// It wires subcommands (serve, check, token), loads configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"verifier/internal/config"
	"verifier/internal/verifier"
	"verifier/pkg/logger"
	"verifier/pkg/mx"
	"verifier/pkg/smtpprobe"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// buildVerifier wires the mail exchanger resolver and the SMTP prober into a
// verification service using configuration values.
func buildVerifier(ctx context.Context, cfg *config.Config) verifier.Verifier {
	resolver := mx.New(mx.Options{
		Timeout: cfg.Verify.DNSTimeout,
	})
	prober := smtpprobe.New(smtpprobe.Options{
		HelloDomain: cfg.Verify.HelloDomain,
		Port:        cfg.Verify.SMTPPort,
		Timeout:     cfg.Verify.ProbeTimeout,
	})

	v, err := verifier.New(verifier.Deps{Resolver: resolver, Prober: prober}, verifier.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create verifier", zap.Error(err))
	}

	return v
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use: "verifier",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync(ctx)

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		checkCommand(cfg),
		tokenCommand(cfg),
	)

	err = rootCmd.Execute()
	logger.Sync(ctx)
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
