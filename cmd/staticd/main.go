// Command staticd serves a directory tree over HTTP/1.1, optionally
// over TLS, using a fixed-size worker pool for plaintext connections.
// Flag surface grounded on twebd's
// cli::parse.rs (-a/-p/-d/-l/-t/-s/-c/-k), reimplemented on
// github.com/spf13/cobra + github.com/spf13/pflag in place of clap.
package main

import (
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/staticd/internal/acceptor"
	"github.com/yourusername/staticd/internal/config"
	"github.com/yourusername/staticd/internal/logging"
	"github.com/yourusername/staticd/internal/mimetype"
	"github.com/yourusername/staticd/internal/rootfs"
	"github.com/yourusername/staticd/internal/sockettune"
	"github.com/yourusername/staticd/internal/tlssession"
	"github.com/yourusername/staticd/internal/workerpool"
)

// ShutdownGrace bounds how long Shutdown waits for in-flight
// connections to finish on their own before force-closing them.
const ShutdownGrace = 5 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := config.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "staticd",
		Short: "A simple and lightweight static file server daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Address, "address", "a", opts.Address, "Sets the listener IP address")
	flags.IntVarP(&opts.Port, "port", "p", opts.Port, "Sets the listener port")
	flags.StringVarP(&opts.Directory, "directory", "d", opts.Directory, "Sets the server root directory")
	flags.StringVarP(&opts.LogLevel, "loglevel", "l", opts.LogLevel, "Sets the logging verbosity (off|error|warn|info|debug|trace)")
	flags.IntVarP(&opts.Threads, "threads", "t", opts.Threads, "Sets the number of worker threads (1-10)")
	flags.BoolVarP(&opts.HTTPS, "https", "s", opts.HTTPS, "Serve over HTTPS; requires --https-cert and --https-key")
	flags.StringVarP(&opts.HTTPSCert, "https-cert", "c", opts.HTTPSCert, "Path to the certificate file")
	flags.StringVarP(&opts.HTTPSKey, "https-key", "k", opts.HTTPSKey, "Path to the private key file")

	return cmd
}

func run(opts config.Options) error {
	cfg, err := config.New(opts)
	if err != nil {
		return fmt.Errorf("staticd: %w", err)
	}

	log := logging.New(cfg.LogLevel)
	entry := log.WithField("component", "staticd")

	root, err := rootfs.NewRoot(cfg.Directory)
	if err != nil {
		return fmt.Errorf("staticd: %w", err)
	}

	ln, err := net.Listen("tcp", cfg.ListenAddr())
	if err != nil {
		return fmt.Errorf("staticd: listen: %w", err)
	}

	if cfg.TLS != nil {
		tlsConfig, err := tlssession.Build(cfg.TLS.CertPEM, cfg.TLS.KeyPEM)
		if err != nil {
			ln.Close()
			return fmt.Errorf("staticd: tls: %w", err)
		}
		ln = tls.NewListener(ln, tlsConfig)
		entry.Infof("listening on https://%s, serving %s", cfg.ListenAddr(), root)
	} else {
		entry.Infof("listening on http://%s, serving %s", cfg.ListenAddr(), root)
	}

	pool := workerpool.New(cfg.Threads)
	acc := acceptor.New(ln, pool, root, mimetype.Default(), log, cfg.TLS != nil, sockettune.Default())

	done := make(chan error, 1)
	go func() { done <- acc.Run() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-done:
		pool.Shutdown()
		return err
	case <-sig:
		entry.Info("shutting down")
		acc.Shutdown(ShutdownGrace)
		pool.Shutdown()
		<-done
		return nil
	}
}
