// Package config validates and holds the immutable server
// configuration: the listen address, the served root directory,
// worker pool size, TLS material, and logging verbosity. Grounded on
// twebd's cli::parse/cli::defaults (flag names,
// ranges, and defaults) translated into a single validated struct
// rather than clap's incrementally-built option vector.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/yourusername/staticd/internal/logging"
)

// Defaults, grounded on cli::defaults.rs.
const (
	DefaultAddress     = "127.0.0.1"
	DefaultPort        = 8080
	DefaultDirectory   = "./public"
	DefaultLogLevel    = logging.LevelInfo
	DefaultThreads     = 4
	MinThreads         = 1
	MaxThreads         = 10
	DefaultHTTPSCert   = "./ssl/localhost.crt"
	DefaultHTTPSKey    = "./ssl/localhost.key"
)

var (
	ErrInvalidAddress  = errors.New("config: invalid listen address")
	ErrInvalidPort     = errors.New("config: port must be between 1 and 65535")
	ErrInvalidDir      = errors.New("config: root directory does not exist or is not a directory")
	ErrInvalidThreads  = errors.New("config: thread count out of range")
	ErrInvalidLogLevel = errors.New("config: unrecognized log level")
	ErrMissingTLSPair  = errors.New("config: https requires both a certificate and a private key")
	ErrUnreadableCert  = errors.New("config: certificate file unreadable")
	ErrUnreadableKey   = errors.New("config: private key file unreadable")
)

// TLS holds the loaded (not yet parsed) PEM bytes for an HTTPS
// listener.
type TLS struct {
	CertPEM []byte
	KeyPEM  []byte
}

// Config is the fully validated, immutable configuration for one
// server run. Construct it only through New.
type Config struct {
	Address   string
	Port      int
	Directory string
	Threads   int
	LogLevel  string
	TLS       *TLS // nil when serving plain HTTP
}

// Options is the raw, unvalidated input to New, one field per CLI
// flag in cmd/staticd.
type Options struct {
	Address   string
	Port      int
	Directory string
	Threads   int
	LogLevel  string
	HTTPS     bool
	HTTPSCert string
	HTTPSKey  string
}

// DefaultOptions returns the flag defaults from cli::defaults.rs.
func DefaultOptions() Options {
	return Options{
		Address:   DefaultAddress,
		Port:      DefaultPort,
		Directory: DefaultDirectory,
		Threads:   DefaultThreads,
		LogLevel:  DefaultLogLevel,
		HTTPS:     false,
		HTTPSCert: DefaultHTTPSCert,
		HTTPSKey:  DefaultHTTPSKey,
	}
}

// New validates opts and returns an immutable Config, or the first
// validation error encountered.
func New(opts Options) (*Config, error) {
	if net.ParseIP(opts.Address) == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, opts.Address)
	}
	if opts.Port < 1 || opts.Port > 65535 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPort, opts.Port)
	}

	info, err := os.Stat(opts.Directory)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDir, opts.Directory)
	}
	absDir, err := filepath.Abs(opts.Directory)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDir, opts.Directory)
	}

	threads := opts.Threads
	if threads == 0 {
		threads = DefaultThreads
	}
	if threads < MinThreads || threads > MaxThreads {
		return nil, fmt.Errorf("%w: %d (must be %d..%d)", ErrInvalidThreads, threads, MinThreads, MaxThreads)
	}

	level := opts.LogLevel
	if level == "" {
		level = DefaultLogLevel
	}
	if !logging.ValidLevel(level) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
	}

	cfg := &Config{
		Address:   opts.Address,
		Port:      opts.Port,
		Directory: absDir,
		Threads:   threads,
		LogLevel:  level,
	}

	if opts.HTTPS {
		tlsCfg, err := loadTLS(opts.HTTPSCert, opts.HTTPSKey)
		if err != nil {
			return nil, err
		}
		cfg.TLS = tlsCfg
	}

	return cfg, nil
}

func loadTLS(certPath, keyPath string) (*TLS, error) {
	if certPath == "" || keyPath == "" {
		return nil, ErrMissingTLSPair
	}
	certPEM, err := os.ReadFile(certPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableCert, err)
	}
	keyPEM, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableKey, err)
	}
	return &TLS{CertPEM: certPEM, KeyPEM: keyPEM}, nil
}

// ListenAddr renders the host:port pair net.Listen expects.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}
