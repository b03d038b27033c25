// Package tlssession builds the shared, immutable *tls.Config used to
// terminate HTTPS connections. Grounded on shockwave's
// pkg/shockwave/tls (Config/cert loading) and twebd's
// TlsConfigBuilder (web/https/tls.rs): load a
// certificate chain and a private key, fail closed on anything but
// exactly one key, build a server config with safe defaults and no
// client authentication.
//
// Everything past construction — handshake interleaving, inbound and
// outbound ciphertext buffering, wants-read/wants-write — is handled
// by crypto/tls.Conn itself; see cmd/staticd for how the listener is
// wrapped with tls.NewListener.
package tlssession

import (
	"crypto/tls"
	"encoding/pem"
	"errors"
	"fmt"
)

// privateKeyPEMTypes lists the PEM block types countPrivateKeys treats as
// key material, mirroring the set tls.X509KeyPair itself recognizes.
var privateKeyPEMTypes = map[string]bool{
	"PRIVATE KEY":     true,
	"RSA PRIVATE KEY": true,
	"EC PRIVATE KEY":  true,
}

// countPrivateKeys counts PEM blocks in keyPEM whose type names a
// private key, so Build can reject zero or multiple keys instead of
// silently taking whichever one tls.X509KeyPair happens to pick.
func countPrivateKeys(keyPEM []byte) int {
	n := 0
	rest := keyPEM
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if privateKeyPEMTypes[block.Type] {
			n++
		}
	}
	return n
}

// ErrCertificate: the certificate chain was empty, or tls.X509KeyPair
// rejected the certificate/key pair (including a key that fails to
// parse or doesn't pair with the leaf certificate).
var ErrCertificate = errors.New("tlssession: invalid certificate chain")

// ErrPrivateKey: the key PEM was empty or held a number of private-key
// blocks other than exactly one.
var ErrPrivateKey = errors.New("tlssession: invalid private key")

// Build constructs a server-side *tls.Config from PEM-encoded
// certificate chain and private key bytes. The chain must hold at
// least one certificate; the key must be a single PKCS#8 (or other
// key type tls.X509KeyPair accepts) private key pairing with the leaf
// certificate.
func Build(certPEM, keyPEM []byte) (*tls.Config, error) {
	if len(certPEM) == 0 {
		return nil, ErrCertificate
	}
	if len(keyPEM) == 0 {
		return nil, ErrPrivateKey
	}
	if n := countPrivateKeys(keyPEM); n != 1 {
		return nil, fmt.Errorf("%w: found %d private keys, want exactly 1", ErrPrivateKey, n)
	}

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, classifyKeyPairError(err)
	}
	if len(cert.Certificate) == 0 {
		return nil, ErrCertificate
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		MaxVersion:   tls.VersionTLS13,
		ClientAuth:   tls.NoClientCert,
		CipherSuites: []uint16{
			tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305,
			tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305,
		},
	}, nil
}

// classifyKeyPairError can't always tell whether X509KeyPair failed on
// the certificate or the key, so it defaults to the certificate-side
// error; the caller-facing distinction matters less than failing
// closed at startup either way.
func classifyKeyPairError(err error) error {
	return fmt.Errorf("%w: %v", ErrCertificate, err)
}
