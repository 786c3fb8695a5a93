package ssl

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"time"

	verrors "github.com/jturbide/vhost/internal/errors"
)

// CertInfo describes a certificate found on disk
type CertInfo struct {
	CertPath string    `json:"cert"`
	KeyPath  string    `json:"key"`
	Subject  string    `json:"subject"`
	DNSNames []string  `json:"dns_names,omitempty"`
	NotAfter time.Time `json:"not_after"`

	cert *x509.Certificate
}

// Inspect reads the certificate at certPath and checks that keyPath exists.
func Inspect(certPath, keyPath string) (*CertInfo, error) {
	if certPath == "" {
		return nil, verrors.Validation("no certificate configured")
	}

	cert, err := ParseFile(certPath)
	if err != nil {
		return nil, err
	}

	if keyPath == "" {
		return nil, verrors.Validation("no private key configured")
	}
	if _, err := os.Stat(keyPath); err != nil {
		return nil, verrors.WrapPath(verrors.ErrCodeIO, keyPath, "private key is not readable", err)
	}

	return &CertInfo{
		CertPath: certPath,
		KeyPath:  keyPath,
		Subject:  cert.Subject.CommonName,
		DNSNames: cert.DNSNames,
		NotAfter: cert.NotAfter,
		cert:     cert,
	}, nil
}

// ParseFile parses the first certificate of a PEM file.
func ParseFile(path string) (*x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, verrors.WrapPath(verrors.ErrCodeIO, path, "certificate is not readable", err)
	}

	for {
		var b *pem.Block
		b, data = pem.Decode(data)
		if b == nil {
			return nil, verrors.WrapPath(verrors.ErrCodeValidation, path, "no PEM certificate found", nil)
		}
		if b.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(b.Bytes)
		if err != nil {
			return nil, verrors.WrapPath(verrors.ErrCodeValidation, path, "invalid certificate", err)
		}
		return cert, nil
	}
}

// Expired reports whether the certificate is no longer valid at now.
func (c *CertInfo) Expired(now time.Time) bool {
	return now.After(c.NotAfter)
}

// ExpiresWithin reports whether the certificate expires within d of now.
func (c *CertInfo) ExpiresWithin(d time.Duration, now time.Time) bool {
	return now.Add(d).After(c.NotAfter)
}

// DaysLeft returns the whole days until expiry, negative once expired.
func (c *CertInfo) DaysLeft(now time.Time) int {
	return int(c.NotAfter.Sub(now).Hours() / 24)
}

// Covers reports whether the certificate is valid for host.
func (c *CertInfo) Covers(host string) bool {
	if c.cert == nil {
		return false
	}
	return c.cert.VerifyHostname(host) == nil
}

// Uncovered returns the hosts the certificate is not valid for.
func (c *CertInfo) Uncovered(hosts []string) []string {
	var missing []string
	for _, h := range hosts {
		if !c.Covers(h) {
			missing = append(missing, h)
		}
	}
	return missing
}

// String summarizes the certificate for display.
func (c *CertInfo) String() string {
	return fmt.Sprintf("%s (expires %s)", c.Subject, c.NotAfter.Format("2006-01-02"))
}
