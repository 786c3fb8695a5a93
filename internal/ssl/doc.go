// Package ssl inspects the certificate/key pairs referenced by sites.
//
// It only reads PEM files; issuing or renewing certificates is left to the
// tools that manage them.
//
//	info, err := ssl.Inspect("/etc/ssl/certs/dev.pem", "/etc/ssl/private/dev.key")
//	if err == nil && info.ExpiresWithin(30*24*time.Hour, time.Now()) {
//	    // renew soon
//	}
package ssl
