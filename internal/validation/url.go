package validation

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

const defaultMaxURLLength = 2048

var (
	ErrEmptyURL        = errors.New("URL cannot be empty")
	ErrLocalhost       = errors.New("localhost URLs are not permitted")
	ErrPrivateAddress  = errors.New("private IP addresses are not permitted")
	ErrUnsupportedHost = errors.New("unsupported hostname")
)

// URLValidator checks the remote endpoints pickr talks to: lookup services
// and feeds imported into the catalog.
type URLValidator struct {
	AllowLocalhost  bool
	AllowPrivateIPs bool
	MaxLength       int
}

// NewURLValidator blocks loopback and private addresses.
func NewURLValidator() *URLValidator {
	return &URLValidator{MaxLength: defaultMaxURLLength}
}

// NewPermissiveURLValidator allows local development endpoints.
func NewPermissiveURLValidator() *URLValidator {
	return &URLValidator{
		AllowLocalhost:  true,
		AllowPrivateIPs: true,
		MaxLength:       defaultMaxURLLength,
	}
}

// ValidateAndNormalize validates raw and returns its normalized form. A
// missing scheme defaults to https.
func (v *URLValidator) ValidateAndNormalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyURL
	}
	maxLen := v.MaxLength
	if maxLen <= 0 {
		maxLen = defaultMaxURLLength
	}
	if len(raw) > maxLen {
		return "", fmt.Errorf("URL too long (max %d characters)", maxLen)
	}
	if strings.ContainsAny(raw, "<>\"'` ") {
		return "", fmt.Errorf("URL contains invalid characters")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("URL must use http or https protocol")
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("URL must have a valid hostname")
	}
	u.Host = strings.ToLower(u.Host)

	if err := v.checkHost(u.Hostname()); err != nil {
		return "", err
	}
	if strings.Contains(u.Path, "..") {
		return "", fmt.Errorf("directory traversal patterns not allowed in URL path")
	}
	u.Fragment = ""

	return u.String(), nil
}

func (v *URLValidator) checkHost(host string) error {
	if isLocalhost(host) {
		if !v.AllowLocalhost {
			return ErrLocalhost
		}
		return nil
	}
	if ip := net.ParseIP(host); ip != nil {
		if ip.IsUnspecified() || ip.Equal(net.IPv4bcast) {
			return fmt.Errorf("%w: %s", ErrUnsupportedHost, host)
		}
		if !v.AllowPrivateIPs && isPrivateIP(ip) {
			return ErrPrivateAddress
		}
	}
	return nil
}

func isLocalhost(host string) bool {
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func isPrivateIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast()
}
