package validators

import (
	"net"
	"strings"
)

// EmailDomainCheck decides whether an address can receive mail.
type EmailDomainCheck func(email string) bool

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsEmailDomainValid looks up MX, then A/AAAA records for the domain part.
func IsEmailDomainValid(email string) bool {
	domain, ok := emailDomain(email)
	if !ok {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

// AnyEmailDomain only checks that there is a domain part.
func AnyEmailDomain(email string) bool {
	_, ok := emailDomain(email)
	return ok
}

func emailDomain(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return "", false
	}
	return email[at+1:], true
}
