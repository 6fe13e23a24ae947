package validators

import (
	"net"
	"strings"
)

var (
	lookupMX = net.LookupMX
	lookupIP = net.LookupIP
)

// IsEmailDomainValid checks that the domain of email can receive mail.
// It performs DNS lookups and is only enabled by configuration.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := lookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := lookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
