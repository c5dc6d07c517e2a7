// Package idna converts internationalized domain names between their Unicode
// and ASCII forms the way URL host parsing requires (UTS #46 non-transitional
// processing without STD3 rules, hyphen checks or DNS length checks).
//
// The [Default] profile is what URL parsing uses. The [Strict] profile adds
// DNS length validation for callers that resolve the names they get.
package idna

//go:generate go tool errtrace -w .

import (
	"strings"

	"braces.dev/errtrace"
	"github.com/miekg/dns"
	"golang.org/x/net/idna"

	"github.com/ghettovoice/gourl/internal/chars"
	"github.com/ghettovoice/gourl/internal/errorutil"
	"github.com/ghettovoice/gourl/internal/util"
)

const ErrInvalidDomain errorutil.Error = "invalid domain"

const (
	maxLabelLen  = 63
	maxDomainLen = 253
)

// Profile is a set of domain conversion rules.
type Profile struct {
	name      string
	uts46     *idna.Profile
	dnsLength bool
}

func newProfile(name string, dnsLength bool) *Profile {
	return &Profile{
		name: name,
		// MapForLookup turns on strict domain names and hyphen checks,
		// so the overrides must come after it.
		uts46: idna.New(
			idna.MapForLookup(),
			idna.BidiRule(),
			idna.Transitional(false),
			idna.CheckHyphens(false),
			idna.CheckJoiners(true),
			idna.StrictDomainName(false),
			idna.VerifyDNSLength(false),
		),
		dnsLength: dnsLength,
	}
}

var (
	// Default is the profile used by URL host parsing.
	Default = newProfile("default", false)
	// Strict is [Default] plus DNS length rules.
	Strict = newProfile("strict", true)
)

// String returns the profile name.
func (p *Profile) String() string {
	if p == nil {
		return "<nil>"
	}
	return p.name
}

// ToASCII maps domain to its ASCII form.
// An all-ASCII domain without punycode labels is only lowercased.
func (p *Profile) ToASCII(domain string) (string, error) {
	var (
		out string
		err error
	)
	if chars.IsASCII(domain) && !hasPunycodeLabel(domain) {
		out = util.LCase(domain)
	} else {
		out, err = p.uts46.ToASCII(domain)
		if err != nil {
			return "", errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidDomain, err))
		}
	}
	if out == "" {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidDomain, "empty result for %q", domain))
	}
	if p.dnsLength {
		if err := checkDNSLength(out); err != nil {
			return "", errtrace.Wrap(err)
		}
	}
	return out, nil
}

// ToUnicode maps domain to its Unicode form, decoding punycode labels.
func (p *Profile) ToUnicode(domain string) (string, error) {
	if chars.IsASCII(domain) && !hasPunycodeLabel(domain) {
		return util.LCase(domain), nil
	}
	out, err := p.uts46.ToUnicode(domain)
	if err != nil {
		return out, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidDomain, err))
	}
	return out, nil
}

// ToASCII maps domain to its ASCII form with the [Default] profile.
func ToASCII(domain string) (string, error) { return errtrace.Wrap2(Default.ToASCII(domain)) }

// ToUnicode maps domain to its Unicode form with the [Default] profile.
func ToUnicode(domain string) (string, error) { return errtrace.Wrap2(Default.ToUnicode(domain)) }

// IsForbiddenDomainCodePoint reports whether c may never appear in an ASCII domain.
func IsForbiddenDomainCodePoint(c byte) bool { return chars.IsForbiddenDomainCodePoint(c) }

// ContainsForbiddenDomainCodePoint reports whether s has a forbidden domain code point.
func ContainsForbiddenDomainCodePoint(s string) bool {
	return chars.ContainsForbiddenDomainCodePoint(s)
}

func hasPunycodeLabel(domain string) bool {
	for label := range strings.SplitSeq(domain, ".") {
		if len(label) >= 4 && util.EqFold(label[:4], "xn--") {
			return true
		}
	}
	return false
}

func checkDNSLength(domain string) error {
	name := strings.TrimSuffix(domain, ".")
	if len(name) > maxDomainLen {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidDomain, "domain %q is longer than %d octets", util.Ellipsis(name, 32), maxDomainLen))
	}
	for _, label := range dns.SplitDomainName(name) {
		if len(label) > maxLabelLen {
			return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidDomain, "label %q is longer than %d octets", util.Ellipsis(label, 32), maxLabelLen))
		}
	}
	if _, ok := dns.IsDomainName(name); !ok {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidDomain, "%q is not a valid DNS name", util.Ellipsis(name, 32)))
	}
	return nil
}
