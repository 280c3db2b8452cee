package richtext

import (
	"net/url"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// LinkPolicy is an allow-list of URL schemes for link marks.
// A nil *LinkPolicy allows every href.
type LinkPolicy struct {
	schemes       mapset.Set[string]
	allowRelative bool
}

// NewLinkPolicy allows the given schemes (case-insensitive) plus relative links.
func NewLinkPolicy(schemes ...string) *LinkPolicy {
	set := mapset.NewSet[string]()
	for _, s := range schemes {
		s = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(s), ":"))
		if s != "" {
			set.Add(s)
		}
	}
	return &LinkPolicy{schemes: set, allowRelative: true}
}

// DefaultLinkPolicy allows http, https, mailto and tel.
func DefaultLinkPolicy() *LinkPolicy {
	return NewLinkPolicy("http", "https", "mailto", "tel")
}

// DenyRelative makes the policy reject hrefs without a scheme.
func (p *LinkPolicy) DenyRelative() *LinkPolicy {
	p.allowRelative = false
	return p
}

// Schemes returns the allowed schemes in no particular order.
func (p *LinkPolicy) Schemes() []string {
	if p == nil {
		return nil
	}
	return p.schemes.ToSlice()
}

// Allow reports whether href may be rendered as an anchor.
// Hrefs that do not parse, including those with control characters, are rejected.
func (p *LinkPolicy) Allow(href string) bool {
	if p == nil {
		return true
	}
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return p.allowRelative
	}
	// url.Parse lowercases the scheme.
	return p.schemes.Contains(u.Scheme)
}
