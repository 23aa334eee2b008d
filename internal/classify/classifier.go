// Package classify applies the ordered rule table that scores and excludes
// discovered URLs.
package classify

import (
	"net/url"
	"strings"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/discovery"
)

// Fallback priorities applied when no table rule matches.
const (
	fallbackSpanishPriority  = 50
	fallbackOnDomainPriority = 40
	fallbackOffsitePriority  = 10
)

// Classifier scores URLs against the ordered rule table. Classify is a pure
// function of the URL string; two calls on the same URL always agree.
type Classifier struct {
	domain string
}

// New builds a Classifier for the target domain. The domain only affects the
// on-domain/off-domain fallback split; path rules apply to any host.
func New(domain string) *Classifier {
	return &Classifier{domain: strings.ToLower(strings.TrimSpace(domain))}
}

// Classify evaluates the rule table in order: exclusions first, then the
// localized Spanish rules, then the English tiers, then fallbacks. The first
// match wins.
func (c *Classifier) Classify(rawURL string) discovery.Classification {
	lowered := strings.ToLower(strings.TrimSpace(rawURL))

	parsed, err := url.Parse(lowered)
	if err != nil || parsed.Host == "" {
		return excluded(rawURL, "unparseable URL")
	}

	if reason, drop := exclusionReason(parsed); drop {
		return excluded(rawURL, reason)
	}

	path := strings.TrimSuffix(parsed.Path, "/")
	if path == "" {
		path = "/"
	}

	for _, r := range spanishRules {
		if r.match(path) {
			return scored(rawURL, r)
		}
	}
	for _, r := range englishRules {
		if r.match(path) {
			return scored(rawURL, r)
		}
	}

	switch {
	case strings.HasPrefix(path, "/es/") || path == "/es":
		return discovery.Classification{
			URL:      rawURL,
			Priority: fallbackSpanishPriority,
			Category: "spanish-general",
			Reason:   "unmatched localized page",
		}
	case c.onDomain(parsed.Hostname()):
		return discovery.Classification{
			URL:      rawURL,
			Priority: fallbackOnDomainPriority,
			Category: "general",
			Reason:   "unmatched on-domain page",
		}
	default:
		return discovery.Classification{
			URL:      rawURL,
			Priority: fallbackOffsitePriority,
			Category: "external",
			Reason:   "off-domain page",
		}
	}
}

// exclusionReason checks the full exclusion block; these rules run before any
// scoring rule so an excluded URL can never be rescued by a content match.
func exclusionReason(u *url.URL) (string, bool) {
	if u.Fragment != "" {
		return "fragment URL", true
	}
	if u.RawQuery != "" {
		return "query-string URL", true
	}

	host := u.Hostname()
	for _, sub := range nonContentSubdomains {
		if strings.HasPrefix(host, sub+".") {
			return "non-content subdomain " + sub, true
		}
	}

	path := u.Path
	for _, ext := range binaryExtensions {
		if strings.HasSuffix(path, ext) {
			return "binary file extension " + ext, true
		}
	}
	for _, marker := range excludedPathMarkers {
		if strings.Contains(path, marker) {
			return "operational path " + marker, true
		}
	}
	if datedBlogPath.MatchString(path) {
		return "date-stamped archive path", true
	}
	if paginationRe.MatchString(path) {
		return "pagination path", true
	}
	return "", false
}

func (c *Classifier) onDomain(host string) bool {
	if c.domain == "" {
		return false
	}
	return host == c.domain || strings.HasSuffix(host, "."+c.domain)
}

func excluded(rawURL, reason string) discovery.Classification {
	return discovery.Classification{
		URL:      rawURL,
		Excluded: true,
		Priority: 0,
		Category: "excluded",
		Reason:   reason,
	}
}

func scored(rawURL string, r rule) discovery.Classification {
	return discovery.Classification{
		URL:      rawURL,
		Priority: r.priority,
		Category: r.category,
		Reason:   r.reason,
	}
}
