package telemetry

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	portalHost    = "portal.azure.com"
	portalBaseURL = "https://" + portalHost + "/#resource"
)

var separatorRuns = regexp.MustCompile(`[-_.\s]+`)

// Prefixes the managed environment prepends when it materializes a
// logical job as a named resource. Longest first so "caj-" is not
// half-stripped as "ca-".
var managedJobPrefixes = []string{"caj-", "aca-", "ca-"}

var alternatePortalHosts = map[string]struct{}{
	"ms.portal.azure.com":      {},
	"preview.portal.azure.com": {},
	"rc.portal.azure.com":      {},
}

// NormalizeJobName canonicalizes a job or resource name into a comparable
// token. It is total and idempotent: every input, including the empty
// string, maps to a defined output, and normalizing an already-normalized
// name yields the same string.
func NormalizeJobName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return ""
	}
	// Generated revision suffixes take the form "<name>--<token>".
	if idx := strings.Index(name, "--"); idx >= 0 {
		name = name[:idx]
	}
	for _, prefix := range managedJobPrefixes {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			name = rest
			break
		}
	}
	return separatorRuns.ReplaceAllString(name, "")
}

// NormalizeDomainKey lowers and trims a domain display name into a
// comparison key.
func NormalizeDomainKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizePortalURL rewrites a console URL that uses an alternate host
// form or is missing its "#resource" fragment into the canonical form.
// URLs already canonical pass through unchanged. Input that cannot be
// parsed as a URL is returned as-is rather than discarded: a possibly
// odd link still beats silent data loss on the dashboard.
func NormalizePortalURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return trimmed
	}

	host := strings.ToLower(u.Host)
	if _, ok := alternatePortalHosts[host]; ok {
		u.Host = portalHost
		host = portalHost
	}
	if host != portalHost {
		return trimmed
	}

	switch {
	case u.Fragment == "" && strings.HasPrefix(u.Path, "/subscriptions/"):
		// Legacy links carry the resource ID as a bare path.
		u.Fragment = "resource" + u.Path
		u.Path = "/"
		u.RawPath = ""
	case strings.HasPrefix(u.Fragment, "/subscriptions/"):
		u.Fragment = "resource" + u.Fragment
	}
	return u.String()
}

// PortalURLFromResourceID builds the canonical console URL for a
// fully-qualified resource ID. Pure string composition.
func PortalURLFromResourceID(azureID string) string {
	id := strings.TrimSpace(azureID)
	if id == "" {
		return ""
	}
	if !strings.HasPrefix(id, "/") {
		id = "/" + id
	}
	return portalBaseURL + id
}
