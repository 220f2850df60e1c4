// Package decode recovers destinations from 2GIS redirect links.
//
// link.2gis.com URLs carry a base64 payload in their trailing path segment.
// The payload arrives with unreliable padding, so decoding tries every
// padding variant in order and accepts the first one that yields valid text.
package decode

import (
	"encoding/base64"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// RedirectHost is the platform's link-shortening service. Decoding applies
// only to links on this host.
const RedirectHost = "link.2gis.com"

// paddings are tried in order; the last variant never forms legal base64
// but is kept so a payload is never rejected by trying too few.
var paddings = []string{"", "=", "==", "==="}

var (
	websiteURLRe    = regexp.MustCompile(`(?i)https?://[a-zA-Z0-9][-a-zA-Z0-9]*(?:\.[a-zA-Z0-9-]+)*\.(?:kz|com|ru|org|net|biz|info|cafe|coffee|shop|store)(?:/[^\s"']*)?`)
	websiteDomainRe = regexp.MustCompile(`(?i)[a-zA-Z0-9][-a-zA-Z0-9]*(?:\.[a-zA-Z0-9-]+)*\.(?:kz|com|ru|org|net|biz|info|cafe|coffee|shop|store)(?:/[^\s"']*)?`)

	waLinkRe  = regexp.MustCompile(`https://wa\.me/[^\s%"']+`)
	waDigitRe = regexp.MustCompile(`wa\.me/(\d+)`)
	waSendRe  = regexp.MustCompile(`whatsapp://send\?phone=(\d+)`)
)

// excludedHosts are the platform's own and other service domains that must
// never be reported as an organisation's website.
var excludedHosts = []string{"2gis", "sberbank", "yandex", "google"}

// IsRedirectLink reports whether link points at the redirect service.
func IsRedirectLink(link string) bool {
	return strings.Contains(link, RedirectHost)
}

// payload extracts the encoded trailing path segment, with query and
// fragment stripped.
func payload(link string) string {
	parts := strings.Split(link, "/")
	if len(parts) < 2 {
		return ""
	}
	p := parts[len(parts)-1]
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if i := strings.IndexByte(p, '#'); i >= 0 {
		p = p[:i]
	}
	return p
}

// decodePayload tries every padding variant and returns the first decode
// that is valid UTF-8 text.
func decodePayload(encoded string) (string, bool) {
	for _, pad := range paddings {
		raw, err := base64.StdEncoding.DecodeString(encoded + pad)
		if err != nil {
			continue
		}
		if !utf8.Valid(raw) {
			continue
		}
		return string(raw), true
	}
	return "", false
}

// Website decodes a redirect link into a destination site URL.
// Returns false for non-redirect links, undecodable payloads, and payloads
// whose text contains no acceptable domain.
func Website(link string) (string, bool) {
	if !IsRedirectLink(link) {
		return "", false
	}
	decoded, ok := decodePayload(payload(link))
	if !ok {
		return "", false
	}

	for _, re := range []*regexp.Regexp{websiteURLRe, websiteDomainRe} {
		for _, match := range re.FindAllString(decoded, -1) {
			domain := strings.TrimPrefix(strings.TrimPrefix(match, "https://"), "http://")
			if len(domain) <= 6 || isExcluded(domain) {
				continue
			}
			if strings.HasPrefix(match, "http") {
				return match, true
			}
			return "https://" + match, true
		}
	}
	return "", false
}

// WhatsApp decodes a redirect link into a wa.me deep link.
func WhatsApp(link string) (string, bool) {
	if !IsRedirectLink(link) {
		return "", false
	}
	decoded, ok := decodePayload(payload(link))
	if !ok {
		return "", false
	}

	if m := waLinkRe.FindString(decoded); m != "" {
		if unescaped, err := url.QueryUnescape(m); err == nil {
			return unescaped, true
		}
		return m, true
	}
	if m := waDigitRe.FindStringSubmatch(decoded); m != nil {
		return "https://wa.me/" + m[1], true
	}
	if m := waSendRe.FindStringSubmatch(decoded); m != nil {
		return "https://wa.me/" + m[1], true
	}
	return "", false
}

func isExcluded(domain string) bool {
	lower := strings.ToLower(domain)
	for _, bad := range excludedHosts {
		if strings.Contains(lower, bad) {
			return true
		}
	}
	return false
}
