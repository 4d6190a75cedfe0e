// Normalizes raw posting fields into comparable keys.
// All functions are pure and idempotent: feeding a normalized value back
// in returns it unchanged.

package canonical

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

var (
	jobDetailRegex = regexp.MustCompile(`/job_detail/([^/.]+)`)

	// legal-entity suffixes, compound variants first so the plain form
	// does not leave a partial suffix behind
	companySuffixes = []*regexp.Regexp{
		regexp.MustCompile(`网络科技有限公司$`),
		regexp.MustCompile(`信息科技有限公司$`),
		regexp.MustCompile(`科技有限公司$`),
		regexp.MustCompile(`技术有限公司$`),
		regexp.MustCompile(`股份有限公司$`),
		regexp.MustCompile(`集团有限公司$`),
		regexp.MustCompile(`有限公司$`),
	}
	companyParenRegex = regexp.MustCompile(`[(（][^)）]*[)）]$`)

	titleBracketRegex = regexp.MustCompile(`[(（][^)）]*[)）]|[\[【][^\]】]*[\]】]`)
	titleNoiseRegex   = regexp.MustCompile(`急招|高薪|包住|五险一金`)

	locationDetailRegex = regexp.MustCompile(`[·\-].*$`)
)

// StripQuery removes the query string and fragment from a URL.
func StripQuery(rawURL string) string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

// JobID extracts the platform-specific canonical job id from a posting URL.
// Known detail-page patterns win; otherwise the last non-empty path
// segment is used, and a URL without slashes is returned as-is (stripped
// of query).
func JobID(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	base := StripQuery(rawURL)
	if strings.Contains(rawURL, "zhipin.com") {
		if m := jobDetailRegex.FindStringSubmatch(base); m != nil {
			return m[1]
		}
	}
	trimmed := strings.TrimRight(base, "/")
	if trimmed == "" {
		return base
	}
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// Company normalizes a company name: width folding, trailing
// parenthetical removal, legal-entity suffix removal, lowercasing. The
// parenthetical goes first so a branch qualifier cannot shadow the suffix.
func Company(company string) string {
	c := fold(company)
	c = companyParenRegex.ReplaceAllString(c, "")
	for _, re := range companySuffixes {
		if re.MatchString(c) {
			c = re.ReplaceAllString(c, "")
			break
		}
	}
	return strings.ToLower(strings.TrimSpace(c))
}

// Title normalizes a job title, dropping bracketed qualifiers and
// marketing noise that do not change job identity.
func Title(title string) string {
	t := strings.ToLower(fold(title))
	t = titleBracketRegex.ReplaceAllString(t, "")
	t = titleNoiseRegex.ReplaceAllString(t, "")
	return strings.TrimSpace(t)
}

// Location keeps only the city-level token, dropping sub-district and
// street detail after the separator.
func Location(location string) string {
	l := strings.ToLower(fold(location))
	l = locationDetailRegex.ReplaceAllString(l, "")
	return strings.TrimSpace(l)
}

// ContentFingerprint hashes the normalized company+title+location triple
// into a stable content identity key.
func ContentFingerprint(company, title, location string) string {
	base := Company(company) + "_" + Title(title) + "_" + Location(location)
	return md5Hex(base)
}

// Fingerprint builds the preferred dedup key for a posting: the URL job id
// when a URL exists, the content fingerprint otherwise.
func Fingerprint(url, company, title, location string) string {
	if id := JobID(url); id != "" {
		return md5Hex("url_" + id)
	}
	return md5Hex("content_" + Company(company) + "_" + Title(title) + "_" + Location(location))
}

func fold(s string) string {
	return width.Fold.String(strings.TrimSpace(s))
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
