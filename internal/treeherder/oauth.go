package treeherder

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// signer produces two-legged OAuth 1.0a HMAC-SHA1 query parameters.
type signer struct {
	key    string
	secret string
	now    func() time.Time
	nonce  func() string
}

// sign returns the encoded query string, including oauth_signature, for a request.
// extra parameters are signed and sent alongside the oauth_* ones.
func (s *signer) sign(method, rawURL string, extra map[string]string) string {
	params := map[string]string{
		"oauth_consumer_key":     s.key,
		"oauth_nonce":            s.nonce(),
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        strconv.FormatInt(s.now().Unix(), 10),
		"oauth_token":            "",
		"oauth_version":          "1.0",
	}
	for k, v := range extra {
		params[k] = v
	}

	normalized := normalizeParams(params)
	base := strings.Join([]string{
		strings.ToUpper(method),
		oauthEscape(baseURL(rawURL)),
		oauthEscape(normalized),
	}, "&")

	mac := hmac.New(sha1.New, []byte(oauthEscape(s.secret)+"&"))
	mac.Write([]byte(base))
	params["oauth_signature"] = base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return normalizeParams(params)
}

func normalizeParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, oauthEscape(k)+"="+oauthEscape(params[k]))
	}
	return strings.Join(pairs, "&")
}

// baseURL strips the query and fragment from a URL.
func baseURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// oauthEscape percent-encodes everything outside the RFC 3986 unreserved set.
func oauthEscape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte("0123456789ABCDEF"[c>>4])
		b.WriteByte("0123456789ABCDEF"[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '-' || c == '.' || c == '_' || c == '~'
}
