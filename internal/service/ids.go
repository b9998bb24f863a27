package service

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"
)

func newID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugCollapse = regexp.MustCompile(`-+`)
)

const slugSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// newSlug turns a campaign title into a url-safe slug with a random
// suffix so equal titles never collide.
func newSlug(title string) string {
	base := strings.ToLower(title)
	base = slugStrip.ReplaceAllString(base, "")
	base = slugSpaces.ReplaceAllString(base, "-")
	base = slugCollapse.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	suffix := make([]byte, 6)
	for i, b := range buf {
		suffix[i] = slugSuffixAlphabet[int(b)%len(slugSuffixAlphabet)]
	}
	if base == "" {
		return string(suffix)
	}
	return base + "-" + string(suffix)
}
