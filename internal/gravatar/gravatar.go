// Package gravatar derives deterministic avatar URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	baseURL       = "https://www.gravatar.com/avatar"
	defaultSize   = "200"
	defaultRating = "pg"
	defaultImage  = "mm"
)

// URL returns the gravatar URL for the given email. It is a pure string
// function of the email; gravatar requires the address lowercased and
// trimmed before hashing.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("%s/%s?s=%s&r=%s&d=%s",
		baseURL, hex.EncodeToString(sum[:]), defaultSize, defaultRating, defaultImage)
}
