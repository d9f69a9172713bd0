package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// LintCacheKey fingerprints a lint request. Reports are reusable only when
// the file content and the linter settings are both unchanged.
func LintCacheKey(file string, content []byte, linter string, lineWidth int) string {
	h := sha256.New()
	h.Write([]byte(file))
	h.Write([]byte{0})
	h.Write([]byte(linter))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(lineWidth)))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}
