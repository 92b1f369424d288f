// Package digest computes the content identity of an extraction result.
package digest

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/htmlsift"
)

// Compute hashes content joined by htmlsift.DigestSeparator.
// MD5 is used unless algo is htmlsift.DigestXXHash.
func Compute(content []string, algo htmlsift.DigestAlgorithm) string {
	joined := strings.Join(content, htmlsift.DigestSeparator)
	switch algo {
	case htmlsift.DigestXXHash:
		return fmt.Sprintf("%016x", xxhash.Sum64String(joined))
	default:
		sum := md5.Sum([]byte(joined))
		return hex.EncodeToString(sum[:])
	}
}
