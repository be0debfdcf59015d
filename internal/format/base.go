package format

import (
	"fmt"
	"math/big"
	"strings"
)

var basePrefixes = map[int]string{2: "0b", 8: "0o", 16: "0x"}

// FormatBase renders n in the given base (2 to 62) with the Go literal prefix
// for bases 2, 8 and 16, e.g. FormatBase(7, 2) == "0b111". Negative values
// keep their sign in front of the prefix.
func FormatBase(n *big.Int, base int) (string, error) {
	if base < 2 || base > big.MaxBase {
		return "", fmt.Errorf("base %d out of range [2, %d]", base, big.MaxBase)
	}
	digits := new(big.Int).Abs(n).Text(base)
	var b strings.Builder
	if n.Sign() < 0 {
		b.WriteByte('-')
	}
	b.WriteString(basePrefixes[base])
	b.WriteString(digits)
	return b.String(), nil
}

// GroupDigits inserts sep every size characters from the right of s, which
// keeps long decimal expansions readable. Strings shorter than size+1 are
// returned unchanged.
func GroupDigits(s string, size int, sep string) string {
	if size <= 0 || len(s) <= size {
		return s
	}
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}
	head := len(s) % size
	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(s[:head])
	for i := head; i < len(s); i += size {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(s[i : i+size])
	}
	return b.String()
}

// Truncate shortens s to its first and last edge characters joined by an
// ellipsis when it is longer than limit.
func Truncate(s string, limit, edge int) string {
	if len(s) <= limit || 2*edge >= len(s) {
		return s
	}
	return s[:edge] + "..." + s[len(s)-edge:]
}
