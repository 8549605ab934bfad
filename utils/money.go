package utils

import (
	"strconv"
	"strings"
)

// FormatINR formats an amount in paise as a rupee string like "₹1,23,456.50".
// Uses Indian digit grouping (last three digits, then groups of two).
func FormatINR(paise int64) string {
	neg := paise < 0
	if neg {
		paise = -paise
	}

	rupees := paise / 100
	fraction := paise % 100

	s := strconv.FormatInt(rupees, 10)

	var b strings.Builder
	// Pre-allocate: digits + separators + sign + symbol + fraction
	b.Grow(len(s) + len(s)/2 + 6)
	if neg {
		b.WriteString("-₹")
	} else {
		b.WriteString("₹")
	}

	if len(s) <= 3 {
		b.WriteString(s)
	} else {
		// Head is everything before the final three digits, grouped in twos.
		head := s[:len(s)-3]
		rem := len(head) % 2
		if rem == 0 {
			rem = 2
		}
		b.WriteString(head[:rem])
		for i := rem; i < len(head); i += 2 {
			b.WriteByte(',')
			b.WriteString(head[i : i+2])
		}
		b.WriteByte(',')
		b.WriteString(s[len(s)-3:])
	}

	b.WriteByte('.')
	if fraction < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(fraction, 10))

	return b.String()
}
