package smilepay

import (
	"fmt"
	"strconv"
	"strings"
)

// Checksum computes the Mid_smilepay verification code for a callback.
//
// The gateway derives it from three inputs:
//   - A: the merchant verification parameter, zero-padded to four digits (rightmost four kept)
//   - B: the collection amount, zero-padded to eight digits (rightmost eight kept)
//   - C: the last four characters of the Smseid, non-digits replaced with '9'
//
// D = A+B+C, then E = 3 * (sum of digits at odd 0-based positions of D) and
// F = 9 * (sum of digits at even 0-based positions of D); the checksum is E+F.
// This is a digit-weighted integrity check, not an HMAC; it must match the
// gateway's formula exactly, weaknesses included.
func Checksum(merchantParam, amount, smseid string) (int, error) {
	a := padLeft(merchantParam, 4)
	b := padLeft(amount, 8)

	tail := smseid
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	var c strings.Builder
	for _, ch := range tail {
		if ch >= '0' && ch <= '9' {
			c.WriteRune(ch)
		} else {
			c.WriteByte('9')
		}
	}

	d := a + b + c.String()

	var odd, even int
	for i := 0; i < len(d); i++ {
		ch := d[i]
		if ch < '0' || ch > '9' {
			return 0, fmt.Errorf("smilepay: non-digit %q in checksum input", ch)
		}
		if i%2 == 1 {
			odd += int(ch - '0')
		} else {
			even += int(ch - '0')
		}
	}

	return odd*3 + even*9, nil
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s[len(s)-width:]
	}
	return strings.Repeat("0", width-len(s)) + s
}

// CallbackAuthenticator verifies the Mid_smilepay value asserted by inbound
// gateway callbacks. The merchant verification parameter comes from
// configuration and is fixed for the lifetime of the process.
type CallbackAuthenticator struct {
	merchantParam string
}

// NewCallbackAuthenticator creates an authenticator for the given merchant
// verification parameter.
func NewCallbackAuthenticator(merchantParam string) *CallbackAuthenticator {
	return &CallbackAuthenticator{merchantParam: merchantParam}
}

// Verify recomputes the checksum over the callback values and compares it with
// the asserted value. A missing or non-numeric asserted value always fails; it
// is never treated as zero or as a wildcard.
func (a *CallbackAuthenticator) Verify(amount, smseid, asserted string) bool {
	asserted = strings.TrimSpace(asserted)
	if asserted == "" {
		return false
	}
	want, err := strconv.Atoi(asserted)
	if err != nil {
		return false
	}
	got, err := Checksum(a.merchantParam, amount, smseid)
	if err != nil {
		return false
	}
	return got == want
}
