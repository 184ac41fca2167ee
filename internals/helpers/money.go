package helper

import "strconv"

// FormatMoney renders an integer amount with space thousands separators,
// the way amounts appear on printed receipts ("1 234 567").
func FormatMoney(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(v, 10)

	n := len(s)
	if n > 3 {
		var b []byte
		lead := n % 3
		if lead > 0 {
			b = append(b, s[:lead]...)
		}
		for i := lead; i < n; i += 3 {
			if len(b) > 0 {
				b = append(b, ' ')
			}
			b = append(b, s[i:i+3]...)
		}
		s = string(b)
	}
	if neg {
		return "-" + s
	}
	return s
}
