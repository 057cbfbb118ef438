package validate

// FormatPhone renders the digits of value as "(555) 123-4567", progressively
// while the visitor types. Digits beyond the tenth are dropped.
func FormatPhone(value string) string {
	d := Digits(value)
	switch n := len(d); {
	case n == 0:
		return ""
	case n <= 3:
		return "(" + d
	case n <= 6:
		return "(" + d[:3] + ") " + d[3:]
	case n > PhoneDigits:
		d = d[:PhoneDigits]
	}
	return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
}
