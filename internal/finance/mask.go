package finance

import "strings"

// MaskPhone formats a Brazilian phone number for display:
// "11987654321" becomes "(11) 98765-4321" and a 10-digit number becomes
// "(11) 8765-4321". Anything else is returned unchanged.
func MaskPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	switch len(d) {
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return phone
	}
}
