package lcd

// ROMRune maps a built-in character code to the closest terminal rune.
// Printable ASCII maps to itself except where the A00 character set differs.
func ROMRune(code byte) rune {
	switch code {
	case 0x5C:
		return '¥'
	case 0x7E:
		return '→'
	case 0x7F:
		return '←'
	case 0xDF:
		return '°'
	case 0xFF:
		return '█'
	}
	if code >= 0x20 && code < 0x7E {
		return rune(code)
	}
	return ' '
}
