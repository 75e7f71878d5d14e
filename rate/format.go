package rate

import (
	"fmt"
)

var (
	binaryPrefixes  = []string{"Ki", "Mi", "Gi", "Ti"}
	decimalPrefixes = []string{"K", "M", "G", "T"}
)

// humanize scales value down by factor until it drops below factor,
// returning the scaled value and the prefix it landed on. Values below
// factor keep the empty prefix, so 0 stays "0.00".
func humanize(value float64, prefixes []string, factor float64) (float64, string) {
	prefix := ""
	for _, p := range prefixes {
		if value < factor {
			break
		}
		value /= factor
		prefix = p
	}
	return value, prefix
}

// FormatBytes renders a byte rate with binary (1024-based) prefixes:
// 1023 -> "1023.00 B/s", 1024 -> "1.00 KiB/s".
func FormatBytes(bytesPerSec float64) string {
	scaled, prefix := humanize(bytesPerSec, binaryPrefixes, 1024)
	return fmt.Sprintf("%.2f %sB/s", scaled, prefix)
}

// FormatBits renders the same byte rate as bits with decimal SI
// prefixes: 124.875 bytes -> "999.00 bit/s", 125 bytes -> "1.00 Kbit/s".
func FormatBits(bytesPerSec float64) string {
	scaled, prefix := humanize(bytesPerSec*8, decimalPrefixes, 1000)
	return fmt.Sprintf("%.2f %sbit/s", scaled, prefix)
}

// FormatRate is the table cell form: "<bytes> (<bits>)".
func FormatRate(bytesPerSec float64) string {
	return fmt.Sprintf("%s (%s)", FormatBytes(bytesPerSec), FormatBits(bytesPerSec))
}
