//go:build !linux

package display

import "io"

func writerIsTerminal(w io.Writer) bool {
	return false
}
