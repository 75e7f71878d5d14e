package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qtraffics/qifstat/rate"
)

func TestPlainRendererFrame(t *testing.T) {
	var out bytes.Buffer
	renderer := NewPlainRenderer(&out)

	// the eth0 scenario: 1024 received bytes over one second
	err := renderer.Render([]rate.Sample{
		{Name: "eth0", RxBytesPerSec: 1024, TxBytesPerSec: 0},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "Interface")
	assert.Contains(t, lines[0], "Receive")
	assert.Contains(t, lines[0], "Transmit")

	assert.Contains(t, lines[1], "eth0")
	assert.Contains(t, lines[1], "1.00 KiB/s (8.19 Kbit/s)")
	assert.Contains(t, lines[1], "0.00 B/s (0.00 bit/s)")

	// name right-aligned to the minimum width, cells padded to width
	assert.True(t, strings.HasPrefix(lines[1], "      eth0 "))
	assert.Len(t, lines[1], minIfnameWidth+2*(rateColumnWidth+1))
}

func TestPlainRendererLongName(t *testing.T) {
	var out bytes.Buffer
	renderer := NewPlainRenderer(&out)

	require.NoError(t, renderer.Render([]rate.Sample{
		{Name: "br-0123456789abc"},
		{Name: "lo"},
	}))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	// every interface column is as wide as the longest name
	assert.True(t, strings.HasPrefix(lines[1], "br-0123456789abc "))
	assert.True(t, strings.HasPrefix(lines[2], "              lo "))
}

func TestPlainRendererSeparatesFrames(t *testing.T) {
	var out bytes.Buffer
	renderer := NewPlainRenderer(&out)

	require.NoError(t, renderer.Render(nil))
	require.NoError(t, renderer.Render(nil))

	assert.Equal(t, 1, strings.Count(out.String(), "\n\n"))
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "  ab  ", center("ab", 6))
	assert.Equal(t, " ab  ", center("ab", 5))
	assert.Equal(t, "abcdef", center("abcdef", 3))
}
