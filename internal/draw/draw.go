// Package draw renders to ANSI terminals using half-block characters.
package draw

import (
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI colour sequences.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorBrightCyan = "\033[96m"
	ColorDim        = "\033[2m"
)

// packColor encodes a colour as a non-zero pixel value (0 means empty).
func packColor(c colorful.Color) uint32 {
	r, g, b := c.Clamped().RGB255()
	return 1<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// unpackRGB decodes a pixel value produced by packColor.
func unpackRGB(p uint32) (r, g, b uint8) {
	return uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// appendFg appends a 24-bit foreground colour sequence.
func appendFg(buf []byte, p uint32) []byte {
	r, g, b := unpackRGB(p)
	buf = append(buf, "\033[38;2;"...)
	buf = strconv.AppendUint(buf, uint64(r), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(g), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(b), 10)
	return append(buf, 'm')
}

// appendBg appends a 24-bit background colour sequence.
func appendBg(buf []byte, p uint32) []byte {
	r, g, b := unpackRGB(p)
	buf = append(buf, "\033[48;2;"...)
	buf = strconv.AppendUint(buf, uint64(r), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(g), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(b), 10)
	return append(buf, 'm')
}

// Foreground returns the ANSI truecolor foreground sequence for c.
func Foreground(c colorful.Color) string {
	return string(appendFg(nil, packColor(c)))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
