// Package input reads raw terminal input and decodes keys and mouse clicks.
package input

import (
	"bufio"
	"strconv"
)

// Click is a left mouse button press at a 1-based terminal position.
type Click struct {
	Col, Row int
}

// Input is everything pressed since the previous read.
// Keys are edge-triggered: one key press yields one true flag for one frame.
type Input struct {
	Quit    bool
	Fire    bool
	Restart bool
	Clicks  []Click
	Pressed []byte // Raw bytes consumed this read
	Closed  bool   // The underlying reader is done
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch      chan byte
	pending []byte // Incomplete escape sequence carried to the next read
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and decodes them.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in, rest := Parse(buf)
	if len(rest) > 0 && !s.closed {
		s.pending = append([]byte(nil), rest...)
	}
	in.Closed = s.closed
	return in
}

// Parse decodes keys and SGR mouse reports from buf. It returns the decoded
// input and any trailing bytes that look like the start of an unfinished
// escape sequence.
func Parse(buf []byte) (Input, []byte) {
	var in Input
	i := 0
	for i < len(buf) {
		b := buf[i]
		if b == '\x1b' {
			n, complete := parseEscape(buf[i:], &in)
			if !complete {
				in.Pressed = append(in.Pressed, buf[:i]...)
				return in, buf[i:]
			}
			i += n
			continue
		}
		applyKey(&in, b)
		i++
	}
	in.Pressed = append(in.Pressed, buf...)
	return in, nil
}

// parseEscape decodes one escape sequence at the start of seq. It returns the
// number of bytes consumed, or complete=false if seq ends mid-sequence.
func parseEscape(seq []byte, in *Input) (n int, complete bool) {
	if len(seq) < 2 {
		return 0, false
	}
	if seq[1] != '[' {
		// Lone ESC followed by a regular key.
		return 1, true
	}
	if len(seq) < 3 {
		return 0, false
	}
	if seq[2] != '<' {
		// CSI sequence without mouse data (arrows etc): skip to the final byte.
		for j := 2; j < len(seq); j++ {
			if seq[j] >= 0x40 && seq[j] <= 0x7e {
				return j + 1, true
			}
		}
		return 0, false
	}

	// SGR mouse: ESC [ < button ; col ; row (M|m)
	end := -1
	for j := 3; j < len(seq); j++ {
		if seq[j] == 'M' || seq[j] == 'm' {
			end = j
			break
		}
		if (seq[j] < '0' || seq[j] > '9') && seq[j] != ';' {
			// Malformed: drop the introducer and resume after it.
			return 3, true
		}
	}
	if end < 0 {
		return 0, false
	}

	fields := splitFields(seq[3:end])
	if len(fields) == 3 && seq[end] == 'M' {
		button, col, row := fields[0], fields[1], fields[2]
		// Low bits select the button; bit 5 is motion, bit 6 is the wheel.
		if button&3 == 0 && button&(32|64) == 0 {
			in.Clicks = append(in.Clicks, Click{Col: col, Row: row})
		}
	}
	return end + 1, true
}

// splitFields parses "a;b;c" into integers. Empty or invalid fields yield nil.
func splitFields(b []byte) []int {
	var out []int
	start := 0
	for j := 0; j <= len(b); j++ {
		if j == len(b) || b[j] == ';' {
			n, err := strconv.Atoi(string(b[start:j]))
			if err != nil {
				return nil
			}
			out = append(out, n)
			start = j + 1
		}
	}
	return out
}

// applyKey maps a single key byte to an action.
func applyKey(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case ' ', 'f', 'F':
		in.Fire = true
	case '\n', '\r', 'r', 'R':
		in.Restart = true
	}
}
