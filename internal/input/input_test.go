package input

import (
	"bufio"
	"io"
	"strings"
	"testing"
	"time"
)

func TestParseKeys(t *testing.T) {
	in, rest := Parse([]byte(" r"))
	if !in.Fire || !in.Restart || in.Quit {
		t.Fatalf("unexpected input %+v", in)
	}
	if len(rest) != 0 {
		t.Fatalf("unexpected remainder %q", rest)
	}

	in, _ = Parse([]byte{'\x03'})
	if !in.Quit {
		t.Fatal("Ctrl-C should quit")
	}
}

func TestParseMouseClick(t *testing.T) {
	in, rest := Parse([]byte("\x1b[<0;12;7M\x1b[<0;12;7m"))
	if len(rest) != 0 {
		t.Fatalf("unexpected remainder %q", rest)
	}
	if len(in.Clicks) != 1 {
		t.Fatalf("expected one press, got %+v", in.Clicks)
	}
	if in.Clicks[0] != (Click{Col: 12, Row: 7}) {
		t.Fatalf("click = %+v", in.Clicks[0])
	}
}

func TestParseIgnoresOtherButtons(t *testing.T) {
	tests := []string{
		"\x1b[<2;5;5M",  // right button
		"\x1b[<32;5;5M", // drag
		"\x1b[<64;5;5M", // wheel up
	}
	for _, seq := range tests {
		in, _ := Parse([]byte(seq))
		if len(in.Clicks) != 0 {
			t.Errorf("%q should not produce a click", seq)
		}
	}
}

func TestParseArrowKeysDoNotFire(t *testing.T) {
	in, rest := Parse([]byte("\x1b[A\x1b[C"))
	if in.Fire || in.Restart || in.Quit || len(in.Clicks) != 0 {
		t.Fatalf("arrow keys should be ignored: %+v", in)
	}
	if len(rest) != 0 {
		t.Fatalf("unexpected remainder %q", rest)
	}
}

func TestParseKeepsIncompleteSequence(t *testing.T) {
	in, rest := Parse([]byte(" \x1b[<0;3"))
	if !in.Fire {
		t.Fatal("key before the partial sequence should be decoded")
	}
	if string(rest) != "\x1b[<0;3" {
		t.Fatalf("remainder = %q", rest)
	}

	in, rest = Parse(append(rest, []byte(";4M")...))
	if len(rest) != 0 || len(in.Clicks) != 1 || in.Clicks[0] != (Click{Col: 3, Row: 4}) {
		t.Fatalf("completed sequence not decoded: %+v rest=%q", in, rest)
	}
}

func TestReadInputFromStream(t *testing.T) {
	pr, pw := io.Pipe()
	s := StartStream(bufio.NewReader(pr))

	go func() {
		_, _ = io.Copy(pw, strings.NewReader("\x1b[<0;2;2M"))
		_ = pw.Close()
	}()

	deadline := time.After(time.Second)
	var clicks []Click
	for {
		in := ReadInput(s)
		clicks = append(clicks, in.Clicks...)
		if in.Closed {
			break
		}
		select {
		case <-deadline:
			t.Fatal("stream never closed")
		case <-time.After(5 * time.Millisecond):
		}
	}
	if len(clicks) != 1 {
		t.Fatalf("clicks = %+v, want one", clicks)
	}
}
