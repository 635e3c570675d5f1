package sse

import (
	"bytes"
	"strings"
)

// Decoder splits a chunked byte stream into frame payloads.
//
// Bytes after the last line terminator are held as a pending partial and
// prepended to the next chunk. Lines are only converted to strings once
// complete, so multi-byte characters split across chunks survive intact.
// The zero value is ready to use.
type Decoder struct {
	partial []byte
}

// Feed consumes one chunk and returns the payloads of every frame it
// completes, in order. Lines that do not carry the data marker (comments,
// keep-alives, other fields, blank separators) are skipped.
func (d *Decoder) Feed(chunk []byte) []string {
	if len(chunk) == 0 {
		return nil
	}
	var frames []string
	for {
		i := bytes.IndexByte(chunk, '\n')
		if i < 0 {
			break
		}
		var line []byte
		if len(d.partial) > 0 {
			line = append(d.partial, chunk[:i]...)
			d.partial = d.partial[:0]
		} else {
			line = chunk[:i]
		}
		chunk = chunk[i+1:]
		if payload, ok := framePayload(line); ok {
			frames = append(frames, payload)
		}
	}
	d.partial = append(d.partial, chunk...)
	return frames
}

// Flush discards the pending partial at end of stream. An unterminated
// trailing line is not a frame. Flush reports whether bytes were dropped.
func (d *Decoder) Flush() bool {
	dropped := len(d.partial) > 0
	d.partial = nil
	return dropped
}

// Pending returns the number of buffered bytes awaiting a terminator.
func (d *Decoder) Pending() int {
	return len(d.partial)
}

func framePayload(line []byte) (string, bool) {
	line = bytes.TrimSuffix(line, []byte{'\r'})
	s := string(line)
	if !strings.HasPrefix(s, dataPrefix) {
		return "", false
	}
	return s[len(dataPrefix):], true
}
