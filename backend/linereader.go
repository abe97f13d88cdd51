package backend

import (
	"bufio"
	"errors"
	"io"
)

// lineReader only ever returns whole newline-terminated lines. A CSV file
// that is still being appended to can then be parsed without ever seeing
// half a record: an unterminated tail is held back and reported as io.EOF
// until the rest of the line arrives.
type lineReader struct {
	r *bufio.Reader
	// partial is an unterminated tail waiting for its newline.
	partial []byte
	// ready is the rest of a complete line that did not fit the last read.
	ready []byte
}

var _ io.Reader = (*lineReader)(nil)

func NewLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.ready) > 0 {
		n := copy(b, l.ready)
		l.ready = l.ready[n:]
		return n, nil
	}
	data, err := l.r.ReadBytes('\n')
	if err != nil {
		l.partial = append(l.partial, data...)
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, err
	}
	line := data
	if len(l.partial) > 0 {
		line = append(l.partial, data...)
		l.partial = nil
	}
	n := copy(b, line)
	l.ready = line[n:]
	return n, nil
}
