package testkit

import (
	"errors"
	"io"
)

var ErrInjectedFault = errors.New("injected fault")

// FailingReader serves the first limit bytes of its input and then fails every
// read with err.
type FailingReader struct {
	src   io.Reader
	left  int64
	fault error
}

// NewErrorReader wraps r. A nil err injects ErrInjectedFault.
func NewErrorReader(r io.Reader, limit int64, err error) *FailingReader {
	if err == nil {
		err = ErrInjectedFault
	}
	return &FailingReader{src: io.LimitReader(r, limit), left: limit, fault: err}
}

func (f *FailingReader) Read(p []byte) (int, error) {
	if f.left <= 0 {
		return 0, f.fault
	}
	n, err := f.src.Read(p)
	f.left -= int64(n)
	if err == io.EOF {
		// The source ran dry before the limit; fail instead of ending cleanly.
		f.left = 0
		return n, f.fault
	}
	return n, err
}
