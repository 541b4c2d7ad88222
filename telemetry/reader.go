package telemetry

import (
	"errors"
	"fmt"
	"io"

	"github.com/calvinmclean/chocorobo"
)

// ErrNoData is returned by ReadFrame when the timeout expires before any byte arrives. It wraps
// ErrShortFrame
var ErrNoData = fmt.Errorf("%w: no data", ErrShortFrame)

// ErrRead is wrapped with ErrShortFrame when the underlying reader fails instead of timing out
var ErrRead = errors.New("read failed")

// Reader reads whole frames from a port that has a read timeout. A Read that returns no
// bytes and no error is treated as the timeout expiring, which is how go.bug.st/serial and
// the firmware's UART reader both behave.
type Reader struct {
	r   io.Reader
	buf [chocorobo.FrameSize]byte
}

// NewReader creates a Reader. The underlying reader must not block forever
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadFrame returns the next FrameSize bytes. If the timeout expires first the partial frame
// is dropped and ErrShortFrame is returned. Dropping it also lines the reader back up with
// the sensor, since the next byte after a quiet period starts a new frame.
// The returned slice is only valid until the next call.
func (fr *Reader) ReadFrame() ([]byte, error) {
	n := 0
	for n < len(fr.buf) {
		m, err := fr.r.Read(fr.buf[n:])
		n += m
		if err != nil {
			if n == len(fr.buf) {
				break
			}
			return nil, fmt.Errorf("%w: %w after %d bytes: %w", ErrShortFrame, ErrRead, n, err)
		}
		if m == 0 {
			if n == 0 {
				return nil, ErrNoData
			}
			return nil, fmt.Errorf("%w: timed out after %d bytes", ErrShortFrame, n)
		}
	}

	return fr.buf[:], nil
}
