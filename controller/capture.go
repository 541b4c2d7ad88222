package controller

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/calvinmclean/chocorobo"
	"github.com/calvinmclean/chocorobo/control"
)

// ErrInvalidCapture is returned when a capture file cannot be parsed
var ErrInvalidCapture = errors.New("invalid capture")

// CaptureFrame is one frame received while recording. Offset is the time since the recording
// started
type CaptureFrame struct {
	Offset time.Duration
	Frame  []byte
}

// ParseCapture reads a capture written by WriteCapture. Each line is "<offset_ms> <frame>".
// Blank lines and lines starting with '#' are skipped. Offsets must not go backwards
func ParseCapture(r io.Reader) ([]CaptureFrame, error) {
	result := []CaptureFrame{}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	var last time.Duration
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		offsetStr, frame, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: missing frame", ErrInvalidCapture, lineNum)
		}

		ms, err := strconv.ParseInt(offsetStr, 10, 64)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("%w: line %d: invalid offset %q", ErrInvalidCapture, lineNum, offsetStr)
		}

		if len(frame) != chocorobo.FrameSize {
			return nil, fmt.Errorf("%w: line %d: frame %q is not %d bytes", ErrInvalidCapture, lineNum, frame, chocorobo.FrameSize)
		}

		offset := time.Duration(ms) * time.Millisecond
		if offset < last {
			return nil, fmt.Errorf("%w: line %d: offset %v is before %v", ErrInvalidCapture, lineNum, offset, last)
		}
		last = offset

		result = append(result, CaptureFrame{Offset: offset, Frame: []byte(frame)})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading capture: %w", err)
	}

	return result, nil
}

// WriteCapture writes frames in the format read by ParseCapture
func WriteCapture(w io.Writer, frames []CaptureFrame) error {
	for _, f := range frames {
		err := writeCaptureLine(w, f)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeCaptureLine(w io.Writer, f CaptureFrame) error {
	_, err := fmt.Fprintf(w, "%d %s\n", f.Offset.Milliseconds(), f.Frame)
	return err
}

// recordingReader copies every frame it reads to a capture
type recordingReader struct {
	frames control.FrameReader
	clock  control.Clock
	start  time.Time
	out    io.Writer
}

func newRecordingReader(frames control.FrameReader, clock control.Clock, out io.Writer) *recordingReader {
	return &recordingReader{
		frames: frames,
		clock:  clock,
		start:  clock.Now(),
		out:    out,
	}
}

func (r *recordingReader) ReadFrame() ([]byte, error) {
	frame, err := r.frames.ReadFrame()
	if err != nil {
		return frame, err
	}

	werr := writeCaptureLine(r.out, CaptureFrame{
		Offset: r.clock.Now().Sub(r.start),
		Frame:  frame,
	})
	if werr != nil {
		control.Logf("error recording frame: %v", werr)
	}

	return frame, nil
}
