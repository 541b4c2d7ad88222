package telemetry

import (
	"errors"
	"fmt"

	"github.com/calvinmclean/chocorobo"
)

const (
	maxFieldValue = 9999

	// Separator is what the vision sensor puts between the two fields
	Separator = ','
)

// ErrFieldRange is returned when a value does not fit in a 4 digit field
var ErrFieldRange = errors.New("field out of range")

// Encode formats a frame the same way the vision sensor does
func Encode(position, width int) ([]byte, error) {
	if position < 0 || position > maxFieldValue {
		return nil, fmt.Errorf("%w: position %d", ErrFieldRange, position)
	}
	if width < 0 || width > maxFieldValue {
		return nil, fmt.Errorf("%w: width %d", ErrFieldRange, width)
	}

	frame := make([]byte, chocorobo.FrameSize)
	putField(frame[:separatorIdx], position)
	frame[separatorIdx] = Separator
	putField(frame[separatorIdx+1:], width)

	return frame, nil
}

// EncodeBox formats a frame from a bounding box's left edge and width. The sensor reports
// the horizontal center of the box, not its edge
func EncodeBox(x, width int) ([]byte, error) {
	return Encode(x+width/2, width)
}

func putField(dst []byte, v int) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = byte('0' + v%10)
		v /= 10
	}
}
