package memsim

import (
	cerrors "github.com/cockroachdb/errors"
)

// NonPositiveError is the error returned from CheckPositive if the number being tested is zero or negative
var NonPositiveError error = cerrors.New("number must be greater than 0")

// MaxFrameCount is the largest number of frames a paging table may hold
const MaxFrameCount = 1 << 20

// TooManyFramesError is returned from CheckFrameCount if memory would be divided into more than
// MaxFrameCount frames
var TooManyFramesError error = cerrors.New("too many frames")

type Number interface {
	~int | ~uint
}

func CheckPositive[T Number](number T, name string) error {
	if number <= 0 {
		return cerrors.Wrapf(NonPositiveError, "%s is %d", name, number)
	}
	return nil
}

// CeilDiv divides value by divisor, rounding up. value must not be negative and divisor
// must be positive. The result never overflows, even for values near the top of T's range.
func CeilDiv[T Number](value, divisor T) T {
	quotient := value / divisor
	if value%divisor != 0 {
		quotient++
	}
	return quotient
}

// CheckFrameCount verifies that dividing totalMemory into pageSize-byte frames produces at most
// MaxFrameCount frames. pageSize must be positive.
func CheckFrameCount(totalMemory, pageSize int) error {
	frameCount := totalMemory / pageSize
	if frameCount > MaxFrameCount {
		return cerrors.Wrapf(TooManyFramesError, "%d bytes in %d-byte pages is %d frames, but at most %d are supported", totalMemory, pageSize, frameCount, MaxFrameCount)
	}
	return nil
}
