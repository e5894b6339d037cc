// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"math"
	"time"
)

// FadeReferenceRate is the frame rate fade durations are converted at,
// whatever the output device runs at.
const FadeReferenceRate = 44100

// FadeKind is the fade state of a Sound.
type FadeKind uint8

const (
	NoFade FadeKind = iota
	FadeIn
	FadeOut
)

func (k FadeKind) String() string {
	switch k {
	case NoFade:
		return "none"
	case FadeIn:
		return "in"
	case FadeOut:
		return "out"
	default:
		return "unknown"
	}
}

// FadeRamp returns the number of frames between one-step volume changes
// for a fade lasting d. Non-positive durations give 0, which steps every
// frame.
func FadeRamp(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	ramp := math.Round(FadeReferenceRate * d.Seconds() / 255)
	if ramp > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(ramp)
}
