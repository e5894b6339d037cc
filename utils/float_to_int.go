// SPDX-License-Identifier: EPL-2.0

// Package utils holds the sample conversions shared by the decoders and
// the mixer.
package utils

// Float32ToInt16 maps a float sample in [-1, 1] onto int16 by multiplying
// with 32767 and truncating, so 1 is 32767 and -1 is -32767. Out-of-range
// input saturates.
func Float32ToInt16(x float32) int16 {
	switch {
	case x >= 1:
		return 32767
	case x <= -1:
		return -32767
	}
	return int16(x * 32767)
}
