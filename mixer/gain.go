// SPDX-License-Identifier: EPL-2.0

package mixer

import "github.com/ik5/audmix/utils"

// channelGains returns the left and right gains for volume and pan. Results
// range from 0 to 512.
func channelGains(volume, pan uint8) (left, right int32) {
	v := int32(volume)
	p := int32(pan)
	left = v * max(p, 128) / 128
	right = v * (255 - min(p, 128)) / 127
	return left, right
}

// scale applies gain to a raw sample. The result saturates instead of
// wrapping when gain is above 255.
func scale(raw int16, gain int32) int16 {
	return utils.ClampInt16(int32(raw) * gain / 255)
}
