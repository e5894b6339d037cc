// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrUnsupportedFormat   = errors.New("unsupported audio format")
	ErrUnsupportedChannels = errors.New("only mono and stereo streams are supported")
	ErrEmptyInput          = errors.New("empty audio input")
)
