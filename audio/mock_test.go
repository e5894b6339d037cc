// SPDX-License-Identifier: EPL-2.0

package audio

// constantSource is a test helper that produces the same frame a fixed
// number of times.
type constantSource struct {
	left, right int16
	remaining   int
}

func newConstantSource(left, right int16, frames int) *constantSource {
	return &constantSource{left: left, right: right, remaining: frames}
}

func (c *constantSource) NextSample() (int16, int16) {
	if c.remaining <= 0 {
		return 0, 0
	}
	c.remaining--
	return c.left, c.right
}

func (c *constantSource) Done() bool { return c.remaining <= 0 }
