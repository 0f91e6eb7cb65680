//go:build !envdebug

package audio

// debug enables contract assertions on the render path. Build with the
// envdebug tag to turn them on.
const debug = false
