//go:build envdebug

package audio

const debug = true
