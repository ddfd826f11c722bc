package utils

import (
	"io"

	"candideit/logging"
)

func Map[A any, B any](input []A, mapper func(A) B) []B {
	output := make([]B, len(input))
	for i, item := range input {
		output[i] = mapper(item)
	}
	return output
}

func Contains[A comparable](input []A, item A) bool {
	for _, i := range input {
		if i == item {
			return true
		}
	}
	return false
}

// Closer returns a func for defer that logs close errors instead of dropping them.
func Closer(c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			logging.Log.Warnf("failed to close resource: %v", err)
		}
	}
}
