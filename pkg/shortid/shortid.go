package shortid

import (
	"crypto/rand"
	"fmt"
)

// Alphabet excludes visually confusable characters (0/O, 1/l/I) so short ids
// survive being read aloud or retyped from a chat message.
const Alphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// DefaultLength matches the 9-character ids used in share URLs.
const DefaultLength = 9

// New returns a random identifier of the given length drawn uniformly from
// Alphabet. Length <= 0 falls back to DefaultLength.
func New(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	// Rejection sampling keeps the distribution uniform: 256 is not a
	// multiple of len(Alphabet), so plain modulo would bias low indexes.
	max := byte(256 - (256 % len(Alphabet)))
	out := make([]byte, 0, length)
	buf := make([]byte, length)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("reading random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= max {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
