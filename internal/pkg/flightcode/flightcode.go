// Package flightcode derives human-readable flight codes from a destination
// name and a sequence number, e.g. "United States of America" + 5 -> "USA_5".
package flightcode

import (
	"fmt"
	"strings"

	"skyfare/internal/core/domain"
)

// Generate builds the flight code for a destination and sequence number.
// The prefix rules depend on how many whitespace-separated words the
// destination has:
//
//   - three or more words: first letter of every word with at least three
//     characters, in order (the filter may yield fewer or more than three
//     letters; that is deliberate)
//   - exactly two words: first two letters of the first word plus the first
//     letter of the second
//   - one word: its first three letters
func Generate(destination string, sequence uint) (string, error) {
	prefix, err := Prefix(destination)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%d", prefix, sequence), nil
}

// Prefix derives the uppercase letter prefix alone.
func Prefix(destination string) (string, error) {
	words := strings.Fields(destination)
	if len(words) == 0 {
		return "", domain.ErrDestinationTooShort
	}

	// Word lengths and slices are in runes, not bytes, so destinations like
	// "São Paulo" keep their letters intact.
	var b strings.Builder
	switch {
	case len(words) >= 3:
		for _, word := range words {
			if runes := []rune(word); len(runes) >= 3 {
				b.WriteString(strings.ToUpper(string(runes[:1])))
			}
		}
	case len(words) == 2:
		first, second := []rune(words[0]), []rune(words[1])
		if len(first) < 2 || len(second) < 1 {
			return "", domain.ErrDestinationTooShort
		}
		b.WriteString(strings.ToUpper(string(first[:2])))
		b.WriteString(strings.ToUpper(string(second[:1])))
	default:
		runes := []rune(words[0])
		if len(runes) < 3 {
			return "", domain.ErrDestinationTooShort
		}
		b.WriteString(strings.ToUpper(string(runes[:3])))
	}

	return b.String(), nil
}

// Next returns the sequence number for the next flight given the highest
// flight id seen so far (0 when no flights exist yet).
func Next(maxID uint) uint {
	return maxID + 1
}
