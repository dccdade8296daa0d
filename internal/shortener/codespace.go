package shortener

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/jaevor/go-nanoid"
)

// Alphabet is the symbol set for generated codes: base62 minus the
// visually ambiguous 0, 1, I, O and l.
const Alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const (
	// DefaultCodeLength is the length allocation starts at.
	DefaultCodeLength = 6
	// MaxCodeLength caps how far allocation may grow a code.
	MaxCodeLength = 8
)

const (
	minAliasLength = 3
	maxAliasLength = 20
)

var reservedAliases = map[string]struct{}{
	"api":    {},
	"admin":  {},
	"www":    {},
	"app":    {},
	"short":  {},
	"url":    {},
	"link":   {},
	"health": {},
}

// CodeSpace produces candidate codes and owns the growth policy for
// candidate length.
type CodeSpace struct {
	generators map[int]func() string
}

// NewCodeSpace builds a code space with a crypto-random generator per
// permitted length.
func NewCodeSpace() (*CodeSpace, error) {
	generators := make(map[int]func() string, MaxCodeLength-DefaultCodeLength+1)
	for length := DefaultCodeLength; length <= MaxCodeLength; length++ {
		gen, err := nanoid.CustomASCII(Alphabet, length)
		if err != nil {
			return nil, fmt.Errorf("building code generator for length %d: %w", length, err)
		}
		generators[length] = gen
	}

	return &CodeSpace{generators: generators}, nil
}

// NewSeededCodeSpace builds a code space whose candidates come from a
// deterministic source, so collision sequences can be reproduced in tests.
func NewSeededCodeSpace(seed int64) *CodeSpace {
	var mu sync.Mutex
	rng := rand.New(rand.NewSource(seed))

	generators := make(map[int]func() string, MaxCodeLength-DefaultCodeLength+1)
	for length := DefaultCodeLength; length <= MaxCodeLength; length++ {
		size := length
		generators[size] = func() string {
			mu.Lock()
			defer mu.Unlock()

			b := make([]byte, size)
			for i := range b {
				b[i] = Alphabet[rng.Intn(len(Alphabet))]
			}
			return string(b)
		}
	}

	return &CodeSpace{generators: generators}
}

// Candidate returns a fresh random code of the given length. Lengths
// outside the permitted range are clamped into it.
func (s *CodeSpace) Candidate(length int) Code {
	if length < DefaultCodeLength {
		length = DefaultCodeLength
	}
	if length > MaxCodeLength {
		length = MaxCodeLength
	}

	return Code(s.generators[length]())
}

// NextLength returns the candidate length to try after exhausting the
// attempt budget at current, capped at MaxCodeLength.
func NextLength(current int) int {
	if current >= MaxCodeLength {
		return MaxCodeLength
	}
	return current + 1
}

// NormalizeAlias folds a requested custom alias to its canonical form.
func NormalizeAlias(alias string) Code {
	return Code(strings.ToLower(strings.TrimSpace(alias)))
}

// ValidAlias reports whether a normalized alias is acceptable: 3 to 20
// characters drawn from [a-z0-9-], excluding reserved words.
func ValidAlias(alias Code) bool {
	if len(alias) < minAliasLength || len(alias) > maxAliasLength {
		return false
	}

	for _, r := range string(alias) {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}

	_, reserved := reservedAliases[string(alias)]
	return !reserved
}
