package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

// IDAlphabet is the symbol set of generated identifiers.
const IDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz-"

const IDLength = 19

// NewID returns a random identifier of IDLength symbols from IDAlphabet.
func NewID() string {
	return gonanoid.MustGenerate(IDAlphabet, IDLength)
}
