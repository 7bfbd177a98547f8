package postgres

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"strings"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based row IDs.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

// HexRefGenerator generates business references: a prefix followed by twelve
// uppercase hex characters, e.g. TRN4F3A91C02B7D.
type HexRefGenerator struct {
	rand io.Reader
}

// NewHexRefGenerator creates a generator backed by crypto/rand.
func NewHexRefGenerator() *HexRefGenerator {
	return &HexRefGenerator{rand: rand.Reader}
}

// NewRef returns a new reference with the given prefix.
func (g *HexRefGenerator) NewRef(prefix string) string {
	buf := make([]byte, 6)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}

	return prefix + strings.ToUpper(hex.EncodeToString(buf))
}
