package resettokengenerator

import (
	"accountd/internal/core/domain/user"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const tokenBytes = 16

// Generator produces opaque reset tokens with 128 bits of CSPRNG entropy,
// base64url-encoded. Global uniqueness is additionally enforced by the
// store's unique index.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GenerateResetToken() user.ResetToken {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform's entropy source is
		// broken; issuing guessable tokens is not an option.
		panic(fmt.Sprintf("could not read random bytes: %v", err))
	}
	return user.ResetToken(base64.RawURLEncoding.EncodeToString(b))
}
