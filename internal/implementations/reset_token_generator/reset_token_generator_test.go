package resettokengenerator

import (
	"accountd/internal/core/domain/user"
	"testing"
)

func TestResetTokenGenerator(t *testing.T) {
	generator := NewGenerator()
	tokens := make(map[user.ResetToken]struct{})
	for i := 0; i < 1000; i++ {
		token := generator.GenerateResetToken()
		if string(token) == "" {
			t.Fatal("token must not be empty")
		}
		if len(string(token)) < 22 {
			t.Fatalf("token too short for 128 bits of entropy: %d chars", len(string(token)))
		}
		if _, ok := tokens[token]; ok {
			t.Fatal("token already exists")
		}
		tokens[token] = struct{}{}
	}
}
