package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeReferrerReward(t *testing.T) {
	// 10% arrondi à l'unité inférieure
	assert.Equal(t, 99.0, ComputeReferrerReward(999))
	assert.Equal(t, 100.0, ComputeReferrerReward(1000))
	assert.Equal(t, 0.0, ComputeReferrerReward(0))
	assert.Equal(t, 0.0, ComputeReferrerReward(9.99))
	assert.Equal(t, 4.0, ComputeReferrerReward(49.5))
}

func TestGenerateReferralCode(t *testing.T) {
	code := GenerateReferralCode()

	assert.Len(t, code, 2+codeLength)
	assert.True(t, strings.HasPrefix(code, "MK"))

	// Pas de caractères ambigus dans le suffixe
	for _, ch := range code[2:] {
		assert.Contains(t, codeAlphabet, string(ch))
		assert.NotContains(t, "0O1I", string(ch))
	}
}

func TestGenerateReferralCodeUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		seen[GenerateReferralCode()] = true
	}
	// Collisions possibles en théorie, mais pas 100 sur 100
	assert.Greater(t, len(seen), 90)
}
