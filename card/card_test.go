// file: card/card_test.go

package card

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{"known card", "400000844943340", 3},
		{"issuer only", "400000000000000", 2},
		{"sum already multiple of ten", "400000000000001", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Checksum(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects bad payload", func(t *testing.T) {
		for _, payload := range []string{"", "40000084494334", "4000008449433401", "40000084494334a"} {
			_, err := Checksum(payload)
			assert.ErrorIs(t, err, ErrInvalidPayload, payload)
		}
	})
}

func TestVerifyLuhn(t *testing.T) {
	assert.True(t, VerifyLuhn("4000008449433403"))
	assert.True(t, VerifyLuhn("4000000000000002"))

	assert.False(t, VerifyLuhn("4000008449433404"), "wrong check digit")
	assert.False(t, VerifyLuhn("400000844943340"), "too short")
	assert.False(t, VerifyLuhn("40000084494334030"), "too long")
	assert.False(t, VerifyLuhn("40000084494334o3"), "non-digit")
	assert.False(t, VerifyLuhn(""))
}

func TestGenerator_GenerateCardNumber(t *testing.T) {
	gen := NewGenerator(rand.NewPCG(1, 2))
	validate := validator.New()

	for i := 0; i < 1000; i++ {
		number := gen.GenerateCardNumber()

		require.Len(t, number, NumberLength)
		assert.True(t, strings.HasPrefix(number, IssuerID), number)
		assert.True(t, IsWellFormed(number), number)
		assert.True(t, VerifyLuhn(number), number)
		// Independent check against the validator's Luhn implementation.
		assert.NoError(t, validate.Var(number, "luhn_checksum"), number)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(rand.NewPCG(7, 7))
	b := NewGenerator(rand.NewPCG(7, 7))

	assert.Equal(t, a.GenerateCardNumber(), b.GenerateCardNumber())
	assert.Equal(t, a.GeneratePin(), b.GeneratePin())
}

func TestGenerator_GeneratePin(t *testing.T) {
	gen := NewGenerator(rand.NewPCG(3, 4))
	sawLeadingZero := false

	for i := 0; i < 10000; i++ {
		pin := gen.GeneratePin()
		require.True(t, IsWellFormedPin(pin), pin)
		if pin[0] == '0' {
			sawLeadingZero = true
		}
	}
	assert.True(t, sawLeadingZero, "PINs below 1000 must be zero-padded")
}

func TestIsWellFormed(t *testing.T) {
	assert.True(t, IsWellFormed("1234567890123456"), "structure only, checksum ignored")
	assert.False(t, IsWellFormed("123456789012345"))
	assert.False(t, IsWellFormed("-234567890123456"))
	assert.False(t, IsWellFormed("１２３４５６７８９０１２３４５６"))
}

func TestIsWellFormedPin(t *testing.T) {
	assert.True(t, IsWellFormedPin("0042"))
	assert.False(t, IsWellFormedPin("42"))
	assert.False(t, IsWellFormedPin("12a4"))
	assert.False(t, IsWellFormedPin("12345"))
}
