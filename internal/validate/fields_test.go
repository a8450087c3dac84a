package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/terminusgps/wialon-registration/internal/validate"
	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "Blake", want: true},
		{input: "nolan", want: true},
		{input: "ZOË", want: true},
		{input: "José", want: true},
		{input: "", want: false},
		{input: "Blake1", want: false},
		{input: "Mary-Jane", want: false},
		{input: "Van Dyke", want: false},
		{input: "o'neil", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, validate.ValidateName(tt.input))
		})
	}
}

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	assert.True(t, validate.ValidateAssetName(""))
	assert.True(t, validate.ValidateAssetName("Truck 12"))
	assert.True(t, validate.ValidateAssetName(strings.Repeat("x", 59)))
	assert.False(t, validate.ValidateAssetName(strings.Repeat("x", 60)))
	assert.False(t, validate.ValidateAssetName(strings.Repeat("x", 61)))

	// Length counts characters, not bytes.
	assert.True(t, validate.ValidateAssetName(strings.Repeat("é", 59)))
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "com domain", input: "user@example.com", want: true},
		{name: "io domain", input: "ops42@fleet.io", want: true},
		{name: "gov domain", input: "clerk@city.gov", want: true},
		{name: "unknown tld", input: "user@example.xyz", want: false},
		{name: "no at sign", input: "not-an-email", want: false},
		{name: "empty", input: "", want: false},
		{name: "empty local part", input: "@example.com", want: false},
		{name: "dotted local part", input: "first.last@example.com", want: false},
		{name: "plus local part", input: "user+tag@example.com", want: false},
		{name: "second segment is checked", input: "a@b@example.com", want: false},
		{name: "bare tld domain", input: "user@com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, validate.ValidateEmail(tt.input))
		})
	}
}

func TestStubValidators(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"", "555-0100", "not a phone"} {
		assert.Equal(t, domain.OutcomeUnchecked, validate.ValidatePhone(v))
	}
	for _, v := range []string{"", "1HGCM82633A004352", "??"} {
		assert.Equal(t, domain.OutcomeUnchecked, validate.ValidateVIN(v))
	}
	assert.True(t, domain.OutcomeUnchecked.Passed())
}

func TestCheckIMEIFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "490154203237518", want: true},
		{input: "356938035643809", want: true},
		{input: "490154203237517", want: false},
		{input: "49015420323751", want: false},
		{input: "4901542032375180", want: false},
		{input: "49015420323751a", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, validate.CheckIMEIFormat(tt.input))
		})
	}
}
