package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"autonuoma/pkg/validate"
)

func TestIsEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.co",
		"tagged+filter@example.lt",
	}
	for _, s := range valid {
		assert.True(t, validate.IsEmail(s), "expected %q to be valid", s)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@nodot",
		"user name@example.com",
	}
	for _, s := range invalid {
		assert.False(t, validate.IsEmail(s), "expected %q to be invalid", s)
	}
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, validate.IsStrongPassword("Slaptazodis1!"))
	assert.True(t, validate.IsStrongPassword("aB3$efgh"))

	weak := []string{
		"",
		"aB3$efg",       // 7 chars
		"slaptazodis1!", // no uppercase
		"SLAPTAZODIS1!", // no lowercase
		"Slaptazodis!!", // no digit
		"Slaptazodis11", // no symbol
	}
	for _, s := range weak {
		assert.False(t, validate.IsStrongPassword(s), "expected %q to be weak", s)
	}
}
