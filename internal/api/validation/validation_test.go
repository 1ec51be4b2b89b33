package validation_test

import (
	"strings"
	"testing"

	"github.com/hugh/go-desk/internal/api/validation"
	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.domain.io",
		"user+tag@example.com",
		"user_name@example-domain.com",
	}
	for _, email := range valid {
		assert.True(t, validation.IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@no-local.com",
		"no-at-sign.com",
		"user@",
		"user@no-tld",
		strings.Repeat("a", 250) + "@example.com",
	}
	for _, email := range invalid {
		assert.False(t, validation.IsValidEmail(email), email)
	}
}

func TestIsValidDomain(t *testing.T) {
	valid := []string{
		"example.com",
		"sub.example.co.uk",
		"my-company.io",
	}
	for _, domain := range valid {
		assert.True(t, validation.IsValidDomain(domain), domain)
	}

	invalid := []string{
		"",
		"no-tld",
		"-leading.com",
		"spaces in.com",
		"trailing-.com",
	}
	for _, domain := range invalid {
		assert.False(t, validation.IsValidDomain(domain), domain)
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{
		"acme",
		"acme-desk",
		"a1-b2-c3",
	}
	for _, slug := range valid {
		assert.True(t, validation.IsValidSlug(slug), slug)
	}

	invalid := []string{
		"",
		"ab",
		"UPPER",
		"has space",
		"double--hyphen",
		"-leading",
		"trailing-",
		strings.Repeat("a", 64),
	}
	for _, slug := range invalid {
		assert.False(t, validation.IsValidSlug(slug), slug)
	}
}

func TestIsValidPassword(t *testing.T) {
	ok, _ := validation.IsValidPassword("secret1")
	assert.True(t, ok)

	ok, msg := validation.IsValidPassword("short")
	assert.False(t, ok)
	assert.Contains(t, msg, "at least 6")

	ok, msg = validation.IsValidPassword(strings.Repeat("x", 129))
	assert.False(t, ok)
	assert.Contains(t, msg, "at most 128")
}
