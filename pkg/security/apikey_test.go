package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeAPIKey(t *testing.T) {
	assert.Equal(t, "abc123", SanitizeAPIKey("  abc123\n"))
	assert.Equal(t, "abcdef", SanitizeAPIKey("abc&def"))
}

func TestIsValidTMDBKey(t *testing.T) {
	assert.True(t, IsValidTMDBKey("0123456789abcdef0123456789ABCDEF"))
	assert.False(t, IsValidTMDBKey("short"))
	assert.False(t, IsValidTMDBKey("0123456789abcdef0123456789abcdeg"))
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "[empty]", MaskAPIKey(""))
	assert.Equal(t, "[***]", MaskAPIKey("12345678"))
	assert.Equal(t, "012...def", MaskAPIKey("0123456789abcdef"))
}

func TestRedactURL(t *testing.T) {
	got := RedactURL("https://api.themoviedb.org/3/movie/550?language=pt-BR&api_key=secret", "secret")
	assert.NotContains(t, got, "secret")
	assert.Contains(t, got, "api_key=%3Credacted%3E")
	assert.Contains(t, got, "language=pt-BR")

	plain := "https://api.themoviedb.org/3/movie/550?language=pt-BR"
	assert.Equal(t, plain, RedactURL(plain, "secret"))
}

func TestScrub(t *testing.T) {
	assert.Equal(t, `Get "https://x/?api_key=<redacted>": EOF`, Scrub(`Get "https://x/?api_key=k3y": EOF`, "k3y"))
	assert.Equal(t, "unchanged", Scrub("unchanged", ""))
}
