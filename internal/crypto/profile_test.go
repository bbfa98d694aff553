package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lesspass/lesspass-go/internal/model"
)

func TestPasswordProfileFromNil(t *testing.T) {
	p, err := PasswordProfileFrom(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultPasswordProfile(), p)
}

func TestPasswordProfileFromOverrides(t *testing.T) {
	p, err := PasswordProfileFrom(model.Profile{
		"site":    "example.com",
		"login":   "alice",
		"length":  float64(20),
		"symbols": false,
		"counter": float64(3),
	})
	require.NoError(t, err)

	assert.Equal(t, PasswordProfile{
		Lowercase: true,
		Uppercase: true,
		Digits:    true,
		Symbols:   false,
		Length:    20,
		Counter:   3,
	}, p)
}

func TestPasswordProfileFromWeakTypes(t *testing.T) {
	p, err := PasswordProfileFrom(model.Profile{
		"length":    "12",
		"uppercase": "false",
	})
	require.NoError(t, err)

	assert.Equal(t, 12, p.Length)
	assert.False(t, p.Uppercase)
	assert.True(t, p.Lowercase)
}

func TestPasswordProfileFromInvalid(t *testing.T) {
	_, err := PasswordProfileFrom(model.Profile{"length": "sixteen"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidParameters))
}

func TestLessPassAdapter(t *testing.T) {
	var gen LessPass

	p, err := gen.PasswordProfile(model.Profile{"length": float64(10)})
	require.NoError(t, err)

	want, err := GeneratePassword("example.com", "alice", []byte("s3cret"), p)
	require.NoError(t, err)

	got, err := gen.GeneratePassword("example.com", "alice", []byte("s3cret"), p)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Len(t, got, 10)
}
