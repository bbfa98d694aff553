package crypto

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/lesspass/lesspass-go/internal/model"
)

var ErrInvalidParameters = errors.New("invalid password generation parameters")

// PasswordProfile holds the generation parameters of a single derivation.
type PasswordProfile struct {
	Lowercase bool `mapstructure:"lowercase"`
	Uppercase bool `mapstructure:"uppercase"`
	Digits    bool `mapstructure:"digits"`
	Symbols   bool `mapstructure:"symbols"`
	Length    int  `mapstructure:"length"`
	Counter   int  `mapstructure:"counter"`
}

// DefaultPasswordProfile returns the LessPass defaults: 16 characters, all classes, counter 1.
func DefaultPasswordProfile() PasswordProfile {
	return PasswordProfile{
		Lowercase: true,
		Uppercase: true,
		Digits:    true,
		Symbols:   true,
		Length:    16,
		Counter:   1,
	}
}

// PasswordProfileFrom overlays the generation keys of a stored profile onto the defaults.
// A nil profile yields the defaults. Keys other than generation parameters are ignored.
func PasswordProfileFrom(profile model.Profile) (PasswordProfile, error) {
	p := DefaultPasswordProfile()
	if profile == nil {
		return p, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return PasswordProfile{}, err
	}
	if err := dec.Decode(map[string]any(profile)); err != nil {
		return PasswordProfile{}, fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}

	return p, nil
}

// LessPass exposes the derivation as a pluggable generator.
type LessPass struct{}

func (LessPass) PasswordProfile(profile model.Profile) (PasswordProfile, error) {
	return PasswordProfileFrom(profile)
}

func (LessPass) GeneratePassword(site, login string, master []byte, p PasswordProfile) (string, error) {
	return GeneratePassword(site, login, master, p)
}
