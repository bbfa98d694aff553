package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lesspass/lesspass-go/internal/crypto"
	"github.com/lesspass/lesspass-go/internal/model"
	"github.com/lesspass/lesspass-go/internal/prompt"
)

const MasterPasswordLabel = "LessPass Master Password: "

var (
	ErrMissingLogin = errors.New("profile has no login")
	ErrInvalidField = errors.New("profile field must be a string")
)

// IncompleteProfileError reports a site or login that neither the command line nor the profile supplies.
type IncompleteProfileError struct {
	Field string
}

func (e *IncompleteProfileError) Error() string {
	return fmt.Sprintf("%s is missing from profile and command line", e.Field)
}

// ProfileStore loads stored profiles by name.
type ProfileStore interface {
	Get(ctx context.Context, name string) (model.Profile, error)
}

// Generator derives passwords from resolved inputs.
type Generator interface {
	PasswordProfile(profile model.Profile) (crypto.PasswordProfile, error)
	GeneratePassword(site, login string, master []byte, p crypto.PasswordProfile) (string, error)
}

// GeneratorService resolves site, login and parameters for a request and derives its password.
type GeneratorService struct {
	profiles ProfileStore
	secrets  prompt.SecretReader
	gen      Generator
}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService(profiles ProfileStore, secrets prompt.SecretReader, gen Generator) *GeneratorService {
	return &GeneratorService{
		profiles: profiles,
		secrets:  secrets,
		gen:      gen,
	}
}

// Generate produces the password for the given request.
func (s *GeneratorService) Generate(ctx context.Context, req model.GenerateRequest) (model.GenerateResponse, error) {
	var profile model.Profile
	if req.Profile != "" {
		p, err := s.profiles.Get(ctx, req.Profile)
		if err != nil {
			return model.GenerateResponse{}, err
		}
		profile = p
	}

	site, login, err := resolveSiteLogin(req, profile)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	params, err := s.gen.PasswordProfile(profile)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	slog.DebugContext(ctx, "generating password",
		"profile", req.Profile, "site", site, "login", login,
		"length", params.Length, "counter", params.Counter)

	master, err := s.secrets.ReadSecret(ctx, MasterPasswordLabel)
	if err != nil {
		return model.GenerateResponse{}, err
	}
	defer prompt.Zero(master)

	password, err := s.gen.GeneratePassword(site, login, master, params)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	return model.GenerateResponse{Password: password}, nil
}

// Login returns the login stored in the named profile.
func (s *GeneratorService) Login(ctx context.Context, name string) (string, error) {
	profile, err := s.profiles.Get(ctx, name)
	if err != nil {
		return "", err
	}

	login, present, err := stringField(profile, "login")
	if err != nil {
		return "", err
	}
	if !present {
		return "", ErrMissingLogin
	}
	return login, nil
}

// stringField reads a profile key that must hold a string when present.
func stringField(profile model.Profile, key string) (string, bool, error) {
	v, present, ok := profile.Field(key)
	if present && !ok {
		return "", true, fmt.Errorf("%w: %s", ErrInvalidField, key)
	}
	return v, present, nil
}

// resolveSiteLogin prefers explicit values and falls back to the profile, checking login before site.
func resolveSiteLogin(req model.GenerateRequest, profile model.Profile) (string, string, error) {
	login, err := resolveField(req.Login, profile, "login")
	if err != nil {
		return "", "", err
	}
	site, err := resolveField(req.Site, profile, "site")
	if err != nil {
		return "", "", err
	}

	return site, login, nil
}

func resolveField(explicit *string, profile model.Profile, key string) (string, error) {
	if explicit != nil {
		return *explicit, nil
	}
	v, present, err := stringField(profile, key)
	if err != nil {
		return "", err
	}
	if !present {
		return "", &IncompleteProfileError{Field: key}
	}
	return v, nil
}
