package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lesspass/lesspass-go/internal/model"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileCorrupt  = errors.New("profile is not a valid JSON object")
)

// ProfileRepository reads profile documents from a single directory.
type ProfileRepository struct {
	dir string
}

// NewProfileRepository creates a new ProfileRepository rooted at dir.
func NewProfileRepository(dir string) *ProfileRepository {
	return &ProfileRepository{dir: dir}
}

// Path returns the file a profile name resolves to. The name is used as-is.
func (r *ProfileRepository) Path(name string) string {
	return filepath.Join(r.dir, name+".json")
}

// Get loads and decodes the named profile.
func (r *ProfileRepository) Get(ctx context.Context, name string) (model.Profile, error) {
	path := r.Path(name)
	slog.DebugContext(ctx, "loading profile", "name", name, "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
		}
		return nil, err
	}

	var profile model.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrProfileCorrupt, name, err)
	}
	// A bare `null` decodes without error into a nil map.
	if profile == nil {
		return nil, fmt.Errorf("%w: %s", ErrProfileCorrupt, name)
	}

	return profile, nil
}
