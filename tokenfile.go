package planner

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Jaideepo7/Meal-Planner/internal/types"
)

// tokenFile persists the opaque session token across launches: read once at
// startup, written on login, cleared on logout. The identity rides along so
// the file round-trips through the identity object's serialization.
type tokenFile struct {
	path string
}

type persistedSession struct {
	Token    string          `json:"token"`
	Identity *types.Identity `json:"identity,omitempty"`
}

func newTokenFile(path string) *tokenFile {
	if path == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, "mealplanner", "session.json")
		} else {
			path = filepath.Join(os.TempDir(), "mealplanner-session.json")
		}
	}
	return &tokenFile{path: path}
}

// load returns the persisted token and identity. A missing file is not an
// error; it just means no session was saved.
func (t *tokenFile) load() (string, *types.Identity, error) {
	raw, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, nil
		}
		return "", nil, err
	}
	var ps persistedSession
	if err := json.Unmarshal(raw, &ps); err != nil {
		return "", nil, err
	}
	return ps.Token, ps.Identity, nil
}

func (t *tokenFile) save(token string, id *types.Identity) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(persistedSession{Token: token, Identity: id})
	if err != nil {
		return err
	}
	return os.WriteFile(t.path, raw, 0o600)
}

func (t *tokenFile) clear() error {
	err := os.Remove(t.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
