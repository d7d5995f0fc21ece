// Package creds retrieves the stored credential used for share mounting and
// notification transport auth. The store is keyed by executing identity and
// machine, so a credential captured interactively on one host never leaks
// into another host's scheduled runs.
package creds

import (
	"context"
	"encoding/json"
	"os"
	"os/user"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// 🚫 ErrCredentialMissing indicates no credential has been stored for this
// identity and machine. Interactive entry points react by prompting a
// one-time setup; scheduled runs fail the step that needed it.
var ErrCredentialMissing = errors.New("stored credential not found")

// 🔑 Credential is an opaque username/secret pair.
type Credential struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

// 🗄️ Provider yields the credential for the current identity, or
// ErrCredentialMissing when none was ever stored.
type Provider interface {
	Get(ctx context.Context) (Credential, error)
}

// Store is a Provider that can also persist a credential, used by the
// interactive setup path.
type Store interface {
	Provider
	Set(ctx context.Context, cred Credential) error
}

// 💾 FileStore persists the credential as a user-private file under the
// user's config directory, named by user and host.
type FileStore struct {
	path string
}

// 🏭 NewFileStore locates the credential file for the executing identity.
func NewFileStore() (*FileStore, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, errors.Errorf("locating user config dir: %w", err)
	}
	u, err := user.Current()
	if err != nil {
		return nil, errors.Errorf("resolving current user: %w", err)
	}
	host, err := os.Hostname()
	if err != nil {
		return nil, errors.Errorf("resolving hostname: %w", err)
	}
	return &FileStore{
		path: filepath.Join(configDir, "mirrorrc", "credential-"+u.Username+"@"+host+".json"),
	}, nil
}

// NewFileStoreAt uses an explicit path, bypassing identity lookup.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Get reads the stored credential.
func (s *FileStore) Get(ctx context.Context) (Credential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credential{}, errors.Errorf("%w: %s", ErrCredentialMissing, s.path)
		}
		return Credential{}, errors.Errorf("reading credential file: %w", err)
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return Credential{}, errors.Errorf("decoding credential file: %w", err)
	}
	if cred.Username == "" {
		return Credential{}, errors.Errorf("%w: empty credential in %s", ErrCredentialMissing, s.path)
	}
	return cred, nil
}

// Set persists the credential with user-only permissions.
func (s *FileStore) Set(ctx context.Context, cred Credential) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Errorf("creating credential dir: %w", err)
	}
	data, err := json.Marshal(cred)
	if err != nil {
		return errors.Errorf("encoding credential: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Errorf("writing credential file: %w", err)
	}
	return nil
}

// 🧪 Memory is an in-memory Store for tests.
type Memory struct {
	cred Credential
	set  bool
}

func (m *Memory) Get(ctx context.Context) (Credential, error) {
	if !m.set {
		return Credential{}, ErrCredentialMissing
	}
	return m.cred, nil
}

func (m *Memory) Set(ctx context.Context, cred Credential) error {
	m.cred = cred
	m.set = true
	return nil
}
