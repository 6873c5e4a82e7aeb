package profiles

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"realmlauncher/models"
)

const (
	serversFile  = "servers.json"
	settingsFile = "settings.json"
)

// ErrMalformed wraps JSON decode failures of the persisted data files.
var ErrMalformed = errors.New("profiles: malformed data file")

// Service owns servers.json and settings.json under the data directory. It is
// stateless: every operation re-reads from disk, so callers never observe
// stale data from a previous request.
type Service struct {
	fs      afero.Fs
	dataDir string
}

// NewService returns a store rooted at dataDir on the real filesystem.
func NewService(dataDir string) *Service {
	return NewServiceWithFs(afero.NewOsFs(), dataDir)
}

// NewServiceWithFs is NewService with an explicit filesystem, used by tests.
func NewServiceWithFs(fs afero.Fs, dataDir string) *Service {
	return &Service{fs: fs, dataDir: dataDir}
}

func (s *Service) serversPath() string  { return filepath.Join(s.dataDir, serversFile) }
func (s *Service) settingsPath() string { return filepath.Join(s.dataDir, settingsFile) }

// List returns the stored profiles. A missing file is not an error; it yields
// an empty list. Field defaults are applied on every load, so an entry whose
// file omits the port or executable still comes back complete.
func (s *Service) List() (models.ServerList, error) {
	var list models.ServerList
	if err := s.read(s.serversPath(), &list); err != nil {
		return models.ServerList{}, err
	}
	for i := range list.Servers {
		list.Servers[i].ApplyDefaults()
	}
	return list, nil
}

// SaveList persists the whole collection, replacing whatever was stored.
// Defaults are applied first, so a caller-supplied list can never persist a
// profile with a zero port or empty executable name.
func (s *Service) SaveList(list models.ServerList) error {
	for i := range list.Servers {
		list.Servers[i].ApplyDefaults()
	}
	return s.write(s.serversPath(), list)
}

// Add assigns an id when the profile has none, applies field defaults,
// appends the profile and persists the updated list.
func (s *Service) Add(profile models.ServerProfile) (models.ServerList, error) {
	list, err := s.List()
	if err != nil {
		return models.ServerList{}, err
	}

	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	profile.ApplyDefaults()

	list.Servers = append(list.Servers, profile)
	if err := s.SaveList(list); err != nil {
		return models.ServerList{}, err
	}
	return list, nil
}

// Update replaces the mutable fields of the profile with the given id. The id
// itself never changes. An unknown id is a silent no-op: the list is persisted
// and returned unchanged.
func (s *Service) Update(id string, profile models.ServerProfile) (models.ServerList, error) {
	list, err := s.List()
	if err != nil {
		return models.ServerList{}, err
	}

	profile.ApplyDefaults()
	for i := range list.Servers {
		if list.Servers[i].ID != id {
			continue
		}
		list.Servers[i].Name = profile.Name
		list.Servers[i].RealmlistHost = profile.RealmlistHost
		list.Servers[i].Port = profile.Port
		list.Servers[i].InstallPath = profile.InstallPath
		list.Servers[i].ExecutableName = profile.ExecutableName
		list.Servers[i].AccountName = profile.AccountName
		break
	}

	if err := s.SaveList(list); err != nil {
		return models.ServerList{}, err
	}
	return list, nil
}

// Remove filters out the profile with the given id. An unknown id is a
// silent no-op.
func (s *Service) Remove(id string) (models.ServerList, error) {
	list, err := s.List()
	if err != nil {
		return models.ServerList{}, err
	}

	kept := list.Servers[:0]
	for _, srv := range list.Servers {
		if srv.ID != id {
			kept = append(kept, srv)
		}
	}
	list.Servers = kept

	if err := s.SaveList(list); err != nil {
		return models.ServerList{}, err
	}
	return list, nil
}

// Settings returns the stored settings with defaults applied. A missing file
// yields the defaults.
func (s *Service) Settings() (models.AppSettings, error) {
	var settings models.AppSettings
	if err := s.read(s.settingsPath(), &settings); err != nil {
		return models.AppSettings{}, err
	}
	settings.ApplyDefaults()
	return settings, nil
}

// SaveSettings persists the settings wholesale, defaults applied first.
func (s *Service) SaveSettings(settings models.AppSettings) error {
	settings.ApplyDefaults()
	return s.write(s.settingsPath(), settings)
}

func (s *Service) read(path string, out any) error {
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !exists {
		return nil
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return nil
}

func (s *Service) write(path string, value any) error {
	if err := s.fs.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory %s: %w", s.dataDir, err)
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
