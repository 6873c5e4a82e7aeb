package launcher

import (
	"errors"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"realmlauncher/models"
)

var (
	ErrProfileNotFound   = errors.New("launcher: profile not found")
	ErrNoInstallPath     = errors.New("launcher: no install path configured")
	ErrExecutableMissing = errors.New("launcher: executable not found")
)

type profileStore interface {
	List() (models.ServerList, error)
	Settings() (models.AppSettings, error)
}

type realmlistSyncer interface {
	Sync(installPath, host, locale string, accountName *string) error
}

// Spawner starts the client binary. The backend does not supervise it; the
// client owns its own lifetime once started.
type Spawner interface {
	Spawn(executable, workDir string) error
}

type execSpawner struct{}

func (execSpawner) Spawn(executable, workDir string) error {
	cmd := exec.Command(executable)
	cmd.Dir = workDir
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", executable, err)
	}
	// Reap the child in the background so it never lingers as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}

// Service turns a profile id into a launch: resolve the effective install
// path and executable, rewrite the realmlist files, then start the client.
type Service struct {
	store   profileStore
	syncer  realmlistSyncer
	spawner Spawner
	fs      afero.Fs
}

// NewService returns a launcher using os/exec and the real filesystem.
func NewService(store profileStore, syncer realmlistSyncer) *Service {
	return NewServiceWith(store, syncer, execSpawner{}, afero.NewOsFs())
}

// NewServiceWith is NewService with an explicit spawner and filesystem,
// used by tests.
func NewServiceWith(store profileStore, syncer realmlistSyncer, spawner Spawner, fs afero.Fs) *Service {
	return &Service{store: store, syncer: syncer, spawner: spawner, fs: fs}
}

// Play launches the client for the given profile. Validation happens in a
// fixed order and any failure before the spawn prevents the process from
// starting: profile lookup, install path, executable presence, realmlist
// sync, then spawn.
func (s *Service) Play(serverID string) error {
	list, err := s.store.List()
	if err != nil {
		return err
	}

	var profile *models.ServerProfile
	for i := range list.Servers {
		if list.Servers[i].ID == serverID {
			profile = &list.Servers[i]
			break
		}
	}
	if profile == nil {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, serverID)
	}

	settings, err := s.store.Settings()
	if err != nil {
		return err
	}

	installPath := ""
	if profile.InstallPath != nil {
		installPath = strings.TrimSpace(*profile.InstallPath)
	}
	if installPath == "" && settings.DefaultInstallPath != nil {
		installPath = strings.TrimSpace(*settings.DefaultInstallPath)
	}
	if installPath == "" {
		return fmt.Errorf("%w: set one in settings or on the server entry", ErrNoInstallPath)
	}

	exeName := strings.TrimSpace(profile.ExecutableName)
	if exeName == "" {
		exeName = models.DefaultExecutable
	}
	exePath := filepath.Join(installPath, exeName)
	exists, err := afero.Exists(s.fs, exePath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", exePath, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s at %s", ErrExecutableMissing, exeName, installPath)
	}

	locale := settings.RealmlistLocale
	if locale == "" {
		locale = models.DefaultLocale
	}

	if err := s.syncer.Sync(installPath, profile.RealmlistHost, locale, profile.AccountName); err != nil {
		return err
	}

	log.Printf("[launcher] starting %s for server %q (%s)", exePath, profile.Name, profile.RealmlistHost)
	return s.spawner.Spawn(exePath, installPath)
}
