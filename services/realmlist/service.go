package realmlist

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"realmlauncher/models"
)

// Service writes the realmlist directive to every location a client
// installation may read it from.
type Service struct {
	fs afero.Fs
}

// NewService returns a synchronizer operating on the real filesystem.
func NewService() *Service {
	return NewServiceWithFs(afero.NewOsFs())
}

// NewServiceWithFs is NewService with an explicit filesystem, used by tests.
func NewServiceWithFs(fs afero.Fs) *Service {
	return &Service{fs: fs}
}

// Sync writes "set realmlist <host>" to the three client locations:
//
//  1. <installPath>/realmlist.wtf — legacy root file some older clients read
//  2. <installPath>/Data/<locale>/realmlist.wtf — primary location
//  3. <installPath>/WTF/Config.wtf — merged, preserving unrelated settings
//
// Steps run in order and the first failure is returned without rolling back
// earlier writes; every file is overwritten idempotently, so re-running after
// a fault converges to the same end state.
func (s *Service) Sync(installPath, host, locale string, accountName *string) error {
	host = strings.TrimSpace(host)
	if locale == "" {
		locale = models.DefaultLocale
	}
	content := realmlistPrefix + host

	rootFile := filepath.Join(installPath, "realmlist.wtf")
	if err := afero.WriteFile(s.fs, rootFile, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rootFile, err)
	}

	dataDir := filepath.Join(installPath, "Data", locale)
	if err := s.fs.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dataDir, err)
	}
	localeFile := filepath.Join(dataDir, "realmlist.wtf")
	if err := afero.WriteFile(s.fs, localeFile, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", localeFile, err)
	}

	if err := s.mergeConfig(installPath, host, accountName); err != nil {
		return err
	}

	log.Printf("[realmlist] synced %q into %s (locale %s)", host, installPath, locale)
	return nil
}

func (s *Service) mergeConfig(installPath, host string, accountName *string) error {
	wtfDir := filepath.Join(installPath, "WTF")
	configPath := filepath.Join(wtfDir, "Config.wtf")

	var existing *string
	exists, err := afero.Exists(s.fs, configPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", configPath, err)
	}
	if exists {
		data, err := afero.ReadFile(s.fs, configPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", configPath, err)
		}
		text := string(data)
		existing = &text
	}

	merged := MergeDirectives(existing, host, accountName)

	if err := s.fs.MkdirAll(wtfDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", wtfDir, err)
	}
	if err := afero.WriteFile(s.fs, configPath, []byte(merged), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", configPath, err)
	}
	return nil
}
