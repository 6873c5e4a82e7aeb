package profiles_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"realmlauncher/models"
	"realmlauncher/services/profiles"
)

func newTestService() *profiles.Service {
	return profiles.NewServiceWithFs(afero.NewMemMapFs(), "/data")
}

func TestListReturnsEmptyWhenNoFile(t *testing.T) {
	svc := newTestService()

	list, err := svc.List()
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(list.Servers) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(list.Servers))
	}
}

func TestAddAssignsIDAndDefaults(t *testing.T) {
	svc := newTestService()

	list, err := svc.Add(models.ServerProfile{
		Name:          "Local Test Realm",
		RealmlistHost: "logon.example.com",
	})
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if len(list.Servers) != 1 {
		t.Fatalf("expected one server, got %d", len(list.Servers))
	}

	got := list.Servers[0]
	if got.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if got.Port != 3724 {
		t.Fatalf("expected default port 3724, got %d", got.Port)
	}
	if got.ExecutableName != "Wow.exe" {
		t.Fatalf("expected default executable, got %q", got.ExecutableName)
	}
}

func TestAddPreservesExplicitValues(t *testing.T) {
	svc := newTestService()

	list, err := svc.Add(models.ServerProfile{
		ID:             "fixed-id",
		Name:           "Custom",
		RealmlistHost:  "play.example.com",
		Port:           3725,
		ExecutableName: "WoW-64.exe",
	})
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	got := list.Servers[0]
	if got.ID != "fixed-id" {
		t.Fatalf("expected id to be preserved, got %q", got.ID)
	}
	if got.Port != 3725 {
		t.Fatalf("expected port 3725, got %d", got.Port)
	}
	if got.ExecutableName != "WoW-64.exe" {
		t.Fatalf("expected executable to be preserved, got %q", got.ExecutableName)
	}
}

func TestUpdateReplacesFieldsButNotID(t *testing.T) {
	svc := newTestService()

	list, err := svc.Add(models.ServerProfile{Name: "Old", RealmlistHost: "old.example.com"})
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	id := list.Servers[0].ID

	list, err = svc.Update(id, models.ServerProfile{
		ID:            "attacker-chosen",
		Name:          "New",
		RealmlistHost: "new.example.com",
	})
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}

	got := list.Servers[0]
	if got.ID != id {
		t.Fatalf("expected id %q to survive update, got %q", id, got.ID)
	}
	if got.Name != "New" || got.RealmlistHost != "new.example.com" {
		t.Fatalf("expected fields to be replaced, got %+v", got)
	}
	if got.Port != 3724 || got.ExecutableName != "Wow.exe" {
		t.Fatalf("expected defaults re-applied on update, got port=%d exe=%q", got.Port, got.ExecutableName)
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	svc := newTestService()

	before, err := svc.Add(models.ServerProfile{Name: "Keep", RealmlistHost: "keep.example.com"})
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	after, err := svc.Update("missing", models.ServerProfile{Name: "Ignored", RealmlistHost: "x"})
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if len(after.Servers) != 1 || after.Servers[0].Name != before.Servers[0].Name {
		t.Fatalf("expected unchanged list, got %+v", after.Servers)
	}
}

func TestRemoveUnknownIDIsNoOp(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Add(models.ServerProfile{Name: "Keep", RealmlistHost: "keep.example.com"}); err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	list, err := svc.Remove("missing")
	if err != nil {
		t.Fatalf("remove returned error: %v", err)
	}
	if len(list.Servers) != 1 {
		t.Fatalf("expected list to be unchanged, got %d entries", len(list.Servers))
	}
}

func TestRemoveDeletesMatchingProfile(t *testing.T) {
	svc := newTestService()

	list, err := svc.Add(models.ServerProfile{Name: "First", RealmlistHost: "a.example.com"})
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	first := list.Servers[0].ID
	if _, err := svc.Add(models.ServerProfile{Name: "Second", RealmlistHost: "b.example.com"}); err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	list, err = svc.Remove(first)
	if err != nil {
		t.Fatalf("remove returned error: %v", err)
	}
	if len(list.Servers) != 1 || list.Servers[0].Name != "Second" {
		t.Fatalf("expected only the second server to remain, got %+v", list.Servers)
	}
}

func TestListAppliesDefaultsToHandEditedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	// A file written by hand (or an older build) may omit port and executable.
	seeded := `{"servers":[{"id":"s1","name":"Realm","realmlistHost":"logon.test"}]}`
	if err := afero.WriteFile(fs, "/data/servers.json", []byte(seeded), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	svc := profiles.NewServiceWithFs(fs, "/data")
	list, err := svc.List()
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(list.Servers) != 1 {
		t.Fatalf("expected one server, got %d", len(list.Servers))
	}
	got := list.Servers[0]
	if got.Port != 3724 || got.ExecutableName != "Wow.exe" {
		t.Fatalf("expected defaults on load, got port=%d exe=%q", got.Port, got.ExecutableName)
	}
}

func TestSaveListAppliesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := profiles.NewServiceWithFs(fs, "/data")

	err := svc.SaveList(models.ServerList{Servers: []models.ServerProfile{
		{ID: "s1", Name: "Realm", RealmlistHost: "logon.test"},
	}})
	if err != nil {
		t.Fatalf("save list returned error: %v", err)
	}

	// The persisted file itself must carry the defaults, not just the
	// in-memory view.
	raw, err := afero.ReadFile(fs, "/data/servers.json")
	if err != nil {
		t.Fatalf("read servers file: %v", err)
	}
	if !strings.Contains(string(raw), "\"port\": 3724") ||
		!strings.Contains(string(raw), "\"executableName\": \"Wow.exe\"") {
		t.Fatalf("persisted profile with missing defaults: %s", raw)
	}

	list, err := svc.List()
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	got := list.Servers[0]
	if got.Port != 3724 || got.ExecutableName != "Wow.exe" {
		t.Fatalf("persisted profile with port=%d, exe=%q", got.Port, got.ExecutableName)
	}
}

func TestListSurvivesProcessRestart(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := profiles.NewServiceWithFs(fs, "/data")

	if _, err := svc.Add(models.ServerProfile{Name: "Persisted", RealmlistHost: "p.example.com"}); err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	// A fresh service over the same filesystem must see the same data.
	reopened := profiles.NewServiceWithFs(fs, "/data")
	list, err := reopened.List()
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(list.Servers) != 1 || list.Servers[0].Name != "Persisted" {
		t.Fatalf("expected persisted server, got %+v", list.Servers)
	}
}

func TestMalformedServersFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/data/servers.json", []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	svc := profiles.NewServiceWithFs(fs, "/data")
	if _, err := svc.List(); !errors.Is(err, profiles.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestSettingsDefaultsWhenMissing(t *testing.T) {
	svc := newTestService()

	settings, err := svc.Settings()
	if err != nil {
		t.Fatalf("settings returned error: %v", err)
	}
	if settings.RealmlistLocale != "enUS" {
		t.Fatalf("expected default locale enUS, got %q", settings.RealmlistLocale)
	}
	if settings.DefaultInstallPath != nil {
		t.Fatalf("expected no default install path, got %q", *settings.DefaultInstallPath)
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := profiles.NewServiceWithFs(fs, "/data")

	path := "C:/Games/WoW"
	if err := svc.SaveSettings(models.AppSettings{DefaultInstallPath: &path}); err != nil {
		t.Fatalf("save settings returned error: %v", err)
	}

	settings, err := svc.Settings()
	if err != nil {
		t.Fatalf("settings returned error: %v", err)
	}
	if settings.DefaultInstallPath == nil || *settings.DefaultInstallPath != path {
		t.Fatalf("expected install path %q, got %+v", path, settings.DefaultInstallPath)
	}
	if settings.RealmlistLocale != "enUS" {
		t.Fatalf("expected locale default applied on save, got %q", settings.RealmlistLocale)
	}

	// The file on disk is pretty-printed JSON in the documented shape.
	raw, err := afero.ReadFile(fs, "/data/settings.json")
	if err != nil {
		t.Fatalf("read settings file: %v", err)
	}
	if !strings.Contains(string(raw), "\"defaultInstallPath\"") {
		t.Fatalf("unexpected settings file contents: %s", raw)
	}
}
