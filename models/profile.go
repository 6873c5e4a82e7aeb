package models

const (
	// DefaultPort is the realmd authentication port used when a profile omits one.
	DefaultPort = 3724
	// DefaultExecutable is launched when a profile does not name a client binary.
	DefaultExecutable = "Wow.exe"
	// DefaultLocale selects the Data/<locale> realmlist location.
	DefaultLocale = "enUS"
)

// ServerProfile is one saved connection target.
type ServerProfile struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	RealmlistHost  string  `json:"realmlistHost"`
	Port           int     `json:"port"`
	InstallPath    *string `json:"installPath,omitempty"`
	ExecutableName string  `json:"executableName"`
	AccountName    *string `json:"accountName,omitempty"`
}

// ApplyDefaults fills the port and executable name when they are unset. It is
// re-applied on every mutation so a profile is never persisted without them.
func (p *ServerProfile) ApplyDefaults() {
	if p.Port == 0 {
		p.Port = DefaultPort
	}
	if p.ExecutableName == "" {
		p.ExecutableName = DefaultExecutable
	}
}

// ServerList is the persisted profile collection, insertion order preserved.
type ServerList struct {
	Servers []ServerProfile `json:"servers"`
}

// AppSettings holds the process-wide launcher configuration.
type AppSettings struct {
	DefaultInstallPath *string `json:"defaultInstallPath,omitempty"`
	RealmlistLocale    string  `json:"realmlistLocale"`
}

// ApplyDefaults fills the locale when it is unset.
func (s *AppSettings) ApplyDefaults() {
	if s.RealmlistLocale == "" {
		s.RealmlistLocale = DefaultLocale
	}
}
