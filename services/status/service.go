package status

import (
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"realmlauncher/models"
)

// DefaultTimeout bounds each connection attempt.
const DefaultTimeout = 3 * time.Second

const maxConcurrentProbes = 8

// ErrProfileNotFound is returned when a probe targets an unknown profile id.
var ErrProfileNotFound = errors.New("status: profile not found")

type profileStore interface {
	List() (models.ServerList, error)
}

// HistoryStore persists probe outcomes. Recording is best-effort: failures
// are logged, never surfaced to the probe caller.
type HistoryStore interface {
	Record(check models.StatusCheck) error
	Recent(serverID string, limit int) ([]models.StatusCheck, error)
}

// Service probes server reachability over TCP.
type Service struct {
	store   profileStore
	history HistoryStore
	timeout time.Duration
}

// NewService returns a prober. history may be nil, which disables recording.
func NewService(store profileStore, history HistoryStore) *Service {
	return &Service{store: store, history: history, timeout: DefaultTimeout}
}

// Check probes host:port with a bounded connect timeout. An unreachable
// target is a result (online=false), not an error; only failing to resolve
// the host name errors out. Zero port and timeout fall back to the defaults.
func (s *Service) Check(host string, port int, timeout time.Duration) (models.RealmStatus, error) {
	host = strings.TrimSpace(host)
	if port == 0 {
		port = models.DefaultPort
	}
	if timeout <= 0 {
		timeout = s.timeout
	}

	start := time.Now()
	addrs, err := net.LookupHost(host)
	if err != nil {
		return models.RealmStatus{}, fmt.Errorf("resolve %s:%d: %w", host, port, err)
	}

	for _, ip := range addrs {
		conn, err := net.DialTimeout("tcp", net.JoinHostPort(ip, strconv.Itoa(port)), timeout)
		if err != nil {
			continue
		}
		conn.Close()
		return models.RealmStatus{Online: true, LatencyMS: time.Since(start).Milliseconds()}, nil
	}
	return models.RealmStatus{Online: false}, nil
}

// CheckProfile probes the stored profile with the given id and records the
// outcome in the history store.
func (s *Service) CheckProfile(serverID string) (models.RealmStatus, error) {
	list, err := s.store.List()
	if err != nil {
		return models.RealmStatus{}, err
	}

	for _, srv := range list.Servers {
		if srv.ID != serverID {
			continue
		}
		st, err := s.Check(srv.RealmlistHost, srv.Port, 0)
		if err != nil {
			return models.RealmStatus{}, err
		}
		s.record(srv, st)
		return st, nil
	}
	return models.RealmStatus{}, fmt.Errorf("%w: %s", ErrProfileNotFound, serverID)
}

// CheckAll probes every stored profile concurrently and returns a status per
// profile id. Unresolvable hosts count as offline so the map is always
// complete.
func (s *Service) CheckAll() (map[string]models.RealmStatus, error) {
	list, err := s.store.List()
	if err != nil {
		return nil, err
	}

	results := make([]models.RealmStatus, len(list.Servers))
	p := pool.New().WithMaxGoroutines(maxConcurrentProbes)
	for i := range list.Servers {
		i := i
		srv := list.Servers[i]
		p.Go(func() {
			st, err := s.Check(srv.RealmlistHost, srv.Port, 0)
			if err != nil {
				log.Printf("[status] probe %q (%s): %v", srv.Name, srv.RealmlistHost, err)
				st = models.RealmStatus{}
			}
			results[i] = st
			s.record(srv, st)
		})
	}
	p.Wait()

	out := make(map[string]models.RealmStatus, len(list.Servers))
	for i, srv := range list.Servers {
		out[srv.ID] = results[i]
	}
	return out, nil
}

// History returns the most recent recorded checks for a profile, newest
// first. Without a history store it returns an empty slice.
func (s *Service) History(serverID string, limit int) ([]models.StatusCheck, error) {
	if s.history == nil {
		return []models.StatusCheck{}, nil
	}
	return s.history.Recent(serverID, limit)
}

func (s *Service) record(srv models.ServerProfile, st models.RealmStatus) {
	if s.history == nil {
		return
	}
	check := models.StatusCheck{
		ServerID:  srv.ID,
		Host:      srv.RealmlistHost,
		Port:      srv.Port,
		Online:    st.Online,
		LatencyMS: st.LatencyMS,
		CheckedAt: time.Now().UTC(),
	}
	if err := s.history.Record(check); err != nil {
		log.Printf("[status] record check for %s: %v", srv.ID, err)
	}
}
