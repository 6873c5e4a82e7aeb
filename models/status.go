package models

import "time"

// RealmStatus reports the outcome of one reachability probe.
type RealmStatus struct {
	Online    bool  `json:"online"`
	LatencyMS int64 `json:"latencyMs"`
}

// StatusCheck is one recorded probe result, kept for uptime/latency history.
type StatusCheck struct {
	ID        int64     `json:"id"`
	ServerID  string    `json:"serverId"`
	Host      string    `json:"host"`
	Port      int       `json:"port"`
	Online    bool      `json:"online"`
	LatencyMS int64     `json:"latencyMs"`
	CheckedAt time.Time `json:"checkedAt"`
}
