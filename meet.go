package main

import (
	"net/url"
	"strings"

	"meet-url/rooms"
)

// Decision is the outcome of resolving a room. Target is the conferencing URL
// when Active, the landing page otherwise.
type Decision struct {
	Room   string
	Code   string
	Active bool
	Target string
}

type Meet struct {
	rooms      *rooms.Registry
	baseURL    string
	landingURL string
}

func NewMeet(registry *rooms.Registry, baseURL string, landingURL string) *Meet {
	return &Meet{rooms: registry, baseURL: strings.TrimSuffix(baseURL, "/"), landingURL: landingURL}
}

func (m *Meet) Resolve(room string) Decision {
	code, ok := m.rooms.Lookup(room)
	if !ok {
		return Decision{Room: room, Target: m.landingURL}
	}
	return Decision{Room: room, Code: code, Active: true, Target: m.MeetingURL(code)}
}

func (m *Meet) MeetingURL(code string) string {
	return m.baseURL + "/" + url.PathEscape(code)
}

// IsMeetingURL reports whether location points at the conferencing site.
func (m *Meet) IsMeetingURL(location string) bool {
	return strings.HasPrefix(location, m.baseURL)
}
