package user

import (
	"time"

	log "github.com/sirupsen/logrus"
)

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Settings    Settings
}

type Settings struct {
	// Timezone decides which calendar day "today" is for the user.
	Timezone string
}

// Location returns the user's timezone, UTC when unset or unknown.
func (s Settings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		log.Warnf("unknown timezone %q, falling back to UTC: %v", s.Timezone, err)
		return time.UTC
	}
	return loc
}
