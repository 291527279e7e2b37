// Package visitors records privacy-conscious page visits: client addresses
// are stored only as salted hashes and old rows are purged on a schedule.
package visitors

import (
	"time"

	"github.com/mssola/useragent"
)

type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceMobile  Device = "mobile"
	DeviceBot     Device = "bot"
)

type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Browser   string    `json:"browser"`
	OS        string    `json:"os"`
	Device    Device    `json:"device"`
	Path      string    `json:"path"`
	Country   string    `json:"country,omitempty"`
	VisitedAt time.Time `json:"visited_at"`
}

type Agent struct {
	Browser string
	OS      string
	Device  Device
}

// Classify parses a User-Agent header into browser, OS and device class.
func Classify(header string) Agent {
	if header == "" {
		return Agent{Device: DeviceDesktop}
	}
	ua := useragent.New(header)
	browser, _ := ua.Browser()

	device := DeviceDesktop
	switch {
	case ua.Bot():
		device = DeviceBot
	case ua.Mobile():
		device = DeviceMobile
	}
	return Agent{Browser: browser, OS: ua.OS(), Device: device}
}
