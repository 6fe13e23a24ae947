package useragent

import (
	"strings"

	ua "github.com/mssola/user_agent"
)

type DeviceInfo struct {
	DeviceType string `json:"deviceType"`
	OS         string `json:"os"`
	Browser    string `json:"browser"`
	IsBot      bool   `json:"isBot"`
}

func Parse(userAgent string) DeviceInfo {
	if strings.TrimSpace(userAgent) == "" {
		return DeviceInfo{DeviceType: "unknown", OS: "Unknown", Browser: "Unknown"}
	}

	p := ua.New(userAgent)
	name, version := p.Browser()

	browser := name
	if version != "" {
		if major, _, found := strings.Cut(version, "."); found {
			version = major
		}
		browser = name + " " + version
	}

	deviceType := "desktop"
	if p.Mobile() {
		deviceType = "mobile"
	}
	if p.Bot() {
		deviceType = "bot"
	}

	osName := p.OS()
	if osName == "" {
		osName = "Unknown"
	}

	return DeviceInfo{
		DeviceType: deviceType,
		OS:         osName,
		Browser:    strings.TrimSpace(browser),
		IsBot:      p.Bot(),
	}
}

// Describe returns a short label such as "Chrome 120 on Windows 10".
func Describe(userAgent string) string {
	info := Parse(userAgent)
	if info.Browser == "" || info.Browser == "Unknown" {
		return "Unknown device"
	}
	return info.Browser + " on " + info.OS
}
