// FILE: loglens/src/internal/entry/useragent.go
package entry

import (
	"loglens/src/internal/core"

	"github.com/mileusna/useragent"
)

// Device types as reported by browser side UA parsers
const (
	DeviceMobile = "mobile"
	DeviceTablet = "tablet"
	DeviceBot    = "bot"
)

// ParseUserAgent decomposes a user agent string into ua* fields. Components
// the parser cannot identify are left out so they group as unknown.
func ParseUserAgent(s string) map[string]string {
	ua := useragent.Parse(s)

	out := make(map[string]string, 6)
	set := func(field, value string) {
		if value != "" {
			out[field] = value
		}
	}

	set(core.FieldUABrowserName, ua.Name)
	set(core.FieldUABrowserVersion, ua.Version)
	set(core.FieldUAOSName, ua.OS)
	set(core.FieldUAOSVersion, ua.OSVersion)
	set(core.FieldUADeviceModel, ua.Device)

	switch {
	case ua.Bot:
		out[core.FieldUADeviceType] = DeviceBot
	case ua.Tablet:
		out[core.FieldUADeviceType] = DeviceTablet
	case ua.Mobile:
		out[core.FieldUADeviceType] = DeviceMobile
	}

	return out
}
