package ws

import (
	"regexp"
	"strings"

	"github.com/jisupark123/Pair-Go-Backend/internal/room"
)

var (
	tabletRe = regexp.MustCompile(`(?i)tablet|ipad|playbook|silk`)
	mobileRe = regexp.MustCompile(`Mobile|Android|iP(hone|od)|IEMobile|BlackBerry|Kindle|Silk-Accelerated|(hpw|web)OS|Opera M(obi|ini)`)
)

// deviceTypeFromUserAgent classifies the connecting device; the lobby shows
// it next to each participant. Android without "mobi" counts as a tablet.
func deviceTypeFromUserAgent(ua string) room.DeviceType {
	lower := strings.ToLower(ua)
	if tabletRe.MatchString(ua) || (strings.Contains(lower, "android") && !strings.Contains(lower, "mobi")) {
		return room.DeviceTablet
	}
	if mobileRe.MatchString(ua) {
		return room.DeviceMobile
	}
	return room.DeviceDesktop
}
