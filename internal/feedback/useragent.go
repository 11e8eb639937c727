package feedback

import "strings"

// ClientInfo is the browser and platform extracted from a User-Agent header.
type ClientInfo struct {
	Browser string
	OS      string
}

// ParseUserAgent classifies the common browser and OS families from a raw
// User-Agent string. Order matters: Edge and Opera embed "Chrome", Chrome
// embeds "Safari".
func ParseUserAgent(ua string) ClientInfo {
	info := ClientInfo{Browser: "Other", OS: "Other"}
	if ua == "" {
		return info
	}
	lower := strings.ToLower(ua)

	switch {
	case strings.Contains(lower, "edg/"), strings.Contains(lower, "edge"):
		info.Browser = "Edge"
	case strings.Contains(lower, "opr/"), strings.Contains(lower, "opera"):
		info.Browser = "Opera"
	case strings.Contains(lower, "firefox"):
		info.Browser = "Firefox"
	case strings.Contains(lower, "chrome"):
		info.Browser = "Chrome"
	case strings.Contains(lower, "safari"):
		info.Browser = "Safari"
	case strings.Contains(lower, "curl"):
		info.Browser = "curl"
	}

	switch {
	case strings.Contains(lower, "android"):
		info.OS = "Android"
	case strings.Contains(lower, "iphone"), strings.Contains(lower, "ipad"), strings.Contains(lower, "ios"):
		info.OS = "iOS"
	case strings.Contains(lower, "windows"):
		info.OS = "Windows"
	case strings.Contains(lower, "mac os"), strings.Contains(lower, "macintosh"):
		info.OS = "macOS"
	case strings.Contains(lower, "linux"):
		info.OS = "Linux"
	}
	return info
}
