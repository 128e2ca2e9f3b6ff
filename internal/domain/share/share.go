// Package share builds social-media share URLs for POST /api/social.
package share

import (
	"errors"
	"net/url"
	"strings"
)

// ErrMissingPlatform is returned when no platform is given.
var ErrMissingPlatform = errors.New("share: missing platform")

// Platform is a normalized share target.
type Platform string

const (
	Facebook  Platform = "facebook"
	Twitter   Platform = "twitter"
	Instagram Platform = "instagram"
	TikTok    Platform = "tiktok"
	Unknown   Platform = ""
)

// instagramHome is returned for Instagram regardless of text/url: it has no web composer.
const instagramHome = "https://www.instagram.com/"

// ParsePlatform maps a case-insensitive name or alias to a Platform.
func ParsePlatform(name string) Platform {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "facebook", "fb":
		return Facebook
	case "twitter":
		return Twitter
	case "instagram", "ig":
		return Instagram
	case "tiktok":
		return TikTok
	default:
		return Unknown
	}
}

// BuildURL returns the share URL for platform. Unknown platforms return rawURL unchanged.
func BuildURL(platform, text, rawURL string) (string, error) {
	if strings.TrimSpace(platform) == "" {
		return "", ErrMissingPlatform
	}

	t := encodeComponent(text)
	u := encodeComponent(rawURL)

	switch ParsePlatform(platform) {
	case Facebook:
		return "https://www.facebook.com/sharer/sharer.php?u=" + u + "&quote=" + t, nil
	case Twitter:
		return "https://twitter.com/intent/tweet?text=" + t + "&url=" + u, nil
	case Instagram:
		return instagramHome, nil
	case TikTok:
		return "https://www.tiktok.com/search?q=" + t, nil
	default:
		return rawURL, nil
	}
}

// componentUnescaper restores the characters a URI component leaves literal
// but url.QueryEscape encodes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent percent-encodes s as a URI component: everything except
// A-Z a-z 0-9 and - _ . ! ~ * ' ( ) is escaped, spaces become %20.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
