// Package platform maps video URLs to the social platform hosting them.
package platform

import "regexp"

type Platform string

const (
	YouTube   Platform = "youtube"
	TikTok    Platform = "tiktok"
	Facebook  Platform = "facebook"
	Instagram Platform = "instagram"
	Twitter   Platform = "twitter"
	General   Platform = "general"
)

// Ordered so detection is deterministic when a URL could in theory match
// more than one platform's patterns.
var platformOrder = []Platform{YouTube, TikTok, Facebook, Instagram, Twitter}

var platformPatterns = map[Platform][]*regexp.Regexp{
	YouTube: {
		regexp.MustCompile(`(?i)youtube\.com`),
		regexp.MustCompile(`(?i)youtu\.be`),
		regexp.MustCompile(`(?i)youtube-nocookie\.com`),
	},
	TikTok: {
		regexp.MustCompile(`(?i)tiktok\.com`),
		regexp.MustCompile(`(?i)vm\.tiktok\.com`),
		regexp.MustCompile(`(?i)vt\.tiktok\.com`),
	},
	Facebook: {
		regexp.MustCompile(`(?i)facebook\.com`),
		regexp.MustCompile(`(?i)fb\.watch`),
		regexp.MustCompile(`(?i)fb\.com`),
	},
	Instagram: {
		regexp.MustCompile(`(?i)instagram\.com`),
		regexp.MustCompile(`(?i)instagr\.am`),
	},
	Twitter: {
		regexp.MustCompile(`(?i)twitter\.com`),
		regexp.MustCompile(`(?i)t\.co`),
		regexp.MustCompile(`(?i)x\.com`),
	},
}

// Detect returns the platform hosting the given URL, or General when no
// known host pattern matches. Malformed input is not an error, it just
// falls through to General.
func Detect(url string) Platform {
	for _, p := range platformOrder {
		for _, pattern := range platformPatterns[p] {
			if pattern.MatchString(url) {
				return p
			}
		}
	}
	return General
}

// Parse validates a user-supplied platform override.
func Parse(s string) (Platform, bool) {
	switch Platform(s) {
	case YouTube, TikTok, Facebook, Instagram, Twitter, General:
		return Platform(s), true
	}
	return "", false
}

// All lists every platform, General last, matching the on-disk directory set.
func All() []Platform {
	return []Platform{YouTube, TikTok, Facebook, Instagram, Twitter, General}
}
