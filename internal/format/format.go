// Package format resolves a requested quality tier into a yt-dlp format
// selector, accounting for platforms whose extractors reject strict
// height-constrained selectors.
package format

import "github.com/WanXcodinG/socialgrab/internal/platform"

type Quality string

const (
	Best      Quality = "best"
	High      Quality = "high"
	Medium    Quality = "medium"
	Low       Quality = "low"
	AudioOnly Quality = "audio_only"
)

// FallbackSelector is the maximally permissive selector used for the single
// retry after a format rejection: whatever the backend offers, worst first.
const FallbackSelector = "worst/best"

var genericSelectors = map[Quality]string{
	Best:      "best[ext=mp4]/best",
	High:      "best[height<=1080][ext=mp4]/best[height<=1080]/best",
	Medium:    "best[height<=720][ext=mp4]/best[height<=720]/best",
	Low:       "best[height<=480][ext=mp4]/best[height<=480]/best",
	AudioOnly: "bestaudio[ext=m4a]/bestaudio",
}

// Facebook and Instagram extractors reject the strict [ext=mp4] selectors
// often enough that they get their own tables ending in plain best/worst.
var platformSelectors = map[platform.Platform]map[Quality]string{
	platform.Facebook: {
		Best:   "best/worst",
		High:   "best[height<=1080]/best/worst",
		Medium: "best[height<=720]/best/worst",
		Low:    "best[height<=480]/best/worst",
	},
	platform.Instagram: {
		Best:   "best/worst",
		High:   "best[height<=1080]/best/worst",
		Medium: "best[height<=720]/best/worst",
		Low:    "best[height<=480]/best/worst",
	},
}

// Resolve picks the format selector for a platform and quality tier. The
// platform override table wins when one exists; an unknown tier degrades to
// the override table's "best", or to the generic "high". The result is
// always non-empty.
func Resolve(p platform.Platform, q Quality) string {
	if overrides, ok := platformSelectors[p]; ok {
		if sel, ok := overrides[q]; ok {
			return sel
		}
		return overrides[Best]
	}
	if sel, ok := genericSelectors[q]; ok {
		return sel
	}
	return genericSelectors[High]
}

// Parse validates a user-supplied quality tier.
func Parse(s string) (Quality, bool) {
	switch Quality(s) {
	case Best, High, Medium, Low, AudioOnly:
		return Quality(s), true
	}
	return "", false
}

// Qualities lists the accepted tiers for CLI help text.
func Qualities() []Quality {
	return []Quality{Best, High, Medium, Low, AudioOnly}
}
