package ytdlp

import (
	"encoding/json"
	"fmt"
)

// VideoInfo is the subset of yt-dlp's --dump-json output we care about.
type VideoInfo struct {
	ID          string
	Title       string
	Uploader    string
	Duration    int64
	ViewCount   int64
	UploadDate  string
	Description string
	Thumbnail   string
	WebpageURL  string
	Extractor   string
	FormatCount int
	HasAudio    bool
	HasVideo    bool
	BestQuality string
}

type rawInfo struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Uploader    string      `json:"uploader"`
	Duration    float64     `json:"duration"`
	ViewCount   int64       `json:"view_count"`
	UploadDate  string      `json:"upload_date"`
	Description string      `json:"description"`
	Thumbnail   string      `json:"thumbnail"`
	WebpageURL  string      `json:"webpage_url"`
	Extractor   string      `json:"extractor"`
	Formats     []rawFormat `json:"formats"`
}

type rawFormat struct {
	Height int    `json:"height"`
	ACodec string `json:"acodec"`
	VCodec string `json:"vcodec"`
}

// PlaceholderInfo stands in when the metadata probe fails; the download
// proceeds anyway and the resolver falls back to non-id strategies.
func PlaceholderInfo() *VideoInfo {
	return &VideoInfo{ID: "unknown", Title: "video"}
}

// ParseInfo decodes a --dump-json payload.
func ParseInfo(data []byte) (*VideoInfo, error) {
	var raw rawInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing video info: %v", err)
	}
	info := &VideoInfo{
		ID:          raw.ID,
		Title:       raw.Title,
		Uploader:    raw.Uploader,
		Duration:    int64(raw.Duration),
		ViewCount:   raw.ViewCount,
		UploadDate:  raw.UploadDate,
		Description: truncate(raw.Description, 200),
		Thumbnail:   raw.Thumbnail,
		WebpageURL:  raw.WebpageURL,
		Extractor:   raw.Extractor,
		FormatCount: len(raw.Formats),
		BestQuality: bestQuality(raw.Formats),
	}
	if info.ID == "" {
		info.ID = "unknown"
	}
	if info.Title == "" {
		info.Title = "video"
	}
	if info.Uploader == "" {
		info.Uploader = "Unknown"
	}
	for _, f := range raw.Formats {
		if f.ACodec != "" && f.ACodec != "none" {
			info.HasAudio = true
		}
		if f.VCodec != "" && f.VCodec != "none" {
			info.HasVideo = true
		}
	}
	return info, nil
}

func bestQuality(formats []rawFormat) string {
	if len(formats) == 0 {
		return "unknown"
	}
	maxHeight := 0
	for _, f := range formats {
		if f.Height > maxHeight {
			maxHeight = f.Height
		}
	}
	switch {
	case maxHeight >= 1080:
		return "1080p+"
	case maxHeight >= 720:
		return "720p"
	case maxHeight >= 480:
		return "480p"
	default:
		return "low"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
