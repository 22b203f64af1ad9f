package ytdlp

import "strings"

// ErrorKind is the closed set of failure classes a download can end in.
type ErrorKind int

const (
	ErrKindUnknown ErrorKind = iota
	ErrKindFormatRejected
	ErrKindTimeout
	ErrKindOutputNotFound
	ErrKindInfoFetch
	ErrKindToolUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindFormatRejected:
		return "format-rejected"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindOutputNotFound:
		return "output-not-found"
	case ErrKindInfoFetch:
		return "info-fetch-failed"
	case ErrKindToolUnavailable:
		return "tool-unavailable"
	default:
		return "unknown"
	}
}

// ClassifyStderr maps raw yt-dlp stderr to an ErrorKind. The substring
// matching is brittle by nature, so it lives in this one function and
// nowhere else.
func ClassifyStderr(stderr string) ErrorKind {
	if strings.Contains(stderr, "Requested format is not available") {
		return ErrKindFormatRejected
	}
	return ErrKindUnknown
}
