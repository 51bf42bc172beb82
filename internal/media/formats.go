// Package media classifies files by extension and content. It knows the
// audio, video and image families the built-in templates accept and decides
// whether a given file matches a template's accepted set.
package media

import (
	"strings"

	"github.com/samber/lo"
)

// Format families (lowercase, with leading dot).
var (
	AudioFormats = []string{".wav", ".mp3", ".m4a"}
	VideoFormats = []string{".mov", ".mp4", ".webm", ".mkv", ".m4v", ".mxf"}
	ImageFormats = []string{".jpg", ".jpeg", ".png", ".tga", ".tiff", ".tif", ".bmp", ".exr"}
)

// Family names a group of related extensions.
type Family string

const (
	FamilyAudio   Family = "audio"
	FamilyVideo   Family = "video"
	FamilyImage   Family = "image"
	FamilyUnknown Family = "unknown"
)

// Families returns the extension lists for each named family. Used when
// expanding family names in template catalogue files.
func Families() map[Family][]string {
	return map[Family][]string{
		FamilyAudio: AudioFormats,
		FamilyVideo: VideoFormats,
		FamilyImage: ImageFormats,
	}
}

// IsAudio reports whether ext belongs to the audio family.
func IsAudio(ext string) bool { return lo.Contains(AudioFormats, strings.ToLower(ext)) }

// IsVideo reports whether ext belongs to the video family.
func IsVideo(ext string) bool { return lo.Contains(VideoFormats, strings.ToLower(ext)) }

// IsImage reports whether ext belongs to the image family.
func IsImage(ext string) bool { return lo.Contains(ImageFormats, strings.ToLower(ext)) }

// FamilyOf returns the family ext belongs to, or FamilyUnknown.
func FamilyOf(ext string) Family {
	switch {
	case IsAudio(ext):
		return FamilyAudio
	case IsVideo(ext):
		return FamilyVideo
	case IsImage(ext):
		return FamilyImage
	default:
		return FamilyUnknown
	}
}
