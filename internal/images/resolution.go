package images

import "fmt"

// Resolution names one of the stored renditions of an upload.
type Resolution string

const (
	ResolutionOriginal Resolution = "original"
	ResolutionTiny     Resolution = "tiny"
	ResolutionMedium   Resolution = "medium"
	ResolutionLarge    Resolution = "large"
)

// Profile describes how one rendition is derived: target width in pixels
// and JPEG quality. Heights follow the source aspect ratio.
type Profile struct {
	Resolution Resolution
	Width      int
	Quality    int
}

// Profiles lists the derived renditions produced for every upload, in the
// order they are generated.
var Profiles = []Profile{
	{Resolution: ResolutionTiny, Width: 150, Quality: 80},
	{Resolution: ResolutionMedium, Width: 600, Quality: 85},
	{Resolution: ResolutionLarge, Width: 1200, Quality: 90},
}

// Resolutions lists every addressable rendition, original included.
func Resolutions() []Resolution {
	return []Resolution{ResolutionOriginal, ResolutionTiny, ResolutionMedium, ResolutionLarge}
}

// ParseResolution maps a query string value onto a known rendition.
func ParseResolution(value string) (Resolution, bool) {
	switch Resolution(value) {
	case ResolutionOriginal, ResolutionTiny, ResolutionMedium, ResolutionLarge:
		return Resolution(value), true
	}
	return "", false
}

// ObjectKey is the storage key for one rendition of a stored file.
func ObjectKey(res Resolution, filename string) string {
	return fmt.Sprintf("%s/%s", res, filename)
}
