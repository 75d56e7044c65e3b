// Package filetype maps file names onto display categories and viewer mime
// types.
package filetype

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Category groups files for icon selection.
type Category int

const (
	Other Category = iota
	Image
	Audio
	Video
	PDF
	Document
	Archive
	Package
)

// Wildcard is returned by MimeType for unknown extensions.
const Wildcard = "*/*"

var categories = map[string]Category{
	"jpg": Image, "jpeg": Image, "png": Image, "gif": Image, "bmp": Image,
	"mp3": Audio, "wav": Audio, "ogg": Audio, "flac": Audio, "aac": Audio,
	"mp4": Video, "3gp": Video, "mkv": Video, "avi": Video, "mov": Video,
	"pdf": PDF,
	"doc": Document, "docx": Document, "txt": Document, "rtf": Document, "odt": Document,
	"zip": Archive, "rar": Archive, "7z": Archive, "tar": Archive, "gz": Archive,
	"apk": Package,
}

var mimeTypes = map[string]string{
	"txt":  "text/plain",
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"mp3":  "audio/mp3",
	"mp4":  "video/mp4",
	"doc":  "application/msword",
	"docx": "application/msword",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.ms-excel",
	"zip":  "application/zip",
}

// Extension returns the lowercased final extension of name without the dot,
// or "" when there is none.
func Extension(name string) string {
	ext := filepath.Ext(filepath.Base(name))
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}

// Classify returns the category for name based on its final extension.
func Classify(name string) Category {
	if c, ok := categories[Extension(name)]; ok {
		return c
	}
	return Other
}

// MimeType returns the mime type handed to an external viewer.
func MimeType(name string) string {
	if m, ok := mimeTypes[Extension(name)]; ok {
		return m
	}
	return Wildcard
}

// Detect sniffs the content of r and returns its mime type.
func Detect(r io.Reader) (string, error) {
	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", err
	}
	return mtype.String(), nil
}

func (c Category) String() string {
	switch c {
	case Image:
		return "image"
	case Audio:
		return "audio"
	case Video:
		return "video"
	case PDF:
		return "pdf"
	case Document:
		return "document"
	case Archive:
		return "archive"
	case Package:
		return "package"
	default:
		return "other"
	}
}

// Icon is the short tag the list view shows in place of an icon.
func (c Category) Icon() string {
	switch c {
	case Image:
		return "[img]"
	case Audio:
		return "[aud]"
	case Video:
		return "[vid]"
	case PDF:
		return "[pdf]"
	case Document:
		return "[doc]"
	case Archive:
		return "[arc]"
	case Package:
		return "[apk]"
	default:
		return "[   ]"
	}
}
