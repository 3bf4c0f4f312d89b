package domain

import (
	"path"
	"strings"
	"time"
)

type Photo struct {
	URL          string
	Path         string
	Name         string
	Size         int64
	LastModified time.Time
}

func IsRawExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".arw", ".cr2", ".cr3", ".nef", ".raf", ".rw2", ".orf", ".dng":
		return true
	default:
		return false
	}
}

func IsJpegExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}

func IsImageExtension(ext string) bool {
	if IsRawExtension(ext) || IsJpegExtension(ext) {
		return true
	}
	switch strings.ToLower(ext) {
	case ".png", ".heic", ".heif", ".gif", ".webp", ".tif", ".tiff":
		return true
	default:
		return false
	}
}

func IsImageName(name string) bool {
	return IsImageExtension(path.Ext(name))
}
