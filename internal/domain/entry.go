package domain

import (
	"path"
	"strings"
)

// DavEntry is one response element of a multistatus listing.
type DavEntry struct {
	// Href is the value as sent by the server, still percent-encoded.
	Href string
	// Path is the decoded absolute path of Href.
	Path            string
	LastModifiedRaw string
	HasLastModified bool
	// ContentLength is -1 when the server did not report it.
	ContentLength int64
	IsCollection  bool
}

// Name is the last path segment, without trailing slash.
func (e DavEntry) Name() string {
	trimmed := strings.TrimSuffix(e.Path, "/")
	if trimmed == "" {
		return ""
	}
	return path.Base(trimmed)
}

// Listing keeps entries in document order.
type Listing []DavEntry

func (l Listing) Collections() Listing {
	var out Listing
	for _, e := range l {
		if e.IsCollection {
			out = append(out, e)
		}
	}
	return out
}

func (l Listing) Files() Listing {
	var out Listing
	for _, e := range l {
		if !e.IsCollection {
			out = append(out, e)
		}
	}
	return out
}
