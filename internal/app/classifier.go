package app

import (
	"net/url"
	"path"
	"strings"

	"onthisday/internal/config"
	"onthisday/internal/domain"
)

// Classifier tells the queried container apart from its children. A Depth: 1
// listing always contains the container itself, normally as the first
// entry; it is recognised by comparing paths, never by position.
type Classifier struct {
	// ContainerURL is the URL the PROPFIND was sent to.
	ContainerURL *url.URL
	// FilesRoot is the decoded path of the user's files collection.
	FilesRoot  string
	TargetPath string
}

func NewClassifier(cfg config.ServerConfig) (Classifier, error) {
	cfg = cfg.Normalized()
	u, err := cfg.CollectionURL()
	if err != nil {
		return Classifier{}, err
	}
	return Classifier{
		ContainerURL: u,
		FilesRoot:    cfg.FilesRoot(),
		TargetPath:   cfg.TargetPath,
	}, nil
}

func (c Classifier) IsSelf(entry domain.DavEntry) bool {
	return samePath(entry.Path, c.ContainerURL.Path)
}

// Folders returns child collections as paths relative to the files root,
// in listing order.
func (c Classifier) Folders(listing domain.Listing) []string {
	folders := []string{}
	for _, entry := range listing.Collections() {
		if c.IsSelf(entry) {
			continue
		}
		if name := c.relativeName(entry); name != "" {
			folders = append(folders, name)
		}
	}
	return folders
}

// Files returns the leaf entries, container excluded.
func (c Classifier) Files(listing domain.Listing) domain.Listing {
	var files domain.Listing
	for _, entry := range listing.Files() {
		if c.IsSelf(entry) {
			continue
		}
		files = append(files, entry)
	}
	return files
}

// ResolveURL turns an href into an absolute URL on the queried server.
func (c Classifier) ResolveURL(entry domain.DavEntry) string {
	ref, err := url.Parse(entry.Href)
	if err != nil {
		ref = &url.URL{Path: entry.Path}
	}
	return c.ContainerURL.ResolveReference(ref).String()
}

func (c Classifier) relativeName(entry domain.DavEntry) string {
	p := strings.TrimSuffix(entry.Path, "/") + "/"
	if c.FilesRoot != "" && strings.HasPrefix(p, c.FilesRoot) {
		return strings.Trim(strings.TrimPrefix(p, c.FilesRoot), "/")
	}
	name := entry.Name()
	if name == "" {
		return ""
	}
	return strings.Trim(path.Join(c.TargetPath, name), "/")
}

// samePath compares decoded paths ignoring trailing slashes. One path may
// also end with the other on a segment boundary, which covers servers
// behind a proxy that strips a mount prefix from hrefs.
func samePath(a, b string) bool {
	a = strings.TrimRight(a, "/")
	b = strings.TrimRight(b, "/")
	if a == b {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	return strings.HasSuffix(a, "/"+strings.TrimLeft(b, "/")) ||
		strings.HasSuffix(b, "/"+strings.TrimLeft(a, "/"))
}
