package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onthisday/internal/config"
	"onthisday/internal/domain"
)

func newTestClassifier(t *testing.T, base, target string) Classifier {
	t.Helper()
	c, err := NewClassifier(config.ServerConfig{BaseAddress: base, Username: "alice", Password: "x", TargetPath: target})
	require.NoError(t, err)
	return c
}

func TestFoldersExcludeContainerAtRoot(t *testing.T) {
	c := newTestClassifier(t, "https://cloud.example.com", "")
	listing := domain.Listing{
		{Path: "/files/alice/", IsCollection: true},
		{Path: "/files/alice/Photos/", IsCollection: true},
	}
	assert.Equal(t, []string{"Photos"}, c.Folders(listing))
}

func TestFoldersRelativeToFilesRoot(t *testing.T) {
	c := newTestClassifier(t, "https://cloud.example.com/nc", "Photos")
	listing := domain.Listing{
		{Path: "/nc/remote.php/dav/files/alice/Photos/", IsCollection: true},
		{Path: "/nc/remote.php/dav/files/alice/Photos/2019/", IsCollection: true},
		{Path: "/nc/remote.php/dav/files/alice/Photos/a.jpg"},
		{Path: "/nc/remote.php/dav/files/alice/Photos/Photos/", IsCollection: true},
	}
	assert.Equal(t, []string{"Photos/2019", "Photos/Photos"}, c.Folders(listing))
}

func TestFoldersEmptyListing(t *testing.T) {
	c := newTestClassifier(t, "https://cloud.example.com", "")
	folders := c.Folders(nil)
	assert.NotNil(t, folders)
	assert.Empty(t, folders)
}

func TestFilesExcludeContainerByPath(t *testing.T) {
	c := newTestClassifier(t, "https://cloud.example.com", "Photos")
	listing := domain.Listing{
		{Path: "/remote.php/dav/files/alice/Photos"},
		{Path: "/remote.php/dav/files/alice/Photos/a.jpg"},
		{Path: "/remote.php/dav/files/alice/Photos/sub/", IsCollection: true},
	}
	files := c.Files(listing)
	require.Len(t, files, 1)
	assert.Equal(t, "a.jpg", files[0].Name())
}

func TestResolveURL(t *testing.T) {
	c := newTestClassifier(t, "https://cloud.example.com/nc/", "Photos")

	entry := domain.DavEntry{Href: "/nc/remote.php/dav/files/alice/Photos/Summer%20Trip.jpg"}
	assert.Equal(t, "https://cloud.example.com/nc/remote.php/dav/files/alice/Photos/Summer%20Trip.jpg", c.ResolveURL(entry))

	abs := domain.DavEntry{Href: "https://cdn.example.com/x.jpg"}
	assert.Equal(t, "https://cdn.example.com/x.jpg", c.ResolveURL(abs))
}

func TestSamePath(t *testing.T) {
	assert.True(t, samePath("/a/b/", "/a/b"))
	assert.True(t, samePath("/files/alice", "/remote.php/dav/files/alice/"))
	assert.False(t, samePath("/a/b/c", "/a/b"))
	assert.False(t, samePath("/", "/a"))
	assert.False(t, samePath("/x/bob", "/x/alice/bob/bob"))
}
