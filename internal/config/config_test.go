package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "onthisday/internal/errors"
)

func completeSource() MapSource {
	return MapSource{
		KeyServerAddress: "https://cloud.example.com/",
		KeyUsername:      "alice",
		KeyPassword:      "secret",
		KeyTargetPath:    "/Photos/Camera/",
	}
}

func TestResolveNormalizesSlashes(t *testing.T) {
	cfg, err := Resolve(completeSource())
	require.NoError(t, err)
	assert.Equal(t, "https://cloud.example.com", cfg.BaseAddress)
	assert.Equal(t, "Photos/Camera", cfg.TargetPath)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.False(t, cfg.ImagesOnly)
}

func TestResolveReportsAllMissingKeys(t *testing.T) {
	src := MapSource{KeyServerAddress: "https://cloud.example.com", KeyPassword: "   "}
	_, err := Resolve(src)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ConfigurationIncomplete))
	assert.Contains(t, err.Error(), "username")
	assert.Contains(t, err.Error(), "password")
	assert.Contains(t, err.Error(), "targetPath")
	assert.NotContains(t, err.Error(), "serverAddress")
}

func TestResolveServerDoesNotNeedTarget(t *testing.T) {
	src := completeSource()
	delete(src, KeyTargetPath)
	cfg, err := ResolveServer(src)
	require.NoError(t, err)
	assert.Empty(t, cfg.TargetPath)

	_, err = Resolve(src)
	assert.True(t, appErrors.Is(err, appErrors.ConfigurationIncomplete))
}

func TestResolveTargetOfOnlySlashesIsMissing(t *testing.T) {
	src := completeSource()
	src[KeyTargetPath] = "//"
	_, err := Resolve(src)
	assert.True(t, appErrors.Is(err, appErrors.ConfigurationIncomplete))
}

func TestResolveOptionalKeys(t *testing.T) {
	src := completeSource()
	src[KeyTimeout] = "5s"
	src[KeyImagesOnly] = "true"
	cfg, err := Resolve(src)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.ImagesOnly)

	src[KeyTimeout] = "soon"
	_, err = Resolve(src)
	assert.Error(t, err)
}

func TestResolveNilSource(t *testing.T) {
	_, err := Resolve(nil)
	assert.True(t, appErrors.Is(err, appErrors.ConfigurationIncomplete))
}

func TestCollectionURL(t *testing.T) {
	cases := []struct {
		name string
		cfg  ServerConfig
		want string
	}{
		{"root", ServerConfig{BaseAddress: "https://cloud.example.com/", Username: "alice"}, "https://cloud.example.com/remote.php/dav/files/alice/"},
		{"target", ServerConfig{BaseAddress: "https://cloud.example.com", Username: "alice", TargetPath: "/Photos/"}, "https://cloud.example.com/remote.php/dav/files/alice/Photos/"},
		{"sub path", ServerConfig{BaseAddress: "http://nas.local:8080/nextcloud", Username: "bob", TargetPath: "Family Pics"}, "http://nas.local:8080/nextcloud/remote.php/dav/files/bob/Family%20Pics/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := tc.cfg.CollectionURL()
			require.NoError(t, err)
			assert.Equal(t, tc.want, u.String())
		})
	}
}

func TestCollectionURLRejectsMalformedBase(t *testing.T) {
	for _, base := range []string{"cloud.example.com", "ftp://cloud.example.com", "https://", "http://[::1"} {
		_, err := ServerConfig{BaseAddress: base, Username: "alice"}.CollectionURL()
		assert.True(t, appErrors.Is(err, appErrors.InvalidURL), base)
	}
}

func TestFilesRoot(t *testing.T) {
	cfg := ServerConfig{BaseAddress: "https://cloud.example.com/nc/", Username: "alice"}
	assert.Equal(t, "/nc/remote.php/dav/files/alice/", cfg.FilesRoot())
}

func TestViperSourceReadsConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "onthisday.yaml")
	content := "serverAddress: https://cloud.example.com\nusername: alice\npassword: from-file\ntargetPath: Photos\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	t.Setenv("ONTHISDAY_PASSWORD", "from-env")

	v := NewViper()
	require.NoError(t, Load(v, file))

	cfg, err := Resolve(ViperSource{V: v})
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.Username)
	assert.Equal(t, "from-env", cfg.Password)
	assert.Equal(t, "Photos", cfg.TargetPath)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	err := Load(NewViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
