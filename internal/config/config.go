package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	appErrors "onthisday/internal/errors"
)

const (
	KeyServerAddress = "serverAddress"
	KeyUsername      = "username"
	KeyPassword      = "password"
	KeyTargetPath    = "targetPath"
	KeyTimeout       = "timeout"
	KeyImagesOnly    = "imagesOnly"
)

const DefaultTimeout = 30 * time.Second

// ServerConfig is everything needed to reach one user's files on a
// Nextcloud/ownCloud style WebDAV server.
type ServerConfig struct {
	BaseAddress string
	Username    string
	Password    string
	TargetPath  string
	Timeout     time.Duration
	ImagesOnly  bool
}

// Source is a read-only key-value store, e.g. flags, env or a config file.
type Source interface {
	Lookup(key string) (string, bool)
}

type MapSource map[string]string

func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Resolve reads a complete configuration for photo discovery.
func Resolve(src Source) (ServerConfig, error) {
	return resolve(src, true)
}

// ResolveServer is Resolve without the target path requirement, for
// listing folders at the root of the user's files.
func ResolveServer(src Source) (ServerConfig, error) {
	return resolve(src, false)
}

func resolve(src Source, requireTarget bool) (ServerConfig, error) {
	cfg := ServerConfig{
		BaseAddress: lookup(src, KeyServerAddress),
		Username:    lookup(src, KeyUsername),
		Password:    lookup(src, KeyPassword),
		TargetPath:  lookup(src, KeyTargetPath),
		Timeout:     DefaultTimeout,
	}

	if raw := lookup(src, KeyTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return ServerConfig{}, appErrors.Wrap(appErrors.ConfigurationIncomplete, "config", KeyTimeout, fmt.Errorf("invalid timeout %q", raw))
		}
		cfg.Timeout = d
	}
	if raw := lookup(src, KeyImagesOnly); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, appErrors.Wrap(appErrors.ConfigurationIncomplete, "config", KeyImagesOnly, fmt.Errorf("invalid boolean %q", raw))
		}
		cfg.ImagesOnly = b
	}

	if err := cfg.Validate(requireTarget); err != nil {
		return ServerConfig{}, err
	}
	return cfg.Normalized(), nil
}

func lookup(src Source, key string) string {
	if src == nil {
		return ""
	}
	v, ok := src.Lookup(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// Validate reports every blank required field at once.
func (c ServerConfig) Validate(requireTarget bool) error {
	var missing []string
	if strings.TrimSpace(c.BaseAddress) == "" {
		missing = append(missing, KeyServerAddress)
	}
	if strings.TrimSpace(c.Username) == "" {
		missing = append(missing, KeyUsername)
	}
	if strings.TrimSpace(c.Password) == "" {
		missing = append(missing, KeyPassword)
	}
	if requireTarget && strings.Trim(strings.TrimSpace(c.TargetPath), "/") == "" {
		missing = append(missing, KeyTargetPath)
	}
	if len(missing) == 0 {
		return nil
	}
	return appErrors.Wrap(appErrors.ConfigurationIncomplete, "config", "", errors.New("missing "+strings.Join(missing, ", ")))
}

// Normalized strips the slashes that would otherwise double up when the
// request URL is composed.
func (c ServerConfig) Normalized() ServerConfig {
	c.BaseAddress = strings.TrimRight(strings.TrimSpace(c.BaseAddress), "/")
	c.Username = strings.TrimSpace(c.Username)
	c.TargetPath = strings.Trim(strings.TrimSpace(c.TargetPath), "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

const filesRoot = "/remote.php/dav/files/"

// CollectionURL composes {base}/remote.php/dav/files/{user}/{target}/.
func (c ServerConfig) CollectionURL() (*url.URL, error) {
	c = c.Normalized()
	base, err := url.Parse(c.BaseAddress)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.InvalidURL, "compose url", c.BaseAddress, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, appErrors.Wrap(appErrors.InvalidURL, "compose url", c.BaseAddress, errors.New("scheme must be http or https"))
	}
	if base.Host == "" {
		return nil, appErrors.Wrap(appErrors.InvalidURL, "compose url", c.BaseAddress, errors.New("missing host"))
	}

	p := c.filesRoot(base.Path)
	if c.TargetPath != "" {
		p += c.TargetPath + "/"
	}
	return &url.URL{Scheme: base.Scheme, Host: base.Host, Path: p}, nil
}

// FilesRoot is the decoded path of the user's files collection, with
// trailing slash. It is empty when the base address does not parse.
func (c ServerConfig) FilesRoot() string {
	c = c.Normalized()
	base, err := url.Parse(c.BaseAddress)
	if err != nil {
		return ""
	}
	return c.filesRoot(base.Path)
}

func (c ServerConfig) filesRoot(basePath string) string {
	return strings.TrimRight(basePath, "/") + filesRoot + c.Username + "/"
}
