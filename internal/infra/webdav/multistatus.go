package webdav

import (
	"encoding/xml"
	"io"
	"net/url"
	"strconv"
	"strings"

	"onthisday/internal/domain"
	appErrors "onthisday/internal/errors"
)

const davNamespace = "DAV:"

// Element names are matched on their local part so that any prefix bound
// to DAV: (or none at all) is accepted.
type rawResponse struct {
	Href      *string       `xml:"href"`
	Propstats []rawPropstat `xml:"propstat"`
}

type rawPropstat struct {
	Status string  `xml:"status"`
	Prop   rawProp `xml:"prop"`
}

type rawProp struct {
	LastModified  *string          `xml:"getlastmodified"`
	ContentLength string           `xml:"getcontentlength"`
	ResourceType  *rawResourceType `xml:"resourcetype"`
}

type rawResourceType struct {
	Collection *struct{} `xml:"collection"`
}

// Parser plugs ParseString into the engine.
type Parser struct{}

func (Parser) Parse(body string) (domain.Listing, error) {
	return ParseString(body)
}

// ParseString parses a multistatus body. Blank input is an empty listing.
func ParseString(body string) (domain.Listing, error) {
	if strings.TrimSpace(body) == "" {
		return domain.Listing{}, nil
	}
	return ParseMultistatus(strings.NewReader(body))
}

// ParseMultistatus walks the document token by token and decodes every
// response element it meets, in document order. Responses without a
// usable href are skipped.
func ParseMultistatus(r io.Reader) (domain.Listing, error) {
	dec := xml.NewDecoder(r)
	listing := domain.Listing{}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return listing, nil
		}
		if err != nil {
			return nil, appErrors.Wrap(appErrors.ParseFailure, "parse multistatus", "", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "response" {
			continue
		}
		if start.Name.Space != davNamespace && start.Name.Space != "" {
			continue
		}

		var raw rawResponse
		if err := dec.DecodeElement(&raw, &start); err != nil {
			return nil, appErrors.Wrap(appErrors.ParseFailure, "parse multistatus", "", err)
		}
		if entry, ok := raw.toEntry(); ok {
			listing = append(listing, entry)
		}
	}
}

func (r rawResponse) toEntry() (domain.DavEntry, bool) {
	if r.Href == nil {
		return domain.DavEntry{}, false
	}
	href := strings.TrimSpace(*r.Href)
	if href == "" {
		return domain.DavEntry{}, false
	}
	decoded, ok := decodeHref(href)
	if !ok {
		return domain.DavEntry{}, false
	}

	entry := domain.DavEntry{
		Href:          href,
		Path:          decoded,
		ContentLength: -1,
	}
	for _, ps := range r.Propstats {
		if !statusOK(ps.Status) {
			continue
		}
		if lm := ps.Prop.LastModified; lm != nil && strings.TrimSpace(*lm) != "" {
			entry.LastModifiedRaw = strings.TrimSpace(*lm)
			entry.HasLastModified = true
		}
		if n, err := strconv.ParseInt(strings.TrimSpace(ps.Prop.ContentLength), 10, 64); err == nil {
			entry.ContentLength = n
		}
		if rt := ps.Prop.ResourceType; rt != nil && rt.Collection != nil {
			entry.IsCollection = true
		}
	}
	return entry, true
}

// decodeHref returns the percent-decoded path of an href, which may be a
// bare path or an absolute URL.
func decodeHref(href string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if u.Path == "" {
		return "", false
	}
	return u.Path, true
}

// statusOK accepts a missing status line and any 2xx one.
func statusOK(status string) bool {
	fields := strings.Fields(status)
	if len(fields) < 2 {
		return true
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return true
	}
	return code >= 200 && code <= 299
}
