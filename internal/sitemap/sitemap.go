// Package sitemap renders sitemap.org urlset documents with Google's
// video extension.
package sitemap

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

	sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	videoNamespace   = "http://www.google.com/schemas/sitemap-video/1.1"
)

// Sitemap collects URL entries and renders the urlset document.
type Sitemap struct {
	urls []*URL
}

func New() *Sitemap {
	return &Sitemap{}
}

// Add appends a URL entry. Entry order is preserved in the output.
func (s *Sitemap) Add(u *URL) {
	s.urls = append(s.urls, u)
}

// Len returns the number of entries.
func (s *Sitemap) Len() int {
	return len(s.urls)
}

// Element renders the urlset element. The video namespace is declared
// only when some entry actually carries video content.
func (s *Sitemap) Element() *Node {
	urlset := Element("urlset")
	urlset.SetAttr("xmlns", sitemapNamespace)
	for _, u := range s.urls {
		if u.HasVideo() {
			urlset.SetAttr("xmlns:video", videoNamespace)
			break
		}
	}
	for _, u := range s.urls {
		urlset.Append(u.Element())
	}
	return urlset
}

// WriteTo renders the complete document, XML header included.
func (s *Sitemap) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	if err := s.Element().encode(&buf); err != nil {
		return 0, fmt.Errorf("error rendering sitemap: %w", err)
	}
	buf.WriteString("\n")
	return buf.WriteTo(w)
}

// WriteFile renders the document to a file.
func (s *Sitemap) WriteFile(path string) error {
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing sitemap to %s: %w", path, err)
	}
	return nil
}

// String renders the complete document.
func (s *Sitemap) String() string {
	var buf bytes.Buffer
	s.WriteTo(&buf)
	return buf.String()
}
