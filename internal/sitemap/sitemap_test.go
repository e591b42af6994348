package sitemap_test

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidfults/vidmap/internal/sitemap"
)

func TestURL_ElementWithoutVideo(t *testing.T) {
	u := &sitemap.URL{
		Loc:        "http://example.com/page",
		LastMod:    time.Date(2024, 7, 16, 10, 0, 0, 0, time.UTC),
		ChangeFreq: "weekly",
		Priority:   "0.8",
	}

	want := "<url><loc>http://example.com/page</loc><lastmod>2024-07-16</lastmod>" +
		"<changefreq>weekly</changefreq><priority>0.8</priority></url>"
	assert.Equal(t, want, u.Element().String())
	assert.NotContains(t, u.Element().String(), "video:video")
}

func TestURL_NoEmptyVideoContainer(t *testing.T) {
	u := &sitemap.URL{Loc: "http://example.com/page"}
	v := u.EnsureVideo()
	v.SetTitle("Video-less page")

	assert.False(t, u.HasVideo())
	assert.NotContains(t, u.Element().String(), "video:video",
		"metadata without content_loc or player_loc must not emit a container")
}

func TestURL_VideoContainerIsLastChild(t *testing.T) {
	u := &sitemap.URL{
		Loc:      "http://example.com/watch/1",
		Priority: "0.5",
	}
	v := u.EnsureVideo()
	require.NoError(t, v.SetContentLoc("http://example.com/video.flv"))

	rendered := u.Element().String()
	assert.True(t, strings.HasSuffix(rendered, "</video:video></url>"),
		"video container must be the last child, got %s", rendered)
	assert.Equal(t, 1, strings.Count(rendered, "<video:video>"), "exactly one container")
}

func TestURL_BaseRenderingUnchangedByVideo(t *testing.T) {
	plain := &sitemap.URL{Loc: "http://example.com/watch/1", Priority: "0.5"}
	withVideo := &sitemap.URL{Loc: "http://example.com/watch/1", Priority: "0.5"}
	require.NoError(t, withVideo.EnsureVideo().SetContentLoc("http://example.com/video.flv"))

	rendered := withVideo.Element().String()
	idx := strings.Index(rendered, "<video:video>")
	require.True(t, idx > 0)
	assert.Equal(t, plain.Element().String(), rendered[:idx]+"</url>",
		"base element renders exactly as it would without video")
}

func TestSitemap_Document(t *testing.T) {
	sm := sitemap.New()
	sm.Add(&sitemap.URL{Loc: "http://example.com/a"})

	u := &sitemap.URL{Loc: "http://example.com/watch/1"}
	require.NoError(t, u.EnsureVideo().SetPlayerLoc("http://example.com/player.swf"))
	sm.Add(u)

	require.Equal(t, 2, sm.Len())

	var buf bytes.Buffer
	n, err := sm.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	assert.Contains(t, out, `xmlns:video="http://www.google.com/schemas/sitemap-video/1.1"`)
	assert.Contains(t, out, "<loc>http://example.com/a</loc>")
	assert.Contains(t, out, "<video:player_loc>http://example.com/player.swf</video:player_loc>")

	// Entry order is preserved
	assert.Less(t, strings.Index(out, "example.com/a"), strings.Index(out, "example.com/watch/1"))
}

func TestSitemap_NoVideoNamespaceWithoutVideo(t *testing.T) {
	sm := sitemap.New()
	sm.Add(&sitemap.URL{Loc: "http://example.com/a"})

	assert.NotContains(t, sm.String(), "xmlns:video")
}

func TestSitemap_WriteFile(t *testing.T) {
	sm := sitemap.New()
	sm.Add(&sitemap.URL{Loc: "http://example.com/a"})

	path := t.TempDir() + "/sitemap.xml"
	require.NoError(t, sm.WriteFile(path))

	var buf bytes.Buffer
	_, err := sm.WriteTo(&buf)
	require.NoError(t, err)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(written))
}
