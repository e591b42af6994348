package discovery_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidfults/vidmap/internal/discovery"
)

func parsePage(t *testing.T, page string) *goquery.Selection {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc.Selection
}

const videoPage = `<!DOCTYPE html>
<html>
<head>
<title>Fallback title</title>
<meta property="og:title" content="Grilling steaks for summer"/>
<meta property="og:description" content="Alkis shows you how to get <b>perfectly</b> done steaks"/>
<meta property="og:image" content="http://example.com/thumbs/1.jpg"/>
<meta property="og:video:url" content="http://example.com/videos/1.mp4"/>
<meta property="og:video:type" content="video/mp4"/>
<meta property="og:video:duration" content="600"/>
<meta property="og:video:tag" content="steak"/>
<meta property="og:video:tag" content="grilling"/>
<meta property="article:published_time" content="2024-07-16T19:20:30+01:00"/>
</head>
<body><p>Watch the video</p></body>
</html>`

func TestEntryFromDocument_VideoPage(t *testing.T) {
	entry := discovery.EntryFromDocument("http://example.com/watch/1", parsePage(t, videoPage))

	require.NotNil(t, entry)
	assert.Equal(t, "http://example.com/watch/1", entry.Loc)
	require.NotNil(t, entry.Video)

	require.NotNil(t, entry.Video.ContentLoc)
	assert.Equal(t, "http://example.com/videos/1.mp4", *entry.Video.ContentLoc)
	assert.Nil(t, entry.Video.PlayerLoc, "video/mp4 is a media file, not a player page")

	require.NotNil(t, entry.Video.Title)
	assert.Equal(t, "Grilling steaks for summer", *entry.Video.Title)

	require.NotNil(t, entry.Video.Description)
	assert.Equal(t, "Alkis shows you how to get perfectly done steaks", *entry.Video.Description,
		"markup is stripped from descriptions")

	require.NotNil(t, entry.Video.ThumbnailLoc)
	assert.Equal(t, "http://example.com/thumbs/1.jpg", *entry.Video.ThumbnailLoc)

	require.NotNil(t, entry.Video.Duration)
	assert.Equal(t, 600, *entry.Video.Duration)

	assert.Equal(t, []string{"steak", "grilling"}, entry.Video.Tags)

	require.NotNil(t, entry.Video.PublicationDate)
	assert.Equal(t, 2024, entry.Video.PublicationDate.Year())

	assert.Nil(t, entry.Video.FamilyFriendly, "no rating meta means no explicit flag")
}

func TestEntryFromDocument_PlayerPage(t *testing.T) {
	page := `<html><head>
<meta property="og:video:url" content="http://example.com/embed/1"/>
<meta property="og:video:type" content="text/html"/>
</head><body></body></html>`

	entry := discovery.EntryFromDocument("http://example.com/watch/1", parsePage(t, page))

	require.NotNil(t, entry.Video)
	require.NotNil(t, entry.Video.PlayerLoc)
	assert.Equal(t, "http://example.com/embed/1", *entry.Video.PlayerLoc)
	assert.Nil(t, entry.Video.ContentLoc)
}

func TestEntryFromDocument_SecureURLPreferred(t *testing.T) {
	page := `<html><head>
<meta property="og:video:secure_url" content="https://example.com/videos/1.mp4"/>
<meta property="og:video:url" content="http://example.com/videos/1.mp4"/>
</head><body></body></html>`

	entry := discovery.EntryFromDocument("http://example.com/watch/1", parsePage(t, page))

	require.NotNil(t, entry.Video)
	require.NotNil(t, entry.Video.ContentLoc)
	assert.Equal(t, "https://example.com/videos/1.mp4", *entry.Video.ContentLoc)
}

func TestEntryFromDocument_PlainPage(t *testing.T) {
	page := `<html><head>
<title>About us</title>
<meta name="description" content="Company history"/>
</head><body></body></html>`

	entry := discovery.EntryFromDocument("http://example.com/about", parsePage(t, page))

	require.NotNil(t, entry)
	assert.Equal(t, "http://example.com/about", entry.Loc)
	assert.Nil(t, entry.Video, "pages without og:video stay plain entries")
	assert.Nil(t, entry.LastMod)
}

func TestEntryFromDocument_AdultRating(t *testing.T) {
	page := `<html><head>
<meta property="og:video:url" content="http://example.com/videos/9.mp4"/>
<meta name="rating" content="adult"/>
</head><body></body></html>`

	entry := discovery.EntryFromDocument("http://example.com/watch/9", parsePage(t, page))

	require.NotNil(t, entry.Video)
	require.NotNil(t, entry.Video.FamilyFriendly)
	assert.False(t, *entry.Video.FamilyFriendly)
}

func TestEntryFromDocument_LastModFromMeta(t *testing.T) {
	page := `<html><head>
<meta property="article:modified_time" content="2024-08-01T12:00:00+00:00"/>
</head><body></body></html>`

	entry := discovery.EntryFromDocument("http://example.com/page", parsePage(t, page))

	require.NotNil(t, entry.LastMod)
	assert.Equal(t, 2024, entry.LastMod.Year())
	assert.Equal(t, 8, int(entry.LastMod.Month()))
}
