package discovery

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/davidfults/vidmap/internal/models"
)

// maxDescriptionLen caps descriptions at the limit Google documents for
// video:description.
const maxDescriptionLen = 2048

// EntryFromDocument builds a sitemap entry for a crawled page. Pages
// without video markup still become plain entries; the video block is
// attached only when OpenGraph video metadata is present.
func EntryFromDocument(pageURL string, doc *goquery.Selection) *models.Entry {
	now := time.Now()
	entry := &models.Entry{
		ID:        uuid.New(),
		Loc:       pageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if t, ok := metaTime(doc, "article:modified_time"); ok {
		entry.LastMod = &t
	}

	videoLoc := firstMeta(doc, "og:video:secure_url", "og:video:url", "og:video")
	if videoLoc == "" {
		return entry
	}

	video := &models.VideoMeta{}

	// og:video:type text/html means the URL is a player page rather than
	// a raw media file.
	if strings.HasPrefix(metaContent(doc, "og:video:type"), "text/html") {
		video.PlayerLoc = &videoLoc
	} else {
		video.ContentLoc = &videoLoc
	}

	if thumb := metaContent(doc, "og:image"); thumb != "" {
		video.ThumbnailLoc = &thumb
	}

	title := metaContent(doc, "og:title")
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title != "" {
		video.Title = &title
	}

	desc := metaContent(doc, "og:description")
	if desc == "" {
		desc = namedMetaContent(doc, "description")
	}
	if desc != "" {
		desc = stripMarkup(desc)
		if len(desc) > maxDescriptionLen {
			desc = desc[:maxDescriptionLen]
		}
		video.Description = &desc
	}

	if raw := metaContent(doc, "og:video:duration"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds >= 0 {
			video.Duration = &seconds
		}
	}

	if t, ok := metaTime(doc, "article:published_time"); ok {
		video.PublicationDate = &t
	}

	var tags []string
	doc.Find("meta[property='og:video:tag']").Each(func(i int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			if tag := strings.TrimSpace(content); tag != "" {
				tags = append(tags, tag)
			}
		}
	})
	if len(tags) > 0 {
		video.Tags = tags
	}

	// RTA labelling marks adult content.
	if rating := namedMetaContent(doc, "rating"); rating != "" {
		if strings.EqualFold(rating, "adult") || strings.HasPrefix(rating, "RTA-") {
			notFriendly := false
			video.FamilyFriendly = &notFriendly
		}
	}

	entry.Video = video
	return entry
}

func metaContent(doc *goquery.Selection, property string) string {
	content, _ := doc.Find("meta[property='" + property + "']").First().Attr("content")
	return strings.TrimSpace(content)
}

func namedMetaContent(doc *goquery.Selection, name string) string {
	content, _ := doc.Find("meta[name='" + name + "']").First().Attr("content")
	return strings.TrimSpace(content)
}

func firstMeta(doc *goquery.Selection, properties ...string) string {
	for _, property := range properties {
		if content := metaContent(doc, property); content != "" {
			return content
		}
	}
	return ""
}

func metaTime(doc *goquery.Selection, property string) (time.Time, bool) {
	raw := metaContent(doc, property)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-0700", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// stripMarkup removes any HTML tags from text destined for element
// content, collapsing whitespace along the way.
func stripMarkup(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return strings.Join(strings.Fields(content), " ")
	}

	var buf bytes.Buffer
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(doc)

	return strings.Join(strings.Fields(buf.String()), " ")
}
