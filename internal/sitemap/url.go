package sitemap

import "time"

// lastModLayout is the W3C date form the sitemap protocol accepts for
// lastmod.
const lastModLayout = "2006-01-02"

// URL is a single url entry in the sitemap, optionally annotated with
// video metadata. A URL owns its VideoAttributes; entries are plain
// values and are not safe for concurrent mutation.
type URL struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq string
	Priority   string
	Video      *VideoAttributes
}

// HasVideo reports whether this entry will emit a video annotation.
func (u *URL) HasVideo() bool {
	return u.Video != nil && u.Video.HasVideo()
}

// EnsureVideo returns the entry's VideoAttributes, creating them on first
// use.
func (u *URL) EnsureVideo() *VideoAttributes {
	if u.Video == nil {
		u.Video = &VideoAttributes{}
	}
	return u.Video
}

// Element renders the url element. The base entry renders exactly as it
// would without video data; when the entry has video content a single
// video:video container holding the rendered video fields is appended as
// the last child. No empty container is ever emitted.
func (u *URL) Element() *Node {
	el := Element("url", Element("loc", Text(u.Loc)))
	if !u.LastMod.IsZero() {
		el.Append(Element("lastmod", Text(u.LastMod.Format(lastModLayout))))
	}
	if u.ChangeFreq != "" {
		el.Append(Element("changefreq", Text(u.ChangeFreq)))
	}
	if u.Priority != "" {
		el.Append(Element("priority", Text(u.Priority)))
	}
	if u.HasVideo() {
		video := Element("video:video")
		video.Append(u.Video.Nodes()...)
		el.Append(video)
	}
	return el
}
