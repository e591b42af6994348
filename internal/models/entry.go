package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/davidfults/vidmap/internal/sitemap"
)

// Entry is a stored sitemap URL entry. Video is nil for pages without
// video content.
type Entry struct {
	ID         uuid.UUID  `json:"id"`
	Loc        string     `json:"loc"`
	LastMod    *time.Time `json:"lastmod,omitempty"`
	ChangeFreq string     `json:"changefreq,omitempty"`
	Priority   string     `json:"priority,omitempty"`
	Video      *VideoMeta `json:"video,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// VideoMeta is the persisted shape of a video annotation. Nil fields were
// never set, mirroring the presence tracking of sitemap.VideoAttributes.
type VideoMeta struct {
	PlayerLoc       *string    `json:"player_loc,omitempty"`
	ContentLoc      *string    `json:"content_loc,omitempty"`
	ThumbnailLoc    *string    `json:"thumbnail_loc,omitempty"`
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	ExpirationDate  *time.Time `json:"expiration_date,omitempty"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	Duration        *int       `json:"duration,omitempty"`
	ViewCount       *int       `json:"view_count,omitempty"`
	Rating          *float64   `json:"rating,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	Categories      []string   `json:"categories,omitempty"`
	FamilyFriendly  *bool      `json:"family_friendly,omitempty"`
}

// SitemapURL converts the entry into a renderable sitemap URL. Validation
// errors from the video setters are returned as-is so callers can report
// the offending field.
func (e *Entry) SitemapURL() (*sitemap.URL, error) {
	u := &sitemap.URL{
		Loc:        e.Loc,
		ChangeFreq: e.ChangeFreq,
		Priority:   e.Priority,
	}
	if e.LastMod != nil {
		u.LastMod = *e.LastMod
	}
	if e.Video != nil {
		if err := e.Video.Apply(u.EnsureVideo()); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// Apply copies the set fields onto a video attribute store.
func (m *VideoMeta) Apply(v *sitemap.VideoAttributes) error {
	if m.PlayerLoc != nil {
		if err := v.SetPlayerLoc(*m.PlayerLoc); err != nil {
			return err
		}
	}
	if m.ContentLoc != nil {
		if err := v.SetContentLoc(*m.ContentLoc); err != nil {
			return err
		}
	}
	if m.ThumbnailLoc != nil {
		if err := v.SetThumbnailLoc(*m.ThumbnailLoc); err != nil {
			return err
		}
	}
	if m.Title != nil {
		v.SetTitle(*m.Title)
	}
	if m.Description != nil {
		v.SetDescription(*m.Description)
	}
	if m.ExpirationDate != nil {
		v.SetExpirationDate(*m.ExpirationDate)
	}
	if m.PublicationDate != nil {
		v.SetPublicationDate(*m.PublicationDate)
	}
	if m.Duration != nil {
		if err := v.SetDuration(*m.Duration); err != nil {
			return err
		}
	}
	if m.ViewCount != nil {
		if err := v.SetViewCount(*m.ViewCount); err != nil {
			return err
		}
	}
	if m.Rating != nil {
		if err := v.SetRating(*m.Rating); err != nil {
			return err
		}
	}
	if m.Tags != nil {
		v.SetTags(m.Tags)
	}
	if m.Categories != nil {
		v.SetCategories(m.Categories)
	}
	if m.FamilyFriendly != nil {
		v.SetFamilyFriendly(*m.FamilyFriendly)
	}
	return nil
}
