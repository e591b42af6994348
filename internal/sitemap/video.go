package sitemap

import (
	"fmt"
	"net/url"
	"time"
)

// Field names recognized by VideoAttributes. They double as the XML local
// names under the video namespace prefix.
const (
	FieldPlayerLoc       = "player_loc"
	FieldContentLoc      = "content_loc"
	FieldThumbnailLoc    = "thumbnail_loc"
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldExpirationDate  = "expiration_date"
	FieldPublicationDate = "publication_date"
	FieldDuration        = "duration"
	FieldViewCount       = "view_count"
	FieldRating          = "rating"
	FieldTag             = "tag"
	FieldCategory        = "category"
	FieldFamilyFriendly  = "family_friendly"
)

// DefaultFieldOrder is the element order Google documents for the video
// sitemap extension.
var DefaultFieldOrder = []string{
	FieldPlayerLoc,
	FieldContentLoc,
	FieldThumbnailLoc,
	FieldTitle,
	FieldDescription,
	FieldExpirationDate,
	FieldDuration,
	FieldRating,
	FieldViewCount,
	FieldPublicationDate,
	FieldTag,
	FieldCategory,
	FieldFamilyFriendly,
}

// VideoAttributes holds the optional video metadata for one sitemap URL.
// Every field tracks presence separately from its value: an unset field
// produces no element, while a field explicitly set to its zero value
// still renders. The zero VideoAttributes is ready to use.
type VideoAttributes struct {
	playerLoc       *string
	contentLoc      *string
	thumbnailLoc    *string
	title           *string
	description     *string
	expirationDate  *time.Time
	publicationDate *time.Time
	duration        *int
	viewCount       *int
	rating          *float64
	tags            []string
	categories      []string
	familyFriendly  *bool

	fieldOrder []string
}

func absoluteURL(field, loc string) error {
	u, err := url.Parse(loc)
	if err != nil {
		return fmt.Errorf("invalid value for field %s: %w", field, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("invalid value for field %s: %q is not an absolute URL", field, loc)
	}
	return nil
}

// SetPlayerLoc sets the URL of the player for the video. The URL must be
// absolute.
func (v *VideoAttributes) SetPlayerLoc(loc string) error {
	if err := absoluteURL(FieldPlayerLoc, loc); err != nil {
		return err
	}
	v.playerLoc = &loc
	return nil
}

// PlayerLoc returns the player URL and whether it has been set.
func (v *VideoAttributes) PlayerLoc() (string, bool) {
	if v.playerLoc == nil {
		return "", false
	}
	return *v.playerLoc, true
}

// SetContentLoc sets the URL of the raw video media file. The URL must be
// absolute.
func (v *VideoAttributes) SetContentLoc(loc string) error {
	if err := absoluteURL(FieldContentLoc, loc); err != nil {
		return err
	}
	v.contentLoc = &loc
	return nil
}

// ContentLoc returns the media file URL and whether it has been set.
func (v *VideoAttributes) ContentLoc() (string, bool) {
	if v.contentLoc == nil {
		return "", false
	}
	return *v.contentLoc, true
}

// SetThumbnailLoc sets the URL of the video thumbnail image. The URL must
// be absolute.
func (v *VideoAttributes) SetThumbnailLoc(loc string) error {
	if err := absoluteURL(FieldThumbnailLoc, loc); err != nil {
		return err
	}
	v.thumbnailLoc = &loc
	return nil
}

// ThumbnailLoc returns the thumbnail URL and whether it has been set.
func (v *VideoAttributes) ThumbnailLoc() (string, bool) {
	if v.thumbnailLoc == nil {
		return "", false
	}
	return *v.thumbnailLoc, true
}

// SetTitle sets the video title.
func (v *VideoAttributes) SetTitle(title string) {
	v.title = &title
}

// Title returns the title and whether it has been set.
func (v *VideoAttributes) Title() (string, bool) {
	if v.title == nil {
		return "", false
	}
	return *v.title, true
}

// SetDescription sets the video description.
func (v *VideoAttributes) SetDescription(desc string) {
	v.description = &desc
}

// Description returns the description and whether it has been set.
func (v *VideoAttributes) Description() (string, bool) {
	if v.description == nil {
		return "", false
	}
	return *v.description, true
}

// SetExpirationDate sets the date after which the video is no longer
// available.
func (v *VideoAttributes) SetExpirationDate(t time.Time) {
	v.expirationDate = &t
}

// ExpirationDate returns the expiration date and whether it has been set.
func (v *VideoAttributes) ExpirationDate() (time.Time, bool) {
	if v.expirationDate == nil {
		return time.Time{}, false
	}
	return *v.expirationDate, true
}

// SetPublicationDate sets the date the video was first published.
func (v *VideoAttributes) SetPublicationDate(t time.Time) {
	v.publicationDate = &t
}

// PublicationDate returns the publication date and whether it has been set.
func (v *VideoAttributes) PublicationDate() (time.Time, bool) {
	if v.publicationDate == nil {
		return time.Time{}, false
	}
	return *v.publicationDate, true
}

// SetDuration sets the video duration in seconds. Negative durations are
// rejected.
func (v *VideoAttributes) SetDuration(seconds int) error {
	if seconds < 0 {
		return fmt.Errorf("invalid value for field %s: duration %d is negative", FieldDuration, seconds)
	}
	v.duration = &seconds
	return nil
}

// Duration returns the duration in seconds and whether it has been set.
func (v *VideoAttributes) Duration() (int, bool) {
	if v.duration == nil {
		return 0, false
	}
	return *v.duration, true
}

// SetViewCount sets the number of times the video has been viewed.
func (v *VideoAttributes) SetViewCount(count int) error {
	if count < 0 {
		return fmt.Errorf("invalid value for field %s: view count %d is negative", FieldViewCount, count)
	}
	v.viewCount = &count
	return nil
}

// ViewCount returns the view count and whether it has been set.
func (v *VideoAttributes) ViewCount() (int, bool) {
	if v.viewCount == nil {
		return 0, false
	}
	return *v.viewCount, true
}

// SetRating sets the video rating. Ratings outside [0.0, 5.0] are
// rejected.
func (v *VideoAttributes) SetRating(rating float64) error {
	if rating < 0 || rating > 5 {
		return fmt.Errorf("invalid value for field %s: rating %v is outside [0.0, 5.0]", FieldRating, rating)
	}
	v.rating = &rating
	return nil
}

// Rating returns the rating and whether it has been set.
func (v *VideoAttributes) Rating() (float64, bool) {
	if v.rating == nil {
		return 0, false
	}
	return *v.rating, true
}

// SetTags replaces the tag list. An empty list still counts as set and
// simply renders no tag elements.
func (v *VideoAttributes) SetTags(tags []string) {
	v.tags = append([]string{}, tags...)
}

// AddTag appends one tag.
func (v *VideoAttributes) AddTag(tag string) {
	v.tags = append(v.tags, tag)
}

// Tags returns the tag list and whether it has been set.
func (v *VideoAttributes) Tags() ([]string, bool) {
	if v.tags == nil {
		return nil, false
	}
	return append([]string{}, v.tags...), true
}

// SetCategories replaces the category list.
func (v *VideoAttributes) SetCategories(categories []string) {
	v.categories = append([]string{}, categories...)
}

// AddCategory appends one category.
func (v *VideoAttributes) AddCategory(category string) {
	v.categories = append(v.categories, category)
}

// Categories returns the category list and whether it has been set.
func (v *VideoAttributes) Categories() ([]string, bool) {
	if v.categories == nil {
		return nil, false
	}
	return append([]string{}, v.categories...), true
}

// SetFamilyFriendly marks whether the video is safe to surface with
// SafeSearch on.
func (v *VideoAttributes) SetFamilyFriendly(ok bool) {
	v.familyFriendly = &ok
}

// FamilyFriendly reports the family-friendly flag. Unlike the other
// fields it always has a value, defaulting to true when never assigned.
func (v *VideoAttributes) FamilyFriendly() bool {
	if v.familyFriendly == nil {
		return true
	}
	return *v.familyFriendly
}

// SetFieldOrder replaces the element emission order. Names not known to
// the store are tolerated and render nothing.
func (v *VideoAttributes) SetFieldOrder(fields []string) {
	v.fieldOrder = append([]string{}, fields...)
}

// FieldOrder returns the effective emission order.
func (v *VideoAttributes) FieldOrder() []string {
	if v.fieldOrder == nil {
		return append([]string{}, DefaultFieldOrder...)
	}
	return append([]string{}, v.fieldOrder...)
}

// Has reports whether the named field was explicitly assigned. For
// family_friendly this reports explicit assignment even though the field
// always renders.
func (v *VideoAttributes) Has(field string) bool {
	switch field {
	case FieldPlayerLoc:
		return v.playerLoc != nil
	case FieldContentLoc:
		return v.contentLoc != nil
	case FieldThumbnailLoc:
		return v.thumbnailLoc != nil
	case FieldTitle:
		return v.title != nil
	case FieldDescription:
		return v.description != nil
	case FieldExpirationDate:
		return v.expirationDate != nil
	case FieldPublicationDate:
		return v.publicationDate != nil
	case FieldDuration:
		return v.duration != nil
	case FieldViewCount:
		return v.viewCount != nil
	case FieldRating:
		return v.rating != nil
	case FieldTag:
		return v.tags != nil
	case FieldCategory:
		return v.categories != nil
	case FieldFamilyFriendly:
		return v.familyFriendly != nil
	}
	return false
}

// Clear resets the named field to unset. Clearing family_friendly restores
// its default of true. Unknown names are ignored.
func (v *VideoAttributes) Clear(field string) {
	switch field {
	case FieldPlayerLoc:
		v.playerLoc = nil
	case FieldContentLoc:
		v.contentLoc = nil
	case FieldThumbnailLoc:
		v.thumbnailLoc = nil
	case FieldTitle:
		v.title = nil
	case FieldDescription:
		v.description = nil
	case FieldExpirationDate:
		v.expirationDate = nil
	case FieldPublicationDate:
		v.publicationDate = nil
	case FieldDuration:
		v.duration = nil
	case FieldViewCount:
		v.viewCount = nil
	case FieldRating:
		v.rating = nil
	case FieldTag:
		v.tags = nil
	case FieldCategory:
		v.categories = nil
	case FieldFamilyFriendly:
		v.familyFriendly = nil
	}
}

// HasVideo reports whether this URL advertises video content at all. The
// video sitemap schema requires at least one of content_loc or player_loc,
// so that pair is the sole gate for emitting the video fragment.
func (v *VideoAttributes) HasVideo() bool {
	return v.contentLoc != nil || v.playerLoc != nil
}

// value resolves the raw stored value for a field, reporting false when
// the field is unset or unknown. family_friendly always resolves, since
// it defaults rather than going absent.
func (v *VideoAttributes) value(field string) (interface{}, bool) {
	switch field {
	case FieldPlayerLoc:
		if v.playerLoc != nil {
			return *v.playerLoc, true
		}
	case FieldContentLoc:
		if v.contentLoc != nil {
			return *v.contentLoc, true
		}
	case FieldThumbnailLoc:
		if v.thumbnailLoc != nil {
			return *v.thumbnailLoc, true
		}
	case FieldTitle:
		if v.title != nil {
			return *v.title, true
		}
	case FieldDescription:
		if v.description != nil {
			return *v.description, true
		}
	case FieldExpirationDate:
		if v.expirationDate != nil {
			return *v.expirationDate, true
		}
	case FieldPublicationDate:
		if v.publicationDate != nil {
			return *v.publicationDate, true
		}
	case FieldDuration:
		if v.duration != nil {
			return *v.duration, true
		}
	case FieldViewCount:
		if v.viewCount != nil {
			return *v.viewCount, true
		}
	case FieldRating:
		if v.rating != nil {
			return *v.rating, true
		}
	case FieldTag:
		if v.tags != nil {
			return v.tags, true
		}
	case FieldCategory:
		if v.categories != nil {
			return v.categories, true
		}
	case FieldFamilyFriendly:
		return v.FamilyFriendly(), true
	}
	return nil, false
}

// Nodes renders the video child elements in field order. It is a pure
// projection of the current state: it never mutates the store and
// repeated calls yield identical output.
//
// Each configured field is skipped when unset, run through its custom
// transformation when the registry has one, normalized to a list (scalars
// become single-element lists, tag/category expand entry by entry), and
// every entry is wrapped in a video:<field> element.
func (v *VideoAttributes) Nodes() []*Node {
	var out []*Node
	for _, field := range v.FieldOrder() {
		val, ok := v.value(field)
		if !ok {
			continue
		}
		if custom, exists := transforms[field]; exists {
			val, ok = custom(val)
			if !ok {
				continue
			}
		}
		for _, entry := range normalizeList(val) {
			child, isNode := entry.(*Node)
			if !isNode {
				child = Text(scalarText(entry))
			}
			out = append(out, Element("video:"+field, child))
		}
	}
	return out
}

func normalizeList(val interface{}) []interface{} {
	if items, ok := val.([]string); ok {
		out := make([]interface{}, len(items))
		for i, item := range items {
			out[i] = item
		}
		return out
	}
	return []interface{}{val}
}
