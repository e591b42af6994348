package sitemap

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"
)

// timestampLayout is ISO-8601 with a numeric UTC offset, e.g.
// 2024-05-01T09:30:00+0000. Google's video sitemap schema does not accept
// the literal Z form or fractional seconds.
const timestampLayout = "2006-01-02T15:04:05-0700"

// transformFunc turns a stored field value into its rendered form. The
// result may be a plain scalar, a string list, or a pre-built *Node.
// Returning false drops the field from the output entirely.
type transformFunc func(value interface{}) (interface{}, bool)

// transforms maps field names to custom rendering rules. Fields without an
// entry go through the default rule: the stored value becomes the text
// content of the element, escaped by the XML layer.
var transforms = map[string]transformFunc{
	FieldPlayerLoc:       transformLocation,
	FieldContentLoc:      transformLocation,
	FieldExpirationDate:  transformTimestamp,
	FieldPublicationDate: transformTimestamp,
	FieldFamilyFriendly:  transformYesNo,
}

// transformLocation escapes the URL up front and marks the result as raw
// so the XML layer does not escape it a second time.
func transformLocation(value interface{}) (interface{}, bool) {
	loc, ok := value.(string)
	if !ok || loc == "" {
		return nil, false
	}
	var b strings.Builder
	xml.EscapeText(&b, []byte(loc)) // strings.Builder writes cannot fail
	return RawText(b.String()), true
}

func transformTimestamp(value interface{}) (interface{}, bool) {
	t, ok := value.(time.Time)
	if !ok || t.IsZero() {
		return nil, false
	}
	return t.Format(timestampLayout), true
}

func transformYesNo(value interface{}) (interface{}, bool) {
	ok, isBool := value.(bool)
	if !isBool {
		return nil, false
	}
	if ok {
		return "Yes", true
	}
	return "No", true
}

// scalarText renders a scalar under the default transformation rule.
func scalarText(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}
