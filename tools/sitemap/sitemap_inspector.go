package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"golang.org/x/net/html"
)

type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []URL    `xml:"url"`
}

type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
	Video      *Video `xml:"video,omitempty"`
}

type Video struct {
	PlayerLoc       string   `xml:"player_loc,omitempty"`
	ContentLoc      string   `xml:"content_loc,omitempty"`
	ThumbnailLoc    string   `xml:"thumbnail_loc,omitempty"`
	Title           string   `xml:"title,omitempty"`
	Description     string   `xml:"description,omitempty"`
	ExpirationDate  string   `xml:"expiration_date,omitempty"`
	PublicationDate string   `xml:"publication_date,omitempty"`
	Duration        string   `xml:"duration,omitempty"`
	ViewCount       string   `xml:"view_count,omitempty"`
	Rating          string   `xml:"rating,omitempty"`
	Tags            []string `xml:"tag,omitempty"`
	Categories      []string `xml:"category,omitempty"`
	FamilyFriendly  string   `xml:"family_friendly,omitempty"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: sitemap_inspector <sitemap path or URL>")
	}
	source := os.Args[1]

	sitemap, err := loadSitemap(source)
	if err != nil {
		log.Fatalf("Error loading sitemap: %v", err)
	}

	fmt.Printf("Total URLs found: %d\n", len(sitemap.URLs))

	var withVideo, withContentLoc, withPlayerLoc, withThumbnail int
	for _, u := range sitemap.URLs {
		if u.Video == nil {
			continue
		}
		withVideo++
		if u.Video.ContentLoc != "" {
			withContentLoc++
		}
		if u.Video.PlayerLoc != "" {
			withPlayerLoc++
		}
		if u.Video.ThumbnailLoc != "" {
			withThumbnail++
		}
		if u.Video.ContentLoc == "" && u.Video.PlayerLoc == "" {
			fmt.Printf("WARNING: %s has a video block but neither content_loc nor player_loc\n", u.Loc)
		}
	}

	fmt.Printf("URLs with video: %d\n", withVideo)
	fmt.Printf("  content_loc:   %d\n", withContentLoc)
	fmt.Printf("  player_loc:    %d\n", withPlayerLoc)
	fmt.Printf("  thumbnail_loc: %d\n", withThumbnail)

	// Spot-check that the first few video pages still carry their
	// OpenGraph markup.
	samplesToCheck := 3
	checked := 0
	for _, u := range sitemap.URLs {
		if u.Video == nil || checked >= samplesToCheck {
			continue
		}
		checked++
		fmt.Printf("\n=== Checking page %d/%d: %s ===\n", checked, samplesToCheck, u.Loc)

		doc, err := fetchAndParseHTML(u.Loc)
		if err != nil {
			log.Printf("Error fetching page: %v", err)
			continue
		}

		reportVideoMeta(doc)
	}
}

func reportVideoMeta(n *html.Node) {
	found := false
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			property := getAttr(n, "property")
			content := getAttr(n, "content")
			if strings.HasPrefix(property, "og:video") && content != "" {
				fmt.Printf("  %s = '%s'\n", property, content)
				found = true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)

	if !found {
		fmt.Println("  No og:video markup found on page")
	}
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func loadSitemap(source string) (*Sitemap, error) {
	var body []byte
	var err error

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
	} else {
		body, err = os.ReadFile(source)
		if err != nil {
			return nil, err
		}
	}

	var sitemap Sitemap
	if err := xml.Unmarshal(body, &sitemap); err != nil {
		return nil, err
	}

	return &sitemap, nil
}

func fetchAndParseHTML(url string) (*html.Node, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	return doc, nil
}
