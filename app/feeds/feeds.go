package feeds

import (
	"bytes"
	"encoding/xml"
	"strings"
	"time"

	"spacetraveling/app/models"
	"spacetraveling/config"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// RSS renders the posts as an RSS 2.0 feed.
func RSS(cnf *config.Config, posts []models.PostSummary) ([]byte, error) {
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		pubDate := ""
		if p.PublicationDate != nil {
			pubDate = p.PublicationDate.Format(time.RFC1123Z)
		}
		postURL := absoluteURL(cnf.SiteURL, p.Href())
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Subtitle,
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cnf.SiteName,
			Link:        cnf.SiteURL,
			Description: cnf.SiteDescription,
			Items:       items,
		},
	}
	return encode(feed)
}

// Sitemap renders the site URL set, the listing page first.
func Sitemap(cnf *config.Config, posts []models.PostSummary) ([]byte, error) {
	urls := []sitemapURL{
		{Loc: cnf.SiteURL},
	}
	for _, p := range posts {
		lastMod := ""
		if p.PublicationDate != nil {
			lastMod = p.PublicationDate.Format("2006-01-02")
		}
		urls = append(urls, sitemapURL{
			Loc:     absoluteURL(cnf.SiteURL, p.Href()),
			LastMod: lastMod,
		})
	}
	set := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	return encode(set)
}

func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func absoluteURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
