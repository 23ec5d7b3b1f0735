package site

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/feeds"

	"github.com/sersergious/folio/internal/content"
)

// BuildFeed assembles the blog RSS feed from the published posts, which
// arrive newest first.
func BuildFeed(data *Data, now time.Time) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       data.Title,
		Link:        &feeds.Link{Href: data.BaseURL + "/blog"},
		Description: data.Description,
		Author:      &feeds.Author{Name: data.Author},
		Created:     now,
	}
	for _, post := range data.Posts {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       post.Title,
			Link:        &feeds.Link{Href: data.BaseURL + post.URL},
			Description: post.Description,
			Author:      &feeds.Author{Name: post.Author.Name},
			Created:     post.Time,
		})
	}
	return feed
}

func (b *Builder) writeFeed(data *Data) error {
	rss, err := BuildFeed(data, time.Now()).ToRss()
	if err != nil {
		return fmt.Errorf("building rss feed: %w", err)
	}
	out := filepath.Join(b.cfg.OutputDir, content.KindBlog.Dir(), "feed.xml")
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	return os.WriteFile(out, []byte(rss), 0o644)
}
