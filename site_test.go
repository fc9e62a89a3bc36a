package siteconf

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguage(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "en", cfg.Language())
	cfg.Lang = ""
	assert.Equal(t, DefaultLang, cfg.Language())
	cfg.Lang = "hi"
	assert.Equal(t, "hi", cfg.Language())
}

func TestIsPublishedHonoursMargin(t *testing.T) {
	cfg := Default() // 15 minute margin
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		pubDate time.Time
		want    bool
	}{
		{"past", now.Add(-time.Hour), true},
		{"inside margin", now.Add(10 * time.Minute), true},
		{"at margin edge", now.Add(15 * time.Minute), false},
		{"beyond margin", now.Add(2 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.IsPublished(tt.pubDate, now))
		})
	}

	cfg.ScheduledPostMargin = 0
	assert.False(t, cfg.IsPublished(now.Add(time.Second), now))

	cfg.ScheduledPostMargin = maxMarginMillis
	require.NoError(t, Validate(cfg))
	assert.Positive(t, cfg.ScheduledMargin())
	assert.True(t, cfg.IsPublished(now.Add(time.Hour), now))
}

func TestScheduledMargin(t *testing.T) {
	assert.Equal(t, 15*time.Minute, Default().ScheduledMargin())
}

func TestFormatDateUsesTimezone(t *testing.T) {
	cfg := Default()
	ts := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-02 01:30", cfg.FormatDate(ts, "2006-01-02 15:04"))
	assert.Equal(t, "Asia/Kolkata", cfg.Location().String())
}

func TestPagination(t *testing.T) {
	cfg := Default()
	cfg.PostPerPage = 8

	assert.Equal(t, 1, cfg.PageCount(0))
	assert.Equal(t, 1, cfg.PageCount(8))
	assert.Equal(t, 2, cfg.PageCount(9))
	assert.Equal(t, 3, cfg.PageCount(17))

	start, end := cfg.PageBounds(2, 17)
	assert.Equal(t, []int{8, 16}, []int{start, end})
	start, end = cfg.PageBounds(3, 17)
	assert.Equal(t, []int{16, 17}, []int{start, end})
	start, end = cfg.PageBounds(4, 17)
	assert.Equal(t, start, end)
	start, end = cfg.PageBounds(0, 17)
	assert.Equal(t, []int{0, 0}, []int{start, end})
	start, end = cfg.PageBounds(1, 0)
	assert.Equal(t, []int{0, 0}, []int{start, end})

	for _, page := range []int{math.MaxInt, 1 << 62, math.MaxInt/8 + 2} {
		start, end = cfg.PageBounds(page, 30)
		assert.Equal(t, []int{30, 30}, []int{start, end}, "page %d", page)
	}

	assert.Equal(t, 6, cfg.IndexCount(20))
	assert.Equal(t, 3, cfg.IndexCount(3))
	assert.Equal(t, 0, cfg.IndexCount(-1))
}

func TestURLs(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "https://barinderpreet.com/", cfg.CanonicalURL())
	assert.Equal(t, "https://barinderpreet.com/posts/hello-world/", cfg.CanonicalURL("posts", "hello-world"))
	assert.Equal(t, "https://barinderpreet.com/devosfera-og.webp", cfg.OGImageURL())

	cfg.Website = "https://example.com/blog/"
	cfg.OGImage = "/img/og.png"
	assert.Equal(t, "https://example.com/blog/img/og.png", cfg.OGImageURL())
}

func TestEditLink(t *testing.T) {
	cfg := Default()
	_, ok := cfg.EditLink()
	assert.False(t, ok)
	assert.Empty(t, cfg.EditURL("src/data/blog/post.md"))

	cfg.EditPost = EditPost{Enabled: true, Text: "Edit", URL: "https://github.com/u/blog/edit/main"}
	ep, ok := cfg.EditLink()
	assert.True(t, ok)
	assert.Equal(t, "Edit", ep.Text)
	assert.Equal(t, "https://github.com/u/blog/edit/main/src/data/blog/post.md", cfg.EditURL("/src/data/blog/post.md"))

	cfg.EditPost.URL += "/"
	assert.Equal(t, "https://github.com/u/blog/edit/main/post.md", cfg.EditURL("post.md"))
}

func TestAudio(t *testing.T) {
	cfg := Default()
	_, ok := cfg.Audio()
	assert.False(t, ok)

	cfg.IntroAudio.Enabled = true
	a, ok := cfg.Audio()
	assert.True(t, ok)
	assert.Equal(t, "INTRO.MP3", a.Label)
	assert.Equal(t, 30*time.Second, a.AudioDuration())
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", nil, "https://example.com/"},
		{"https://example.com/", []string{"tags", "go"}, "https://example.com/tags/go/"},
		{"https://example.com/blog", []string{"archives"}, "https://example.com/blog/archives/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BuildURL(tt.base, tt.segments...))
	}
}
