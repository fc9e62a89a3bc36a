package siteconf

import (
	"net/url"
	"path"
	"strings"
	"time"
)

// Language returns the value for the <html lang> attribute.
func (c SiteConfig) Language() string {
	if c.Lang == "" {
		return DefaultLang
	}
	return c.Lang
}

// Location returns the configured time zone. A validated config always has a
// loadable zone; UTC is returned otherwise.
func (c SiteConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil || c.Timezone == "" {
		return time.UTC
	}
	return loc
}

// ScheduledMargin returns ScheduledPostMargin as a duration.
func (c SiteConfig) ScheduledMargin() time.Duration {
	return time.Duration(c.ScheduledPostMargin) * time.Millisecond
}

// IsPublished reports whether a post dated pubDate is visible at now.
// Posts dated up to ScheduledMargin in the future already count as published.
func (c SiteConfig) IsPublished(pubDate, now time.Time) bool {
	return now.After(pubDate.Add(-c.ScheduledMargin()))
}

// FormatDate formats t in the site's time zone.
func (c SiteConfig) FormatDate(t time.Time, layout string) string {
	return t.In(c.Location()).Format(layout)
}

// PageCount returns the number of listing pages needed for total posts.
// An empty listing still has one page.
func (c SiteConfig) PageCount(total int) int {
	if total <= 0 || c.PostPerPage <= 0 {
		return 1
	}
	return (total + c.PostPerPage - 1) / c.PostPerPage
}

// PageBounds returns the [start, end) slice bounds for the 1-based page.
// Pages out of range yield an empty range.
func (c SiteConfig) PageBounds(page, total int) (start, end int) {
	if page < 1 || c.PostPerPage <= 0 {
		return 0, 0
	}
	total = max(total, 0)
	if page-1 > (total-1)/c.PostPerPage {
		return total, total
	}
	start = (page - 1) * c.PostPerPage
	if start >= total {
		return total, total
	}
	return start, min(start+c.PostPerPage, total)
}

// IndexCount returns how many of total posts the home page shows.
func (c SiteConfig) IndexCount(total int) int {
	return max(0, min(total, c.PostPerIndex))
}

// CanonicalURL joins path segments onto Website, ensuring a trailing slash.
func (c SiteConfig) CanonicalURL(segments ...string) string {
	return BuildURL(c.Website, segments...)
}

// OGImageURL returns the absolute URL of the default social-preview image.
func (c SiteConfig) OGImageURL() string {
	u, err := url.Parse(c.Website)
	if err != nil {
		return c.Website + assetName(c.OGImage)
	}
	u.Path = path.Join(u.Path, assetName(c.OGImage))
	return u.String()
}

// EditLink returns the edit-post settings and whether the link is shown.
func (c SiteConfig) EditLink() (EditPost, bool) {
	if !c.EditPost.Enabled {
		return EditPost{}, false
	}
	return c.EditPost, true
}

// EditURL returns the edit link for the post source at postPath, or "" when
// the link is disabled. The configured URL is treated as a prefix.
func (c SiteConfig) EditURL(postPath string) string {
	ep, ok := c.EditLink()
	if !ok {
		return ""
	}
	postPath = strings.TrimPrefix(postPath, "/")
	if strings.HasSuffix(ep.URL, "/") {
		return ep.URL + postPath
	}
	return ep.URL + "/" + postPath
}

// Audio returns the intro-audio settings and whether the player is shown.
func (c SiteConfig) Audio() (IntroAudio, bool) {
	if !c.IntroAudio.Enabled {
		return IntroAudio{}, false
	}
	return c.IntroAudio, true
}

// AudioDuration returns the intro-audio length.
func (a IntroAudio) AudioDuration() time.Duration {
	return time.Duration(a.Duration) * time.Second
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}
