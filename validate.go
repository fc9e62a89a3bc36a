package siteconf

import (
	"io/fs"
	"math"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Largest values whose time.Duration conversion does not overflow.
const (
	maxMarginMillis  = math.MaxInt64 / int64(time.Millisecond)
	maxAudioDuration = math.MaxInt64 / int64(time.Second)
)

// AssetChecker resolves paths against the static-asset root. It is
// implemented by assets.Root.
type AssetChecker interface {
	CheckFile(name string) error
	CheckImage(name string) error
}

// Validate checks every field invariant and returns the first violation as
// an *InvalidConfigError. Fields are checked in declaration order.
func Validate(c SiteConfig) error {
	if err := checkAbsoluteURL("website", c.Website); err != nil {
		return err
	}
	if !strings.HasSuffix(c.Website, "/") {
		return invalid("website", "must end with a trailing slash")
	}
	if err := checkRequired("author", c.Author); err != nil {
		return err
	}
	if err := checkAbsoluteURL("profile", c.Profile); err != nil {
		return err
	}
	if err := checkRequired("desc", c.Desc); err != nil {
		return err
	}
	if err := checkRequired("title", c.Title); err != nil {
		return err
	}
	if err := checkAssetPath("ogImage", c.OGImage); err != nil {
		return err
	}
	if c.PostPerIndex <= 0 {
		return invalid("postPerIndex", "must be a positive integer, got %d", c.PostPerIndex)
	}
	if c.PostPerPage <= 0 {
		return invalid("postPerPage", "must be a positive integer, got %d", c.PostPerPage)
	}
	if c.ScheduledPostMargin < 0 {
		return invalid("scheduledPostMargin", "must not be negative, got %d", c.ScheduledPostMargin)
	}
	if c.ScheduledPostMargin > maxMarginMillis {
		return invalid("scheduledPostMargin", "too large, at most %d ms", maxMarginMillis)
	}
	if c.EditPost.Enabled {
		if strings.TrimSpace(c.EditPost.URL) == "" {
			return invalid("editPost.url", "is required when editPost is enabled")
		}
		if err := checkAbsoluteURL("editPost.url", c.EditPost.URL); err != nil {
			return err
		}
	}
	if !c.Dir.Valid() {
		return invalid("dir", "must be one of ltr, rtl, auto, got %q", c.Dir)
	}
	if err := checkLang(c.Lang); err != nil {
		return err
	}
	if err := checkTimezone(c.Timezone); err != nil {
		return err
	}
	if c.IntroAudio.Enabled {
		if err := checkAssetPath("introAudio.src", c.IntroAudio.Src); err != nil {
			return err
		}
		if c.IntroAudio.Duration <= 0 {
			return invalid("introAudio.duration", "must be a positive number of seconds, got %d", c.IntroAudio.Duration)
		}
		if int64(c.IntroAudio.Duration) > maxAudioDuration {
			return invalid("introAudio.duration", "too large, at most %d seconds", maxAudioDuration)
		}
	}
	return nil
}

// CheckAssets verifies that the referenced static files exist under the
// checker's root. It assumes c already passed Validate.
func CheckAssets(c SiteConfig, assets AssetChecker) error {
	if err := assets.CheckImage(assetName(c.OGImage)); err != nil {
		return invalid("ogImage", "%v", err)
	}
	if c.IntroAudio.Enabled {
		if err := assets.CheckFile(assetName(c.IntroAudio.Src)); err != nil {
			return invalid("introAudio.src", "%v", err)
		}
	}
	return nil
}

func checkRequired(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return invalid(field, "is required")
	}
	return nil
}

func checkAbsoluteURL(field, raw string) error {
	if err := checkRequired(field, raw); err != nil {
		return err
	}
	u, err := url.Parse(raw)
	if err != nil {
		return invalid(field, "is not a valid URL: %v", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid(field, "must be an absolute http(s) URL, got %q", raw)
	}
	return nil
}

// assetName maps a config path ("/audio/a.mp3" or "og.webp") to an fs.FS name.
func assetName(p string) string {
	return strings.TrimPrefix(p, "/")
}

func checkAssetPath(field, p string) error {
	if err := checkRequired(field, p); err != nil {
		return err
	}
	if strings.Contains(p, "://") {
		return invalid(field, "must be a path under the static root, not a URL")
	}
	if !fs.ValidPath(assetName(p)) {
		return invalid(field, "must be a clean path under the static root, got %q", p)
	}
	return nil
}

func checkLang(lang string) error {
	if lang == "" {
		return nil
	}
	primary, _, _ := strings.Cut(lang, "-")
	if len(primary) != 2 {
		return invalid("lang", "must start with a two-letter ISO 639-1 code, got %q", lang)
	}
	if _, err := language.Parse(lang); err != nil {
		return invalid("lang", "%v", err)
	}
	return nil
}

func checkTimezone(tz string) error {
	if err := checkRequired("timezone", tz); err != nil {
		return err
	}
	if tz == "Local" {
		return invalid("timezone", "must be an IANA zone name, not Local")
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return invalid("timezone", "unknown IANA zone %q", tz)
	}
	return nil
}
