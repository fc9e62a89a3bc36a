// Package siteconf holds the site-wide configuration for a personal blog:
// metadata, pagination, feature toggles, the edit-post link and the intro
// audio widget. A SiteConfig is loaded and validated once at startup and then
// handed by value to every collaborator that renders pages.
package siteconf

// Direction is the text direction written to the <html dir> attribute.
type Direction string

const (
	DirLTR  Direction = "ltr"
	DirRTL  Direction = "rtl"
	DirAuto Direction = "auto"
)

// Valid reports whether d is one of the supported directions.
func (d Direction) Valid() bool {
	switch d {
	case DirLTR, DirRTL, DirAuto:
		return true
	}
	return false
}

// DefaultLang is used when Lang is left empty.
const DefaultLang = "en"

// SiteConfig holds all configuration for a blog site.
type SiteConfig struct {
	Website string `yaml:"website" json:"website" env:"SITE_WEBSITE"` // Canonical origin, with trailing slash
	Author  string `yaml:"author" json:"author" env:"SITE_AUTHOR"`
	Profile string `yaml:"profile" json:"profile" env:"SITE_PROFILE_URL"` // Author profile link
	Desc    string `yaml:"desc" json:"desc" env:"SITE_DESC"`
	Title   string `yaml:"title" json:"title" env:"SITE_TITLE"`
	OGImage string `yaml:"ogImage" json:"ogImage" env:"SITE_OG_IMAGE"` // Relative to the static root

	LightAndDarkMode bool `yaml:"lightAndDarkMode" json:"lightAndDarkMode" env:"SITE_LIGHT_AND_DARK_MODE"`

	PostPerIndex        int   `yaml:"postPerIndex" json:"postPerIndex" env:"SITE_POST_PER_INDEX"`
	PostPerPage         int   `yaml:"postPerPage" json:"postPerPage" env:"SITE_POST_PER_PAGE"`
	ScheduledPostMargin int64 `yaml:"scheduledPostMargin" json:"scheduledPostMargin" env:"SITE_SCHEDULED_POST_MARGIN"` // Milliseconds

	ShowArchives   bool `yaml:"showArchives" json:"showArchives" env:"SITE_SHOW_ARCHIVES"`
	ShowGalleries  bool `yaml:"showGalleries" json:"showGalleries" env:"SITE_SHOW_GALLERIES"`
	ShowBackButton bool `yaml:"showBackButton" json:"showBackButton" env:"SITE_SHOW_BACK_BUTTON"`

	EditPost EditPost `yaml:"editPost" json:"editPost" envPrefix:"SITE_EDIT_POST_"`

	DynamicOGImage bool      `yaml:"dynamicOgImage" json:"dynamicOgImage" env:"SITE_DYNAMIC_OG_IMAGE"`
	Dir            Direction `yaml:"dir" json:"dir" env:"SITE_DIR"`
	Lang           string    `yaml:"lang" json:"lang" env:"SITE_LANG"`             // Empty means DefaultLang
	Timezone       string    `yaml:"timezone" json:"timezone" env:"SITE_TIMEZONE"` // IANA name

	IntroAudio IntroAudio `yaml:"introAudio" json:"introAudio" envPrefix:"SITE_INTRO_AUDIO_"`
}

// EditPost configures the "edit this post" link shown under each post.
type EditPost struct {
	Enabled bool   `yaml:"enabled" json:"enabled" env:"ENABLED"`
	Text    string `yaml:"text" json:"text" env:"TEXT"`
	URL     string `yaml:"url,omitempty" json:"url,omitempty" env:"URL"` // Required when enabled
}

// IntroAudio configures the audio player in the hero section.
type IntroAudio struct {
	Enabled  bool   `yaml:"enabled" json:"enabled" env:"ENABLED"`
	Src      string `yaml:"src" json:"src" env:"SRC"` // Path under the static root, e.g. "/audio/intro.mp3"
	Label    string `yaml:"label" json:"label" env:"LABEL"`
	Duration int    `yaml:"duration" json:"duration" env:"DURATION"` // Seconds
}

// Default returns the built-in site definition. Every call returns a fresh
// value, so callers may modify their copy before passing it to Validate.
func Default() SiteConfig {
	return SiteConfig{
		Website:             "https://barinderpreet.com/",
		Author:              "Barinderpreet Singh",
		Profile:             "https://github.com/knownasnaffy",
		Desc:                "A blog to share my thoughts and projects while I learn new things.",
		Title:               "Barinderpreet Singh",
		OGImage:             "devosfera-og.webp",
		LightAndDarkMode:    true,
		PostPerIndex:        6,
		PostPerPage:         12,
		ScheduledPostMargin: 15 * 60 * 1000,
		ShowArchives:        true,
		ShowGalleries:       true,
		ShowBackButton:      true,
		EditPost: EditPost{
			Enabled: false,
			Text:    "Edit this post",
		},
		DynamicOGImage: true,
		Dir:            DirLTR,
		Lang:           "en",
		Timezone:       "Asia/Kolkata",
		IntroAudio: IntroAudio{
			Enabled:  false,
			Src:      "/audio/intro-web.mp3",
			Label:    "INTRO.MP3",
			Duration: 30,
		},
	}
}
