package siteconf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMarshal(t *testing.T, c SiteConfig) []byte {
	t.Helper()
	data, err := Marshal(c)
	require.NoError(t, err)
	return data
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const siteYAML = `website: https://example.com/
author: Jane Doe
profile: https://github.com/janedoe
desc: Notes on things.
title: Jane's Notes
ogImage: og.png
lightAndDarkMode: true
postPerIndex: 4
postPerPage: 12
scheduledPostMargin: 900000
showArchives: true
showGalleries: false
showBackButton: true
editPost:
  enabled: false
  text: Edit this post
dynamicOgImage: true
dir: ltr
lang: en
timezone: Asia/Kolkata
introAudio:
  enabled: false
  src: /audio/intro-web.mp3
  label: INTRO.MP3
  duration: 30
profiles:
  staging:
    timezone: Europe/Berlin
    postPerPage: 8
    editPost:
      enabled: true
      url: https://github.com/janedoe/blog/edit/main/
  broken:
    postPerPage: 0
`

func TestLoadWithoutOptionsReturnsDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRoundTrip(t *testing.T) {
	want := Default()
	want.EditPost = EditPost{Enabled: true, Text: "Suggest changes", URL: "https://github.com/knownasnaffy/blog/edit/main/"}
	want.IntroAudio.Enabled = true
	want.Dir = DirRTL
	want.Lang = "ar"

	got, err := Parse(mustMarshal(t, want))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load(WithFile(writeConfig(t, siteYAML)))
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/", cfg.Website)
	assert.Equal(t, "Jane Doe", cfg.Author)
	assert.Equal(t, 4, cfg.PostPerIndex)
	assert.Equal(t, 12, cfg.PostPerPage)
	assert.Equal(t, int64(900000), cfg.ScheduledPostMargin)
	assert.False(t, cfg.ShowGalleries)
	assert.Equal(t, "Asia/Kolkata", cfg.Timezone)
	assert.False(t, cfg.EditPost.Enabled)
	assert.Equal(t, "Edit this post", cfg.EditPost.Text)
}

func TestLoadProfileOverlay(t *testing.T) {
	cfg, err := Load(WithFile(writeConfig(t, siteYAML)), WithProfile("staging"))
	require.NoError(t, err)

	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, 8, cfg.PostPerPage)
	assert.True(t, cfg.EditPost.Enabled)
	assert.Equal(t, "https://github.com/janedoe/blog/edit/main/", cfg.EditPost.URL)
	// Keys the profile does not mention keep their base values.
	assert.Equal(t, "Edit this post", cfg.EditPost.Text)
	assert.Equal(t, 4, cfg.PostPerIndex)
	assert.Equal(t, "Jane's Notes", cfg.Title)
}

func TestLoadProfileIsValidated(t *testing.T) {
	_, err := Load(WithFile(writeConfig(t, siteYAML)), WithProfile("broken"))
	require.ErrorIs(t, err, ErrInvalidConfig)
	field, _ := InvalidField(err)
	assert.Equal(t, "postPerPage", field)
}

func TestLoadUnknownProfile(t *testing.T) {
	_, err := Load(WithFile(writeConfig(t, siteYAML)), WithProfile("prod"))
	assert.ErrorIs(t, err, ErrUnknownProfile)

	_, err = Load(WithProfile("prod"))
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

func TestProfiles(t *testing.T) {
	names, err := Profiles(writeConfig(t, siteYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"broken", "staging"}, names)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	cfg, err := Load(
		WithFile(writeConfig(t, siteYAML)),
		WithProfile("staging"),
		WithEnvironment(map[string]string{
			"SITE_TITLE":                "Overridden",
			"SITE_POST_PER_PAGE":        "6",
			"SITE_DIR":                  "auto",
			"SITE_EDIT_POST_TEXT":       "Fix a typo",
			"SITE_INTRO_AUDIO_ENABLED":  "true",
			"SITE_INTRO_AUDIO_DURATION": "45",
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, "Overridden", cfg.Title)
	assert.Equal(t, 6, cfg.PostPerPage)
	assert.Equal(t, DirAuto, cfg.Dir)
	assert.Equal(t, "Fix a typo", cfg.EditPost.Text)
	assert.True(t, cfg.IntroAudio.Enabled)
	assert.Equal(t, 45, cfg.IntroAudio.Duration)
	// From the profile, not overridden.
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
}

func TestLoadNilEnvironmentIgnoresProcess(t *testing.T) {
	t.Setenv("SITE_TITLE", "From the process")
	cfg, err := Load(WithEnvironment(nil))
	require.NoError(t, err)
	assert.Equal(t, Default().Title, cfg.Title)

	cfg, err = Load(WithOSEnvironment())
	require.NoError(t, err)
	assert.Equal(t, "From the process", cfg.Title)
}

func TestLoadEnvironmentOverrideIsValidated(t *testing.T) {
	_, err := Load(WithEnvironment(map[string]string{"SITE_TIMEZONE": "Not/AZone"}))
	require.ErrorIs(t, err, ErrInvalidConfig)
	field, _ := InvalidField(err)
	assert.Equal(t, "timezone", field)
}

func TestLoadEnvironmentBadValue(t *testing.T) {
	_, err := Load(WithEnvironment(map[string]string{"SITE_POST_PER_INDEX": "six"}))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidConfig))
}

func TestLoadDocumentedCases(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		field   string
	}{
		{"zero postPerIndex", "postPerIndex: 0", "postPerIndex"},
		{"negative postPerIndex", "postPerIndex: -1", "postPerIndex"},
		{"bad timezone", "timezone: Not/AZone", "timezone"},
		{"bad dir", "dir: up", "dir"},
		{"edit without url", "editPost:\n      enabled: true", "editPost.url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, siteYAML+"  case:\n    "+tt.profile+"\n")
			_, err := Load(WithFile(path))
			require.NoError(t, err)

			_, err = Load(WithFile(path), WithProfile("case"))
			require.Error(t, err)
			var ic *InvalidConfigError
			require.True(t, errors.As(err, &ic), "want *InvalidConfigError, got %v", err)
			assert.Equal(t, tt.field, ic.Field)
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("titel: typo\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "titel")
}

func TestLoadEmptyDocumentIsInvalid(t *testing.T) {
	_, err := Parse(nil)
	field, ok := InvalidField(err)
	require.True(t, ok)
	assert.Equal(t, "website", field)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(WithFile(filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadWithAssets(t *testing.T) {
	ok := fakeAssets{
		files:  map[string]bool{"audio/intro-web.mp3": true},
		images: map[string]bool{"og.png": true},
	}
	_, err := Load(WithFile(writeConfig(t, siteYAML)), WithAssets(ok))
	require.NoError(t, err)

	_, err = Load(WithAssets(ok))
	field, _ := InvalidField(err)
	assert.Equal(t, "ogImage", field)
}
