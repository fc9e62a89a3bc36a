// Package views renders the HTML pages of the siteconf inspection server as
// templ components.
package views

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/siteconf"
)

// Meta describes where the shown configuration came from.
type Meta struct {
	Source   string    // File path, or "built-in"
	Profile  string    // Selected profile, empty for none
	LoadedAt time.Time // When the snapshot was taken
	OGWidth  int       // Zero when the image was not inspected
	OGHeight int
}

// Row is a single field/value line of the summary table.
type Row struct {
	Field string
	Value string
}

// Rows flattens cfg into display rows using the file's key names.
func Rows(cfg siteconf.SiteConfig) []Row {
	rows := []Row{
		{"website", cfg.Website},
		{"author", cfg.Author},
		{"profile", cfg.Profile},
		{"desc", cfg.Desc},
		{"title", cfg.Title},
		{"ogImage", cfg.OGImage},
		{"lightAndDarkMode", strconv.FormatBool(cfg.LightAndDarkMode)},
		{"postPerIndex", strconv.Itoa(cfg.PostPerIndex)},
		{"postPerPage", strconv.Itoa(cfg.PostPerPage)},
		{"scheduledPostMargin", fmt.Sprintf("%d ms (%s)", cfg.ScheduledPostMargin, cfg.ScheduledMargin())},
		{"showArchives", strconv.FormatBool(cfg.ShowArchives)},
		{"showGalleries", strconv.FormatBool(cfg.ShowGalleries)},
		{"showBackButton", strconv.FormatBool(cfg.ShowBackButton)},
		{"editPost.enabled", strconv.FormatBool(cfg.EditPost.Enabled)},
	}
	if ep, ok := cfg.EditLink(); ok {
		rows = append(rows, Row{"editPost.text", ep.Text}, Row{"editPost.url", ep.URL})
	}
	rows = append(rows,
		Row{"dynamicOgImage", strconv.FormatBool(cfg.DynamicOGImage)},
		Row{"dir", string(cfg.Dir)},
		Row{"lang", cfg.Language()},
		Row{"timezone", cfg.Timezone},
		Row{"introAudio.enabled", strconv.FormatBool(cfg.IntroAudio.Enabled)},
	)
	if a, ok := cfg.Audio(); ok {
		rows = append(rows,
			Row{"introAudio.src", a.Src},
			Row{"introAudio.label", a.Label},
			Row{"introAudio.duration", a.AudioDuration().String()},
		)
	}
	return rows
}

// Summary renders the full configuration page.
func Summary(cfg siteconf.SiteConfig, meta Meta) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		e := html.EscapeString

		fmt.Fprintf(&buf, `<!DOCTYPE html><html lang="%s" dir="%s"><head><meta charset="utf-8">`, e(cfg.Language()), e(string(cfg.Dir)))
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		fmt.Fprintf(&buf, `<title>%s · siteconf</title>`, e(cfg.Title))
		fmt.Fprintf(&buf, `<meta name="description" content="%s">`, e(cfg.Desc))
		fmt.Fprintf(&buf, `<meta property="og:image" content="%s">`, e(cfg.OGImageURL()))
		buf.WriteString(`<link rel="stylesheet" href="/_siteconf/style.css"></head><body><main>`)

		fmt.Fprintf(&buf, `<h1>%s</h1>`, e(cfg.Title))
		fmt.Fprintf(&buf, `<p class="meta">Loaded from <code>%s</code>`, e(meta.Source))
		if meta.Profile != "" {
			fmt.Fprintf(&buf, ` with profile <code>%s</code>`, e(meta.Profile))
		}
		if !meta.LoadedAt.IsZero() {
			fmt.Fprintf(&buf, ` at <time>%s</time>`, e(cfg.FormatDate(meta.LoadedAt, "2006-01-02 15:04:05 MST")))
		}
		buf.WriteString(`</p>`)

		buf.WriteString(`<table><thead><tr><th>Field</th><th>Value</th></tr></thead><tbody>`)
		for _, r := range Rows(cfg) {
			fmt.Fprintf(&buf, `<tr><td><code>%s</code></td><td>%s</td></tr>`, e(r.Field), e(r.Value))
		}
		buf.WriteString(`</tbody></table>`)

		fmt.Fprintf(&buf, `<figure><img src="/public/%s" alt="Default social preview">`, e(trimSlash(cfg.OGImage)))
		if meta.OGWidth > 0 {
			fmt.Fprintf(&buf, `<figcaption>%d × %d</figcaption>`, meta.OGWidth, meta.OGHeight)
		}
		buf.WriteString(`</figure>`)

		if a, ok := cfg.Audio(); ok {
			fmt.Fprintf(&buf, `<section class="audio"><span>%s</span><audio controls preload="none" src="/public/%s"></audio></section>`,
				e(a.Label), e(trimSlash(a.Src)))
		}

		buf.WriteString(`<nav><a href="/config.json">config.json</a> · <a href="/config.yaml">config.yaml</a> · <a href="/metrics">metrics</a></nav>`)
		buf.WriteString(`</main></body></html>`)

		_, err := w.Write(buf.Bytes())
		return err
	})
}

// NotFound renders the 404 page.
func NotFound() templ.Component {
	return message("Not found", "There is nothing at this address.")
}

// ServerError renders the 500 page.
func ServerError() templ.Component {
	return message("Server error", "Something went wrong while rendering this page.")
}

func message(title, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title><link rel="stylesheet" href="/_siteconf/style.css"></head><body><main><h1>%s</h1><p>%s</p><p><a href="/">Back to summary</a></p></main></body></html>`,
			html.EscapeString(title), html.EscapeString(title), html.EscapeString(body))
		return err
	})
}

func trimSlash(p string) string {
	if len(p) > 0 && p[0] == '/' {
		return p[1:]
	}
	return p
}
