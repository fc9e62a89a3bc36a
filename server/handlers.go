package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/siteconf"
	"github.com/eringen/siteconf/views"
)

const headerLoadedAt = "X-Siteconf-Loaded-At"

func (s *Server) handleSummary(c echo.Context) error {
	cfg, loadedAt := s.Snapshot.Current()
	meta := views.Meta{
		Source:   s.source,
		Profile:  s.profile,
		LoadedAt: loadedAt,
	}
	if s.assets != nil {
		if w, h, err := s.assets.ImageSize(cfg.OGImage); err == nil {
			meta.OGWidth, meta.OGHeight = w, h
		} else {
			c.Logger().Warnf("og image: %v", err)
		}
	}
	return Render(c, views.Summary(cfg, meta))
}

func (s *Server) handleConfigJSON(c echo.Context) error {
	cfg, loadedAt := s.Snapshot.Current()
	setLoadedAt(c, loadedAt)
	return c.JSON(http.StatusOK, cfg)
}

func (s *Server) handleConfigYAML(c echo.Context) error {
	cfg, loadedAt := s.Snapshot.Current()
	data, err := siteconf.Marshal(cfg)
	if err != nil {
		return err
	}
	setLoadedAt(c, loadedAt)
	return c.Blob(http.StatusOK, "application/yaml; charset=utf-8", data)
}

func setLoadedAt(c echo.Context, t time.Time) {
	c.Response().Header().Set(headerLoadedAt, t.UTC().Format(time.RFC3339Nano))
}

func handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError())
		return
	}
	s.Echo.DefaultHTTPErrorHandler(err, c)
}
