package server

import (
	"net/http"

	"github.com/akyairhashvil/vrtimer/internal/config"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const indexPage = `vrtimer settings server

Timer clients load their settings from /` + config.SettingsFileName + `.
`

func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.echo.GET("/"+config.SettingsFileName, s.handleSettings)
	for _, path := range []string{"/", "/index", "/index.html"} {
		s.echo.GET(path, s.handleIndex)
	}
}

func (s *Server) handleSettings(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.JSON(http.StatusOK, config.TimerSettings{SpeedMultiplier: s.opts.SpeedMultiplier})
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.String(http.StatusOK, indexPage)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
