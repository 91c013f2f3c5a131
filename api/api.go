// Package api provides the HTTP handlers for the dashboard service.
package api

import (
	"github.com/theeace/dashboard-go/email"
	"github.com/theeace/dashboard-go/services"
	"github.com/theeace/dashboard-go/store"
	"github.com/theeace/dashboard-go/userdir"
	"github.com/theeace/dashboard-go/utils/images"
)

// API carries the storage and service handles used by every handler.
// Handlers never reach for ambient globals.
type API struct {
	Store     *store.Store
	Users     *userdir.Directory
	Configs   *services.WebsiteConfigService
	Metrics   *services.MetricsService
	LogoPrefs *services.LogoPrefService
	Notifier  email.Notifier
	Images    *images.ImageProcessor
	JWTSecret string
}

// New wires an API from its dependencies.
func New(s *store.Store, users *userdir.Directory, notifier email.Notifier, processor *images.ImageProcessor, jwtSecret string) *API {
	return &API{
		Store:     s,
		Users:     users,
		Configs:   services.NewWebsiteConfigService(s, notifier, processor.RemoveUploadWithThumbs),
		Metrics:   services.NewMetricsService(s),
		LogoPrefs: services.NewLogoPrefService(s, processor.RemoveUploadWithThumbs),
		Notifier:  notifier,
		Images:    processor,
		JWTSecret: jwtSecret,
	}
}
