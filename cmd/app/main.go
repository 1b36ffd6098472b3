package main

import (
	"rentdesk/config"
	"rentdesk/di"
	_ "rentdesk/docs"
	"rentdesk/shared/logger"
	"rentdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

// @title rentdesk API
// @version 1.0
// @description Multi-tenant rental management for chairs, tables and tablecloths.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.Configure(cfg)

	if err := timezone.Configure(cfg.App.Timezone); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure timezone")
	}

	http := di.InitializeService()
	http.Serve()
}
