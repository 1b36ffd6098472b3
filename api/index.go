package handler

import (
	"net/http"
	"rentdesk/config"
	"rentdesk/di"
	_ "rentdesk/docs"
	"rentdesk/shared/logger"
	"rentdesk/shared/timezone"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	app  http.Handler
	once sync.Once
)

// Handler is the serverless entrypoint. The service graph is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.Configure(cfg)

		if err := timezone.Configure(cfg.App.Timezone); err != nil {
			log.Fatal().Err(err).Msg("Failed to configure timezone")
		}

		app = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	app.ServeHTTP(w, r)
}
