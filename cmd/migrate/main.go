package main

import (
	"os"
	"rentdesk/config"
	"rentdesk/helper"
	"rentdesk/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.Configure(cfg)

	action, version, err := helper.ParseAction(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid migration command")
	}

	if err := helper.Run(cfg, action, version); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
