package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"
	"rentdesk/config"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

type Action string

const (
	ActionUp      Action = "up"
	ActionDown    Action = "down"
	ActionStepUp  Action = "step-up"
	ActionDrop    Action = "drop"
	ActionVersion Action = "version"
	ActionForce   Action = "force"
)

var ErrUnknownAction = errors.New("unknown migration action, use up, down, step-up, drop, version or force <version>")

// ParseAction validates a command line action and its optional argument.
// Only force takes one: the version to mark the schema as clean at.
func ParseAction(args []string) (Action, int, error) {
	if len(args) == 0 {
		return "", 0, ErrUnknownAction
	}

	action := Action(args[0])

	switch action {
	case ActionUp, ActionDown, ActionStepUp, ActionDrop, ActionVersion:
		return action, 0, nil
	case ActionForce:
		if len(args) < 2 {
			return "", 0, errors.New("force needs a target version")
		}

		version, err := strconv.Atoi(args[1])
		if err != nil {
			return "", 0, fmt.Errorf("invalid force version %q: %w", args[1], err)
		}

		return action, version, nil
	default:
		return "", 0, ErrUnknownAction
	}
}

// MigrationDSN points the migrator at the write node with the configured
// bookkeeping table.
func MigrationDSN(cfg *config.Config) string {
	return cfg.DB.Postgres.Write.DSN(cfg.DB.Postgres.Prefix, url.Values{
		"x-migrations-table": []string{cfg.DB.Postgres.MigrationTable},
	})
}

func Run(cfg *config.Config, action Action, version int) error {
	mig, err := migrate.New(cfg.DB.Postgres.MigrationPath, MigrationDSN(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	case ActionForce:
		err = mig.Force(version)
	case ActionVersion:
	default:
		return ErrUnknownAction
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", action, err)
	}

	current, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Str("action", string(action)).Uint("version", current).Bool("dirty", dirty).Msg("Database migration finished")

	return nil
}
