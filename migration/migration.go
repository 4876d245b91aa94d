package migration

import (
	"context"
	_ "embed"
	"sort"

	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/pkg/xcontext"
)

// DefaultMedalCatalog is the medal catalog seeded by `srv migrate --seed`.
//
//go:embed medals.toml
var DefaultMedalCatalog []byte

// Migrators holds the data migrations which AutoMigrate cannot express.
var Migrators = map[string]func(context.Context) error{
	"0001": migrate0001,
}

// AutoMigrate creates or alters every table to the latest schema.
func AutoMigrate(ctx context.Context) error {
	return entity.MigrateTable(ctx)
}

// Versions returns the versions of Migrators in order.
func Versions() []string {
	versions := make([]string, 0, len(Migrators))
	for v := range Migrators {
		versions = append(versions, v)
	}
	sort.Strings(versions)

	return versions
}

// Run applies the schema and then the given data migration.
func Run(ctx context.Context, version string) error {
	if err := AutoMigrate(ctx); err != nil {
		return err
	}

	if version == "" {
		return nil
	}

	migrator, ok := Migrators[version]
	if !ok {
		return &UnknownVersionError{Version: version}
	}

	xcontext.Logger(ctx).Infof("Running migration %s", version)
	return migrator(ctx)
}

type UnknownVersionError struct {
	Version string
}

func (e *UnknownVersionError) Error() string {
	return "not found migration version " + e.Version
}
