package migrations

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed postgres/*.sql
var postgresFS embed.FS

// Migration is one versioned schema file
type Migration struct {
	Version string
	SQL     string
}

// Postgres returns the embedded postgres migrations in version order
func Postgres() ([]Migration, error) {
	names, err := fs.Glob(postgresFS, "postgres/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := postgresFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, Migration{
			Version: name[len("postgres/") : len(name)-len(".sql")],
			SQL:     string(content),
		})
	}
	return migrations, nil
}
