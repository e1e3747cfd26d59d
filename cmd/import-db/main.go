// import-db loads a products catalog straight into a live PostgreSQL
// database running the redesigned uuid-keyed schema.
package main

import (
	"database/sql"
	"flag"
	"os"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"catalogmigrate/catalog"
	"catalogmigrate/config"
	"catalogmigrate/database"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *cfgPath).Msg("failed to load config")
	}

	products, err := catalog.ReadFile(cfg.Paths.CatalogFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Paths.CatalogFile).Msg("failed to read catalog")
	}
	log.Info().Int("products", len(products)).Msg("catalog loaded")

	db, err := sql.Open("postgres", cfg.Database.ConnString())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database connection")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("database unreachable")
	}

	if err := database.ImportCatalog(db, products); err != nil {
		log.Fatal().Err(err).Msg("import incomplete")
	}
}
