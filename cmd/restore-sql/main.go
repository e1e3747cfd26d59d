// restore-sql regenerates an idempotent upsert script from a products
// catalog, for re-importing the data with psql.
package main

import (
	"flag"
	"os"

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

	if err := database.GenerateRestoreScript(products, cfg.Paths.RestoreSQLFile); err != nil {
		log.Fatal().Err(err).Str("path", cfg.Paths.RestoreSQLFile).Msg("failed to write restore script")
	}
	log.Info().Str("path", cfg.Paths.RestoreSQLFile).Msg("restore script written")
}
