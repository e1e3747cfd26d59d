// parse-catalog turns a PostgreSQL logical dump of the shop tables into the
// denormalized products catalog JSON.
package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"catalogmigrate/catalog"
	"catalogmigrate/config"
	"catalogmigrate/dump"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *cfgPath).Msg("failed to load config")
	}

	src, err := dump.ReadFile(cfg.Paths.DumpFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Paths.DumpFile).Msg("failed to read dump")
	}

	products, stats := catalog.Build(src)
	for _, reason := range stats.SkipReasons {
		log.Warn().Msg(reason)
	}

	if err := catalog.WriteFile(cfg.Paths.CatalogFile, products); err != nil {
		log.Fatal().Err(err).Str("path", cfg.Paths.CatalogFile).Msg("failed to write catalog")
	}
	log.Info().
		Str("path", cfg.Paths.CatalogFile).
		Int("products", stats.Built).
		Int("skipped", stats.Skipped).
		Msg("catalog written")
}
