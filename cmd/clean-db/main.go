// Command-line tool to clean the database by dropping all tables in the public schema.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Daeuning/WSD-Assignment-03/internal/config"
	"github.com/Daeuning/WSD-Assignment-03/internal/database"
)

const dropAllTables = `
DO $$
	DECLARE
		r RECORD;
	BEGIN
		FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = 'public') LOOP
			EXECUTE 'DROP TABLE IF EXISTS ' || quote_ident(r.tablename) || ' CASCADE';
		END LOOP;
	END $$;
`

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	fmt.Println("⚠️ WARNING: This command will DROP ALL TABLES in the 'public' schema of your database.")
	fmt.Println("This action is irreversible. Do you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read input")
	}
	if strings.TrimSpace(strings.ToLower(input)) != "yes" {
		fmt.Println("Operation cancelled.")
		return
	}

	cfg := config.Load()
	db, err := database.NewDBInstance(&cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Database failed to initialize")
	}
	defer db.Close()

	if err := db.Exec(dropAllTables).Error; err != nil {
		log.Fatal().Err(err).Msg("Failed to execute drop command")
	}

	fmt.Println("✅ All tables dropped successfully.")
}
