// Command create-admin creates an admin account from credentials typed on stdin
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
	"github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/services"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	fmt.Println("Generating admin account")

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Enter email: ")
	email, _ := reader.ReadString('\n')
	email = strings.ToLower(strings.TrimSpace(email))

	fmt.Print("Enter password: ")
	password1, _ := reader.ReadString('\n')
	password1 = strings.TrimSpace(password1)

	fmt.Print("Confirm password: ")
	password2, _ := reader.ReadString('\n')
	password2 = strings.TrimSpace(password2)

	if password1 != password2 {
		fmt.Println("Passwords do not match.")
		os.Exit(1)
	}
	if !utilities.ValidEmail(email) {
		fmt.Println("Invalid email format.")
		os.Exit(1)
	}
	if len(password1) < services.MinPasswordLength {
		fmt.Printf("Password must be at least %d characters.\n", services.MinPasswordLength)
		os.Exit(1)
	}

	cfg := config.Load()
	db, err := database.NewDBInstance(&cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Database failed to initialize")
	}
	defer db.Close()

	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		log.Fatal().Err(err).Msg("Failed to check email")
	}
	if count > 0 {
		fmt.Println("Email already taken")
		return
	}

	if err := utilities.CreateAdmin(password1, email, db.DB); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}
	fmt.Printf("Admin %s created.\n", email)
}
