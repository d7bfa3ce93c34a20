package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/logiport/portal/scripts/internal"
)

// Command represents a script that can be run
type Command struct {
	Name        string
	Description string
	Run         func() error
}

var commands = []Command{
	{
		Name:        "add-user",
		Description: "Create a portal user and print a development token",
		Run:         internal.AddNewUser,
	},
	{
		Name:        "generate-token",
		Description: "Generate a development token for an existing user",
		Run:         internal.GenerateDevToken,
	},
	{
		Name:        "seed-shipments",
		Description: "Seed sample shipments across the last months",
		Run:         internal.SeedShipments,
	},
}

func main() {
	var (
		listCommands bool
		cmdName      string
		email        string
		username     string
		staff        bool
		count        int
	)

	flag.BoolVar(&listCommands, "list", false, "List all available commands")
	flag.StringVar(&cmdName, "cmd", "", "Command to run")
	flag.StringVar(&email, "user-email", "", "Email of the user")
	flag.StringVar(&username, "username", "", "Username for new users")
	flag.BoolVar(&staff, "staff", false, "Create the user as staff")
	flag.IntVar(&count, "count", 0, "Number of records to seed")

	flag.Parse()

	if listCommands {
		fmt.Println("Available commands:")
		for _, cmd := range commands {
			fmt.Printf("  %-20s %s\n", cmd.Name, cmd.Description)
		}
		return
	}

	if cmdName == "" {
		log.Fatal("Please specify a command to run using -cmd flag. Use -list to see available commands.")
	}

	if email != "" {
		os.Setenv("USER_EMAIL", email)
	}
	if username != "" {
		os.Setenv("USERNAME", username)
	}
	if staff {
		os.Setenv("USER_IS_STAFF", "true")
	}
	if count > 0 {
		os.Setenv("SEED_COUNT", fmt.Sprintf("%d", count))
	}

	for _, cmd := range commands {
		if cmd.Name == cmdName {
			if err := cmd.Run(); err != nil {
				log.Fatalf("Error running command %s: %v", cmdName, err)
			}
			return
		}
	}

	log.Fatalf("Unknown command: %s. Use -list to see available commands.", cmdName)
}
