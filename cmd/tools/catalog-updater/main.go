// cmd/tools/catalog-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"esports-waitlist/pkg/registry"
)

const defaultPath = "configs/games.json"

func main() {
	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		cmd := flag.NewFlagSet("add", flag.ExitOnError)
		path := cmd.String("path", defaultPath, "Path to catalog file")
		id := cmd.String("id", "", "Game ID (e.g., tekken-8)")
		displayName := cmd.String("displayName", "", "Display name (e.g., Tekken 8)")
		genre := cmd.String("genre", "", "Genre (e.g., fighting)")
		platforms := cmd.String("platforms", "", "Comma-separated platforms (e.g., PC,PlayStation)")
		cmd.Parse(os.Args[2:])

		if *id == "" || *displayName == "" {
			fmt.Println("Error: id and displayName are required for add.")
			cmd.Usage()
			os.Exit(1)
		}
		exitOn(addGame(*path, registry.GameEntry{
			ID:          *id,
			DisplayName: *displayName,
			Genre:       *genre,
			Platforms:   splitList(*platforms),
		}))
		fmt.Printf("Added game: %s\n", *id)

	case "retire", "restore":
		cmd := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
		path := cmd.String("path", defaultPath, "Path to catalog file")
		id := cmd.String("id", "", "Game ID")
		cmd.Parse(os.Args[2:])

		if *id == "" {
			fmt.Println("Error: id is required.")
			cmd.Usage()
			os.Exit(1)
		}
		retired := os.Args[1] == "retire"
		exitOn(setRetired(*path, *id, retired))
		fmt.Printf("Game %s retired=%t\n", *id, retired)

	case "validate":
		cmd := flag.NewFlagSet("validate", flag.ExitOnError)
		path := cmd.String("path", defaultPath, "Path to catalog file")
		cmd.Parse(os.Args[2:])

		reg, err := registry.LoadRegistry(*path)
		if err != nil {
			fmt.Printf("Catalog validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Catalog validation passed. %d games, %d active.\n", len(reg.Games), len(reg.Active()))

	case "help":
		fallthrough
	default:
		help()
	}
}

func addGame(path string, g registry.GameEntry) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		reg = &registry.GameRegistry{Version: "1", Games: []registry.GameEntry{}}
	}
	if err := reg.Add(g, time.Now().UTC()); err != nil {
		return err
	}
	return registry.SaveRegistry(reg, path)
}

func setRetired(path, id string, retired bool) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := reg.SetRetired(id, retired, time.Now().UTC()); err != nil {
		return err
	}
	return registry.SaveRegistry(reg, path)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func exitOn(err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func help() {
	fmt.Print(`
Usage: catalog-updater <command> [flags]

Commands:
  add       Add a game to the catalog
  retire    Hide a game from the intake form
  restore   Show a retired game again
  validate  Validate the catalog file
  help      Show this help message

Examples:
  catalog-updater add -id tekken-8 -displayName "Tekken 8" -genre fighting -platforms PC,PlayStation,Xbox
  catalog-updater retire -id halo-infinite
  catalog-updater validate -path configs/games.json

Use 'catalog-updater <command> -h' for more information about a command.

`)
}
