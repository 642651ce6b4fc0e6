package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"
	"shareit/internal/service"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// SeedConfig lists owners and the items they share.
type SeedConfig struct {
	Owners []SeedOwner `yaml:"owners"`
}

type SeedOwner struct {
	Name  string     `yaml:"name"`
	Email string     `yaml:"email"`
	Items []SeedItem `yaml:"items"`
}

type SeedItem struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Available   *bool  `yaml:"available"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		seedPath = flag.String("seed", "configs/seed.yaml", "path to seed.yaml")
		dbPath   = flag.String("db", "./data/shareit.db", "path to sqlite db")
	)
	flag.Parse()

	data, err := os.ReadFile(*seedPath)
	if err != nil {
		return fmt.Errorf("read seed: %w", err)
	}
	var cfg SeedConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse seed: %w", err)
	}
	if len(cfg.Owners) == 0 {
		return fmt.Errorf("no owners in yaml")
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, skipped, err := seed(ctx, db, cfg, &logger)
	if err != nil {
		return err
	}

	fmt.Printf("done: created=%d skipped=%d\n", created, skipped)
	return nil
}

// seed creates missing owners and items. Items are matched by owner and name, so reruns are safe.
func seed(ctx context.Context, repo domain.Repository, cfg SeedConfig, logger *zerolog.Logger) (created, skipped int, err error) {
	users := service.NewUserService(repo, logger)
	items := service.NewItemService(repo, nil, logger)

	for _, o := range cfg.Owners {
		owner, err := repo.GetUserByEmail(ctx, o.Email)
		if errors.Is(err, domain.ErrNotFound) {
			owner, err = users.CreateUser(ctx, o.Name, o.Email)
		}
		if err != nil {
			return created, skipped, fmt.Errorf("owner %s: %w", o.Email, err)
		}

		existing, err := repo.GetItemsByOwner(ctx, owner.ID, nil)
		if err != nil {
			return created, skipped, fmt.Errorf("items of %s: %w", o.Email, err)
		}
		have := make(map[string]bool, len(existing))
		for _, it := range existing {
			have[strings.ToLower(it.Name)] = true
		}

		for _, it := range o.Items {
			if it.Name == "" || have[strings.ToLower(it.Name)] {
				skipped++
				continue
			}
			available := true
			if it.Available != nil {
				available = *it.Available
			}
			item := &models.Item{Name: it.Name, Description: it.Description, Available: available}
			if _, err := items.CreateItem(ctx, owner.ID, item); err != nil {
				return created, skipped, fmt.Errorf("create %s: %w", it.Name, err)
			}
			have[strings.ToLower(it.Name)] = true
			created++
		}
	}
	return created, skipped, nil
}
