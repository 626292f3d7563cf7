package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cmerin0/PlayersSimpleApp/internal/config"
	"github.com/cmerin0/PlayersSimpleApp/internal/model"
	"github.com/cmerin0/PlayersSimpleApp/internal/storage"
	"github.com/cmerin0/PlayersSimpleApp/internal/storage/postgres"
)

type seedTeam struct {
	Name string `json:"name"`
}

type seedPlayer struct {
	Name   string `json:"name"`
	TeamID int64  `json:"team_id"`
}

func newSeedCmd() *cobra.Command {
	var teamsFile string
	var playersFile string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import teams and players from JSON files",
		Long: `seed loads team and player fixtures into the database from JSON files.

Each import is skipped when the corresponding table already holds data,
so the command is safe to run on every startup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}))

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := postgres.New(ctx, cfg.DatabaseDSN)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.EnsureSchema(ctx); err != nil {
				return err
			}

			if err := importTeams(ctx, store, teamsFile, logger); err != nil {
				return err
			}
			return importPlayers(ctx, store, playersFile, logger)
		},
	}

	cmd.Flags().StringVar(&teamsFile, "teams", "data/teams.json", "Path to the teams JSON file")
	cmd.Flags().StringVar(&playersFile, "players", "data/players.json", "Path to the players JSON file")

	return cmd
}

func importTeams(ctx context.Context, store storage.Storage, path string, logger *slog.Logger) error {
	existing, err := store.ListTeams(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("teams already present, skipping import", slog.Int("count", len(existing)))
		return nil
	}

	var teams []seedTeam
	if err := readJSONFile(path, &teams); err != nil {
		return fmt.Errorf("importing teams: %w", err)
	}

	for _, t := range teams {
		if _, err := store.CreateTeam(ctx, t.Name); err != nil {
			return fmt.Errorf("importing team %q: %w", t.Name, err)
		}
	}

	logger.Info("teams imported", slog.Int("count", len(teams)))
	return nil
}

func importPlayers(ctx context.Context, store storage.Storage, path string, logger *slog.Logger) error {
	existing, err := store.ListPlayers(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("players already present, skipping import", slog.Int("count", len(existing)))
		return nil
	}

	var players []seedPlayer
	if err := readJSONFile(path, &players); err != nil {
		return fmt.Errorf("importing players: %w", err)
	}

	for _, p := range players {
		if _, err := store.CreatePlayer(ctx, p.Name, model.TeamID(p.TeamID)); err != nil {
			return fmt.Errorf("importing player %q: %w", p.Name, err)
		}
	}

	logger.Info("players imported", slog.Int("count", len(players)))
	return nil
}

func readJSONFile(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}
