package db

import (
	"fmt"

	types "github.com/reelstack/dvdrental-backend/internal/domain"
)

func (ps *PostgresService) AutoMigrateAll() error {
	if err := ps.db.AutoMigrate(types.AllModels()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
