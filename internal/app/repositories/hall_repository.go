package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/pkg/logger"
)

const hallColumns = `halls.id, halls.name, halls.hall_code, halls.description,
	halls.gender, halls.is_active, halls.created_at, halls.updated_at`

// HallRepository handles database operations for halls of residence
type HallRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewHallRepository creates a new HallRepository
func NewHallRepository(db *pgxpool.Pool) *HallRepository {
	return &HallRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetActive lists active halls ordered by name, optionally narrowed by
// gender or a name search
func (r *HallRepository) GetActive(ctx context.Context, search, gender string) ([]*models.Hall, error) {
	base := r.sb.Select(hallColumns).
		From("halls").
		Where(squirrel.Eq{"halls.is_active": true})

	if search != "" {
		pattern := "%" + search + "%"
		base = base.Where(squirrel.Or{
			squirrel.ILike{"halls.name": pattern},
			squirrel.ILike{"halls.hall_code": pattern},
		})
	}
	if gender != "" {
		base = base.Where(squirrel.Eq{"halls.gender": gender})
	}

	sql, args, err := base.OrderBy("halls.name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list halls query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying halls")
		return nil, fmt.Errorf("error querying halls: %w", err)
	}
	defer rows.Close()

	halls := []*models.Hall{}
	for rows.Next() {
		hall := &models.Hall{}
		err := rows.Scan(
			&hall.ID,
			&hall.Name,
			&hall.HallCode,
			&hall.Description,
			&hall.Gender,
			&hall.IsActive,
			&hall.CreatedAt,
			&hall.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning hall row: %w", err)
		}
		halls = append(halls, hall)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return halls, nil
}
