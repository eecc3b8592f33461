package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/career-recommender/internal/types"
)

// DefaultTable is the PostgreSQL table read when none is configured.
const DefaultTable = "careers"

// rowQuerier is the subset of pgxpool.Pool used to read careers.
type rowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadPostgres connects to databaseURL and reads every row of table.
func LoadPostgres(ctx context.Context, databaseURL, table string) ([]types.CareerRecord, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, &DataLoadError{Message: "failed to connect to database", Cause: err}
	}
	defer pool.Close()

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		return nil, &DataLoadError{Message: "failed to ping database", Cause: err}
	}

	return queryCareers(ctx, pool, table)
}

func queryCareers(ctx context.Context, db rowQuerier, table string) ([]types.CareerRecord, error) {
	if table == "" {
		table = DefaultTable
	}

	query := fmt.Sprintf(
		`SELECT id, title,
		        COALESCE(description, ''), COALESCE(skills, ''), COALESCE(interests, ''),
		        COALESCE(experience_level, ''), COALESCE(salary_range, ''),
		        COALESCE(growth_potential, ''), COALESCE(work_environment, '')
		 FROM %s
		 ORDER BY id`,
		pgx.Identifier{table}.Sanitize(),
	)

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, &DataLoadError{Message: fmt.Sprintf("failed to query table %s", table), Cause: err}
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.CareerRecord, error) {
		var rec types.CareerRecord
		err := row.Scan(
			&rec.ID, &rec.Title,
			&rec.Description, &rec.Skills, &rec.Interests,
			&rec.ExperienceLevel, &rec.SalaryRange,
			&rec.GrowthPotential, &rec.WorkEnvironment,
		)
		return rec, err
	})
	if err != nil {
		return nil, &DataLoadError{Message: "failed to scan careers", Cause: err}
	}
	return records, nil
}
