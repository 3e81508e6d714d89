package storage

import (
	"context"
	"database/sql"
	"fmt"

	"ewintr.nl/tubesum/model"
	_ "github.com/lib/pq"
)

type PostgresInfo struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

type Postgres struct {
	db *sql.DB
}

func NewPostgres(pgInfo PostgresInfo) (*Postgres, error) {
	db, err := sql.Open("postgres", fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", pgInfo.Host, pgInfo.Port, pgInfo.User, pgInfo.Password, pgInfo.Database))
	if err != nil {
		return &Postgres{}, err
	}
	p := &Postgres{db: db}
	if err := p.migrate(pgMigration); err != nil {
		return &Postgres{}, err
	}

	return p, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

type PostgresSummaryRepository struct {
	*Postgres
}

func NewPostgresSummaryRepository(postgres *Postgres) *PostgresSummaryRepository {
	return &PostgresSummaryRepository{postgres}
}

func (p *PostgresSummaryRepository) Save(ctx context.Context, summary *model.Summary) error {
	query := `INSERT INTO summary (id, youtube_id, url, title, summary, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id)
DO UPDATE SET
  youtube_id = EXCLUDED.youtube_id,
  url = EXCLUDED.url,
  title = EXCLUDED.title,
  summary = EXCLUDED.summary`
	if _, err := p.db.ExecContext(ctx, query, summary.ID, summary.YoutubeID, summary.URL, summary.Title, summary.Text, summary.CreatedAt); err != nil {
		return fmt.Errorf("could not save summary: %w", err)
	}

	return nil
}

func (p *PostgresSummaryRepository) List(ctx context.Context, limit int) ([]*model.Summary, error) {
	query := `SELECT id, youtube_id, url, title, summary, created_at
FROM summary
ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []*model.Summary{}
	for rows.Next() {
		s := &model.Summary{}
		if err := rows.Scan(&s.ID, &s.YoutubeID, &s.URL, &s.Title, &s.Text, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Thumbnail = s.YoutubeID.ThumbnailURL()
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

func (p *Postgres) migrate(wanted []string) error {
	query := `CREATE TABLE IF NOT EXISTS migration
("id" SERIAL PRIMARY KEY, "query" TEXT)`
	_, err := p.db.Exec(query)
	if err != nil {
		return err
	}

	// find existing
	rows, err := p.db.Query(`SELECT query FROM migration ORDER BY id`)
	if err != nil {
		return err
	}

	existing := []string{}
	for rows.Next() {
		var query string
		if err := rows.Scan(&query); err != nil {
			return err
		}
		existing = append(existing, query)
	}
	rows.Close()

	// compare
	missing, err := compareMigrations(wanted, existing)
	if err != nil {
		return err
	}

	// execute missing
	for _, query := range missing {
		if _, err := p.db.Exec(query); err != nil {
			return err
		}

		// register
		if _, err := p.db.Exec(`
INSERT INTO migration
(query) VALUES ($1)
`, query); err != nil {
			return err
		}
	}

	return nil
}

func compareMigrations(wanted, existing []string) ([]string, error) {
	needed := []string{}
	if len(wanted) < len(existing) {
		return []string{}, fmt.Errorf("not enough migrations")
	}

	for i, want := range wanted {
		switch {
		case i >= len(existing):
			needed = append(needed, want)
		case want == existing[i]:
			// do nothing
		case want != existing[i]:
			return []string{}, fmt.Errorf("incompatible migration: %v", want)
		}
	}

	return needed, nil
}
