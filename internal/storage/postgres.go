package storage

import (
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"

	"bankpulse"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// PostgresStorage persists results in PostgreSQL. The schema is created on
// startup from the embedded migrations file.
type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	storage := &PostgresStorage{db: db}
	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}

	if _, err := s.db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}

	return nil
}

func (s *PostgresStorage) SaveAnalyses(analyses []bankpulse.ReviewAnalysis) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	bankIDs := make(map[string]int64)
	for _, a := range analyses {
		bankID, err := s.bankID(tx, bankIDs, a.Review.GroupID)
		if err != nil {
			return err
		}

		var rating sql.NullInt64
		if a.Review.Rating >= 1 && a.Review.Rating <= 5 {
			rating = sql.NullInt64{Int64: int64(a.Review.Rating), Valid: true}
		}

		_, err = tx.Exec(`
			INSERT INTO reviews (id, bank_id, review_text, rating, sentiment_label, sentiment_score, rating_match, themes, keywords)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE SET
				bank_id = EXCLUDED.bank_id,
				review_text = EXCLUDED.review_text,
				rating = EXCLUDED.rating,
				sentiment_label = EXCLUDED.sentiment_label,
				sentiment_score = EXCLUDED.sentiment_score,
				rating_match = EXCLUDED.rating_match,
				themes = EXCLUDED.themes,
				keywords = EXCLUDED.keywords`,
			a.Review.ID,
			bankID,
			a.Review.Text,
			rating,
			string(a.Sentiment.Label),
			a.Sentiment.Score,
			string(a.Agreement),
			bankpulse.JoinThemes(a.Themes),
			bankpulse.JoinKeywords(a.Keywords),
		)
		if err != nil {
			return fmt.Errorf("error saving review %s: %w", a.Review.ID, err)
		}
	}

	return tx.Commit()
}

func (s *PostgresStorage) SaveGroupSummaries(groups map[string]bankpulse.GroupThemeAnalysis) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	bankIDs := make(map[string]int64)
	for group, analysis := range groups {
		bankID, err := s.bankID(tx, bankIDs, group)
		if err != nil {
			return err
		}

		// Summaries are per-run snapshots; clear the previous run first.
		if _, err := tx.Exec(`DELETE FROM theme_summaries WHERE bank_id = $1`, bankID); err != nil {
			return fmt.Errorf("error clearing summaries for %s: %w", group, err)
		}

		for theme, summary := range analysis.Themes {
			_, err := tx.Exec(`
				INSERT INTO theme_summaries (bank_id, theme, frequency, percentage, severity, supporting_keywords)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				bankID,
				theme,
				summary.Frequency,
				summary.Percentage,
				string(summary.Severity),
				bankpulse.JoinKeywords(summary.SupportingKeywords),
			)
			if err != nil {
				return fmt.Errorf("error saving summary %s/%s: %w", group, theme, err)
			}
		}
	}

	return tx.Commit()
}

func (s *PostgresStorage) bankID(tx *sql.Tx, cache map[string]int64, name string) (int64, error) {
	if id, ok := cache[name]; ok {
		return id, nil
	}

	var id int64
	err := tx.QueryRow(`
		INSERT INTO banks (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error upserting bank %s: %w", name, err)
	}

	cache[name] = id
	return id, nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
