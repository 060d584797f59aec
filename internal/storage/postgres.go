package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/snipnote/snipnote/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

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

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	storage := &PostgresStorage{db: db}

	// Initialize database schema
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

func (s *PostgresStorage) ListByUser(ctx context.Context, userID string) ([]models.Note, error) {
	query := `
		SELECT id, user_id, title, content, list_type, one_click_copy, created_at, updated_at
		FROM notes
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(
			&note.ID,
			&note.UserID,
			&note.Title,
			&note.Content,
			&note.ListType,
			&note.OneClickCopy,
			&note.CreatedAt,
			&note.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}

	return notes, nil
}

func (s *PostgresStorage) Get(ctx context.Context, id string) (models.Note, error) {
	query := `
		SELECT id, user_id, title, content, list_type, one_click_copy, created_at, updated_at
		FROM notes
		WHERE id = $1`

	var note models.Note
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.ListType,
		&note.OneClickCopy,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, ErrNotFound
	}
	if err != nil {
		return models.Note{}, fmt.Errorf("error getting note: %w", err)
	}

	return note, nil
}

func (s *PostgresStorage) Create(ctx context.Context, note models.Note) (models.Note, error) {
	note.ID = uuid.New().String()
	if note.ListType == "" {
		note.ListType = models.ListTypeDefault
	}

	query := `
		INSERT INTO notes (id, user_id, title, content, list_type, one_click_copy)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := s.db.QueryRowContext(
		ctx,
		query,
		note.ID,
		note.UserID,
		note.Title,
		note.Content,
		note.ListType,
		note.OneClickCopy,
	).Scan(&note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return models.Note{}, fmt.Errorf("error creating note: %w", err)
	}

	return note, nil
}

func (s *PostgresStorage) Update(ctx context.Context, note models.Note) (models.Note, error) {
	query := `
		UPDATE notes
		SET title = $2, content = $3, list_type = $4, one_click_copy = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING user_id, created_at, updated_at`

	err := s.db.QueryRowContext(
		ctx,
		query,
		note.ID,
		note.Title,
		note.Content,
		note.ListType,
		note.OneClickCopy,
	).Scan(&note.UserID, &note.CreatedAt, &note.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, ErrNotFound
	}
	if err != nil {
		return models.Note{}, fmt.Errorf("error updating note: %w", err)
	}

	return note, nil
}

func (s *PostgresStorage) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
