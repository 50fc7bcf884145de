package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/thermochef/backend/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS conversions (
	id UUID PRIMARY KEY,
	device_model TEXT NOT NULL,
	title TEXT NOT NULL,
	source TEXT NOT NULL,
	payload JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS conversions_created_at_idx ON conversions (created_at DESC);
`

// conversionRow is the stored form of a ConvertedRecipe
type conversionRow struct {
	ID          string    `db:"id"`
	DeviceModel string    `db:"device_model"`
	Title       string    `db:"title"`
	Source      string    `db:"source"`
	Payload     []byte    `db:"payload"`
	CreatedAt   time.Time `db:"created_at"`
}

// ConversionStore persists converted recipes in PostgreSQL
type ConversionStore struct {
	db *sqlx.DB
}

// NewConversionStore connects to dsn and creates the schema when missing
func NewConversionStore(ctx context.Context, dsn string) (*ConversionStore, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create conversions table: %w", err)
	}

	return &ConversionStore{db: db}, nil
}

// Save inserts a conversion; saving the same ID twice overwrites it
func (s *ConversionStore) Save(ctx context.Context, recipe *domain.ConvertedRecipe) error {
	row, err := toRow(recipe)
	if err != nil {
		return err
	}

	_, err = s.db.NamedExecContext(ctx, `
		INSERT INTO conversions (id, device_model, title, source, payload, created_at)
		VALUES (:id, :device_model, :title, :source, :payload, :created_at)
		ON CONFLICT (id) DO UPDATE SET
			device_model = EXCLUDED.device_model,
			title = EXCLUDED.title,
			source = EXCLUDED.source,
			payload = EXCLUDED.payload,
			created_at = EXCLUDED.created_at`, row)
	if err != nil {
		return fmt.Errorf("failed to save conversion %s: %w", recipe.ID, err)
	}
	return nil
}

// GetByID loads a conversion; a missing row is domain.ErrConversionNotFound
func (s *ConversionStore) GetByID(ctx context.Context, id string) (*domain.ConvertedRecipe, error) {
	var row conversionRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, device_model, title, source, payload, created_at FROM conversions WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConversionNotFound
		}
		return nil, fmt.Errorf("failed to get conversion %s: %w", id, err)
	}
	return fromRow(row)
}

// Close closes the connection pool
func (s *ConversionStore) Close() error {
	return s.db.Close()
}

func toRow(recipe *domain.ConvertedRecipe) (conversionRow, error) {
	if recipe == nil || recipe.ID == "" {
		return conversionRow{}, fmt.Errorf("%w: conversion has no id", domain.ErrInvalidRequest)
	}

	payload, err := json.Marshal(recipe)
	if err != nil {
		return conversionRow{}, fmt.Errorf("failed to encode conversion: %w", err)
	}

	createdAt := recipe.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return conversionRow{
		ID:          recipe.ID,
		DeviceModel: string(recipe.DeviceModel),
		Title:       recipe.Title,
		Source:      string(recipe.Source),
		Payload:     payload,
		CreatedAt:   createdAt.UTC(),
	}, nil
}

func fromRow(row conversionRow) (*domain.ConvertedRecipe, error) {
	var recipe domain.ConvertedRecipe
	if err := json.Unmarshal(row.Payload, &recipe); err != nil {
		return nil, fmt.Errorf("failed to decode conversion %s: %w", row.ID, err)
	}
	recipe.ID = row.ID
	recipe.CreatedAt = row.CreatedAt.UTC()
	return &recipe, nil
}
