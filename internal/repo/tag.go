package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oskarlindh/people-api/internal/domain"
	"github.com/oskarlindh/people-api/internal/store"
)

// TagRepo defines the persistence operations for Tags.
// Linking tags to posts lives on PostRepo, which owns the post_tags table.
type TagRepo interface {
	// FindAll returns all tags ordered by id.
	FindAll(ctx context.Context) ([]domain.Tag, error)

	// FindByID retrieves a single tag by primary key.
	// Returns domain.ErrNotFound if no tag with that ID exists.
	FindByID(ctx context.Context, id int64) (domain.Tag, error)

	// Save inserts the tag when ID is zero and updates its label otherwise,
	// returning the persisted record.
	Save(ctx context.Context, tag domain.Tag) (domain.Tag, error)
}

// pgTagRepo is the Postgres implementation of TagRepo.
type pgTagRepo struct {
	db store.Querier
}

// NewTagRepo constructs a TagRepo backed by the provided db connection.
func NewTagRepo(db store.Querier) TagRepo {
	return &pgTagRepo{db: db}
}

func (r *pgTagRepo) FindAll(ctx context.Context) ([]domain.Tag, error) {
	const q = `
		SELECT id, label, created_at
		FROM tags
		ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.FindAll: %w", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TagRepo.FindAll: scan: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TagRepo.FindAll: rows: %w", err)
	}
	return tags, nil
}

func (r *pgTagRepo) FindByID(ctx context.Context, id int64) (domain.Tag, error) {
	const q = `
		SELECT id, label, created_at
		FROM tags
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTag(row)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.FindByID: %w", err)
	}
	return result, nil
}

func (r *pgTagRepo) Save(ctx context.Context, tag domain.Tag) (domain.Tag, error) {
	var row pgx.Row
	if tag.ID == 0 {
		const q = `
			INSERT INTO tags (label)
			VALUES (@label)
			RETURNING id, label, created_at`
		row = r.db.QueryRow(ctx, q, pgx.NamedArgs{"label": tag.Label})
	} else {
		const q = `
			UPDATE tags
			SET label = @label
			WHERE id = @id
			RETURNING id, label, created_at`
		row = r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": tag.ID, "label": tag.Label})
	}

	result, err := scanTag(row)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.Save: %w", err)
	}
	return result, nil
}

// scanTag maps a single database row into a domain.Tag.
func scanTag(s scanner) (domain.Tag, error) {
	var t domain.Tag
	err := s.Scan(&t.ID, &t.Label, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Tag{}, domain.ErrNotFound
		}
		return domain.Tag{}, err
	}
	return t, nil
}
