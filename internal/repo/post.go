package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oskarlindh/people-api/internal/domain"
	"github.com/oskarlindh/people-api/internal/store"
)

// PostRepo defines the persistence operations for Posts and their tag links.
type PostRepo interface {
	// FindAll returns all posts with their tags, ordered by id.
	FindAll(ctx context.Context) ([]domain.Post, error)

	// FindByID retrieves a single post by primary key, tags included.
	// Returns domain.ErrNotFound if no post with that ID exists.
	FindByID(ctx context.Context, id int64) (domain.Post, error)

	// FindByPersonID returns all posts written by one person, ordered by id.
	// An unknown person yields an empty slice, not an error.
	FindByPersonID(ctx context.Context, personID int64) ([]domain.Post, error)

	// Save inserts the post when ID is zero and updates it otherwise, then
	// persists the in-memory tag set to post_tags in the same transaction.
	// Re-linking an already-linked tag is a no-op, not a duplicate row.
	Save(ctx context.Context, post domain.Post) (domain.Post, error)

	// DeleteByID removes a post and its tag links, returning the number of
	// post rows deleted (0 or 1). Tags themselves are never touched.
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

// pgPostRepo is the Postgres implementation of PostRepo.
type pgPostRepo struct {
	db store.Querier
}

// NewPostRepo constructs a PostRepo backed by the provided db connection.
func NewPostRepo(db store.Querier) PostRepo {
	return &pgPostRepo{db: db}
}

const selectPost = `
	SELECT id, person_id, title, content, created_at
	FROM posts`

func (r *pgPostRepo) FindAll(ctx context.Context) ([]domain.Post, error) {
	posts, err := r.queryPosts(ctx, selectPost+` ORDER BY id`, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.PostRepo.FindAll: %w", err)
	}
	return posts, nil
}

func (r *pgPostRepo) FindByID(ctx context.Context, id int64) (domain.Post, error) {
	row := r.db.QueryRow(ctx, selectPost+` WHERE id = @id`, pgx.NamedArgs{"id": id})
	post, err := scanPost(row)
	if err != nil {
		return domain.Post{}, fmt.Errorf("repo.PostRepo.FindByID: %w", err)
	}
	if post.Tags, err = r.tagsFor(ctx, post.ID); err != nil {
		return domain.Post{}, fmt.Errorf("repo.PostRepo.FindByID: %w", err)
	}
	return post, nil
}

func (r *pgPostRepo) FindByPersonID(ctx context.Context, personID int64) ([]domain.Post, error) {
	q := selectPost + ` WHERE person_id = @person_id ORDER BY id`
	posts, err := r.queryPosts(ctx, q, pgx.NamedArgs{"person_id": personID})
	if err != nil {
		return nil, fmt.Errorf("repo.PostRepo.FindByPersonID: %w", err)
	}
	return posts, nil
}

// Save persists the post row and syncs its tag links as one unit of work.
func (r *pgPostRepo) Save(ctx context.Context, post domain.Post) (domain.Post, error) {
	err := store.WithinTx(ctx, r.db, func(tx pgx.Tx) error {
		if post.ID == 0 {
			const q = `
				INSERT INTO posts (person_id, title, content)
				VALUES (@person_id, @title, @content)
				RETURNING id, created_at`

			args := pgx.NamedArgs{"person_id": post.PersonID, "title": post.Title, "content": post.Content}
			if err := tx.QueryRow(ctx, q, args).Scan(&post.ID, &post.CreatedAt); err != nil {
				return err
			}
		} else {
			const q = `
				UPDATE posts
				SET title = @title, content = @content
				WHERE id = @id
				RETURNING created_at`

			args := pgx.NamedArgs{"id": post.ID, "title": post.Title, "content": post.Content}
			if err := tx.QueryRow(ctx, q, args).Scan(&post.CreatedAt); err != nil {
				return err
			}
		}

		// ON CONFLICT DO NOTHING keeps the (post, tag) relation a pure set:
		// saving the same association twice leaves a single join row.
		const link = `
			INSERT INTO post_tags (post_id, tag_id)
			VALUES (@post_id, @tag_id)
			ON CONFLICT (post_id, tag_id) DO NOTHING`

		for _, t := range post.Tags {
			args := pgx.NamedArgs{"post_id": post.ID, "tag_id": t.ID}
			if _, err := tx.Exec(ctx, link, args); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Post{}, fmt.Errorf("repo.PostRepo.Save: %w", domain.ErrNotFound)
		}
		return domain.Post{}, fmt.Errorf("repo.PostRepo.Save: %w", err)
	}
	return post, nil
}

func (r *pgPostRepo) DeleteByID(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := store.WithinTx(ctx, r.db, func(tx pgx.Tx) error {
		args := pgx.NamedArgs{"id": id}

		const delLinks = `DELETE FROM post_tags WHERE post_id = @id`
		if _, err := tx.Exec(ctx, delLinks, args); err != nil {
			return err
		}

		const delPost = `DELETE FROM posts WHERE id = @id`
		tag, err := tx.Exec(ctx, delPost, args)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("repo.PostRepo.DeleteByID: %w", err)
	}
	return affected, nil
}

// queryPosts runs a multi-row post query and loads the tag set of each post.
func (r *pgPostRepo) queryPosts(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Post, error) {
	var rows pgx.Rows
	var err error
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	for i := range posts {
		if posts[i].Tags, err = r.tagsFor(ctx, posts[i].ID); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// tagsFor returns the tags linked to one post, ordered by tag id.
func (r *pgPostRepo) tagsFor(ctx context.Context, postID int64) ([]domain.Tag, error) {
	const q = `
		SELECT t.id, t.label, t.created_at
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = @post_id
		ORDER BY t.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"post_id": postID})
	if err != nil {
		return nil, fmt.Errorf("tags: %w", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("tags: scan: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tags: rows: %w", err)
	}
	return tags, nil
}

// scanPost maps a single database row into a domain.Post.
// Tags are loaded separately by the caller.
func scanPost(s scanner) (domain.Post, error) {
	var p domain.Post
	err := s.Scan(&p.ID, &p.PersonID, &p.Title, &p.Content, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Post{}, domain.ErrNotFound
		}
		return domain.Post{}, err
	}
	return p, nil
}
