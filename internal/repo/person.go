// Package repo contains all database access logic for the People API.
// Each entity has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oskarlindh/people-api/internal/domain"
	"github.com/oskarlindh/people-api/internal/store"
)

// PersonRepo defines the persistence operations for Persons and their
// owned Profiles. The service layer depends on this interface, not the
// concrete Postgres implementation, which allows the service to be
// unit-tested with a mock.
type PersonRepo interface {
	// FindAll returns all persons with their profiles attached, ordered by id.
	// An empty database yields an empty slice, not an error.
	FindAll(ctx context.Context) ([]domain.Person, error)

	// FindByID retrieves a single person (with profile) by primary key.
	// Returns domain.ErrNotFound if no person with that ID exists.
	FindByID(ctx context.Context, id int64) (domain.Person, error)

	// Save inserts the person when ID is zero and updates it otherwise,
	// returning the persisted record with DB-generated fields populated.
	// The attached Profile is persisted in the same transaction; on update,
	// a newly attached profile replaces any existing one. If the profile
	// write fails the person write is rolled back.
	Save(ctx context.Context, person domain.Person) (domain.Person, error)

	// DeleteByID removes a person and cascades to its owned rows — the
	// post_tags links of its posts, the posts, and the profile — inside one
	// transaction. It returns the number of person rows deleted (0 or 1),
	// so callers can report not-found without a separate lookup.
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

// pgPersonRepo is the Postgres implementation of PersonRepo.
type pgPersonRepo struct {
	db store.Querier
}

// NewPersonRepo constructs a PersonRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPersonRepo(db store.Querier) PersonRepo {
	return &pgPersonRepo{db: db}
}

const selectPerson = `
	SELECT p.id, p.name, p.email, p.created_at,
	       pr.id, pr.age, pr.shoe_size, pr.bio
	FROM persons p
	LEFT JOIN profiles pr ON pr.person_id = p.id`

// FindAll returns every person, profile included where one is attached.
func (r *pgPersonRepo) FindAll(ctx context.Context) ([]domain.Person, error) {
	rows, err := r.db.Query(ctx, selectPerson+` ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("repo.PersonRepo.FindAll: %w", err)
	}
	defer rows.Close()

	persons := []domain.Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PersonRepo.FindAll: scan: %w", err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PersonRepo.FindAll: rows: %w", err)
	}
	return persons, nil
}

// FindByID retrieves a person by primary key.
func (r *pgPersonRepo) FindByID(ctx context.Context, id int64) (domain.Person, error) {
	row := r.db.QueryRow(ctx, selectPerson+` WHERE p.id = @id`, pgx.NamedArgs{"id": id})
	result, err := scanPerson(row)
	if err != nil {
		return domain.Person{}, fmt.Errorf("repo.PersonRepo.FindByID: %w", err)
	}
	return result, nil
}

// Save persists the person and its profile as one unit of work.
func (r *pgPersonRepo) Save(ctx context.Context, person domain.Person) (domain.Person, error) {
	err := store.WithinTx(ctx, r.db, func(tx pgx.Tx) error {
		if person.ID == 0 {
			const q = `
				INSERT INTO persons (name, email)
				VALUES (@name, @email)
				RETURNING id, created_at`

			args := pgx.NamedArgs{"name": person.Name, "email": person.Email}
			if err := tx.QueryRow(ctx, q, args).Scan(&person.ID, &person.CreatedAt); err != nil {
				return err
			}
		} else {
			const q = `
				UPDATE persons
				SET name = @name, email = @email
				WHERE id = @id
				RETURNING created_at`

			args := pgx.NamedArgs{"id": person.ID, "name": person.Name, "email": person.Email}
			if err := tx.QueryRow(ctx, q, args).Scan(&person.CreatedAt); err != nil {
				return err
			}
		}

		if person.Profile == nil {
			return nil
		}

		// A person owns at most one profile: drop any previous row before
		// inserting, so re-attaching replaces rather than conflicts.
		const del = `DELETE FROM profiles WHERE person_id = @person_id`
		if _, err := tx.Exec(ctx, del, pgx.NamedArgs{"person_id": person.ID}); err != nil {
			return err
		}

		const ins = `
			INSERT INTO profiles (person_id, age, shoe_size, bio)
			VALUES (@person_id, @age, @shoe_size, @bio)
			RETURNING id`

		args := pgx.NamedArgs{
			"person_id": person.ID,
			"age":       person.Profile.Age,
			"shoe_size": person.Profile.ShoeSize,
			"bio":       person.Profile.Bio,
		}
		return tx.QueryRow(ctx, ins, args).Scan(&person.Profile.ID)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Person{}, fmt.Errorf("repo.PersonRepo.Save: %w", domain.ErrNotFound)
		}
		return domain.Person{}, fmt.Errorf("repo.PersonRepo.Save: %w", err)
	}
	return person, nil
}

// DeleteByID removes a person and everything it owns in one transaction.
// The cascade order matters: join rows first, then posts, then profile,
// then the person row itself.
func (r *pgPersonRepo) DeleteByID(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := store.WithinTx(ctx, r.db, func(tx pgx.Tx) error {
		args := pgx.NamedArgs{"id": id}

		const delLinks = `
			DELETE FROM post_tags
			WHERE post_id IN (SELECT id FROM posts WHERE person_id = @id)`
		if _, err := tx.Exec(ctx, delLinks, args); err != nil {
			return err
		}

		const delPosts = `DELETE FROM posts WHERE person_id = @id`
		if _, err := tx.Exec(ctx, delPosts, args); err != nil {
			return err
		}

		const delProfile = `DELETE FROM profiles WHERE person_id = @id`
		if _, err := tx.Exec(ctx, delProfile, args); err != nil {
			return err
		}

		const delPerson = `DELETE FROM persons WHERE id = @id`
		tag, err := tx.Exec(ctx, delPerson, args)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("repo.PersonRepo.DeleteByID: %w", err)
	}
	return affected, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanPerson maps one LEFT JOIN row into a domain.Person, attaching the
// profile only when the joined columns are non-NULL.
func scanPerson(s scanner) (domain.Person, error) {
	var (
		p         domain.Person
		profileID *int64
		age       *int
		shoeSize  *int
		bio       *string
	)

	err := s.Scan(&p.ID, &p.Name, &p.Email, &p.CreatedAt, &profileID, &age, &shoeSize, &bio)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Person{}, domain.ErrNotFound
		}
		return domain.Person{}, err
	}

	if profileID != nil {
		p.Profile = &domain.Profile{ID: *profileID, Age: *age, ShoeSize: *shoeSize, Bio: *bio}
	}
	return p, nil
}
