package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// ════════════════════════════════════════════════════════════════
// MIGRATION 001: REFERENCE TABLES
// ════════════════════════════════════════════════════════════════

const migration001Up = `
CREATE TABLE IF NOT EXISTS mpa_ratings (
    mpa_id      BIGINT PRIMARY KEY,
    name        VARCHAR(10)  NOT NULL UNIQUE,
    description VARCHAR(255) NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS genres (
    genre_id BIGINT PRIMARY KEY,
    name     VARCHAR(50) NOT NULL UNIQUE
);

INSERT INTO mpa_ratings (mpa_id, name, description) VALUES
    (1, 'G',     'У фильма нет возрастных ограничений'),
    (2, 'PG',    'Детям рекомендуется смотреть фильм с родителями'),
    (3, 'PG-13', 'Детям до 13 лет просмотр не желателен'),
    (4, 'R',     'Лицам до 17 лет просматривать фильм можно только в присутствии взрослого'),
    (5, 'NC-17', 'Лицам до 18 лет просмотр запрещён')
ON CONFLICT (mpa_id) DO NOTHING;

INSERT INTO genres (genre_id, name) VALUES
    (1, 'Комедия'),
    (2, 'Драма'),
    (3, 'Мультфильм'),
    (4, 'Триллер'),
    (5, 'Документальный'),
    (6, 'Боевик')
ON CONFLICT (genre_id) DO NOTHING;
`

// ════════════════════════════════════════════════════════════════
// MIGRATION 002: FILMS + GENRES
// ════════════════════════════════════════════════════════════════

const migration002Up = `
CREATE TABLE IF NOT EXISTS films (
    film_id      BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    name         VARCHAR(255) NOT NULL,
    description  VARCHAR(200),
    release_date DATE NOT NULL,
    duration     INTEGER,
    mpa_id       BIGINT NOT NULL REFERENCES mpa_ratings(mpa_id),

    CONSTRAINT films_valid_duration CHECK (duration IS NULL OR duration > 0),
    CONSTRAINT films_valid_release  CHECK (release_date >= DATE '1895-12-28')
);

CREATE TABLE IF NOT EXISTS film_genres (
    film_id  BIGINT NOT NULL REFERENCES films(film_id) ON DELETE CASCADE,
    genre_id BIGINT NOT NULL REFERENCES genres(genre_id),
    PRIMARY KEY (film_id, genre_id)
);

CREATE INDEX IF NOT EXISTS idx_film_genres_genre_id ON film_genres(genre_id);
`

// ════════════════════════════════════════════════════════════════
// MIGRATION 003: USERS + FRIENDSHIPS + LIKES
// ════════════════════════════════════════════════════════════════

const migration003Up = `
CREATE TABLE IF NOT EXISTS users (
    user_id  BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    login    VARCHAR(100) NOT NULL,
    name     VARCHAR(255) NOT NULL DEFAULT '',
    email    VARCHAR(255) NOT NULL,
    birthday DATE,

    CONSTRAINT users_login_key UNIQUE (login)
);

-- symmetric model: every friendship is stored as two rows (a,b) and (b,a)
CREATE TABLE IF NOT EXISTS friendships (
    user_id   BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    friend_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    PRIMARY KEY (user_id, friend_id),

    CONSTRAINT friendships_no_self CHECK (user_id <> friend_id)
);

CREATE INDEX IF NOT EXISTS idx_friendships_friend_id ON friendships(friend_id);

CREATE TABLE IF NOT EXISTS film_likes (
    film_id BIGINT NOT NULL REFERENCES films(film_id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    PRIMARY KEY (film_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_film_likes_user_id ON film_likes(user_id);
`

type migration struct {
	version int
	name    string
	up      string
}

var migrations = []migration{
	{version: 1, name: "reference_tables", up: migration001Up},
	{version: 2, name: "films", up: migration002Up},
	{version: 3, name: "users_and_relations", up: migration003Up},
}

// Migrate applies pending migrations in order, each inside its own transaction
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS schema_migrations (
            version    INTEGER PRIMARY KEY,
            name       VARCHAR(100) NOT NULL,
            applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var applied bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, m.version,
		).Scan(&applied)
		if err != nil {
			return fmt.Errorf("failed to check migration %03d: %w", m.version, err)
		}
		if applied {
			continue
		}

		err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.up); err != nil {
				return err
			}
			_, err := tx.Exec(ctx,
				`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.version, m.name)
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %03d_%s failed: %w", m.version, m.name, err)
		}

		log.Info().Int("version", m.version).Str("name", m.name).Msg("[DATABASE] Migration applied")
	}

	return nil
}
