package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"filmorate-backend/internal/domains/film/model"
	refmodel "filmorate-backend/internal/domains/reference/model"
	"filmorate-backend/pkg/cache"
	"filmorate-backend/pkg/database"
)

// postgresRepository implements RepositoryInterface on pgxpool.
// The scalar film row (with its MPA rating) is cached read-through;
// genres and like counts are always read from the junction tables.
type postgresRepository struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache, ttl time.Duration) RepositoryInterface {
	return &postgresRepository{
		pool:     pool,
		cache:    c,
		cacheTTL: ttl,
	}
}

const filmCacheKeyPrefix = "film:"

const selectFilm = `
    SELECT f.film_id, f.name, f.description, f.release_date, f.duration,
           m.mpa_id, m.name, m.description
    FROM films f
    JOIN mpa_ratings m ON m.mpa_id = f.mpa_id
`

func filmCacheKey(id int64) string {
	return filmCacheKeyPrefix + strconv.FormatInt(id, 10)
}

func scanFilm(row pgx.Row, f *model.Film) error {
	return row.Scan(
		&f.ID,
		&f.Name,
		&f.Description,
		&f.ReleaseDate,
		&f.Duration,
		&f.Mpa.ID,
		&f.Mpa.Name,
		&f.Mpa.Description,
	)
}

// mapWriteError translates constraint violations on films, film_genres and film_likes
func mapWriteError(err error, filmID, userID int64) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23503" { // foreign_key_violation
		return err
	}
	switch pgErr.ConstraintName {
	case "films_mpa_id_fkey":
		return fmt.Errorf("%w: %s", refmodel.ErrMpaNotFound, pgErr.Detail)
	case "film_genres_genre_id_fkey":
		return fmt.Errorf("%w: %s", refmodel.ErrGenreNotFound, pgErr.Detail)
	case "film_likes_user_id_fkey":
		return model.NewLikerNotFound(userID)
	case "film_likes_film_id_fkey", "film_genres_film_id_fkey":
		return model.NewFilmNotFound(filmID)
	}
	return err
}

func (r *postgresRepository) Create(ctx context.Context, f *model.Film) (*model.Film, error) {
	var id int64
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
            INSERT INTO films (name, description, release_date, duration, mpa_id)
            VALUES ($1, $2, $3, $4, $5)
            RETURNING film_id
        `, f.Name, f.Description, f.ReleaseDate, f.Duration, f.Mpa.ID).Scan(&id)
		if err != nil {
			return mapWriteError(err, 0, 0)
		}
		return insertGenres(ctx, tx, id, f.GenreIDs())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create film: %w", err)
	}

	return r.mustFind(ctx, id)
}

func (r *postgresRepository) Update(ctx context.Context, f *model.Film) (*model.Film, error) {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
            UPDATE films
            SET name         = $2,
                description  = COALESCE($3, description),
                release_date = $4,
                duration     = COALESCE($5, duration),
                mpa_id       = $6
            WHERE film_id = $1
        `, f.ID, f.Name, f.Description, f.ReleaseDate, f.Duration, f.Mpa.ID)
		if err != nil {
			return mapWriteError(err, f.ID, 0)
		}
		if tag.RowsAffected() == 0 {
			return model.NewFilmNotFound(f.ID)
		}

		if f.Genres == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM film_genres WHERE film_id = $1`, f.ID); err != nil {
			return fmt.Errorf("failed to clear film genres: %w", err)
		}
		return insertGenres(ctx, tx, f.ID, f.GenreIDs())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update film: %w", err)
	}

	if err := r.cache.Delete(ctx, filmCacheKey(f.ID)); err != nil {
		log.Warn().Err(err).Int64("film_id", f.ID).Msg("Failed to invalidate film cache")
	}

	return r.mustFind(ctx, f.ID)
}

func insertGenres(ctx context.Context, tx pgx.Tx, filmID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
        INSERT INTO film_genres (film_id, genre_id)
        SELECT $1, g FROM unnest($2::bigint[]) AS g
        ON CONFLICT DO NOTHING
    `, filmID, genreIDs)
	if err != nil {
		return mapWriteError(err, filmID, 0)
	}
	return nil
}

// loadRow reads the scalar film row, cache first
func (r *postgresRepository) loadRow(ctx context.Context, id int64) (*model.Film, bool, error) {
	key := filmCacheKey(id)

	var f model.Film
	if hit, err := r.cache.Get(ctx, key, &f); err == nil && hit {
		return &f, true, nil
	}

	err := scanFilm(r.pool.QueryRow(ctx, selectFilm+` WHERE f.film_id = $1`, id), &f)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get film by id: %w", err)
	}

	if err := r.cache.Set(ctx, key, f, r.cacheTTL); err != nil {
		log.Debug().Err(err).Int64("film_id", id).Msg("Failed to cache film")
	}
	return &f, true, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Film, bool, error) {
	f, found, err := r.loadRow(ctx, id)
	if err != nil || !found {
		return nil, found, err
	}
	if err := r.enrich(ctx, []*model.Film{f}); err != nil {
		return nil, false, err
	}
	return f, true, nil
}

func (r *postgresRepository) mustFind(ctx context.Context, id int64) (*model.Film, error) {
	f, found, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.NewFilmNotFound(id)
	}
	return f, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]*model.Film, error) {
	films, err := r.queryFilms(ctx, selectFilm+` ORDER BY f.film_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list films: %w", err)
	}
	if err := r.enrich(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

func (r *postgresRepository) queryFilms(ctx context.Context, query string, args ...interface{}) ([]*model.Film, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var films []*model.Film
	for rows.Next() {
		var f model.Film
		if err := scanFilm(rows, &f); err != nil {
			return nil, fmt.Errorf("failed to scan film: %w", err)
		}
		films = append(films, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return films, nil
}

// enrich fills Genres and Rate for all films with one query per association,
// both issued concurrently
func (r *postgresRepository) enrich(ctx context.Context, films []*model.Film) error {
	if len(films) == 0 {
		return nil
	}
	ids := make([]int64, len(films))
	for i, f := range films {
		ids[i] = f.ID
	}

	genres := make(map[int64][]refmodel.Genre, len(films))
	likes := make(map[int64]int, len(films))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := r.pool.Query(gctx, `
            SELECT fg.film_id, g.genre_id, g.name
            FROM film_genres fg
            JOIN genres g ON g.genre_id = fg.genre_id
            WHERE fg.film_id = ANY($1)
            ORDER BY fg.film_id, g.genre_id
        `, ids)
		if err != nil {
			return fmt.Errorf("failed to load film genres: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var filmID int64
			var genre refmodel.Genre
			if err := rows.Scan(&filmID, &genre.ID, &genre.Name); err != nil {
				return fmt.Errorf("failed to scan film genre: %w", err)
			}
			genres[filmID] = append(genres[filmID], genre)
		}
		return rows.Err()
	})

	g.Go(func() error {
		rows, err := r.pool.Query(gctx, `
            SELECT film_id, COUNT(*)
            FROM film_likes
            WHERE film_id = ANY($1)
            GROUP BY film_id
        `, ids)
		if err != nil {
			return fmt.Errorf("failed to load like counts: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var filmID, count int64
			if err := rows.Scan(&filmID, &count); err != nil {
				return fmt.Errorf("failed to scan like count: %w", err)
			}
			likes[filmID] = int(count)
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return err
	}

	for _, f := range films {
		f.Genres = genres[f.ID]
		if f.Genres == nil {
			f.Genres = []refmodel.Genre{}
		}
		f.Rate = likes[f.ID]
	}
	return nil
}

func (r *postgresRepository) AddLike(ctx context.Context, filmID, userID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
        INSERT INTO film_likes (film_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `, filmID, userID)
	if err != nil {
		return false, mapWriteError(err, filmID, userID)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *postgresRepository) RemoveLike(ctx context.Context, filmID, userID int64) (bool, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (bool, error) {
		if err := ensureFilm(ctx, tx, filmID); err != nil {
			return false, err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM film_likes WHERE film_id = $1 AND user_id = $2`, filmID, userID)
		if err != nil {
			return false, fmt.Errorf("failed to remove like: %w", err)
		}
		return tag.RowsAffected() == 1, nil
	})
}

func ensureFilm(ctx context.Context, q pgx.Tx, filmID int64) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM films WHERE film_id = $1)`, filmID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check film: %w", err)
	}
	if !exists {
		return model.NewFilmNotFound(filmID)
	}
	return nil
}

func (r *postgresRepository) LikesOf(ctx context.Context, filmID int64) (int, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
        SELECT COUNT(l.user_id)
        FROM films f
        LEFT JOIN film_likes l ON l.film_id = f.film_id
        WHERE f.film_id = $1
        GROUP BY f.film_id
    `, filmID).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.NewFilmNotFound(filmID)
		}
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return int(count), nil
}

func (r *postgresRepository) LikersOf(ctx context.Context, filmID int64) ([]int64, error) {
	var ids []int64
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := ensureFilm(ctx, tx, filmID); err != nil {
			return err
		}
		rows, err := tx.Query(ctx, `SELECT user_id FROM film_likes WHERE film_id = $1 ORDER BY user_id`, filmID)
		if err != nil {
			return fmt.Errorf("failed to list likers: %w", err)
		}
		ids, err = pgx.CollectRows(rows, pgx.RowTo[int64])
		return err
	})
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func (r *postgresRepository) LikedBy(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT film_id FROM film_likes WHERE user_id = $1 ORDER BY film_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked films: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to scan liked films: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func (r *postgresRepository) Popular(ctx context.Context, limit int) ([]*model.Film, error) {
	if limit <= 0 {
		limit = model.DefaultPopularLimit
	}

	films, err := r.queryFilms(ctx, `
        SELECT f.film_id, f.name, f.description, f.release_date, f.duration,
               m.mpa_id, m.name, m.description
        FROM films f
        JOIN mpa_ratings m ON m.mpa_id = f.mpa_id
        LEFT JOIN film_likes l ON l.film_id = f.film_id
        GROUP BY f.film_id, m.mpa_id
        ORDER BY COUNT(l.user_id) DESC, f.film_id ASC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query popular films: %w", err)
	}
	if err := r.enrich(ctx, films); err != nil {
		return nil, err
	}

	// counts are re-read by enrich, keep the ordering consistent with them
	return RankPopular(films, limit), nil
}
