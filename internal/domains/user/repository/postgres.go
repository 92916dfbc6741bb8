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

	"filmorate-backend/internal/domains/user/model"
	"filmorate-backend/pkg/cache"
	"filmorate-backend/pkg/database"
)

// postgresRepository implements RepositoryInterface on pgxpool.
// A friendship a-b is stored as the rows (a,b) and (b,a), written and
// deleted together in one transaction.
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

const userCacheKeyPrefix = "user:"

const selectUser = `SELECT u.user_id, u.login, u.name, u.email, u.birthday FROM users u`

func userCacheKey(id int64) string {
	return userCacheKeyPrefix + strconv.FormatInt(id, 10)
}

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(&u.ID, &u.Login, &u.Name, &u.Email, &u.Birthday)
}

// mapWriteError translates constraint violations on users and friendships
func mapWriteError(err error, login string, a, b int64) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505": // unique_violation
		if pgErr.ConstraintName == "users_login_key" {
			return model.NewDuplicateLogin(login)
		}
	case "23503": // foreign_key_violation
		switch pgErr.ConstraintName {
		case "friendships_user_id_fkey":
			return model.NewUserNotFound(a)
		case "friendships_friend_id_fkey":
			return model.NewUserNotFound(b)
		}
	case "23514": // check_violation
		if pgErr.ConstraintName == "friendships_no_self" {
			return model.ErrSelfFriendship
		}
	}
	return err
}

func (r *postgresRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	in := u.Clone()
	in.ApplyNameDefault()

	var created model.User
	err := scanUser(r.pool.QueryRow(ctx, `
        INSERT INTO users (login, name, email, birthday)
        VALUES ($1, $2, $3, $4)
        RETURNING user_id, login, name, email, birthday
    `, in.Login, in.Name, in.Email, in.Birthday), &created)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", mapWriteError(err, in.Login, 0, 0))
	}

	created.Friends = []int64{}
	return &created, nil
}

func (r *postgresRepository) Update(ctx context.Context, u *model.User) (*model.User, error) {
	tag, err := r.pool.Exec(ctx, `
        UPDATE users
        SET login    = $2,
            name     = COALESCE(NULLIF(BTRIM($3), ''), name),
            email    = $4,
            birthday = COALESCE($5, birthday)
        WHERE user_id = $1
    `, u.ID, u.Login, u.Name, u.Email, u.Birthday)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", mapWriteError(err, u.Login, 0, 0))
	}
	if tag.RowsAffected() == 0 {
		return nil, model.NewUserNotFound(u.ID)
	}

	if err := r.cache.Delete(ctx, userCacheKey(u.ID)); err != nil {
		log.Warn().Err(err).Int64("user_id", u.ID).Msg("Failed to invalidate user cache")
	}

	updated, found, err := r.FindByID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.NewUserNotFound(u.ID)
	}
	return updated, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.User, bool, error) {
	key := userCacheKey(id)

	var u model.User
	hit, err := r.cache.Get(ctx, key, &u)
	if err != nil || !hit {
		err = scanUser(r.pool.QueryRow(ctx, selectUser+` WHERE u.user_id = $1`, id), &u)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, false, nil
			}
			return nil, false, fmt.Errorf("failed to get user by id: %w", err)
		}
		if err := r.cache.Set(ctx, key, u, r.cacheTTL); err != nil {
			log.Debug().Err(err).Int64("user_id", id).Msg("Failed to cache user")
		}
	}

	friends, err := r.friendIDs(ctx, r.pool, id)
	if err != nil {
		return nil, false, err
	}
	u.Friends = friends
	return &u, true, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	users, err := r.queryUsers(ctx, selectUser+` ORDER BY u.user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, r.enrich(ctx, users)
}

func (r *postgresRepository) FindByIDs(ctx context.Context, ids []int64) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}
	users, err := r.queryUsers(ctx, selectUser+` WHERE u.user_id = ANY($1) ORDER BY u.user_id`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}
	return users, r.enrich(ctx, users)
}

func (r *postgresRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]*model.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return users, nil
}

// enrich loads the friend sets of all users with a single query
func (r *postgresRepository) enrich(ctx context.Context, users []*model.User) error {
	if len(users) == 0 {
		return nil
	}
	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
		u.Friends = []int64{}
	}

	rows, err := r.pool.Query(ctx, `
        SELECT user_id, friend_id
        FROM friendships
        WHERE user_id = ANY($1)
        ORDER BY user_id, friend_id
    `, ids)
	if err != nil {
		return fmt.Errorf("failed to load friendships: %w", err)
	}
	defer rows.Close()

	sets := make(map[int64][]int64, len(users))
	for rows.Next() {
		var userID, friendID int64
		if err := rows.Scan(&userID, &friendID); err != nil {
			return fmt.Errorf("failed to scan friendship: %w", err)
		}
		sets[userID] = append(sets[userID], friendID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}

	for _, u := range users {
		if friends, ok := sets[u.ID]; ok {
			u.Friends = friends
		}
	}
	return nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *postgresRepository) friendIDs(ctx context.Context, q querier, id int64) ([]int64, error) {
	rows, err := q.Query(ctx, `SELECT friend_id FROM friendships WHERE user_id = $1 ORDER BY friend_id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load friend ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to scan friend ids: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// ensureUsers returns ErrUserNotFound for the first id that does not exist
func ensureUsers(ctx context.Context, q querier, ids ...int64) error {
	for _, id := range ids {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if !exists {
			return model.NewUserNotFound(id)
		}
	}
	return nil
}

func (r *postgresRepository) AddFriend(ctx context.Context, a, b int64) (bool, error) {
	if a == b {
		if err := ensureUsers(ctx, r.pool, a); err != nil {
			return false, err
		}
		return false, model.ErrSelfFriendship
	}

	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (bool, error) {
		var inserted int64
		for _, pair := range [][2]int64{{a, b}, {b, a}} {
			tag, err := tx.Exec(ctx, `
                INSERT INTO friendships (user_id, friend_id)
                VALUES ($1, $2)
                ON CONFLICT DO NOTHING
            `, pair[0], pair[1])
			if err != nil {
				return false, mapWriteError(err, "", pair[0], pair[1])
			}
			inserted += tag.RowsAffected()
		}
		return inserted > 0, nil
	})
}

func (r *postgresRepository) RemoveFriend(ctx context.Context, a, b int64) (bool, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (bool, error) {
		if err := ensureUsers(ctx, tx, a, b); err != nil {
			return false, err
		}
		tag, err := tx.Exec(ctx, `
            DELETE FROM friendships
            WHERE (user_id = $1 AND friend_id = $2)
               OR (user_id = $2 AND friend_id = $1)
        `, a, b)
		if err != nil {
			return false, fmt.Errorf("failed to remove friendship: %w", err)
		}
		return tag.RowsAffected() > 0, nil
	})
}

func (r *postgresRepository) FriendIDs(ctx context.Context, id int64) ([]int64, error) {
	if err := ensureUsers(ctx, r.pool, id); err != nil {
		return nil, err
	}
	return r.friendIDs(ctx, r.pool, id)
}

func (r *postgresRepository) Friends(ctx context.Context, id int64) ([]*model.User, error) {
	if err := ensureUsers(ctx, r.pool, id); err != nil {
		return nil, err
	}
	users, err := r.queryUsers(ctx, selectUser+`
        JOIN friendships f ON f.friend_id = u.user_id
        WHERE f.user_id = $1
        ORDER BY u.user_id
    `, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return users, r.enrich(ctx, users)
}

func (r *postgresRepository) CommonFriends(ctx context.Context, a, b int64) ([]*model.User, error) {
	if err := ensureUsers(ctx, r.pool, a, b); err != nil {
		return nil, err
	}
	users, err := r.queryUsers(ctx, selectUser+`
        JOIN friendships fa ON fa.friend_id = u.user_id AND fa.user_id = $1
        JOIN friendships fb ON fb.friend_id = u.user_id AND fb.user_id = $2
        ORDER BY u.user_id
    `, a, b)
	if err != nil {
		return nil, fmt.Errorf("failed to list common friends: %w", err)
	}
	return users, r.enrich(ctx, users)
}
