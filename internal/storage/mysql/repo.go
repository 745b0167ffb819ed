package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	driver "github.com/go-sql-driver/mysql"

	"review_insights/internal/domain"
)

const errDupEntry = 1062

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

var (
	_ domain.ReviewRepository     = (*Repo)(nil)
	_ domain.RestaurantRepository = (*Repo)(nil)
)

func isDuplicate(err error) bool {
	var me *driver.MySQLError
	return errors.As(err, &me) && me.Number == errDupEntry
}

// dbTime matches DATETIME(3); MySQL would otherwise round the extra digits.
func dbTime(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return dbTime(t)
}

// ---------- reviews ----------

func (r *Repo) InsertReview(ctx context.Context, rv domain.Review) error {
	blob, err := json.Marshal(rv.Sentiment)
	if err != nil {
		return fmt.Errorf("marshal sentiment: %w", err)
	}
	_, err = r.db.ExecContext(ctx, insertReviewSQL,
		rv.ID, rv.RestaurantID, rv.UserID, rv.Rating, rv.Text, dbTime(rv.ReviewDate),
		blob, rv.Sentiment.Overall, string(rv.Visibility),
		dbTime(rv.CreatedAt), dbTime(rv.UpdatedAt),
	)
	if isDuplicate(err) {
		return domain.ErrDuplicateReview
	}
	return err
}

func (r *Repo) UpdateReview(ctx context.Context, rv domain.Review) error {
	blob, err := json.Marshal(rv.Sentiment)
	if err != nil {
		return fmt.Errorf("marshal sentiment: %w", err)
	}
	res, err := r.db.ExecContext(ctx, updateReviewSQL,
		rv.Rating, rv.Text, blob, rv.Sentiment.Overall, string(rv.Visibility),
		dbTime(rv.UpdatedAt), rv.ID,
	)
	if err != nil {
		return err
	}
	// RowsAffected is 0 for an unchanged row as well, so confirm existence.
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetReview(ctx, rv.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) GetReview(ctx context.Context, id string) (domain.Review, error) {
	return scanReview(r.db.QueryRowContext(ctx, selectReviewByIDSQL, id))
}

func (r *Repo) FindReviewByAuthor(ctx context.Context, restaurantID, userID string) (domain.Review, error) {
	return scanReview(r.db.QueryRowContext(ctx, selectReviewByAuthorSQL, restaurantID, userID))
}

func (r *Repo) ListReviews(ctx context.Context, f domain.ReviewFilter) ([]domain.Review, error) {
	q, args, err := reviewQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build review query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func reviewQuery(f domain.ReviewFilter) sq.SelectBuilder {
	b := sq.Select(reviewColumns).From("reviews")
	if f.RestaurantID != "" {
		b = b.Where(sq.Eq{"restaurant_id": f.RestaurantID})
	}
	if len(f.Visibility) > 0 {
		vs := make([]string, len(f.Visibility))
		for i, v := range f.Visibility {
			vs[i] = string(v)
		}
		b = b.Where(sq.Eq{"visibility": vs})
	}
	if !f.From.IsZero() {
		b = b.Where(sq.GtOrEq{"review_date": f.From.UTC()})
	}
	if !f.Until.IsZero() {
		b = b.Where(sq.Lt{"review_date": f.Until.UTC()})
	}
	if f.MaxRating != nil {
		b = b.Where(sq.LtOrEq{"rating": *f.MaxRating})
	}
	if f.OverallBelow != nil {
		b = b.Where(sq.Lt{"sentiment_overall": *f.OverallBelow})
	}
	if f.NewestFirst {
		b = b.OrderBy("review_date DESC", "id DESC")
	} else {
		b = b.OrderBy("review_date ASC", "id ASC")
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	return b
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (domain.Review, error) {
	var (
		rv         domain.Review
		blob       []byte
		visibility string
	)
	if err := row.Scan(
		&rv.ID,
		&rv.RestaurantID,
		&rv.UserID,
		&rv.Rating,
		&rv.Text,
		&rv.ReviewDate,
		&blob,
		&visibility,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Review{}, domain.ErrNotFound
		}
		return domain.Review{}, err
	}
	rv.Visibility = domain.Visibility(visibility)
	if len(blob) > 0 {
		if err := json.Unmarshal(blob, &rv.Sentiment); err != nil {
			return domain.Review{}, fmt.Errorf("review %s: decode sentiment: %w", rv.ID, err)
		}
	}
	return rv, nil
}

// ---------- restaurants ----------

func (r *Repo) GetRestaurant(ctx context.Context, id string) (domain.Restaurant, error) {
	return scanRestaurant(r.db.QueryRowContext(ctx, selectRestaurantByIDSQL, id))
}

func (r *Repo) ListRestaurantsByID(ctx context.Context, ids []string) ([]domain.Restaurant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q, args, err := sq.Select(restaurantColumns).
		From("restaurants").
		Where(sq.Eq{"id": ids, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build restaurant query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Restaurant
	for rows.Next() {
		rs, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// ListActiveRestaurantIDs feeds the batch reanalyzer when no ids are given.
func (r *Repo) ListActiveRestaurantIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, selectActiveRestaurantIDsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpsertRestaurant writes the descriptive columns; the aggregate is left alone.
func (r *Repo) UpsertRestaurant(ctx context.Context, rs domain.Restaurant) error {
	cuisine := rs.Cuisine
	if cuisine == nil {
		cuisine = []string{}
	}
	blob, err := json.Marshal(cuisine)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertRestaurantSQL,
		rs.ID, rs.OwnerID, rs.Name, blob, rs.PriceRange, rs.City, rs.IsActive,
	)
	return err
}

func (r *Repo) UpdateAggregateRating(ctx context.Context, id string, agg domain.AggregateRating) error {
	res, err := r.db.ExecContext(ctx, updateAggregateSQL,
		agg.Overall,
		agg.Categories.Food,
		agg.Categories.Service,
		agg.Categories.Ambiance,
		agg.Categories.Value,
		agg.ReviewCount,
		nullTime(agg.LastUpdated),
		id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetRestaurant(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func scanRestaurant(row rowScanner) (domain.Restaurant, error) {
	var (
		rs          domain.Restaurant
		cuisineJSON []byte
		priceRange  sql.NullString
		city        sql.NullString
		updatedAt   sql.NullTime
	)
	if err := row.Scan(
		&rs.ID,
		&rs.OwnerID,
		&rs.Name,
		&cuisineJSON,
		&priceRange,
		&city,
		&rs.IsActive,
		&rs.Rating.Overall,
		&rs.Rating.Categories.Food,
		&rs.Rating.Categories.Service,
		&rs.Rating.Categories.Ambiance,
		&rs.Rating.Categories.Value,
		&rs.Rating.ReviewCount,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Restaurant{}, domain.ErrNotFound
		}
		return domain.Restaurant{}, err
	}
	if priceRange.Valid {
		rs.PriceRange = priceRange.String
	}
	if city.Valid {
		rs.City = city.String
	}
	if updatedAt.Valid {
		rs.Rating.LastUpdated = updatedAt.Time
	}
	_ = json.Unmarshal(cuisineJSON, &rs.Cuisine)
	return rs, nil
}
