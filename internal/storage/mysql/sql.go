package mysql

// `text` is a reserved word in MySQL; keep it quoted.

const reviewColumns = "id, restaurant_id, user_id, rating, `text`, review_date, sentiment, visibility, created_at, updated_at"

const insertReviewSQL = `
INSERT INTO reviews (
  id, restaurant_id, user_id, rating, ` + "`text`" + `, review_date,
  sentiment, sentiment_overall, visibility, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const updateReviewSQL = `
UPDATE reviews SET
  rating = ?,
  ` + "`text`" + ` = ?,
  sentiment = ?,
  sentiment_overall = ?,
  visibility = ?,
  updated_at = ?
WHERE id = ?`

const selectReviewByIDSQL = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`

const selectReviewByAuthorSQL = `SELECT ` + reviewColumns + `
FROM reviews
WHERE restaurant_id = ? AND user_id = ?
LIMIT 1`

const restaurantColumns = `id, owner_id, name, cuisine, price_range, city, is_active,
  rating_overall, rating_food, rating_service, rating_ambiance, rating_value,
  review_count, rating_updated_at`

const selectRestaurantByIDSQL = `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = ?`

const updateAggregateSQL = `
UPDATE restaurants SET
  rating_overall = ?,
  rating_food = ?,
  rating_service = ?,
  rating_ambiance = ?,
  rating_value = ?,
  review_count = ?,
  rating_updated_at = ?
WHERE id = ?`

const upsertRestaurantSQL = `
INSERT INTO restaurants (id, owner_id, name, cuisine, price_range, city, is_active)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  owner_id = VALUES(owner_id),
  name = VALUES(name),
  cuisine = VALUES(cuisine),
  price_range = VALUES(price_range),
  city = VALUES(city),
  is_active = VALUES(is_active)`

const selectActiveRestaurantIDsSQL = `SELECT id FROM restaurants WHERE is_active = TRUE ORDER BY id`
