package orders

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/howard522/eating-at-ntou-sub000/internal/geo"
	"github.com/howard522/eating-at-ntou-sub000/internal/ranking"
)

//go:embed schema.sql
var schemaSQL string

// PostgresStore implements Store on a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store on an open pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the tables the store needs. It is idempotent.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply order schema: %w", err)
	}
	return nil
}

// Ping checks the pool.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// UpsertRestaurant inserts or updates a restaurant. A nil location clears its geodata.
func (s *PostgresStore) UpsertRestaurant(ctx context.Context, r ranking.RestaurantSnapshot) error {
	lon, lat := splitCoordinate(r.Location)
	_, err := s.pool.Exec(ctx, `
		INSERT INTO restaurants (id, name, longitude, latitude)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    longitude = EXCLUDED.longitude,
		    latitude = EXCLUDED.latitude
	`, r.ID, r.Name, lon, lat)
	if err != nil {
		return fmt.Errorf("failed to upsert restaurant %s: %w", r.ID, err)
	}
	return nil
}

// Restaurants returns snapshots for the given IDs.
func (s *PostgresStore) Restaurants(ctx context.Context, ids []string) (map[string]ranking.RestaurantSnapshot, error) {
	out := make(map[string]ranking.RestaurantSnapshot, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, name, longitude, latitude
		FROM restaurants
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r        ranking.RestaurantSnapshot
			lon, lat *float64
		)
		if err := rows.Scan(&r.ID, &r.Name, &lon, &lat); err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		r.Location = joinCoordinate(lon, lat)
		out[r.ID] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating restaurants: %w", err)
	}
	return out, nil
}

// RestaurantLocations returns the stored location for each known ID.
func (s *PostgresStore) RestaurantLocations(ctx context.Context, ids []string) (map[string]*geo.Coordinate, error) {
	restaurants, err := s.Restaurants(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*geo.Coordinate, len(restaurants))
	for id, r := range restaurants {
		out[id] = r.Location
	}
	return out, nil
}

// Create inserts the order and its items in one transaction.
func (s *PostgresStore) Create(ctx context.Context, order *ranking.Order) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	dLon, dLat := splitCoordinate(order.DeliveryLocation)
	_, err = tx.Exec(ctx, `
		INSERT INTO orders (
			id, customer_id, delivery_person_id, status, delivery_address,
			delivery_longitude, delivery_latitude, delivery_fee, items_total,
			arrive_time, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, order.ID, order.CustomerID, order.DeliveryPersonID, string(order.Status), order.DeliveryAddress,
		dLon, dLat, order.DeliveryFee, order.ItemsTotal, order.ArriveTime, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order %s: %w", order.ID, err)
	}

	batch := &pgx.Batch{}
	for i, item := range order.Items {
		var (
			rID, rName *string
			rLon, rLat *float64
		)
		if item.Restaurant != nil {
			rID, rName = &item.Restaurant.ID, &item.Restaurant.Name
			rLon, rLat = splitCoordinate(item.Restaurant.Location)
		}
		batch.Queue(`
			INSERT INTO order_items (
				order_id, position, menu_item_id, name, price, quantity,
				restaurant_id, restaurant_name, restaurant_longitude, restaurant_latitude
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, order.ID, i, item.MenuItemID, item.Name, item.Price, item.Quantity, rID, rName, rLon, rLat)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert items for order %s: %w", order.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order %s: %w", order.ID, err)
	}
	return nil
}

const orderColumns = `
	o.id, o.customer_id, o.delivery_person_id, o.status, o.delivery_address,
	o.delivery_longitude, o.delivery_latitude, o.delivery_fee, o.items_total,
	o.arrive_time, o.created_at,
	i.menu_item_id, i.name, i.price, i.quantity,
	i.restaurant_id, i.restaurant_name, i.restaurant_longitude, i.restaurant_latitude
`

// ListAvailable returns unclaimed preparing orders, newest first.
func (s *PostgresStore) ListAvailable(ctx context.Context) ([]ranking.Order, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.status = $1 AND o.delivery_person_id IS NULL
		ORDER BY o.created_at DESC, o.id, i.position
	`, string(ranking.StatusPreparing))
	if err != nil {
		return nil, fmt.Errorf("failed to query available orders: %w", err)
	}
	return collectOrders(rows)
}

// Get returns one order with its items.
func (s *PostgresStore) Get(ctx context.Context, id string) (*ranking.Order, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.id = $1
		ORDER BY i.position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query order %s: %w", id, err)
	}
	found, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	return &found[0], nil
}

// collectOrders folds joined order/item rows into orders, preserving row order.
func collectOrders(rows pgx.Rows) ([]ranking.Order, error) {
	defer rows.Close()

	var out []ranking.Order
	index := make(map[string]int)

	for rows.Next() {
		var (
			o                    ranking.Order
			status               string
			dLon, dLat           *float64
			arrive               *time.Time
			menuItemID, itemName *string
			price                *int64
			quantity             *int32
			rID, rName           *string
			rLon, rLat           *float64
		)
		if err := rows.Scan(
			&o.ID, &o.CustomerID, &o.DeliveryPersonID, &status, &o.DeliveryAddress,
			&dLon, &dLat, &o.DeliveryFee, &o.ItemsTotal,
			&arrive, &o.CreatedAt,
			&menuItemID, &itemName, &price, &quantity,
			&rID, &rName, &rLon, &rLat,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}

		i, seen := index[o.ID]
		if !seen {
			o.Status = ranking.Status(status)
			o.DeliveryLocation = joinCoordinate(dLon, dLat)
			o.ArriveTime = arrive
			o.Items = []ranking.OrderItem{}
			out = append(out, o)
			i = len(out) - 1
			index[o.ID] = i
		}

		if menuItemID == nil {
			continue
		}
		item := ranking.OrderItem{
			MenuItemID: *menuItemID,
			Name:       deref(itemName),
			Price:      derefInt64(price),
			Quantity:   int(derefInt32(quantity)),
		}
		if rID != nil {
			item.Restaurant = &ranking.RestaurantSnapshot{
				ID:       *rID,
				Name:     deref(rName),
				Location: joinCoordinate(rLon, rLat),
			}
		}
		out[i].Items = append(out[i].Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}
	return out, nil
}

func splitCoordinate(c *geo.Coordinate) (lon, lat *float64) {
	if c == nil {
		return nil, nil
	}
	return &c.Longitude, &c.Latitude
}

func joinCoordinate(lon, lat *float64) *geo.Coordinate {
	if lon == nil || lat == nil {
		return nil
	}
	c := geo.NewCoordinate(*lon, *lat)
	return &c
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt64(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}

func derefInt32(n *int32) int32 {
	if n == nil {
		return 0
	}
	return *n
}
