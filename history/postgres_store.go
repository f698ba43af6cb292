package history

import (
	"database/sql"
	"fmt"

	"pricetrail/models"
)

// PostgresStore keeps the observation log in a price_observations
// table. Appends are serialized by the database itself; the table is
// insert-only, mirroring the CSV store's semantics.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append inserts one observation.
func (s *PostgresStore) Append(obs models.PriceObservation) error {
	if err := validate(obs); err != nil {
		return err
	}

	query := `
		INSERT INTO price_observations (product_id, product_name, price, source, url, observed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.Exec(query, obs.ProductID, obs.ProductName, obs.Price, obs.Source, obs.URL, obs.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to append observation: %v", err)
	}

	return nil
}

// ReadAll returns the observations for one product, oldest first.
func (s *PostgresStore) ReadAll(productID string) ([]models.PriceObservation, error) {
	query := `
		SELECT product_id, product_name, price, source, url, observed_at
		FROM price_observations
		WHERE product_id = $1
		ORDER BY observed_at ASC
	`

	rows, err := s.db.Query(query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %v", err)
	}
	defer rows.Close()

	var history []models.PriceObservation
	for rows.Next() {
		var obs models.PriceObservation
		err := rows.Scan(&obs.ProductID, &obs.ProductName, &obs.Price, &obs.Source, &obs.URL, &obs.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan observation: %v", err)
		}
		history = append(history, obs)
	}

	return history, rows.Err()
}

// Products returns the distinct products in the log with the latest
// name and URL seen for each.
func (s *PostgresStore) Products() ([]models.TrackedProduct, error) {
	query := `
		SELECT DISTINCT ON (product_id) product_id, product_name, url, observed_at
		FROM price_observations
		ORDER BY product_id, observed_at DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %v", err)
	}
	defer rows.Close()

	var products []models.TrackedProduct
	for rows.Next() {
		var p models.TrackedProduct
		err := rows.Scan(&p.ProductID, &p.ProductName, &p.URL, &p.LastSeen)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %v", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}
