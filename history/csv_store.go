package history

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"pricetrail/models"
)

// csvHeader is the persisted record schema. Field set matters, field
// order does not; this order matches what the store has always written.
var csvHeader = []string{"product_id", "product_name", "date", "time", "price", "source", "url"}

const (
	csvDateLayout = "2006-01-02"
	csvTimeLayout = "15:04:05"
)

// CSVStore appends observations to a single CSV file. A mutex
// serializes appends so concurrent tracking requests cannot interleave
// partial lines.
type CSVStore struct {
	path string
	mu   sync.Mutex
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Append writes one observation to the log. The header is written when
// the file is first created.
func (s *CSVStore) Append(obs models.PriceObservation) error {
	if err := validate(obs); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, statErr := os.Stat(s.path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write header: %v", err)
		}
	}

	record := []string{
		obs.ProductID,
		obs.ProductName,
		obs.Timestamp.Format(csvDateLayout),
		obs.Timestamp.Format(csvTimeLayout),
		obs.Price.String(),
		obs.Source,
		obs.URL,
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("failed to append observation: %v", err)
	}

	w.Flush()
	return w.Error()
}

// ReadAll returns the observations for one product, oldest first.
func (s *CSVStore) ReadAll(productID string) ([]models.PriceObservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readRecords()
	if err != nil {
		return nil, err
	}

	var history []models.PriceObservation
	for _, obs := range records {
		if obs.ProductID == productID {
			history = append(history, obs)
		}
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp.Before(history[j].Timestamp)
	})
	return history, nil
}

// Products returns the distinct products present in the log, with the
// most recent name and URL seen for each.
func (s *CSVStore) Products() ([]models.TrackedProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readRecords()
	if err != nil {
		return nil, err
	}

	latest := make(map[string]models.TrackedProduct)
	var order []string
	for _, obs := range records {
		if _, seen := latest[obs.ProductID]; !seen {
			order = append(order, obs.ProductID)
		}
		latest[obs.ProductID] = models.TrackedProduct{
			ProductID:   obs.ProductID,
			ProductName: obs.ProductName,
			URL:         obs.URL,
			LastSeen:    obs.Timestamp,
		}
	}

	products := make([]models.TrackedProduct, 0, len(order))
	for _, id := range order {
		products = append(products, latest[id])
	}
	return products, nil
}

func (s *CSVStore) readRecords() ([]models.PriceObservation, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history file: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %v", err)
	}

	var records []models.PriceObservation
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == csvHeader[0] {
			continue
		}
		if len(row) < len(csvHeader) {
			continue
		}

		price, err := decimal.NewFromString(row[4])
		if err != nil {
			continue
		}

		ts, err := time.ParseInLocation(csvDateLayout+" "+csvTimeLayout, row[2]+" "+row[3], time.Local)
		if err != nil {
			continue
		}

		records = append(records, models.PriceObservation{
			ProductID:   row[0],
			ProductName: row[1],
			Price:       price,
			Timestamp:   ts,
			Source:      row[5],
			URL:         row[6],
		})
	}
	return records, nil
}
