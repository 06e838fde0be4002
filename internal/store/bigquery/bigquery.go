// Package bigquery is the warehouse-backed Store, for deployments that
// keep transaction history alongside other analytics tables.
package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/budgetbuddy/internal/domain"
	"github.com/dvloznov/budgetbuddy/internal/store"
)

const transactionsTable = "transactions"

// TransactionRow is the transactions table schema.
type TransactionRow struct {
	ID          string     `bigquery:"id"`
	Owner       int64      `bigquery:"owner"`
	Date        civil.Date `bigquery:"date"`
	Category    string     `bigquery:"category"`
	Income      float64    `bigquery:"income"`
	Expenditure float64    `bigquery:"expenditure"`
	Remarks     string     `bigquery:"remarks"`
	CreatedAt   time.Time  `bigquery:"created_ts"`
}

// Store holds a shared BigQuery client for the process lifetime.
type Store struct {
	client  *bigquery.Client
	project string
	dataset string
}

// New creates a BigQuery-backed store using Application Default Credentials.
func New(ctx context.Context, project, dataset string) (*Store, error) {
	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("New: bigquery client: %w", err)
	}
	return &Store{client: client, project: project, dataset: dataset}, nil
}

// Insert implements store.Store via the streaming inserter.
func (s *Store) Insert(ctx context.Context, rec *domain.Record) error {
	row := &TransactionRow{
		ID:          rec.ID,
		Owner:       rec.Owner,
		Date:        civil.DateOf(rec.Date),
		Category:    string(rec.Category),
		Income:      rec.Income,
		Expenditure: rec.Expenditure,
		Remarks:     rec.Remarks,
		CreatedAt:   rec.CreatedAt,
	}

	inserter := s.client.DatasetInProject(s.project, s.dataset).Table(transactionsTable).Inserter()
	if err := inserter.Put(ctx, row); err != nil {
		return fmt.Errorf("Insert: inserting row: %w", err)
	}
	return nil
}

// List implements store.Store.
func (s *Store) List(ctx context.Context, owner int64, datePrefix string) ([]domain.Record, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT id, owner, date, category, income, expenditure, remarks, created_ts
		FROM %s.%s
		WHERE owner = @owner AND STARTS_WITH(CAST(date AS STRING), @date_prefix)
		ORDER BY date ASC, created_ts ASC
	`, s.dataset, transactionsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "owner", Value: owner},
		{Name: "date_prefix", Value: datePrefix},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("List: running query: %w", err)
	}

	var result []domain.Record
	for {
		var row TransactionRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("List: iterating rows: %w", err)
		}
		result = append(result, domain.Record{
			ID:          row.ID,
			Owner:       row.Owner,
			Date:        row.Date.In(time.UTC),
			Category:    domain.ParseCategory(row.Category),
			Income:      row.Income,
			Expenditure: row.Expenditure,
			Remarks:     row.Remarks,
			CreatedAt:   row.CreatedAt,
		})
	}
	return result, nil
}

// Totals implements store.Store with a server-side aggregate.
func (s *Store) Totals(ctx context.Context, owner int64, datePrefix string) (store.Totals, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
			COALESCE(SUM(income), 0) AS income,
			COALESCE(SUM(expenditure), 0) AS expenditure
		FROM %s.%s
		WHERE owner = @owner AND STARTS_WITH(CAST(date AS STRING), @date_prefix)
	`, s.dataset, transactionsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "owner", Value: owner},
		{Name: "date_prefix", Value: datePrefix},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return store.Totals{}, fmt.Errorf("Totals: running query: %w", err)
	}

	var row struct {
		Income      float64 `bigquery:"income"`
		Expenditure float64 `bigquery:"expenditure"`
	}
	if err := it.Next(&row); err != nil && err != iterator.Done {
		return store.Totals{}, fmt.Errorf("Totals: reading row: %w", err)
	}
	return store.Totals{Income: row.Income, Expenditure: row.Expenditure}, nil
}

// Close implements store.Store.
func (s *Store) Close() error {
	return s.client.Close()
}

var _ store.Store = (*Store)(nil)
