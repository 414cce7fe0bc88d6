package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/cashflow/pkg/calendar"
	"github.com/klokku/cashflow/pkg/cashflow"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrDataNotFound = errors.New("cash-flow data not found")

type Repository interface {
	Get(ctx context.Context, userId int) (cashflow.Data, error)
	Store(ctx context.Context, userId int, data cashflow.Data) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int) (cashflow.Data, error) {
	query := `SELECT starting_balance::text,
				starting_date,
				warning_threshold::text,
				floor_threshold::text,
				incomes,
				expenses,
				category_colors
			FROM cashflow_data WHERE user_id = $1`

	var startingBalance, warningThreshold, floorThreshold string
	var startingDate pgtype.Date
	var incomes, expenses, categoryColors []byte
	err := r.db.QueryRow(ctx, query, userId).Scan(
		&startingBalance,
		&startingDate,
		&warningThreshold,
		&floorThreshold,
		&incomes,
		&expenses,
		&categoryColors,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cashflow.Data{}, fmt.Errorf("user %d: %w", userId, ErrDataNotFound)
		}
		log.Errorf("failed to read cash-flow data: %v", err)
		return cashflow.Data{}, err
	}

	data := cashflow.Data{
		Incomes:        []cashflow.Income{},
		Expenses:       []cashflow.Expense{},
		CategoryColors: map[string]string{},
	}
	if data.StartingBalance, err = decimal.NewFromString(startingBalance); err != nil {
		return cashflow.Data{}, fmt.Errorf("invalid starting balance: %w", err)
	}
	if data.WarningThreshold, err = decimal.NewFromString(warningThreshold); err != nil {
		return cashflow.Data{}, fmt.Errorf("invalid warning threshold: %w", err)
	}
	if data.FloorThreshold, err = decimal.NewFromString(floorThreshold); err != nil {
		return cashflow.Data{}, fmt.Errorf("invalid floor threshold: %w", err)
	}
	if startingDate.Valid {
		data.StartingDate = calendar.NewDate(startingDate.Time.Year(), startingDate.Time.Month(), startingDate.Time.Day())
	}
	if err := json.Unmarshal(incomes, &data.Incomes); err != nil {
		return cashflow.Data{}, fmt.Errorf("invalid stored incomes: %w", err)
	}
	if err := json.Unmarshal(expenses, &data.Expenses); err != nil {
		return cashflow.Data{}, fmt.Errorf("invalid stored expenses: %w", err)
	}
	if err := json.Unmarshal(categoryColors, &data.CategoryColors); err != nil {
		return cashflow.Data{}, fmt.Errorf("invalid stored category colors: %w", err)
	}
	return data, nil
}

// Store replaces the whole document of the user.
func (r *RepositoryImpl) Store(ctx context.Context, userId int, data cashflow.Data) error {
	incomes, err := json.Marshal(nonNil(data.Incomes))
	if err != nil {
		return err
	}
	expenses, err := json.Marshal(nonNil(data.Expenses))
	if err != nil {
		return err
	}
	categoryColors, err := json.Marshal(data.CategoryColors)
	if err != nil {
		return err
	}
	if data.CategoryColors == nil {
		categoryColors = []byte("{}")
	}

	startingDate := pgtype.Date{}
	if !data.StartingDate.IsZero() {
		startingDate = pgtype.Date{Time: data.StartingDate.Time(), Valid: true}
	}

	query := `INSERT INTO cashflow_data (
					user_id,
					starting_balance,
					starting_date,
					warning_threshold,
					floor_threshold,
					incomes,
					expenses,
					category_colors,
					updated_at
				) VALUES ($1, $2::numeric, $3, $4::numeric, $5::numeric, $6::jsonb, $7::jsonb, $8::jsonb, $9)
				ON CONFLICT (user_id) DO UPDATE SET
					starting_balance = EXCLUDED.starting_balance,
					starting_date = EXCLUDED.starting_date,
					warning_threshold = EXCLUDED.warning_threshold,
					floor_threshold = EXCLUDED.floor_threshold,
					incomes = EXCLUDED.incomes,
					expenses = EXCLUDED.expenses,
					category_colors = EXCLUDED.category_colors,
					updated_at = EXCLUDED.updated_at`

	_, err = r.db.Exec(ctx, query,
		userId,
		data.StartingBalance.String(),
		startingDate,
		data.WarningThreshold.String(),
		data.FloorThreshold.String(),
		string(incomes),
		string(expenses),
		string(categoryColors),
		time.Now(),
	)
	if err != nil {
		err := fmt.Errorf("could not store cash-flow data: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
