package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"airquality-server/internal/modules/airquality/types"
)

//go:embed sql/get-parameters.sql
var getParametersSQL string

//go:embed sql/get-series.sql
var getSeriesSQL string

//go:embed sql/get-table.sql
var getTableSQL string

// AirQualityRepository reads the dashboard dataset. The dataset is seeded by
// migrations at startup and never written afterwards.
type AirQualityRepository interface {
	GetParameters(ctx context.Context) ([]types.Parameter, error)
	GetSeries(ctx context.Context, parameter string) ([]types.Measurement, error)
	GetTable(ctx context.Context) (types.Table, error)
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) AirQualityRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) GetParameters(ctx context.Context) ([]types.Parameter, error) {
	rows, err := r.db.QueryContext(ctx, getParametersSQL)
	if err != nil {
		return nil, fmt.Errorf("query parameters: %w", err)
	}
	defer closeRows(rows, "parameters")

	var out []types.Parameter
	for rows.Next() {
		var p types.Parameter
		if err := rows.Scan(&p.Name, &p.Position); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetSeries returns one column of the table ordered by date. An unknown
// parameter yields an empty slice.
func (r *repositoryImpl) GetSeries(ctx context.Context, parameter string) ([]types.Measurement, error) {
	rows, err := r.db.QueryContext(ctx, getSeriesSQL, parameter)
	if err != nil {
		return nil, fmt.Errorf("query series %q: %w", parameter, err)
	}
	defer closeRows(rows, "series")

	out := []types.Measurement{}
	for rows.Next() {
		var (
			m   types.Measurement
			day string
		)
		if err := rows.Scan(&m.Parameter, &day, &m.Value); err != nil {
			return nil, err
		}
		if m.Date, err = parseDay(day); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) GetTable(ctx context.Context) (types.Table, error) {
	params, err := r.GetParameters(ctx)
	if err != nil {
		return types.Table{}, err
	}

	rows, err := r.db.QueryContext(ctx, getTableSQL)
	if err != nil {
		return types.Table{}, fmt.Errorf("query table: %w", err)
	}
	defer closeRows(rows, "table")

	table := types.Table{Columns: make([]string, 0, len(params)), Rows: []types.Row{}}
	for _, p := range params {
		table.Columns = append(table.Columns, p.Name)
	}

	for rows.Next() {
		var (
			day, parameter string
			value          float64
		)
		if err := rows.Scan(&day, &parameter, &value); err != nil {
			return types.Table{}, err
		}
		date, err := parseDay(day)
		if err != nil {
			return types.Table{}, err
		}
		// Rows arrive ordered by day, so a new day starts a new row.
		if n := len(table.Rows); n == 0 || !table.Rows[n-1].Date.Equal(date) {
			table.Rows = append(table.Rows, types.Row{Date: date, Values: make(map[string]float64, len(params))})
		}
		table.Rows[len(table.Rows)-1].Values[parameter] = value
	}
	return table, rows.Err()
}

func parseDay(s string) (time.Time, error) {
	t, err := time.Parse(types.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return t, nil
}

func closeRows(rows *sql.Rows, what string) {
	if err := rows.Close(); err != nil {
		slog.Error("close rows", "query", what, "error", err)
	}
}
