package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"airquality-server/internal/migrate"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	if err := migrate.Run(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

var wantSeries = map[string][]float64{
	"CO":    {0.4, 0.5, 0.3, 0.6, 0.4, 0.5, 0.3},
	"NO2":   {12, 15, 10, 18, 14, 13, 11},
	"PM2.5": {25, 30, 22, 28, 27, 24, 26},
	"PM10":  {40, 45, 38, 42, 41, 39, 40},
	"SO2":   {5, 6, 4, 5, 5, 6, 4},
}

func TestGetParameters(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	params, err := repo.GetParameters(context.Background())
	if err != nil {
		t.Fatalf("GetParameters: %v", err)
	}
	want := []string{"CO", "NO2", "PM2.5", "PM10", "SO2"}
	if len(params) != len(want) {
		t.Fatalf("GetParameters: got %d, want %d", len(params), len(want))
	}
	for i, p := range params {
		if p.Name != want[i] {
			t.Errorf("params[%d] = %q, want %q", i, p.Name, want[i])
		}
		if p.Position != i+1 {
			t.Errorf("params[%d].Position = %d, want %d", i, p.Position, i+1)
		}
	}
}

func TestGetSeries(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	for name, values := range wantSeries {
		t.Run(name, func(t *testing.T) {
			series, err := repo.GetSeries(context.Background(), name)
			if err != nil {
				t.Fatalf("GetSeries(%q): %v", name, err)
			}
			if len(series) != len(values) {
				t.Fatalf("GetSeries(%q): got %d points, want %d", name, len(series), len(values))
			}
			for i, m := range series {
				if m.Parameter != name {
					t.Errorf("[%d].Parameter = %q, want %q", i, m.Parameter, name)
				}
				if !m.Date.Equal(day(i + 1)) {
					t.Errorf("[%d].Date = %v, want %v", i, m.Date, day(i+1))
				}
				if m.Value != values[i] {
					t.Errorf("[%d].Value = %v, want %v", i, m.Value, values[i])
				}
			}
		})
	}
}

func TestGetSeries_unknownParameter(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	series, err := repo.GetSeries(context.Background(), "O3")
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}
	if series == nil || len(series) != 0 {
		t.Fatalf("GetSeries(unknown) = %v, want empty non-nil slice", series)
	}
}

func TestGetTable(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	table, err := repo.GetTable(context.Background())
	if err != nil {
		t.Fatalf("GetTable: %v", err)
	}
	if len(table.Columns) != 5 || table.Columns[0] != "CO" || table.Columns[4] != "SO2" {
		t.Errorf("Columns = %v", table.Columns)
	}
	if len(table.Rows) != 7 {
		t.Fatalf("Rows = %d, want 7", len(table.Rows))
	}
	for i, row := range table.Rows {
		if !row.Date.Equal(day(i + 1)) {
			t.Errorf("row %d date = %v, want %v", i, row.Date, day(i+1))
		}
		for name, values := range wantSeries {
			if got := row.Values[name]; got != values[i] {
				t.Errorf("row %d %s = %v, want %v", i, name, got, values[i])
			}
		}
	}
}

func TestRepository_closedDB(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	ctx := context.Background()
	if _, err := repo.GetParameters(ctx); err == nil {
		t.Error("GetParameters on closed db: want error")
	}
	if _, err := repo.GetSeries(ctx, "CO"); err == nil {
		t.Error("GetSeries on closed db: want error")
	}
	if _, err := repo.GetTable(ctx); err == nil {
		t.Error("GetTable on closed db: want error")
	}
}

func TestRepository_canceledContext(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.GetSeries(ctx, "CO"); err == nil {
		t.Error("GetSeries with canceled context: want error")
	}
}
