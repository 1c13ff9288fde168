package types

import "time"

// DateLayout is the calendar-day format used by the dataset.
const DateLayout = "2006-01-02"

type Parameter struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Measurement is one cell of the dataset: a parameter's value on a day.
type Measurement struct {
	Parameter string    `json:"parameter"`
	Date      time.Time `json:"date"`
	Value     float64   `json:"value"`
}

// Table is the whole dataset: one row per day, one column per parameter.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

type Row struct {
	Date   time.Time          `json:"date"`
	Values map[string]float64 `json:"values"`
}
