package teetime

import (
	"encoding/json"
	"strconv"
)

// Columns are the DisplayRow column names in display order
var Columns = []string{"Date", "Time", "Course", "Holes", "Price"}

// Record is one tee time as returned by the marketplace API.
// Numbers are expected as json.Number (decoded with UseNumber) but float64 is accepted too.
type Record map[string]any

// DisplayRow is the flattened, display-ready form of a Record
type DisplayRow struct {
	Date   string   `json:"Date"`
	Time   string   `json:"Time"`
	Course string   `json:"Course"`
	Holes  any      `json:"Holes"` // string or json.Number, as sent
	Price  *float64 `json:"Price"`
}

// Normalize flattens records into rows, one per record, in the same order
func Normalize(records []Record) []DisplayRow {
	rows := make([]DisplayRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Row())
	}
	return rows
}

// Row projects the record onto the display columns.
// Missing or mistyped fields come out empty.
func (r Record) Row() DisplayRow {
	return DisplayRow{
		Date:   text(r["date"]),
		Time:   text(r["time"]),
		Course: text(r.object("course")["name"]),
		Holes:  holes(r["holes"]),
		Price:  number(r.object("green_fee")["price"]),
	}
}

// Cells renders the row as table cells in Columns order
func (d DisplayRow) Cells() []string {
	price := ""
	if d.Price != nil {
		price = strconv.FormatFloat(*d.Price, 'f', 2, 64)
	}
	return []string{d.Date, d.Time, d.Course, text(d.Holes), price}
}

func (r Record) object(key string) map[string]any {
	m, _ := r[key].(map[string]any)
	return m
}

func text(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func holes(v any) any {
	switch v := v.(type) {
	case string, json.Number:
		return v
	case float64:
		return json.Number(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return nil
	}
}

func number(v any) *float64 {
	var (
		f   float64
		err error
	)
	switch v := v.(type) {
	case json.Number:
		f, err = v.Float64()
	case float64:
		f = v
	case string:
		f, err = strconv.ParseFloat(v, 64)
	default:
		return nil
	}
	if err != nil {
		return nil
	}
	return &f
}
