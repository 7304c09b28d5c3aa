package core

import (
	"encoding/json"
	"time"
)

// SnapshotSchemaVersion identifies the serialized snapshot layout.
const SnapshotSchemaVersion = 1

// Snapshot is the serialized form of the wallet state used for persistence.
// Unknown fields are ignored on load and missing fields fall back to zero
// values, so older snapshots keep loading after schema additions.
type Snapshot struct {
	SchemaVersion    int                   `json:"schema_version"`
	InitialBalance   int64                 `json:"initial_balance_cents"`
	Balance          int64                 `json:"balance_cents"`
	TotalIncome      int64                 `json:"total_income_cents"`
	Expenses         []SnapshotExpense     `json:"expenses"`
	Transactions     []SnapshotTransaction `json:"transactions"`
	SavedAtUnixMilli int64                 `json:"saved_at_unix_milli,omitempty"`
}

type SnapshotExpense struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Cents    int64  `json:"amount_cents"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

type SnapshotTransaction struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Cents    int64  `json:"amount_cents"`
	Category string `json:"category,omitempty"`
	Date     string `json:"date"`
}

const snapshotDateLayout = "2006-01-02"

// EncodeSnapshot serializes a snapshot to its JSON wire form.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	s.SchemaVersion = SnapshotSchemaVersion
	s.SavedAtUnixMilli = time.Now().UnixMilli()
	return json.Marshal(s)
}

// DecodeSnapshot parses the JSON wire form back into a snapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// EncodeDate renders a date in the snapshot wire format.
func EncodeDate(d Date) string {
	return d.Format(snapshotDateLayout)
}

// DecodeDate parses a snapshot wire date. A malformed date yields the zero
// Date rather than an error; the loader treats it as absent.
func DecodeDate(s string) Date {
	t, err := time.Parse(snapshotDateLayout, s)
	if err != nil {
		return Date{}
	}
	return Date{Time: t}
}

// ParseDate parses user-supplied date input in ISO form (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(snapshotDateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}
