package change

import "encoding/json"

// EventType mirrors the row operation that produced a change.
type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// Event is a row change pushed to subscribed clients. Old and New carry the
// row with camelCase keys; either may be null.
type Event struct {
	EventType EventType       `json:"eventType"`
	Table     string          `json:"table"`
	Old       json.RawMessage `json:"old"`
	New       json.RawMessage `json:"new"`
}

// Name is used as the SSE event name.
func (e Event) Name() string {
	return e.Table + "." + string(e.EventType)
}

// Tables that publish change events.
var Tables = []string{"employees", "payroll_records", "cash_advances", "day_offs", "settings", "dtr_records"}

func IsKnownTable(name string) bool {
	for _, t := range Tables {
		if t == name {
			return true
		}
	}
	return false
}
