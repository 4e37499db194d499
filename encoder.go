package rtrest

import (
	"strconv"
	"strings"
)

// CustomFieldNotation selects how custom fields are written into request
// bodies. Both notations are always understood when decoding.
type CustomFieldNotation int

const (
	// DefaultNotation uses the notation the RT deployment expects for the
	// entity: new style for tickets and queues, old style for users.
	DefaultNotation CustomFieldNotation = iota
	// NewStyleNotation writes "CF.{Name}: value".
	NewStyleNotation
	// OldStyleNotation writes "CF-Name: value".
	OldStyleNotation
)

func (n CustomFieldNotation) or(fallback CustomFieldNotation) CustomFieldNotation {
	if n == DefaultNotation {
		return fallback
	}
	return n
}

// Encoder turns entities into request bodies. The zero value is ready to
// use and picks the default notation for every entity.
type Encoder struct {
	Ticket CustomFieldNotation
	Queue  CustomFieldNotation
	User   CustomFieldNotation
}

var defaultEncoder Encoder

type fieldWriter struct {
	strings.Builder
}

func (w *fieldWriter) field(key, value string) {
	w.WriteString(key)
	w.WriteString(": ")
	w.WriteString(value)
	w.WriteByte('\n')
}

func (w *fieldWriter) intField(key string, value int) {
	w.field(key, strconv.Itoa(value))
}

func (w *fieldWriter) boolField(key string, value bool) {
	if value {
		w.field(key, "1")
	} else {
		w.field(key, "0")
	}
}

func (w *fieldWriter) textField(key, value string) {
	w.field(key, indent(value))
}

// customFields writes one line per entry, ordered by name.
func (w *fieldWriter) customFields(notation CustomFieldNotation, fields map[string]string) {
	for _, name := range sortedKeys(fields) {
		if notation == OldStyleNotation {
			w.field("CF-"+name, fields[name])
		} else {
			w.field("CF.{"+name+"}", fields[name])
		}
	}
}
