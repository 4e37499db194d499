package rtrest

import (
	"regexp"
	"strconv"

	"rtrest/types"
)

var (
	queueGrammar = grammar{entity: "queue", fatalComments: true}

	queueListLine = regexp.MustCompile(`^(\d+): (.+)$`)
)

type queueDecoder struct {
	noContinuations
	q *types.Queue
}

func (d *queueDecoder) customField(name, value string) {
	d.q.CustomFields[name] = value
}

func (d *queueDecoder) field(key, value string) error {
	var err error
	q := d.q
	switch key {
	case "id":
		q.ID, err = parseIdentifier("queue", value)
	case "Name":
		q.Name = value
	case "Description":
		q.Description = value
	case "CorrespondAddress":
		q.CorrespondAddress = value
	case "CommentAddress":
		q.CommentAddress = value
	case "InitialPriority":
		q.InitialPriority, err = parseInt(key, value)
	case "FinalPriority":
		q.FinalPriority, err = parseInt(key, value)
	case "DefaultDueIn":
		q.DefaultDueIn, err = parseInt(key, value)
	case "Disabled":
		q.Disabled, err = parseBool("queue disabled status", value)
	}
	return err
}

// DecodeQueue reads a queue properties response or one record of a long
// format queue search.
func DecodeQueue(body string) (*types.Queue, error) {
	q := &types.Queue{CustomFields: map[string]string{}}
	if err := queueGrammar.scan(body, &queueDecoder{q: q}); err != nil {
		return nil, err
	}
	if q.ID == 0 {
		return nil, newError(MalformedIdentifier, "", "queue record without id")
	}
	return q, nil
}

// DecodeQueueList reads the default format queue search, which only lists
// "<id>: <name>" lines.
func DecodeQueueList(body string) map[int64]string {
	queues := make(map[int64]string)
	for _, line := range splitLines(body) {
		m := queueListLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		queues[id] = m[2]
	}
	return queues
}

// EncodeQueue builds the body of a queue creation request.
func EncodeQueue(q *types.Queue) string {
	return defaultEncoder.EncodeQueue(q)
}

// EncodeQueueUpdate builds the body of a queue edit request holding only
// the fields of q that differ from old.
func EncodeQueueUpdate(q, old *types.Queue) (string, error) {
	return defaultEncoder.EncodeQueueUpdate(q, old)
}

func (e Encoder) EncodeQueue(q *types.Queue) string {
	var w fieldWriter
	w.field("id", "queue/new")
	w.field("Name", q.Name)
	w.field("Description", q.Description)
	w.field("CorrespondAddress", q.CorrespondAddress)
	w.field("CommentAddress", q.CommentAddress)
	w.intField("InitialPriority", q.InitialPriority)
	w.intField("FinalPriority", q.FinalPriority)
	w.intField("DefaultDueIn", q.DefaultDueIn)
	w.boolField("Disabled", q.Disabled)
	w.customFields(e.Queue.or(NewStyleNotation), q.CustomFields)
	return w.String()
}

func (e Encoder) EncodeQueueUpdate(q, old *types.Queue) (string, error) {
	if old == nil {
		return "", newError(MissingPriorSnapshot, "", "no existing queue provided for queue update")
	}

	var w fieldWriter
	strs := []struct {
		key       string
		cur, prev string
	}{
		{"Name", q.Name, old.Name},
		{"Description", q.Description, old.Description},
		{"CorrespondAddress", q.CorrespondAddress, old.CorrespondAddress},
		{"CommentAddress", q.CommentAddress, old.CommentAddress},
	}
	for _, f := range strs {
		if f.cur != f.prev {
			w.field(f.key, f.cur)
		}
	}
	if q.InitialPriority != old.InitialPriority {
		w.intField("InitialPriority", q.InitialPriority)
	}
	if q.FinalPriority != old.FinalPriority {
		w.intField("FinalPriority", q.FinalPriority)
	}
	if q.DefaultDueIn != old.DefaultDueIn {
		w.intField("DefaultDueIn", q.DefaultDueIn)
	}
	if q.Disabled != old.Disabled {
		w.boolField("Disabled", q.Disabled)
	}
	w.customFields(e.Queue.or(NewStyleNotation), q.CustomFields)
	return w.String(), nil
}
