package rtrest

import (
	"regexp"
	"time"

	"rtrest/types"
)

var ticketGrammar = grammar{
	entity:        "ticket",
	fatalComments: true,
	continuations: map[string]*regexp.Regexp{
		// Only present in bodies this package writes, RT's show never emits it.
		"Text": regexp.MustCompile(`^ (.*)$`),
	},
}

type ticketDecoder struct {
	t    *types.Ticket
	text []string
}

func (d *ticketDecoder) customField(name, value string) {
	d.t.CustomFields[name] = value
}

func (d *ticketDecoder) continuation(key string, match []string) error {
	d.text = append(d.text, match[1])
	return nil
}

func (d *ticketDecoder) field(key, value string) error {
	var err error
	t := d.t
	switch key {
	case "id":
		t.ID, err = parseIdentifier("ticket", value)
	case "Queue":
		t.Queue = value
	case "Owner":
		t.Owner = value
	case "Creator":
		t.Creator = value
	case "Subject":
		t.Subject = value
	case "Status":
		status, ok := types.ParseTicketStatus(value)
		if !ok {
			return newError(UnknownEnumValue, value, "unknown ticket status: %q", value)
		}
		t.Status = status
	case "Priority":
		t.Priority, err = parseInt(key, value)
	case "InitialPriority":
		t.InitialPriority, err = parseInt(key, value)
	case "FinalPriority":
		t.FinalPriority, err = parseInt(key, value)
	case "Requestors":
		t.Requestors = splitList(value)
	case "Cc":
		t.Cc = splitList(value)
	case "AdminCc":
		t.AdminCc = splitList(value)
	case "Created":
		t.Created = parseDate(ticketDateParseLayout, key, value)
	case "Starts":
		t.Starts = parseDate(ticketDateParseLayout, key, value)
	case "Started":
		t.Started = parseDate(ticketDateParseLayout, key, value)
	case "Due":
		t.Due = parseDate(ticketDateParseLayout, key, value)
	case "Resolved":
		t.Resolved = parseDate(ticketDateParseLayout, key, value)
	case "Told":
		t.Told = parseDate(ticketDateParseLayout, key, value)
	case "LastUpdated":
		t.LastUpdated = parseDate(ticketDateParseLayout, key, value)
	case "TimeEstimated":
		t.TimeEstimated = parseDuration(value)
	case "TimeWorked":
		t.TimeWorked = parseDuration(value)
	case "TimeLeft":
		t.TimeLeft = parseDuration(value)
	case "Text":
		d.text = []string{value}
	}
	return err
}

// DecodeTicket reads a ticket properties response. A "#" line in the
// response is the server's error message and is returned as
// ServerReportedError.
func DecodeTicket(body string) (*types.Ticket, error) {
	t := &types.Ticket{CustomFields: map[string]string{}}
	d := &ticketDecoder{t: t}
	if err := ticketGrammar.scan(body, d); err != nil {
		return nil, err
	}
	if t.ID == 0 {
		return nil, newError(MalformedIdentifier, "", "ticket record without id")
	}
	if d.text != nil {
		t.Text = joinLines(d.text)
	}
	return t, nil
}

// DecodeTickets reads a long format ticket search response. Order is kept.
func DecodeTickets(body string) ([]*types.Ticket, error) {
	blocks := splitRecords(body)
	tickets := make([]*types.Ticket, 0, len(blocks))
	for _, block := range blocks {
		t, err := DecodeTicket(block)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

// EncodeTicket builds the body of a ticket creation request.
func EncodeTicket(t *types.Ticket) string {
	return defaultEncoder.EncodeTicket(t)
}

// EncodeTicketUpdate builds the body of a ticket edit request holding only
// the fields of t that differ from old.
func EncodeTicketUpdate(t, old *types.Ticket) (string, error) {
	return defaultEncoder.EncodeTicketUpdate(t, old)
}

func (e Encoder) EncodeTicket(t *types.Ticket) string {
	var w fieldWriter
	w.field("id", "ticket/new")
	w.field("Queue", t.Queue)
	w.field("Owner", t.Owner)
	w.field("Subject", t.Subject)
	if t.Status != "" {
		w.field("Status", string(t.Status))
	}
	w.intField("Priority", t.Priority)
	w.intField("InitialPriority", t.InitialPriority)
	w.intField("FinalPriority", t.FinalPriority)
	w.field("Requestors", joinList(t.Requestors))
	w.field("Cc", joinList(t.Cc))
	w.field("AdminCc", joinList(t.AdminCc))
	w.field("Starts", formatDate(TicketDateLayout, t.Starts))
	w.field("Due", formatDate(TicketDateLayout, t.Due))
	w.intField("TimeEstimated", t.TimeEstimated)
	w.intField("TimeWorked", t.TimeWorked)
	w.intField("TimeLeft", t.TimeLeft)
	if t.Text != "" {
		w.textField("Text", t.Text)
	}
	w.customFields(e.Ticket.or(NewStyleNotation), t.CustomFields)
	return w.String()
}

func (e Encoder) EncodeTicketUpdate(t, old *types.Ticket) (string, error) {
	if old == nil {
		return "", newError(MissingPriorSnapshot, "", "no existing ticket provided for ticket update")
	}

	var w fieldWriter
	if t.Queue != old.Queue {
		w.field("Queue", t.Queue)
	}
	if t.Owner != old.Owner {
		w.field("Owner", t.Owner)
	}
	if t.Subject != old.Subject {
		w.field("Subject", t.Subject)
	}
	if t.Status != "" && t.Status != old.Status {
		w.field("Status", string(t.Status))
	}
	if t.Priority != old.Priority {
		w.intField("Priority", t.Priority)
	}
	if t.InitialPriority != old.InitialPriority {
		w.intField("InitialPriority", t.InitialPriority)
	}
	if t.FinalPriority != old.FinalPriority {
		w.intField("FinalPriority", t.FinalPriority)
	}
	if !sameMembers(t.Requestors, old.Requestors) {
		w.field("Requestors", joinList(t.Requestors))
	}
	if !sameMembers(t.Cc, old.Cc) {
		w.field("Cc", joinList(t.Cc))
	}
	if !sameMembers(t.AdminCc, old.AdminCc) {
		w.field("AdminCc", joinList(t.AdminCc))
	}

	dates := []struct {
		key       string
		cur, prev *time.Time
	}{
		{"Starts", t.Starts, old.Starts},
		{"Started", t.Started, old.Started},
		{"Due", t.Due, old.Due},
		{"Resolved", t.Resolved, old.Resolved},
		{"Told", t.Told, old.Told},
	}
	for _, d := range dates {
		if d.cur != nil && !sameDate(d.cur, d.prev) {
			w.field(d.key, formatDate(TicketDateLayout, d.cur))
		}
	}

	if t.TimeEstimated != old.TimeEstimated {
		w.intField("TimeEstimated", t.TimeEstimated)
	}
	if t.TimeWorked != old.TimeWorked {
		w.intField("TimeWorked", t.TimeWorked)
	}
	if t.TimeLeft != old.TimeLeft {
		w.intField("TimeLeft", t.TimeLeft)
	}
	if t.Text != "" && t.Text != old.Text {
		w.textField("Text", t.Text)
	}
	w.customFields(e.Ticket.or(NewStyleNotation), t.CustomFields)
	return w.String(), nil
}
