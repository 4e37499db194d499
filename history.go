package rtrest

import (
	"regexp"
	"strconv"
	"strings"

	"rtrest/types"
)

var historyGrammar = grammar{
	entity:        "history item",
	skipUnmatched: true,
	continuations: map[string]*regexp.Regexp{
		"Content":     regexp.MustCompile(`^ {9}(.*)$`),
		"Attachments": regexp.MustCompile(`^ {13}(\d+): (.+?) \((\d+(?:\.\d+)?)[bkM]\)$`),
	},
}

type historyDecoder struct {
	h       *types.HistoryItem
	content []string
}

func (d *historyDecoder) customField(name, value string) {}

func (d *historyDecoder) continuation(key string, match []string) error {
	switch key {
	case "Content":
		d.content = append(d.content, match[1])
	case "Attachments":
		size, err := strconv.ParseFloat(match[3], 64)
		if err != nil || size <= 0 {
			return nil
		}
		id, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			return newError(MalformedIdentifier, match[0], "invalid attachment ID: %s", match[1])
		}
		d.h.Attachments[id] = match[2]
	default:
		return newError(UnexpectedContinuation, match[0], "unexpected multiline line for field %q", key)
	}
	return nil
}

func (d *historyDecoder) field(key, value string) error {
	var err error
	h := d.h
	switch key {
	case "id":
		h.ID, err = parseID("history item", value, value)
	case "Ticket":
		h.Ticket, err = parseID("ticket", value, value)
	case "TimeTaken":
		h.TimeTaken, err = parseInt(key, value)
	case "Type":
		typ, ok := types.ParseHistoryItemType(value)
		if !ok {
			return newError(UnknownEnumValue, value, "unknown history item type: %q", value)
		}
		h.Type = typ
	case "Field":
		h.Field = value
	case "OldValue":
		h.OldValue = value
	case "NewValue":
		h.NewValue = value
	case "Data":
		h.Data = value
	case "Description":
		h.Description = value
	case "Content":
		d.content = []string{value}
	case "Creator":
		h.Creator = value
	case "Created":
		h.Created = parseDate(HistoryDateLayout, key, value)
	}
	return err
}

// DecodeHistoryItem reads one item of a long format ticket history.
// Comment lines are skipped: the history carries a "# n/n" header.
func DecodeHistoryItem(body string) (*types.HistoryItem, error) {
	h := &types.HistoryItem{Attachments: map[int64]string{}}
	d := &historyDecoder{h: h}
	if err := historyGrammar.scan(body, d); err != nil {
		return nil, err
	}
	if h.ID == 0 {
		return nil, newError(MalformedIdentifier, "", "history item record without id")
	}
	h.Content = joinLines(d.content)
	return h, nil
}

// DecodeHistory reads a long format ticket history response. Order is kept.
func DecodeHistory(body string) ([]*types.HistoryItem, error) {
	blocks := splitRecords(body)
	items := make([]*types.HistoryItem, 0, len(blocks))
	for _, block := range blocks {
		h, err := DecodeHistoryItem(block)
		if err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	return items, nil
}

// EncodeHistoryItem builds the body of a comment or correspond request
// from a Comment or Correspond item. cc and bcc are left out when empty.
// Attachments are not sent.
func EncodeHistoryItem(h *types.HistoryItem, cc, bcc string) (string, error) {
	if h.Type != types.HistoryComment && h.Type != types.HistoryCorrespond {
		return "", newError(UnsupportedOperation, string(h.Type),
			"unsupported history item type for comment action: %s", h.Type)
	}

	var w fieldWriter
	w.field("id", strconv.FormatInt(h.Ticket, 10))
	w.field("Action", strings.ToLower(string(h.Type)))
	w.textField("Text", h.Content)
	if cc != "" {
		w.field("Cc", cc)
	}
	if bcc != "" {
		w.field("Bcc", bcc)
	}
	w.intField("TimeWorked", h.TimeTaken)
	return w.String(), nil
}
