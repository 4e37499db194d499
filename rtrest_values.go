package rtrest

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	// https://github.com/Sirupsen/logrus
	log "github.com/sirupsen/logrus"
)

const (
	// TicketDateLayout is the date format of ticket properties,
	// e.g. "Wed Feb 26 15:59:56 2014".
	TicketDateLayout = "Mon Jan 2 15:04:05 2006"
	// HistoryDateLayout is the date format of ticket history items.
	HistoryDateLayout = "2006-01-02 15:04:05"

	// RT pads single digit days with a space in some versions.
	ticketDateParseLayout = "Mon Jan _2 15:04:05 2006"
)

var durationValue = regexp.MustCompile(`^(\d+)( minutes)?$`)

// parseIdentifier reads "<prefix>/<digits>".
func parseIdentifier(prefix, value string) (int64, error) {
	digits, ok := strings.CutPrefix(value, prefix+"/")
	if !ok {
		return 0, newError(MalformedIdentifier, value, "invalid %s ID pattern: %s", prefix, value)
	}
	return parseID(prefix, digits, value)
}

func parseID(entity, digits, value string) (int64, error) {
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return 0, newError(MalformedIdentifier, value, "invalid %s ID pattern: %s", entity, value)
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || id <= 0 {
		return 0, newError(MalformedIdentifier, value, "invalid %s ID: %s", entity, value)
	}
	return id, nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, newError(MalformedValue, value, "invalid integer value for %s: %q", key, value)
	}
	return n, nil
}

func parseBool(key, value string) (bool, error) {
	switch value {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, newError(UnknownEnumValue, value, "invalid %s value: %q", key, value)
	}
}

// parseDuration reads "<n> minutes" or "<n>". Anything else is 0.
func parseDuration(value string) int {
	m := durationValue.FindStringSubmatch(value)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// parseDate returns nil when value is not a date. RT renders unset dates
// as a localized placeholder such as "Not set" or "Nicht angegeben".
func parseDate(layout, key, value string) *time.Time {
	t, err := time.Parse(layout, value)
	if err != nil {
		logger.WithFields(log.Fields{
			"field": key,
			"value": value,
		}).Debug("Unparseable date left unset")
		return nil
	}
	return &t
}

// formatDate writes t in UTC, the zone parseDate reads dates back in.
func formatDate(layout string, t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(layout)
}

func splitList(value string) []string {
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func joinList(list []string) string {
	items := make([]string, 0, len(list))
	for _, item := range list {
		if item != "" {
			items = append(items, item)
		}
	}
	return strings.Join(items, ",")
}

// sameMembers compares two lists ignoring order. Neither input is reordered.
func sameMembers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// indent prefixes every continuation line of a multi-line value with a space.
func indent(text string) string {
	return strings.ReplaceAll(text, "\n", "\n ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
