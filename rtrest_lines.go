package rtrest

import (
	"regexp"
	"strings"

	// https://github.com/Sirupsen/logrus
	log "github.com/sirupsen/logrus"
)

const (
	recordDelimiter   = "--"
	noMatchingResults = "No matching results."
	statusLinePrefix  = "RT/"
	commentLinePrefix = "#"
)

var (
	customFieldNewLine = regexp.MustCompile(`^CF\.\{(.+?)\}:(.*)$`)
	customFieldOldLine = regexp.MustCompile(`^CF-([^:]+):(.*)$`)
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineStatus
	lineComment
	lineCustomFieldNew
	lineCustomFieldOld
	lineInvalidCustomField
	lineContinuation
	lineOrphan
	lineField
)

type classifiedLine struct {
	kind  lineKind
	raw   string
	key   string
	value string
	// Submatches of the continuation pattern for lineContinuation.
	match []string
}

// classifyLine sorts one line of a record block. open is the pattern of the
// multi-line field currently being read, nil when there is none.
func classifyLine(raw string, open *regexp.Regexp) classifiedLine {
	l := classifiedLine{raw: raw}

	if strings.TrimSpace(raw) == "" {
		// Indented whitespace inside a multi-line value is an empty line of it.
		if raw != "" && open != nil {
			if m := open.FindStringSubmatch(raw); m != nil {
				l.kind = lineContinuation
				l.match = m
				return l
			}
		}
		l.kind = lineBlank
		return l
	}

	switch {
	case strings.HasPrefix(raw, statusLinePrefix):
		l.kind = lineStatus
		return l
	case strings.HasPrefix(raw, commentLinePrefix):
		l.kind = lineComment
		l.value = strings.TrimPrefix(strings.TrimPrefix(raw, commentLinePrefix), " ")
		return l
	case strings.HasPrefix(raw, "CF.{"):
		if m := customFieldNewLine.FindStringSubmatch(raw); m != nil {
			l.kind = lineCustomFieldNew
			l.key, l.value = m[1], strings.TrimSpace(m[2])
		} else {
			l.kind = lineInvalidCustomField
		}
		return l
	case strings.HasPrefix(raw, "CF-"):
		if m := customFieldOldLine.FindStringSubmatch(raw); m != nil {
			l.kind = lineCustomFieldOld
			l.key, l.value = m[1], strings.TrimSpace(m[2])
		} else {
			l.kind = lineInvalidCustomField
		}
		return l
	}

	if open != nil {
		if m := open.FindStringSubmatch(raw); m != nil {
			l.kind = lineContinuation
			l.match = m
			return l
		}
	}
	if raw[0] == ' ' || raw[0] == '\t' {
		l.kind = lineOrphan
		return l
	}

	l.kind = lineField
	if i := strings.Index(raw, ":"); i >= 0 {
		l.key, l.value = raw[:i], strings.TrimSpace(raw[i+1:])
	} else {
		l.key = raw
	}
	return l
}

// recordHandler receives the meaningful lines of one record block.
type recordHandler interface {
	field(key, value string) error
	customField(name, value string)
	// continuation gets the key of the open multi-line field and the
	// submatches of that field's continuation pattern.
	continuation(key string, match []string) error
}

// grammar is the part of the line format that differs between entities.
type grammar struct {
	entity string
	// A "#" line aborts property decodes. History responses carry a
	// "# n/n (id/x/total)" header that must be skipped instead.
	fatalComments bool
	// Field key -> pattern matching the lines that continue its value.
	continuations map[string]*regexp.Regexp
	// An indented line that does not fit the open multi-line field is
	// skipped and the field stays open, instead of failing the decode.
	skipUnmatched bool
}

func (g grammar) scan(block string, h recordHandler) error {
	var (
		openKey string
		open    *regexp.Regexp
	)
	for _, raw := range splitLines(block) {
		l := classifyLine(raw, open)
		if l.kind == lineOrphan && open != nil && g.skipUnmatched {
			logger.WithFields(log.Fields{
				"entity": g.entity,
				"field":  openKey,
				"line":   raw,
			}).Warn("Unrecognized multiline line skipped")
			continue
		}
		if l.kind != lineBlank && l.kind != lineContinuation {
			openKey, open = "", nil
		}

		switch l.kind {
		case lineBlank, lineStatus:
			// ignored
		case lineComment:
			if g.fatalComments {
				return newError(ServerReportedError, raw, "%s", l.value)
			}
		case lineInvalidCustomField:
			logger.WithFields(log.Fields{
				"entity": g.entity,
				"line":   raw,
			}).Warn("Invalid custom field line detected")
		case lineCustomFieldNew, lineCustomFieldOld:
			h.customField(l.key, l.value)
		case lineContinuation:
			if err := h.continuation(openKey, l.match); err != nil {
				return err
			}
		case lineOrphan:
			return newError(UnexpectedContinuation, raw, "unexpected multiline line in %s record: %q", g.entity, raw)
		case lineField:
			if p, ok := g.continuations[l.key]; ok {
				openKey, open = l.key, p
			}
			if err := h.field(l.key, l.value); err != nil {
				return err
			}
		}
	}
	return nil
}

// noContinuations is embedded by handlers of entities without multi-line fields.
type noContinuations struct{}

func (noContinuations) continuation(key string, match []string) error {
	return newError(UnexpectedContinuation, key, "unexpected multiline line for field %q", key)
}

func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// splitRecords cuts a list response into record blocks on "--" lines.
// A "No matching results." response has no blocks.
func splitRecords(body string) []string {
	if strings.Contains(body, noMatchingResults) {
		return nil
	}
	var (
		blocks  []string
		current []string
	)
	flush := func() {
		if !emptyRecord(current) {
			blocks = append(blocks, strings.Join(current, "\n"))
		}
		current = nil
	}
	for _, line := range splitLines(body) {
		if line == recordDelimiter {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

func emptyRecord(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" && !strings.HasPrefix(line, statusLinePrefix) {
			return false
		}
	}
	return true
}
