package rtrest

import (
	"regexp"
	"strconv"
)

// The outcome of a create, edit or comment request is only reported in
// one "#" line of the response. A property dump without that line does
// not mean the request went through.
var (
	ticketCreatedLine = regexp.MustCompile(`^# Ticket (\d+) created\.$`)
	queueCreatedLine  = regexp.MustCompile(`^# Queue (\d+) created\.$`)
	ticketUpdatedLine = regexp.MustCompile(`^# Ticket \d+ updated\.$`)
	queueUpdatedLine  = regexp.MustCompile(`^# Queue \d+ updated\.$`)
	userUpdatedLine   = regexp.MustCompile(`^# User \d+ updated\.$`)
)

const messageRecordedLine = "# Message recorded"

// DecodeTicketCreated returns the id of the ticket a creation request made.
func DecodeTicketCreated(body string) (int64, error) {
	return decodeCreated("ticket", ticketCreatedLine, body)
}

// DecodeQueueCreated returns the id of the queue a creation request made.
func DecodeQueueCreated(body string) (int64, error) {
	return decodeCreated("queue", queueCreatedLine, body)
}

// DecodeTicketUpdated confirms a ticket edit request.
func DecodeTicketUpdated(body string) (bool, error) {
	return decodeUpdated("ticket", ticketUpdatedLine, body)
}

// DecodeQueueUpdated confirms a queue edit request.
func DecodeQueueUpdated(body string) (bool, error) {
	return decodeUpdated("queue", queueUpdatedLine, body)
}

// DecodeUserUpdated confirms a user edit request.
func DecodeUserUpdated(body string) (bool, error) {
	return decodeUpdated("user", userUpdatedLine, body)
}

// DecodeMessageRecorded confirms a comment or correspond request.
func DecodeMessageRecorded(body string) (bool, error) {
	for _, line := range splitLines(body) {
		if line == messageRecordedLine {
			return true, nil
		}
	}
	return false, newError(ActionNotConfirmed, "", "ticket comment failed")
}

func decodeCreated(entity string, confirmation *regexp.Regexp, body string) (int64, error) {
	for _, line := range commentLines(body) {
		m := confirmation.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil || id <= 0 {
			return 0, newError(MalformedIdentifier, line, "invalid %s ID in confirmation: %s", entity, line)
		}
		return id, nil
	}
	return 0, newError(ActionNotConfirmed, "", "%s creation failed", entity)
}

func decodeUpdated(entity string, confirmation *regexp.Regexp, body string) (bool, error) {
	for _, line := range commentLines(body) {
		if confirmation.MatchString(line) {
			return true, nil
		}
	}
	return false, newError(ActionNotConfirmed, "", "%s edit failed", entity)
}

func commentLines(body string) []string {
	var comments []string
	for _, line := range splitLines(body) {
		if classifyLine(line, nil).kind == lineComment {
			comments = append(comments, line)
		}
	}
	return comments
}
