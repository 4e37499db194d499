package rtrest

import (
	"regexp"
	"strings"

	// https://github.com/Sirupsen/logrus
	log "github.com/sirupsen/logrus"
)

// Status is the RT status of a response. It is carried in the first line
// of the body and is independent of the HTTP status, which is 200 for
// nearly every answer.
type Status int

const (
	StatusOK                  Status = 200
	StatusBadRequest          Status = 400
	StatusCredentialsRequired Status = 401
	StatusSyntaxError         Status = 409
)

var statusLine = regexp.MustCompile(`^RT/\d+(\.\d+){1,2} (\d{3}) (.+)$`)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "200 Ok"
	case StatusBadRequest:
		return "400 Bad Request"
	case StatusCredentialsRequired:
		return "401 Credentials required"
	case StatusSyntaxError:
		return "409 Syntax Error"
	default:
		return "unknown"
	}
}

// ParseStatus reads the status line at the start of body. The second
// result is false when there is no status line or the code is not one
// of the known ones.
func ParseStatus(body string) (Status, bool) {
	first := body
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		first = body[:i]
	}
	m := statusLine.FindStringSubmatch(strings.TrimSuffix(first, "\r"))
	if m == nil {
		return 0, false
	}
	logger.WithFields(log.Fields{
		"code": m[2],
		"text": m[3],
	}).Debug("Parsed status line")

	switch m[2] {
	case "200":
		return StatusOK, true
	case "400":
		return StatusBadRequest, true
	case "401":
		return StatusCredentialsRequired, true
	case "409":
		return StatusSyntaxError, true
	default:
		return 0, false
	}
}
