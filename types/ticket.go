package types

import (
	"fmt"
	"time"
)

// TicketStatus is one of the built-in RT ticket states.
// Custom states defined by the RT administrator are not supported.
type TicketStatus string

const (
	StatusNew      TicketStatus = "new"
	StatusOpen     TicketStatus = "open"
	StatusStalled  TicketStatus = "stalled"
	StatusRejected TicketStatus = "rejected"
	StatusResolved TicketStatus = "resolved"
	StatusDeleted  TicketStatus = "deleted"
)

// ParseTicketStatus maps the wire text of a status to its constant.
// Matching is case-sensitive.
func ParseTicketStatus(s string) (TicketStatus, bool) {
	switch TicketStatus(s) {
	case StatusNew, StatusOpen, StatusStalled, StatusRejected, StatusResolved, StatusDeleted:
		return TicketStatus(s), true
	default:
		return "", false
	}
}

type Ticket struct {
	ID              int64             `json:"id"`
	Queue           string            `json:"queue"`
	Owner           string            `json:"owner"`
	Creator         string            `json:"creator"`
	Subject         string            `json:"subject"`
	Status          TicketStatus      `json:"status"`
	Priority        int               `json:"priority"`
	InitialPriority int               `json:"initialPriority"`
	FinalPriority   int               `json:"finalPriority"`
	Requestors      []string          `json:"requestors"`
	Cc              []string          `json:"cc"`
	AdminCc         []string          `json:"adminCc"`
	Created         *time.Time        `json:"created"`
	Starts          *time.Time        `json:"starts"`
	Started         *time.Time        `json:"started"`
	Due             *time.Time        `json:"due"`
	Resolved        *time.Time        `json:"resolved"`
	Told            *time.Time        `json:"told"`
	LastUpdated     *time.Time        `json:"lastUpdated"`
	TimeEstimated   int               `json:"timeEstimated"`
	TimeWorked      int               `json:"timeWorked"`
	TimeLeft        int               `json:"timeLeft"`
	Text            string            `json:"text"`
	CustomFields    map[string]string `json:"customFields"`
}

func (t *Ticket) String() string {
	return fmt.Sprintf("ticket/%d: %s", t.ID, t.Subject)
}
