package types

import (
	"fmt"
	"time"
)

// HistoryItemType is the kind of transaction recorded in a ticket history.
// The string value is the CamelCase text used on the wire.
type HistoryItemType string

const (
	HistoryCreate             HistoryItemType = "Create"
	HistoryCustomField        HistoryItemType = "CustomField"
	HistoryEmailRecord        HistoryItemType = "EmailRecord"
	HistoryStatus             HistoryItemType = "Status"
	HistoryCommentEmailRecord HistoryItemType = "CommentEmailRecord"
	HistoryCorrespond         HistoryItemType = "Correspond"
	HistoryComment            HistoryItemType = "Comment"
	HistoryPriority           HistoryItemType = "Priority"
	HistoryGive               HistoryItemType = "Give"
	HistorySteal              HistoryItemType = "Steal"
	HistoryTake               HistoryItemType = "Take"
	HistoryUntake             HistoryItemType = "Untake"
	HistorySetWatcher         HistoryItemType = "SetWatcher"
	HistoryAddWatcher         HistoryItemType = "AddWatcher"
	HistoryDeleteWatcher      HistoryItemType = "DeleteWatcher"
	HistoryAddLink            HistoryItemType = "AddLink"
	HistoryDeleteLink         HistoryItemType = "DeleteLink"
	HistoryAddReminder        HistoryItemType = "AddReminder"
	HistoryOpenReminder       HistoryItemType = "OpenReminder"
	HistoryResolveReminder    HistoryItemType = "ResolveReminder"
	HistorySet                HistoryItemType = "Set"
	HistoryForce              HistoryItemType = "Force"
	HistorySubject            HistoryItemType = "Subject"
	HistoryTold               HistoryItemType = "Told"
	HistoryPurgeTransaction   HistoryItemType = "PurgeTransaction"
	HistorySystemError        HistoryItemType = "SystemError"
)

var historyItemTypes = map[HistoryItemType]struct{}{
	HistoryCreate:             {},
	HistoryCustomField:        {},
	HistoryEmailRecord:        {},
	HistoryStatus:             {},
	HistoryCommentEmailRecord: {},
	HistoryCorrespond:         {},
	HistoryComment:            {},
	HistoryPriority:           {},
	HistoryGive:               {},
	HistorySteal:              {},
	HistoryTake:               {},
	HistoryUntake:             {},
	HistorySetWatcher:         {},
	HistoryAddWatcher:         {},
	HistoryDeleteWatcher:      {},
	HistoryAddLink:            {},
	HistoryDeleteLink:         {},
	HistoryAddReminder:        {},
	HistoryOpenReminder:       {},
	HistoryResolveReminder:    {},
	HistorySet:                {},
	HistoryForce:              {},
	HistorySubject:            {},
	HistoryTold:               {},
	HistoryPurgeTransaction:   {},
	HistorySystemError:        {},
}

// ParseHistoryItemType maps the wire text of a transaction type to its
// constant. Matching is case-sensitive.
func ParseHistoryItemType(s string) (HistoryItemType, bool) {
	t := HistoryItemType(s)
	if _, ok := historyItemTypes[t]; !ok {
		return "", false
	}
	return t, true
}

type HistoryItem struct {
	ID          int64           `json:"id"`
	Ticket      int64           `json:"ticket"`
	TimeTaken   int             `json:"timeTaken"`
	Type        HistoryItemType `json:"type"`
	Field       string          `json:"field"`
	OldValue    string          `json:"oldValue"`
	NewValue    string          `json:"newValue"`
	Data        string          `json:"data"`
	Description string          `json:"description"`
	Content     string          `json:"content"`
	Creator     string          `json:"creator"`
	Created     *time.Time      `json:"created"`
	// Attachment id -> file name. Empty attachments are not listed.
	Attachments map[int64]string `json:"attachments"`
}

func (h *HistoryItem) String() string {
	return fmt.Sprintf("history %d (ticket/%d): %s", h.ID, h.Ticket, h.Type)
}
