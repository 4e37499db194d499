package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTicketStatus(t *testing.T) {
	for _, s := range []string{"new", "open", "stalled", "rejected", "resolved", "deleted"} {
		status, ok := ParseTicketStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, TicketStatus(s), status)
	}
	for _, s := range []string{"", "Open", "pending"} {
		_, ok := ParseTicketStatus(s)
		assert.False(t, ok, s)
	}
}

func TestParseHistoryItemType(t *testing.T) {
	typ, ok := ParseHistoryItemType("CommentEmailRecord")
	assert.True(t, ok)
	assert.Equal(t, HistoryCommentEmailRecord, typ)

	_, ok = ParseHistoryItemType("comment")
	assert.False(t, ok)
	assert.Len(t, historyItemTypes, 26)
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "ticket/1: Printer on fire", (&Ticket{ID: 1, Subject: "Printer on fire"}).String())
	assert.Equal(t, "queue/2: General", (&Queue{ID: 2, Name: "General"}).String())
	assert.Equal(t, "user/3: root", (&User{ID: 3, Name: "root"}).String())
	assert.Equal(t, "history 4 (ticket/1): Comment", (&HistoryItem{ID: 4, Ticket: 1, Type: HistoryComment}).String())
}
