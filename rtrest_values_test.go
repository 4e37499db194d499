package rtrest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := map[string]int{
		"0":             0,
		"5":             5,
		"5 minutes":     5,
		"120 minutes":   120,
		"":              0,
		"5 hours":       0,
		"5minutes":      0,
		"-5":            0,
		" 5 minutes":    0,
		"Nicht gesetzt": 0,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseDuration(in), in)
	}
}

func TestParseIdentifier(t *testing.T) {
	id, err := parseIdentifier("ticket", "ticket/42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, value := range []string{"queue/42", "ticket/", "ticket/4x", "ticket/-1", "ticket/0", "42"} {
		_, err := parseIdentifier("ticket", value)
		assert.True(t, errors.Is(err, ErrMalformedIdentifier), value)
	}
}

func TestParseDateTolerant(t *testing.T) {
	assert.Nil(t, parseDate(ticketDateParseLayout, "Due", "Not set"))
	assert.Nil(t, parseDate(HistoryDateLayout, "Created", "2014-13-40 11:11:07"))
	assert.NotNil(t, parseDate(HistoryDateLayout, "Created", "2014-03-13 11:11:07"))
	assert.Equal(t, "", formatDate(TicketDateLayout, nil))
}

func TestLists(t *testing.T) {
	assert.Equal(t, []string{"a@x", "b@x"}, splitList(" a@x , ,b@x"))
	assert.Nil(t, splitList(""))
	assert.Equal(t, "a@x,b@x", joinList([]string{"a@x", "", "b@x"}))

	a := []string{"b", "a", "c"}
	assert.True(t, sameMembers(a, []string{"c", "b", "a"}))
	assert.Equal(t, []string{"b", "a", "c"}, a)
	assert.False(t, sameMembers(a, []string{"a", "b"}))
	assert.False(t, sameMembers(a, []string{"a", "b", "d"}))
	assert.True(t, sameMembers(nil, []string{}))
}

func TestErrorKinds(t *testing.T) {
	err := newError(UnknownEnumValue, "5", "invalid %s value: %q", "user privileged status", "5")
	assert.True(t, errors.Is(err, ErrUnknownEnumValue))
	assert.False(t, errors.Is(err, ErrMalformedValue))
	assert.Equal(t, `invalid user privileged status value: "5"`, err.Error())

	cause := errors.New("connection refused")
	wrapped := wrapError(RequestFailed, cause, "POST %s", "http://rt/")
	assert.True(t, errors.Is(wrapped, ErrRequestFailed))
	assert.True(t, errors.Is(wrapped, cause))
	assert.Equal(t, "request failed", Error{Kind: RequestFailed}.Error())
}
