package rtrest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rtrest/types"
)

const testSession = "RT_SID_example.80=0123456789abcdef"

func reply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}
}

// recorder keeps the content form field of every request by path.
type recorder struct {
	mu      sync.Mutex
	content map[string]string
}

func (rec *recorder) reply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.content[r.URL.Path] = r.PostFormValue("content")
		rec.mu.Unlock()
		fmt.Fprint(w, body)
	}
}

func (rec *recorder) get(path string) string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.content[path]
}

func newTestClient(t *testing.T, routes map[string]http.HandlerFunc) *Client {
	t.Helper()
	mux := http.NewServeMux()
	for path, h := range routes {
		mux.HandleFunc(path, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	var c Client
	require.NoError(t, c.Init(srv.URL, &Options{LogLevel: "error"}))
	return &c
}

func TestClientLoginLogout(t *testing.T) {
	var loggedOut atomic.Bool
	c := newTestClient(t, map[string]http.HandlerFunc{
		"/REST/1.0/user/root": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			assert.Equal(t, "en-US;q=0.8,en;q=0.6", r.Header.Get("Accept-Language"))
			assert.Equal(t, "root", r.PostFormValue("user"))
			assert.Equal(t, "s3cr3t", r.PostFormValue("pass"))
			w.Header().Set("Set-Cookie", testSession+"; path=/; HttpOnly")
			fmt.Fprint(w, "RT/4.2.3 200 Ok\n\n")
		},
		"/REST/1.0/ticket/1/show": func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Cookie") != testSession {
				fmt.Fprint(w, "RT/4.2.3 401 Credentials required\n")
				return
			}
			fmt.Fprint(w, ticketResponse)
		},
		"/REST/1.0/logout": func(w http.ResponseWriter, r *http.Request) {
			loggedOut.Store(r.Header.Get("Cookie") == testSession)
			fmt.Fprint(w, "RT/4.2.3 200 Ok\n\n")
		},
	})
	ctx := context.Background()

	_, err := c.GetTicket(ctx, 1)
	assert.True(t, errors.Is(err, ErrUnexpectedStatus), "got %v", err)

	require.NoError(t, c.Login(ctx, "root", "s3cr3t"))
	assert.Equal(t, testSession, c.Session())

	ticket, err := c.GetTicket(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Testticket 1", ticket.Subject)

	require.NoError(t, c.Logout(ctx))
	assert.True(t, loggedOut.Load())
	assert.Empty(t, c.Session())
}

func TestClientLoginRejected(t *testing.T) {
	c := newTestClient(t, map[string]http.HandlerFunc{
		"/REST/1.0/user/root": reply("RT/4.2.3 401 Credentials required\n"),
	})
	err := c.Login(context.Background(), "root", "wrong")
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))
	assert.Empty(t, c.Session())
}

func TestClientHTTPFailure(t *testing.T) {
	c := newTestClient(t, map[string]http.HandlerFunc{
		"/REST/1.0/queue/1/show": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
	})
	_, err := c.GetQueue(context.Background(), 1)
	assert.True(t, errors.Is(err, ErrRequestFailed), "got %v", err)
}

func TestClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	var c Client
	require.NoError(t, c.Init(srv.URL, &Options{LogLevel: "error"}))
	srv.Close()

	_, err := c.GetUser(context.Background(), 1)
	assert.True(t, errors.Is(err, ErrRequestFailed), "got %v", err)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestClientSearchTickets(t *testing.T) {
	c := newTestClient(t, map[string]http.HandlerFunc{
		"/REST/1.0/search/ticket": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "Queue = 'General'", q.Get("query"))
			assert.Equal(t, "-Created", q.Get("orderby"))
			assert.Equal(t, "l", q.Get("format"))
			fmt.Fprint(w, ticketResponse+"\n\n--\n\nid: ticket/2\nSubject: second\n")
		},
	})
	tickets, err := c.SearchTickets(context.Background(), "Queue = 'General'", "")
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, "second", tickets[1].Subject)
}

func TestClientSearchUsersAndQueues(t *testing.T) {
	c := newTestClient(t, map[string]http.HandlerFunc{
		"/REST/1.0/search/user": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Name", r.URL.Query().Get("orderby"))
			fmt.Fprint(w, "RT/4.2.3 200 Ok\n\nNo matching results.\n")
		},
		"/REST/1.0/search/queue": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "query=", r.URL.RawQuery)
			fmt.Fprint(w, "RT/4.2.3 200 Ok\n\n1: General\n2: Sales\n")
		},
	})
	ctx := context.Background()

	users, err := c.SearchUsers(ctx, "EmailAddress LIKE 'example.com'", "Name")
	require.NoError(t, err)
	assert.Empty(t, users)

	queues, err := c.ListQueues(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{1: "General", 2: "Sales"}, queues)
}

func TestClientGetByName(t *testing.T) {
	c := newTestClient(t, map[string]http.HandlerFunc{
		"/REST/1.0/queue/General/show": reply("RT/4.2.3 200 Ok\n\nid: queue/1\nName: General\n"),
		"/REST/1.0/user/root/show":     reply("RT/4.2.3 200 Ok\n\nid: user/14\nName: root\n"),
	})
	ctx := context.Background()

	q, err := c.GetQueueByName(ctx, "General")
	require.NoError(t, err)
	assert.Equal(t, int64(1), q.ID)

	u, err := c.GetUserByName(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, int64(14), u.ID)
}

func TestClientCreateTicket(t *testing.T) {
	rec := &recorder{content: map[string]string{}}
	c := newTestClient(t, map[string]http.HandlerFunc{
		"/REST/1.0/ticket/new": rec.reply("RT/4.2.3 200 Ok\n\n# Ticket 775 created.\n"),
	})
	ticket := testTicket()
	id, err := c.CreateTicket(context.Background(), ticket)
	require.NoError(t, err)
	assert.Equal(t, int64(775), id)
	assert.Equal(t, EncodeTicket(ticket), rec.get("/REST/1.0/ticket/new"))
}

func TestClientEditTicket(t *testing.T) {
	rec := &recorder{content: map[string]string{}}
	c := newTestClient(t, map[string]http.HandlerFunc{
		"/REST/1.0/ticket/1/show": reply(ticketResponse),
		"/REST/1.0/ticket/1/edit": rec.reply("RT/4.2.3 409 Syntax Error\n\n# Ticket 1 updated.\n"),
	})
	ctx := context.Background()

	ticket, err := c.GetTicket(ctx, 1)
	require.NoError(t, err)
	ticket.Subject = "Testticket 1 (renamed)"
	ticket.Status = types.StatusOpen

	require.NoError(t, c.EditTicket(ctx, ticket))
	assert.Equal(t, "Subject: Testticket 1 (renamed)\nStatus: open\nCF.{Incident}: 101\nCF.{Risk}: 10\n",
		rec.get("/REST/1.0/ticket/1/edit"))
}

func TestClientEditTicketNotConfirmed(t *testing.T) {
	c := newTestClient(t, map[string]http.HandlerFunc{
		"/REST/1.0/ticket/1/show": reply(ticketResponse),
		"/REST/1.0/ticket/1/edit": reply(ticketResponse),
	})
	ctx := context.Background()

	ticket, err := c.GetTicket(ctx, 1)
	require.NoError(t, err)
	ticket.Owner = "nobody"
	err = c.EditTicket(ctx, ticket)
	assert.True(t, errors.Is(err, ErrActionNotConfirmed), "got %v", err)
}

func TestClientQueueCalls(t *testing.T) {
	rec := &recorder{content: map[string]string{}}
	c := newTestClient(t, map[string]http.HandlerFunc{
		"/REST/1.0/queue/new":    rec.reply("RT/4.2.3 200 Ok\n\n# Queue 9 created.\n"),
		"/REST/1.0/queue/9/show": reply("RT/4.2.3 200 Ok\n\nid: queue/9\nName: Support\nDisabled: 0\n"),
		"/REST/1.0/queue/9/edit": rec.reply("RT/4.2.3 200 Ok\n\n# Queue 9 updated.\n"),
	})
	ctx := context.Background()

	id, err := c.CreateQueue(ctx, &types.Queue{Name: "Support"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)

	require.NoError(t, c.EditQueue(ctx, &types.Queue{ID: 9, Name: "Support", Disabled: true}))
	assert.Equal(t, "Disabled: 1\n", rec.get("/REST/1.0/queue/9/edit"))
}

func TestClientEditUser(t *testing.T) {
	rec := &recorder{content: map[string]string{}}
	c := newTestClient(t, map[string]http.HandlerFunc{
		"/REST/1.0/user/100/show": reply(userResponse),
		"/REST/1.0/user/100/edit": rec.reply("RT/4.2.3 200 Ok\n\n# User 100 updated.\n"),
	})
	ctx := context.Background()

	u, err := c.GetUser(ctx, 100)
	require.NoError(t, err)
	u.City = "Hamburg"
	require.NoError(t, c.EditUser(ctx, u))
	assert.Equal(t, "City: Hamburg\nCF-NewStyle: 1\nCF-OldStyle: 1\n", rec.get("/REST/1.0/user/100/edit"))
}

func TestClientHistoryAndComment(t *testing.T) {
	rec := &recorder{content: map[string]string{}}
	c := newTestClient(t, map[string]http.HandlerFunc{
		"/REST/1.0/ticket/18/history": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "l", r.URL.Query().Get("format"))
			fmt.Fprint(w, historyItemHeader+"Attachments: \n             28: untitled (28b)\n")
		},
		"/REST/1.0/ticket/18/comment": rec.reply("RT/4.2.3 200 Ok\n\n# Message recorded\n"),
	})
	ctx := context.Background()

	items, err := c.History(ctx, 18)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, map[int64]string{28: "untitled"}, items[0].Attachments)

	note := &types.HistoryItem{Ticket: 18, Type: types.HistoryComment, Content: "internal note"}
	require.NoError(t, c.Comment(ctx, note, "", ""))
	assert.Equal(t, "id: 18\nAction: comment\nText: internal note\nTimeWorked: 0\n", rec.get("/REST/1.0/ticket/18/comment"))

	err = c.Correspond(ctx, note, "", "")
	assert.True(t, errors.Is(err, ErrUnsupportedOperation))
}

func TestClientFetchTickets(t *testing.T) {
	c := newTestClient(t, map[string]http.HandlerFunc{
		"/REST/1.0/ticket/1/show": reply(ticketResponse),
		"/REST/1.0/ticket/2/show": reply("RT/4.2.3 200 Ok\n\nid: ticket/2\nSubject: second\n"),
		"/REST/1.0/ticket/3/show": reply("RT/4.2.3 200 Ok\n\n# Ticket 3 does not exist.\n"),
	})

	var (
		ids  []int64
		errs []error
	)
	for result := range c.FetchTickets(context.Background(), []int64{1, 2, 3}) {
		switch r := result.(type) {
		case *types.Ticket:
			ids = append(ids, r.ID)
		case error:
			errs = append(errs, r)
		default:
			t.Fatalf("unexpected result type %T", result)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	assert.Equal(t, []int64{1, 2}, ids)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], ErrServerReportedError))
}
