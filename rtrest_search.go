package rtrest

import (
	"context"
	"fmt"
	"sync"

	// https://godoc.org/github.com/google/go-querystring/query
	query "github.com/google/go-querystring/query"

	// https://github.com/Sirupsen/logrus
	log "github.com/sirupsen/logrus"

	"rtrest/types"
)

const (
	// DefaultTicketOrder sorts search results by creation date, newest first.
	DefaultTicketOrder = "-Created"

	maxBufferedResponses = 32
	maxParallelFetches   = 4
)

// SearchArguments are the query string of the search endpoints.
type SearchArguments struct {
	Query   string `url:"query"`
	OrderBy string `url:"orderby,omitempty"`
	Format  string `url:"format,omitempty"`
}

func (c *Client) search(ctx context.Context, entity string, arguments SearchArguments) (string, error) {
	queryArgs, err := query.Values(arguments)
	if err != nil {
		logger.WithFields(log.Fields{
			"error":  err,
			"entity": entity,
		}).Error("Failed to encode search query arguments")
		return "", err
	}
	path := fmt.Sprintf("search/%s?%s", entity, queryArgs.Encode())
	resp, err := c.postRequest(ctx, restPrefix+path, nil)
	if err != nil {
		logger.WithFields(log.Fields{
			"error": err,
			"query": arguments.Query,
		}).Error("Request to RT failed")
		return "", err
	}
	if err := expectStatus("search "+entity, resp, StatusOK); err != nil {
		return "", err
	}
	return resp.body, nil
}

// SearchTickets runs a TicketSQL query. An empty orderBy falls back to
// DefaultTicketOrder.
func (c *Client) SearchTickets(ctx context.Context, ticketSQL, orderBy string) ([]*types.Ticket, error) {
	if orderBy == "" {
		orderBy = DefaultTicketOrder
	}
	body, err := c.search(ctx, "ticket", SearchArguments{Query: ticketSQL, OrderBy: orderBy, Format: "l"})
	if err != nil {
		return nil, err
	}
	return DecodeTickets(body)
}

// SearchUsers runs a user query.
func (c *Client) SearchUsers(ctx context.Context, userQuery, orderBy string) ([]*types.User, error) {
	body, err := c.search(ctx, "user", SearchArguments{Query: userQuery, OrderBy: orderBy, Format: "l"})
	if err != nil {
		return nil, err
	}
	return DecodeUsers(body)
}

// ListQueues returns the names of all queues visible to the session, by ID.
func (c *Client) ListQueues(ctx context.Context) (map[int64]string, error) {
	body, err := c.search(ctx, "queue", SearchArguments{})
	if err != nil {
		return nil, err
	}
	return DecodeQueueList(body), nil
}

// FetchTickets fetches the tickets of ids in parallel. The channel yields
// a *types.Ticket or an error per ID, in no particular order, and is closed
// once all of them are done or ctx is cancelled.
func (c *Client) FetchTickets(ctx context.Context, ids []int64) <-chan interface{} {
	resultChan := make(chan interface{}, maxBufferedResponses)
	idChan := make(chan int64)

	go func() {
		defer close(idChan)
		for _, id := range ids {
			select {
			case <-ctx.Done():
				logger.Debug("Context cancellation")
				return
			case idChan <- id:
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < maxParallelFetches; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range idChan {
				var result interface{}
				t, err := c.GetTicket(ctx, id)
				if err != nil {
					logger.WithFields(log.Fields{
						"error":  err,
						"ticket": id,
					}).Error("Failed to fetch ticket")
					result = err
				} else {
					result = t
				}
				select {
				case <-ctx.Done():
					logger.Debug("Context cancellation")
					return
				case resultChan <- result:
					logger.Debug("Sending an RT ticket for processing")
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(resultChan)
	}()
	return resultChan
}
