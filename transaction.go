package rtrest

import (
	"context"
	"fmt"

	// https://godoc.org/github.com/google/go-querystring/query
	query "github.com/google/go-querystring/query"

	"rtrest/types"
)

type historyArguments struct {
	Format string `url:"format"`
}

// History fetches every transaction of ticket id, oldest first.
func (c *Client) History(ctx context.Context, id int64) ([]*types.HistoryItem, error) {
	queryArgs, err := query.Values(historyArguments{Format: "l"})
	if err != nil {
		return nil, err
	}
	body, err := c.show(ctx, fmt.Sprintf("ticket/%d/history?%s", id, queryArgs.Encode()))
	if err != nil {
		return nil, err
	}
	return DecodeHistory(body)
}

// Comment adds item as a private comment to ticket item.Ticket.
func (c *Client) Comment(ctx context.Context, item *types.HistoryItem, cc, bcc string) error {
	return c.addTransaction(ctx, types.HistoryComment, item, cc, bcc)
}

// Correspond sends item to the requestors of ticket item.Ticket.
func (c *Client) Correspond(ctx context.Context, item *types.HistoryItem, cc, bcc string) error {
	return c.addTransaction(ctx, types.HistoryCorrespond, item, cc, bcc)
}

func (c *Client) addTransaction(ctx context.Context, typ types.HistoryItemType, item *types.HistoryItem, cc, bcc string) error {
	if item.Type != typ {
		return newError(UnsupportedOperation, string(item.Type), "history item of type %s cannot be sent as %s", item.Type, typ)
	}
	content, err := EncodeHistoryItem(item, cc, bcc)
	if err != nil {
		return err
	}
	body, err := c.sendContent(ctx, fmt.Sprintf("ticket/%d/comment", item.Ticket), content, StatusOK)
	if err != nil {
		return err
	}
	_, err = DecodeMessageRecorded(body)
	return err
}
