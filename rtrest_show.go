package rtrest

import (
	"context"
	"fmt"
	"net/url"

	// https://github.com/Sirupsen/logrus
	log "github.com/sirupsen/logrus"

	"rtrest/types"
)

func (c *Client) show(ctx context.Context, path string) (string, error) {
	resp, err := c.postRequest(ctx, restPrefix+path, nil)
	if err != nil {
		logger.WithFields(log.Fields{
			"error": err,
			"path":  path,
		}).Error("Request to RT failed")
		return "", err
	}
	if err := expectStatus(path, resp, StatusOK); err != nil {
		return "", err
	}
	return resp.body, nil
}

// GetTicket fetches the properties of ticket id.
func (c *Client) GetTicket(ctx context.Context, id int64) (*types.Ticket, error) {
	body, err := c.show(ctx, fmt.Sprintf("ticket/%d/show", id))
	if err != nil {
		return nil, err
	}
	return DecodeTicket(body)
}

// GetQueue fetches the properties of queue id.
func (c *Client) GetQueue(ctx context.Context, id int64) (*types.Queue, error) {
	body, err := c.show(ctx, fmt.Sprintf("queue/%d/show", id))
	if err != nil {
		return nil, err
	}
	return DecodeQueue(body)
}

// GetQueueByName fetches the properties of the queue called name.
func (c *Client) GetQueueByName(ctx context.Context, name string) (*types.Queue, error) {
	body, err := c.show(ctx, "queue/"+url.PathEscape(name)+"/show")
	if err != nil {
		return nil, err
	}
	return DecodeQueue(body)
}

// GetUser fetches the properties of user id.
func (c *Client) GetUser(ctx context.Context, id int64) (*types.User, error) {
	body, err := c.show(ctx, fmt.Sprintf("user/%d/show", id))
	if err != nil {
		return nil, err
	}
	return DecodeUser(body)
}

// GetUserByName fetches the properties of the user with login name.
func (c *Client) GetUserByName(ctx context.Context, name string) (*types.User, error) {
	body, err := c.show(ctx, "user/"+url.PathEscape(name)+"/show")
	if err != nil {
		return nil, err
	}
	return DecodeUser(body)
}
