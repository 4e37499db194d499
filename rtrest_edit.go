package rtrest

import (
	"context"
	"fmt"

	structs "github.com/fatih/structs"

	// https://github.com/Sirupsen/logrus
	log "github.com/sirupsen/logrus"

	"rtrest/types"
)

// sendContent posts an encoded entity as the content form field and checks
// the RT status against accepted.
func (c *Client) sendContent(ctx context.Context, path, content string, accepted ...Status) (string, error) {
	logger.WithFields(log.Fields{
		"path":    path,
		"content": content,
	}).Debug("Sending request")
	resp, err := c.postRequest(ctx, restPrefix+path, contentArgs{Content: content})
	if err != nil {
		logger.WithFields(log.Fields{
			"error": err,
			"path":  path,
		}).Error("Request to RT failed")
		return "", err
	}
	if err := expectStatus(path, resp, accepted...); err != nil {
		return "", err
	}
	return resp.body, nil
}

// CreateTicket creates t and returns the ID RT assigned to it. t.ID is
// not used.
func (c *Client) CreateTicket(ctx context.Context, t *types.Ticket) (int64, error) {
	logger.WithFields(structs.Map(t)).Debug("Creating ticket")
	body, err := c.sendContent(ctx, "ticket/new", c.encoder.EncodeTicket(t), StatusOK)
	if err != nil {
		return 0, err
	}
	return DecodeTicketCreated(body)
}

// EditTicket sends the fields of t that differ from the ticket stored in RT.
func (c *Client) EditTicket(ctx context.Context, t *types.Ticket) error {
	old, err := c.GetTicket(ctx, t.ID)
	if err != nil {
		return err
	}
	content, err := c.encoder.EncodeTicketUpdate(t, old)
	if err != nil {
		return err
	}
	if content == "" {
		logger.WithFields(log.Fields{"ticket": t.ID}).Debug("Nothing to update")
		return nil
	}
	logger.WithFields(structs.Map(t)).Debug("Editing ticket")
	body, err := c.sendContent(ctx, fmt.Sprintf("ticket/%d/edit", t.ID), content, StatusOK, StatusSyntaxError)
	if err != nil {
		return err
	}
	_, err = DecodeTicketUpdated(body)
	return err
}

// CreateQueue creates q and returns the ID RT assigned to it.
func (c *Client) CreateQueue(ctx context.Context, q *types.Queue) (int64, error) {
	logger.WithFields(structs.Map(q)).Debug("Creating queue")
	body, err := c.sendContent(ctx, "queue/new", c.encoder.EncodeQueue(q), StatusOK)
	if err != nil {
		return 0, err
	}
	return DecodeQueueCreated(body)
}

// EditQueue sends the fields of q that differ from the queue stored in RT.
func (c *Client) EditQueue(ctx context.Context, q *types.Queue) error {
	old, err := c.GetQueue(ctx, q.ID)
	if err != nil {
		return err
	}
	content, err := c.encoder.EncodeQueueUpdate(q, old)
	if err != nil {
		return err
	}
	if content == "" {
		logger.WithFields(log.Fields{"queue": q.ID}).Debug("Nothing to update")
		return nil
	}
	logger.WithFields(structs.Map(q)).Debug("Editing queue")
	body, err := c.sendContent(ctx, fmt.Sprintf("queue/%d/edit", q.ID), content, StatusOK, StatusSyntaxError)
	if err != nil {
		return err
	}
	_, err = DecodeQueueUpdated(body)
	return err
}

// EditUser sends the fields of u that differ from the user stored in RT.
func (c *Client) EditUser(ctx context.Context, u *types.User) error {
	old, err := c.GetUser(ctx, u.ID)
	if err != nil {
		return err
	}
	content, err := c.encoder.EncodeUserUpdate(u, old)
	if err != nil {
		return err
	}
	if content == "" {
		logger.WithFields(log.Fields{"user": u.ID}).Debug("Nothing to update")
		return nil
	}
	logger.WithFields(structs.Map(u)).Debug("Editing user")
	body, err := c.sendContent(ctx, fmt.Sprintf("user/%d/edit", u.ID), content, StatusOK, StatusSyntaxError)
	if err != nil {
		return err
	}
	_, err = DecodeUserUpdated(body)
	return err
}
