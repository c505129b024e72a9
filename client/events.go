package client

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreate     Action = "create"
	ActionCreateMany Action = "createMany"
	ActionUpdate     Action = "update"
	ActionUpdateMany Action = "updateMany"
	ActionDelete     Action = "delete"
	ActionDeleteMany Action = "deleteMany"
)

// Many reports whether the event covers an unknown set of rows.
func (a Action) Many() bool {
	return a == ActionCreateMany || a == ActionUpdateMany || a == ActionDeleteMany
}

// Event describes a committed write. IDs is empty for batch writes whose
// rows were not returned.
type Event struct {
	Model  string      `json:"model"`
	Action Action      `json:"action"`
	IDs    []uuid.UUID `json:"ids,omitempty"`
	OrgID  *uuid.UUID  `json:"orgId,omitempty"`
	Count  int64       `json:"count"`
	At     time.Time   `json:"at"`
}

// Listener receives events after the write is committed.
type Listener func(ctx context.Context, e Event)

// emit publishes e now, or queues it until the surrounding transaction commits.
func (c *Client) emit(ctx context.Context, e Event) {
	e.At = time.Now().UTC()
	if e.OrgID == nil {
		e.OrgID = c.orgID
	}
	if c.pending != nil {
		*c.pending = append(*c.pending, e)
		return
	}
	c.publish(ctx, e)
}

func (c *Client) publish(ctx context.Context, e Event) {
	c.invalidate(ctx, e)
	for _, l := range c.opts.listeners {
		l(ctx, e)
	}
}
