package types

import "fmt"

type Queue struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	CorrespondAddress string            `json:"correspondAddress"`
	CommentAddress    string            `json:"commentAddress"`
	InitialPriority   int               `json:"initialPriority"`
	FinalPriority     int               `json:"finalPriority"`
	// DefaultDueIn is counted in days.
	DefaultDueIn int               `json:"defaultDueIn"`
	Disabled     bool              `json:"disabled"`
	CustomFields map[string]string `json:"customFields"`
}

func (q *Queue) String() string {
	return fmt.Sprintf("queue/%d: %s", q.ID, q.Name)
}
