package order

import "time"

// Status is the fulfillment state of an order. Orders start out preparing;
// done and cancelled are both terminal.
type Status string

const (
	StatusPreparing Status = "preparing"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPreparing, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is a legal step of
// the preparing -> done | cancelled machine.
func (s Status) CanTransition(next Status) bool {
	if s != StatusPreparing {
		return false
	}
	return next == StatusDone || next == StatusCancelled
}

// Order is one placed burger order. Number is drawn from the single global
// sequence and is never reused.
type Order struct {
	ID            string    `json:"_id"`
	Number        int64     `json:"number"`
	OwnerID       string    `json:"-"`
	Name          string    `json:"name"`
	Status        Status    `json:"status"`
	IngredientIDs []string  `json:"ingredients"`
	Price         int       `json:"price"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
