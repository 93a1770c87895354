// Package progress derives the shipment timeline shown for a single order
// from its coarse status.
package progress

import (
	"time"

	"github.com/RaikyD/parcel-orders/internal/domain"
)

// EstimatedDeliveryDays is a display heuristic, not a delivery promise.
const EstimatedDeliveryDays = 14

type StepState string

const (
	StepCompleted StepState = "completed"
	StepActive    StepState = "active"
	StepPending   StepState = "pending"
)

// StepTitles are the five timeline milestones, index 1 first.
var StepTitles = [...]string{
	"Order Created",
	"Accepted for Processing",
	"Shipped from Warehouse",
	"In Transit",
	"Delivered",
}

type Step struct {
	Index int       `json:"index"`
	Title string    `json:"title"`
	State StepState `json:"state"`
}

type Progress struct {
	Status      domain.Status `json:"status"`
	ActiveIndex int           `json:"activeIndex"`
	Percent     int           `json:"percent"`
	Steps       []Step        `json:"steps"`
}

// activeStep covers every status. Cancelled has no timeline of its own and
// renders like Created.
var activeStep = map[domain.Status]int{
	domain.StatusCreated:    1,
	domain.StatusProcessing: 2,
	domain.StatusDelivered:  5,
	domain.StatusCancelled:  1,
}

// ActiveIndex returns the 1-based active step; unknown statuses get 1.
func ActiveIndex(s domain.Status) int {
	if a, ok := activeStep[s]; ok {
		return a
	}
	return 1
}

func Resolve(s domain.Status) Progress {
	a := ActiveIndex(s)
	steps := make([]Step, len(StepTitles))
	for i, title := range StepTitles {
		idx := i + 1
		state := StepPending
		switch {
		case idx < a:
			state = StepCompleted
		case idx == a:
			state = StepActive
		}
		steps[i] = Step{Index: idx, Title: title, State: state}
	}
	return Progress{
		Status:      s,
		ActiveIndex: a,
		Percent:     a * 100 / len(StepTitles),
		Steps:       steps,
	}
}

// EstimatedDelivery is createdAt plus 14 calendar days.
func EstimatedDelivery(createdAt time.Time) time.Time {
	return createdAt.AddDate(0, 0, EstimatedDeliveryDays)
}
