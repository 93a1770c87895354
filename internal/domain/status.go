package domain

// Status is the coarse lifecycle marker of an order. Values are persisted as the
// literal strings below.
//
//	Created ──> Processing ──> Delivered
//	   │             │
//	   └─────────────┴──> Cancelled
type Status string

const (
	StatusCreated    Status = "Створено"
	StatusProcessing Status = "В обробці"
	StatusDelivered  Status = "Доставлено"
	StatusCancelled  Status = "Скасовано"
)

// Statuses lists the closed enumeration in lifecycle order.
var Statuses = []Status{StatusCreated, StatusProcessing, StatusDelivered, StatusCancelled}

var nextStatuses = map[Status][]Status{
	StatusCreated:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusDelivered, StatusCancelled},
	StatusDelivered:  nil,
	StatusCancelled:  nil,
}

func (s Status) IsValid() bool {
	_, ok := nextStatuses[s]
	return ok
}

func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether next follows s on the forward path.
// Informational only: the repository writes any status over any other.
func (s Status) CanTransitionTo(next Status) bool {
	for _, n := range nextStatuses[s] {
		if n == next {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus returns the enumeration member equal to raw.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	if !s.IsValid() {
		return "", false
	}
	return s, true
}
