package stats

import "github.com/RaikyD/parcel-orders/internal/domain"

type Stats struct {
	Total      int `json:"total"`
	Created    int `json:"created"`
	Processing int `json:"processing"`
	Delivered  int `json:"delivered"`
	Cancelled  int `json:"cancelled"`
}

// Compute counts orders per status in one pass. Statuses outside the
// enumeration only count towards Total.
func Compute(orders []domain.Order) Stats {
	s := Stats{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case domain.StatusCreated:
			s.Created++
		case domain.StatusProcessing:
			s.Processing++
		case domain.StatusDelivered:
			s.Delivered++
		case domain.StatusCancelled:
			s.Cancelled++
		}
	}
	return s
}
