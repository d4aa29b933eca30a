package recommendation

import (
	"time"

	"github.com/vacayzen/product-recommendation/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func reservation(product, description, stage, start, end string, qty int) domain.ReservationRecord {
	r := domain.ReservationRecord{
		Product:     product,
		Description: description,
		RentalStage: stage,
		Quantity:    qty,
	}
	if start != "" {
		r.StartDate = dayPtr(start)
	}
	if end != "" {
		r.EndDate = dayPtr(end)
	}
	return r
}
