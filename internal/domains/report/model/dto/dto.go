package dto

import (
	"rentdesk/internal/domains/report/aggregate"
)

type CategoryStats struct {
	Total         int  `json:"total"`
	Rented        int  `json:"rented"`
	Available     int  `json:"available"`
	OccupancyRate int  `json:"occupancy_rate"`
	OverAllocated bool `json:"over_allocated"`
}

func NewCategoryStats(total, rented int) CategoryStats {
	available := aggregate.AvailableCount(total, rented)

	return CategoryStats{
		Total:         total,
		Rented:        rented,
		Available:     available,
		OccupancyRate: aggregate.OccupancyRate(total, available),
		OverAllocated: available < 0,
	}
}

type DashboardResponse struct {
	Chairs         CategoryStats `json:"chairs"`
	Tables         CategoryStats `json:"tables"`
	Tablecloths    CategoryStats `json:"tablecloths"`
	ActiveRentals  int           `json:"active_rentals"`
	MonthlyRevenue float64       `json:"monthly_revenue"`
}

type RevenueResponse struct {
	Weekly  float64 `json:"weekly"`
	Monthly float64 `json:"monthly"`
	Yearly  float64 `json:"yearly"`
	Total   float64 `json:"total"`
}

type MonthRevenue struct {
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
}

type MonthlyRevenueResponse struct {
	Year   int            `json:"year"`
	Months []MonthRevenue `json:"months"`
}

func (r *MonthlyRevenueResponse) FromAggregate(year int, months []aggregate.MonthlyRevenue) {
	r.Year = year
	r.Months = make([]MonthRevenue, 0, len(months))

	for _, month := range months {
		r.Months = append(r.Months, MonthRevenue{
			Month:   int(month.Month),
			Revenue: month.Revenue,
		})
	}
}

type TopCustomer struct {
	CustomerID  string `json:"customer_id"`
	Name        string `json:"name"`
	RentalCount int    `json:"rental_count"`
}

// TopCustomerResponse carries a null customer while the tenant has no rentals.
type TopCustomerResponse struct {
	Customer *TopCustomer `json:"customer"`
}

func (r *TopCustomerResponse) FromAggregate(top aggregate.CustomerFrequency, ok bool) {
	if !ok {
		return
	}

	r.Customer = &TopCustomer{
		CustomerID:  top.CustomerID,
		Name:        top.Name,
		RentalCount: top.Count,
	}
}
