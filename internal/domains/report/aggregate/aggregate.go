// Package aggregate computes revenue and inventory figures over a snapshot of
// rental details. Every function is pure; rentals are bucketed by created_at
// in the application timezone.
package aggregate

import (
	"math"
	"rentdesk/internal/domains/rental/model"
	"rentdesk/shared/timezone"
	"time"
)

type MonthlyRevenue struct {
	Month   time.Month
	Revenue float64
}

type CustomerFrequency struct {
	CustomerID string
	Name       string
	Count      int
}

// Quantities is a per-category item count.
type Quantities struct {
	Chairs      int
	Tables      int
	Tablecloths int
}

func SumAmount(rentals []model.RentalDetail) float64 {
	var sum float64
	for _, rental := range rentals {
		sum += rental.Amount
	}

	return sum
}

// RevenueSince sums the amounts of rentals created at or after threshold.
func RevenueSince(rentals []model.RentalDetail, threshold time.Time) float64 {
	var sum float64

	for _, rental := range rentals {
		if !rental.CreatedAt.Before(threshold) {
			sum += rental.Amount
		}
	}

	return sum
}

// MonthlyBreakdown returns exactly twelve entries, January to December, of the
// revenue created in year. Months without rentals report 0.
func MonthlyBreakdown(rentals []model.RentalDetail, year int) []MonthlyRevenue {
	months := make([]MonthlyRevenue, 12)
	for i := range months {
		months[i].Month = time.Month(i + 1)
	}

	for _, rental := range rentals {
		created := timezone.ToAppTime(rental.CreatedAt)
		if created.Year() != year {
			continue
		}

		months[created.Month()-1].Revenue += rental.Amount
	}

	return months
}

// TopCustomerByFrequency returns the customer with the most rentals. Ties go to
// the customer seen first in rentals. ok is false when rentals is empty.
func TopCustomerByFrequency(rentals []model.RentalDetail) (top CustomerFrequency, ok bool) {
	counts := map[string]*CustomerFrequency{}
	order := []string{}

	for _, rental := range rentals {
		freq, seen := counts[rental.CustomerID]
		if !seen {
			freq = &CustomerFrequency{CustomerID: rental.CustomerID, Name: rental.CustomerName}
			counts[rental.CustomerID] = freq
			order = append(order, rental.CustomerID)
		}

		freq.Count++
	}

	for _, id := range order {
		if freq := counts[id]; freq.Count > top.Count {
			top = *freq
			ok = true
		}
	}

	return top, ok
}

// OccupancyRate is the rounded percentage of total currently rented out, 0 when total is 0.
func OccupancyRate(total, available int) int {
	if total == 0 {
		return 0
	}

	return int(math.Round(float64(total-available) / float64(total) * 100))
}

// AvailableCount is not clamped: a negative result means the category is over-allocated.
func AvailableCount(total, activeQuantitySum int) int {
	return total - activeQuantitySum
}

// ActiveQuantities sums item quantities over rentals not yet returned.
func ActiveQuantities(rentals []model.RentalDetail) Quantities {
	var res Quantities

	for _, rental := range rentals {
		if !rental.Active() {
			continue
		}

		res.Chairs += rental.ChairQuantity
		res.Tables += rental.TableQuantity
		res.Tablecloths += rental.TableclothQuantity
	}

	return res
}
