// Package listing filters, searches and sorts a snapshot of rental details.
// It never touches the data layer and never mutates its input.
package listing

import (
	"cmp"
	"rentdesk/internal/domains/rental/model"
	"rentdesk/shared/failure"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Status string

const (
	StatusAll      Status = "all"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByPrice    SortKey = "price"
	SortByCustomer SortKey = "customer"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// DefaultLocale orders customer names the way the business's users read them.
var DefaultLocale = language.BrazilianPortuguese

type Options struct {
	Status    Status
	Search    string
	SortBy    SortKey
	Direction Direction
	Locale    language.Tag
}

// DefaultOptions lists every rental, newest first.
func DefaultOptions() Options {
	return Options{
		Status:    StatusAll,
		SortBy:    SortByDate,
		Direction: Desc,
		Locale:    DefaultLocale,
	}
}

// ParseOptions builds Options from raw query values. Empty values keep the defaults.
func ParseOptions(status, search, sortBy, direction string) (Options, error) {
	opts := DefaultOptions()
	opts.Search = search

	if status != "" {
		opts.Status = Status(strings.ToLower(status))
		if !slices.Contains([]Status{StatusAll, StatusActive, StatusInactive}, opts.Status) {
			return opts, failure.Validation("status", "status must be one of all active inactive")
		}
	}

	if sortBy != "" {
		opts.SortBy = SortKey(strings.ToLower(sortBy))
		if !slices.Contains([]SortKey{SortByDate, SortByPrice, SortByCustomer}, opts.SortBy) {
			return opts, failure.Validation("sort_by", "sort_by must be one of date price customer")
		}
	}

	if direction != "" {
		opts.Direction = Direction(strings.ToLower(direction))
		if opts.Direction != Asc && opts.Direction != Desc {
			return opts, failure.Validation("sort_dir", "sort_dir must be one of asc desc")
		}
	}

	return opts, nil
}

// Apply returns the rentals matching opts.Status and opts.Search, stably sorted
// by opts.SortBy in opts.Direction.
func Apply(rentals []model.RentalDetail, opts Options) []model.RentalDetail {
	res := make([]model.RentalDetail, 0, len(rentals))
	term := strings.ToLower(opts.Search)

	for _, rental := range rentals {
		if !matchStatus(rental, opts.Status) {
			continue
		}

		if term != "" && !strings.Contains(strings.ToLower(rental.CustomerName), term) {
			continue
		}

		res = append(res, rental)
	}

	compare := comparator(opts)

	slices.SortStableFunc(res, func(a, b model.RentalDetail) int {
		if opts.Direction == Desc {
			return -compare(a, b)
		}

		return compare(a, b)
	})

	return res
}

func matchStatus(rental model.RentalDetail, status Status) bool {
	switch status {
	case StatusActive:
		return !rental.Returned
	case StatusInactive:
		return rental.Returned
	default:
		return true
	}
}

func comparator(opts Options) func(a, b model.RentalDetail) int {
	switch opts.SortBy {
	case SortByPrice:
		return func(a, b model.RentalDetail) int {
			return cmp.Compare(a.Amount, b.Amount)
		}
	case SortByCustomer:
		locale := opts.Locale
		if locale == language.Und {
			locale = DefaultLocale
		}

		collator := collate.New(locale)

		return func(a, b model.RentalDetail) int {
			return collator.CompareString(a.CustomerName, b.CustomerName)
		}
	default:
		return func(a, b model.RentalDetail) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
}
