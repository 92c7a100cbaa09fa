package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderFilter narrows ListOrders. Nil fields do not filter. From and To bound
// the order date inclusively.
type OrderFilter struct {
	Status    *shipment.StatusName
	ClientID  *kernel.UUID
	CarrierID *kernel.UUID
	From      *time.Time
	To        *time.Time
}

// ListOrdersQuery pages through orders, newest order date first.
//
// Example:
//
//	status := shipment.InTransit
//	query, err := NewListOrdersQuery(2, 20, OrderFilter{Status: &status})
//	page, err := NewListOrdersQueryHandler(db).Handle(ctx, query)
//	fmt.Println(page.Meta.TotalItems, len(page.Items))
type ListOrdersQuery struct {
	page   int
	limit  int
	filter OrderFilter

	guard guard.ConstructorGuard
}

// NewListOrdersQuery treats a zero page as 1 and a zero limit as
// DefaultPageSize.
func NewListOrdersQuery(page, limit int, filter OrderFilter) (ListOrdersQuery, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultPageSize
	}

	var joined []error
	if page < 1 {
		joined = append(joined, errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded"))
	}
	if limit < 1 || limit > MaxPageSize {
		joined = append(joined, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageSize))
	}
	if filter.Status != nil {
		joined = append(joined, filter.Status.Validate())
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		joined = append(joined, errs.NewValueIsInvalidErrorWithCause("to", errors.New("must not be before from")))
	}
	if err := errors.Join(joined...); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		page:   page,
		limit:  limit,
		filter: filter,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Page() int           { return q.page }
func (q ListOrdersQuery) Limit() int          { return q.limit }
func (q ListOrdersQuery) Filter() OrderFilter { return q.filter }

// PageMeta describes where a page sits in the full result. NextPage and
// PrevPage are nil at the ends.
type PageMeta struct {
	TotalItems   int64
	TotalPages   int
	CurrentPage  int
	ItemsPerPage int
	NextPage     *int
	PrevPage     *int
}

func newPageMeta(total int64, page, limit int) PageMeta {
	pages := int((total + int64(limit) - 1) / int64(limit))
	meta := PageMeta{
		TotalItems:   total,
		TotalPages:   pages,
		CurrentPage:  page,
		ItemsPerPage: limit,
	}
	if page < pages {
		next := page + 1
		meta.NextPage = &next
	}
	if page > 1 {
		prev := page - 1
		meta.PrevPage = &prev
	}
	return meta
}

type OrderPage struct {
	Items []OrderView
	Meta  PageMeta
}
