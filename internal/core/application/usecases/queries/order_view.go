// Package queries holds the read side. Handlers query gorm directly and
// return flat views; they never load aggregates or take locks.
package queries

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NamedRef identifies a related row by id and display name.
type NamedRef struct {
	ID   kernel.UUID
	Name string
}

type ProductRef struct {
	ID   kernel.UUID
	Code string
	Name string
}

type RouteRef struct {
	ID          kernel.UUID
	Code        string
	Origin      string
	Destination string
}

type StatusLabel struct {
	Name  shipment.StatusName
	Color string
}

// OrderView is an order joined with the names of everything it references.
type OrderView struct {
	ID                kernel.UUID
	Client            NamedRef
	Product           ProductRef
	Carrier           NamedRef
	Route             RouteRef
	Status            StatusLabel
	Quantity          int
	Total             kernel.Money
	OrderDate         time.Time
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
	Notes             string
}

const orderViewColumns = `
	o.id,
	o.client_id, c.name AS client_name,
	o.product_id, p.code AS product_code, p.name AS product_name,
	o.carrier_id, t.name AS carrier_name,
	o.route_id, r.code AS route_code, r.origin AS route_origin, r.destination AS route_destination,
	s.name AS status_name, s.color AS status_color,
	o.quantity, o.total, o.order_date, o.estimated_delivery, o.actual_delivery, o.notes`

type orderRow struct {
	ID                uuid.UUID
	ClientID          uuid.UUID
	ClientName        string
	ProductID         uuid.UUID
	ProductCode       string
	ProductName       string
	CarrierID         uuid.UUID
	CarrierName       string
	RouteID           uuid.UUID
	RouteCode         string
	RouteOrigin       string
	RouteDestination  string
	StatusName        string
	StatusColor       string
	Quantity          int
	Total             decimal.Decimal
	OrderDate         time.Time
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
	Notes             string
}

// joinedOrders selects from orders with every reference joined in.
func joinedOrders(db *gorm.DB) *gorm.DB {
	return db.Table("orders AS o").
		Joins("JOIN clients c ON c.id = o.client_id").
		Joins("JOIN products p ON p.id = o.product_id").
		Joins("JOIN carriers t ON t.id = o.carrier_id").
		Joins("JOIN routes r ON r.id = o.route_id").
		Joins("JOIN shipment_statuses s ON s.id = o.shipment_status_id")
}

func (r orderRow) view() (OrderView, error) {
	ids := make([]kernel.UUID, 0, 5)
	for _, raw := range []uuid.UUID{r.ID, r.ClientID, r.ProductID, r.CarrierID, r.RouteID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return OrderView{}, err
		}
		ids = append(ids, id)
	}
	total, err := kernel.NewMoney(r.Total)
	if err != nil {
		return OrderView{}, err
	}

	return OrderView{
		ID:                ids[0],
		Client:            NamedRef{ID: ids[1], Name: r.ClientName},
		Product:           ProductRef{ID: ids[2], Code: r.ProductCode, Name: r.ProductName},
		Carrier:           NamedRef{ID: ids[3], Name: r.CarrierName},
		Route:             RouteRef{ID: ids[4], Code: r.RouteCode, Origin: r.RouteOrigin, Destination: r.RouteDestination},
		Status:            StatusLabel{Name: shipment.StatusName(r.StatusName), Color: r.StatusColor},
		Quantity:          r.Quantity,
		Total:             total,
		OrderDate:         r.OrderDate,
		EstimatedDelivery: r.EstimatedDelivery,
		ActualDelivery:    r.ActualDelivery,
		Notes:             r.Notes,
	}, nil
}
