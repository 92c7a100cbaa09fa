package http

import (
	"errors"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/client"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
)

type NewOrderRequest struct {
	ClientID          string     `json:"clientId" validate:"required,uuid"`
	ProductID         string     `json:"productId" validate:"required,uuid"`
	CarrierID         string     `json:"carrierId" validate:"required,uuid"`
	RouteID           string     `json:"routeId" validate:"required,uuid"`
	Quantity          int        `json:"quantity" validate:"required,gte=1"`
	StatusID          *string    `json:"statusId" validate:"omitempty,uuid"`
	Notes             string     `json:"notes"`
	OrderDate         *time.Time `json:"orderDate"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
}

func (r NewOrderRequest) command() (commands.CreateOrderCommand, error) {
	clientID, clientErr := parseID("clientId", r.ClientID)
	productID, productErr := parseID("productId", r.ProductID)
	carrierID, carrierErr := parseID("carrierId", r.CarrierID)
	routeID, routeErr := parseID("routeId", r.RouteID)
	statusID, statusErr := parseOptionalID("statusId", r.StatusID)
	if err := errors.Join(clientErr, productErr, carrierErr, routeErr, statusErr); err != nil {
		return commands.CreateOrderCommand{}, err
	}

	return commands.NewCreateOrderCommand(
		clientID, productID, carrierID, routeID,
		r.Quantity,
		commands.OrderOptions{
			StatusID:          statusID,
			Notes:             r.Notes,
			OrderDate:         r.OrderDate,
			EstimatedDelivery: r.EstimatedDelivery,
		},
	)
}

type OrderPatchRequest struct {
	ClientID          *string    `json:"clientId" validate:"omitempty,uuid"`
	ProductID         *string    `json:"productId" validate:"omitempty,uuid"`
	CarrierID         *string    `json:"carrierId" validate:"omitempty,uuid"`
	RouteID           *string    `json:"routeId" validate:"omitempty,uuid"`
	Quantity          *int       `json:"quantity" validate:"omitempty,gte=1"`
	Notes             *string    `json:"notes"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
}

func (r OrderPatchRequest) command(orderID kernel.UUID) (commands.UpdateOrderCommand, error) {
	patch := commands.OrderPatch{
		Quantity:          r.Quantity,
		Notes:             r.Notes,
		EstimatedDelivery: r.EstimatedDelivery,
	}

	var err error
	if patch.ClientID, err = parseOptionalID("clientId", r.ClientID); err != nil {
		return commands.UpdateOrderCommand{}, err
	}
	if patch.ProductID, err = parseOptionalID("productId", r.ProductID); err != nil {
		return commands.UpdateOrderCommand{}, err
	}
	if patch.CarrierID, err = parseOptionalID("carrierId", r.CarrierID); err != nil {
		return commands.UpdateOrderCommand{}, err
	}
	if patch.RouteID, err = parseOptionalID("routeId", r.RouteID); err != nil {
		return commands.UpdateOrderCommand{}, err
	}

	return commands.NewUpdateOrderCommand(orderID, patch)
}

type StatusChangeRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}

type NewClientRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,phone"`
	Address string `json:"address" validate:"required"`
}

type NewProductRequest struct {
	Code         string `json:"code" validate:"required,max=50"`
	Name         string `json:"name" validate:"required"`
	Price        string `json:"price" validate:"required,number"`
	Stock        int    `json:"stock" validate:"gte=0"`
	StockMinimum *int   `json:"stockMinimum" validate:"omitempty,gte=0"`
	Category     string `json:"category"`
}

type NewCarrierRequest struct {
	Name                string `json:"name" validate:"required"`
	Document            string `json:"document" validate:"required"`
	Phone               string `json:"phone" validate:"omitempty,phone"`
	VehicleType         string `json:"vehicleType"`
	MaxConcurrentOrders int    `json:"maxConcurrentOrders" validate:"gte=0"`
}

type NewRouteRequest struct {
	Code        string `json:"code" validate:"required"`
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	StartHour   int    `json:"startHour" validate:"gte=0,lte=22"`
	EndHour     int    `json:"endHour" validate:"gte=1,lte=23,gtfield=StartHour"`
	CarrierID   string `json:"carrierId" validate:"required,uuid"`
}

type StockAdjustmentRequest struct {
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
	Operation string `json:"operation" validate:"required,oneof=ADD SUBTRACT add subtract"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type DeletedResponse struct {
	ID uuid.UUID `json:"id"`
}

type RemovalResponse struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`
	Deactivated bool      `json:"deactivated"`
}

func newRemovalResponse(r commands.Removal) RemovalResponse {
	return RemovalResponse{ID: r.ID.Bytes(), Kind: string(r.Kind), Deactivated: r.Deactivated}
}

type OrderResponse struct {
	ID                uuid.UUID           `json:"id"`
	ClientID          uuid.UUID           `json:"clientId"`
	ProductID         uuid.UUID           `json:"productId"`
	CarrierID         uuid.UUID           `json:"carrierId"`
	RouteID           uuid.UUID           `json:"routeId"`
	Status            shipment.StatusName `json:"status"`
	Quantity          int                 `json:"quantity"`
	Total             string              `json:"total"`
	OrderDate         time.Time           `json:"orderDate"`
	EstimatedDelivery *time.Time          `json:"estimatedDelivery,omitempty"`
	ActualDelivery    *time.Time          `json:"actualDelivery,omitempty"`
	Notes             string              `json:"notes,omitempty"`
}

func newOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:                o.ID().Bytes(),
		ClientID:          o.ClientID().Bytes(),
		ProductID:         o.ProductID().Bytes(),
		CarrierID:         o.CarrierID().Bytes(),
		RouteID:           o.RouteID().Bytes(),
		Status:            o.Status().Name,
		Quantity:          o.Quantity(),
		Total:             o.Total().String(),
		OrderDate:         o.OrderDate(),
		EstimatedDelivery: o.EstimatedDelivery(),
		ActualDelivery:    o.ActualDelivery(),
		Notes:             o.Notes(),
	}
}

type StatusChangeResponse struct {
	OrderID        uuid.UUID           `json:"orderId"`
	PreviousStatus shipment.StatusName `json:"previousStatus"`
	NewStatus      shipment.StatusName `json:"newStatus"`
}

type NamedRefResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ProductRefResponse struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

type RouteRefResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
}

type StatusLabelResponse struct {
	Name  shipment.StatusName `json:"name"`
	Color string              `json:"color"`
}

type OrderDetailsResponse struct {
	ID                uuid.UUID           `json:"id"`
	Client            NamedRefResponse    `json:"client"`
	Product           ProductRefResponse  `json:"product"`
	Carrier           NamedRefResponse    `json:"carrier"`
	Route             RouteRefResponse    `json:"route"`
	Status            StatusLabelResponse `json:"status"`
	Quantity          int                 `json:"quantity"`
	Total             string              `json:"total"`
	OrderDate         time.Time           `json:"orderDate"`
	EstimatedDelivery *time.Time          `json:"estimatedDelivery,omitempty"`
	ActualDelivery    *time.Time          `json:"actualDelivery,omitempty"`
	Notes             string              `json:"notes,omitempty"`
}

func newOrderDetailsResponse(v queries.OrderView) OrderDetailsResponse {
	return OrderDetailsResponse{
		ID:      v.ID.Bytes(),
		Client:  NamedRefResponse{ID: v.Client.ID.Bytes(), Name: v.Client.Name},
		Product: ProductRefResponse{ID: v.Product.ID.Bytes(), Code: v.Product.Code, Name: v.Product.Name},
		Carrier: NamedRefResponse{ID: v.Carrier.ID.Bytes(), Name: v.Carrier.Name},
		Route: RouteRefResponse{
			ID:          v.Route.ID.Bytes(),
			Code:        v.Route.Code,
			Origin:      v.Route.Origin,
			Destination: v.Route.Destination,
		},
		Status:            StatusLabelResponse{Name: v.Status.Name, Color: v.Status.Color},
		Quantity:          v.Quantity,
		Total:             v.Total.String(),
		OrderDate:         v.OrderDate,
		EstimatedDelivery: v.EstimatedDelivery,
		ActualDelivery:    v.ActualDelivery,
		Notes:             v.Notes,
	}
}

type PageMetaResponse struct {
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
	NextPage     *int  `json:"nextPage"`
	PrevPage     *int  `json:"prevPage"`
}

type OrderPageResponse struct {
	Items []OrderDetailsResponse `json:"items"`
	Meta  PageMetaResponse       `json:"meta"`
}

func newOrderPageResponse(p queries.OrderPage) OrderPageResponse {
	items := make([]OrderDetailsResponse, 0, len(p.Items))
	for _, v := range p.Items {
		items = append(items, newOrderDetailsResponse(v))
	}
	return OrderPageResponse{
		Items: items,
		Meta: PageMetaResponse{
			TotalItems:   p.Meta.TotalItems,
			TotalPages:   p.Meta.TotalPages,
			CurrentPage:  p.Meta.CurrentPage,
			ItemsPerPage: p.Meta.ItemsPerPage,
			NextPage:     p.Meta.NextPage,
			PrevPage:     p.Meta.PrevPage,
		},
	}
}

type StockAdjustmentResponse struct {
	ProductID   uuid.UUID `json:"productId"`
	StockBefore int       `json:"stockBefore"`
	StockAfter  int       `json:"stockAfter"`
	LowStock    bool      `json:"lowStock"`
}

type LowStockProductResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Stock        int       `json:"stock"`
	StockMinimum int       `json:"stockMinimum"`
	Shortfall    int       `json:"shortfall"`
}

type RouteAvailabilityResponse struct {
	RouteID   uuid.UUID `json:"routeId"`
	Code      string    `json:"code"`
	Active    bool      `json:"active"`
	StartHour int       `json:"startHour"`
	EndHour   int       `json:"endHour"`
	At        time.Time `json:"at"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}

type ShipmentStatusResponse struct {
	ID           uuid.UUID             `json:"id"`
	Name         shipment.StatusName   `json:"name"`
	Description  string                `json:"description"`
	Color        string                `json:"color"`
	DisplayOrder int                   `json:"displayOrder"`
	Active       bool                  `json:"active"`
	Next         []shipment.StatusName `json:"next"`
}

func newShipmentStatusResponse(v queries.ShipmentStatusView) ShipmentStatusResponse {
	next := v.Next
	if next == nil {
		next = []shipment.StatusName{}
	}
	return ShipmentStatusResponse{
		ID:           v.ID.Bytes(),
		Name:         v.Name,
		Description:  v.Description,
		Color:        v.Color,
		DisplayOrder: v.DisplayOrder,
		Active:       v.Active,
		Next:         next,
	}
}

func seededStatusResponse(s *shipment.ShipmentStatus) ShipmentStatusResponse {
	next := shipment.AllowedFrom(s.Name())
	if next == nil {
		next = []shipment.StatusName{}
	}
	return ShipmentStatusResponse{
		ID:           s.ID().Bytes(),
		Name:         s.Name(),
		Description:  s.Description(),
		Color:        s.Color(),
		DisplayOrder: s.DisplayOrder(),
		Active:       s.IsActive(),
		Next:         next,
	}
}

func createdClient(c *client.Client) CreatedResponse    { return CreatedResponse{ID: c.ID().Bytes()} }
func createdProduct(p *product.Product) CreatedResponse { return CreatedResponse{ID: p.ID().Bytes()} }
func createdCarrier(c *carrier.Carrier) CreatedResponse { return CreatedResponse{ID: c.ID().Bytes()} }
func createdRoute(r *route.Route) CreatedResponse       { return CreatedResponse{ID: r.ID().Bytes()} }

func parseID(paramName, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	if err = id.Validate(); err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return id, nil
}

func parseOptionalID(paramName string, raw *string) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent is not an error
	}
	id, err := parseID(paramName, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
