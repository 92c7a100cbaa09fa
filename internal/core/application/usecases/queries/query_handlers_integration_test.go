package queries_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/gormdb"
	"logistics/internal/adapters/out/gormdb/gormtest"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/client"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	database *gormtest.Database
	uow      ports.UnitOfWork

	statuses map[shipment.StatusName]order.StatusRef
	client   *client.Client
	product  *product.Product
	carrier  *carrier.Carrier
	route    *route.Route
}

func TestQueryHandlersIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}

func (s *QueryHandlersIntegrationTestSuite) SetupSuite() {
	s.database = gormtest.Start(s.T())
}

func (s *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if s.database != nil {
		s.database.Stop(s.T())
	}
}

func (s *QueryHandlersIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	s.database.Truncate(s.T())
	s.uow = gormdb.NewGormUnitOfWorkFactory(s.database.DB).Create()

	s.statuses = make(map[shipment.StatusName]order.StatusRef)
	for _, def := range shipment.DefaultDefinitions() {
		st, err := shipment.NewShipmentStatus(kernel.NewUUID(), def)
		s.Require().NoError(err)
		s.Require().NoError(s.uow.ShipmentStatusRepository().Add(ctx, st))
		s.statuses[st.Name()] = order.RefOf(st)
	}

	var err error
	s.client, err = client.NewClient(kernel.NewUUID(), "Ana Souza", "ana@example.com", "12345678", "Rua Central 100")
	s.Require().NoError(err)
	s.Require().NoError(s.uow.ClientRepository().Add(ctx, s.client))

	price, err := kernel.MoneyFromString("12.50")
	s.Require().NoError(err)
	s.product, err = product.NewProduct(kernel.NewUUID(), "SKU-1", "Widget", price, 3, 5, "tools")
	s.Require().NoError(err)
	s.Require().NoError(s.uow.ProductRepository().Add(ctx, s.product))

	s.carrier, err = carrier.NewCarrier(kernel.NewUUID(), "Fast Lane", "DOC-1", "", "van", 10)
	s.Require().NoError(err)
	s.Require().NoError(s.uow.CarrierRepository().Add(ctx, s.carrier))

	s.route, err = route.NewRoute(kernel.NewUUID(), "R-1", "Depot", "Downtown", route.OperatingHours{Start: 8, End: 18}, s.carrier.ID())
	s.Require().NoError(err)
	s.Require().NoError(s.uow.RouteRepository().Add(ctx, s.route))
}

func (s *QueryHandlersIntegrationTestSuite) addOrder(date time.Time, quantity int, path ...shipment.StatusName) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), order.Draft{
		ClientID:  s.client.ID(),
		ProductID: s.product.ID(),
		CarrierID: s.carrier.ID(),
		RouteID:   s.route.ID(),
		Status:    s.statuses[shipment.Pending],
		Quantity:  quantity,
		UnitPrice: s.product.Price(),
		OrderDate: date,
		Notes:     "ring twice",
	})
	s.Require().NoError(err)
	for _, next := range path {
		_, err = o.ChangeStatus(s.statuses[next], "", date)
		s.Require().NoError(err)
	}
	s.Require().NoError(s.uow.OrderRepository().Add(context.Background(), o))
	return o
}

func (s *QueryHandlersIntegrationTestSuite) TestGetOrder() {
	date := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	o := s.addOrder(date, 2, shipment.Preparation)

	query, err := queries.NewGetOrderQuery(o.ID())
	s.Require().NoError(err)
	view, err := queries.NewGetOrderQueryHandler(s.database.DB).Handle(context.Background(), query)
	s.Require().NoError(err)

	s.Equal(o.ID(), view.ID)
	s.Equal("Ana Souza", view.Client.Name)
	s.Equal("SKU-1", view.Product.Code)
	s.Equal("Fast Lane", view.Carrier.Name)
	s.Equal("R-1", view.Route.Code)
	s.Equal(shipment.Preparation, view.Status.Name)
	s.Equal("#0000FF", view.Status.Color)
	s.Equal("25.00", view.Total.String())
	s.True(date.Equal(view.OrderDate))
	s.Equal("ring twice", view.Notes)
}

func (s *QueryHandlersIntegrationTestSuite) TestGetOrder_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	s.Require().NoError(err)
	_, err = queries.NewGetOrderQueryHandler(s.database.DB).Handle(context.Background(), query)
	var notFound *errs.ObjectNotFoundError
	s.ErrorAs(err, &notFound)
}

func (s *QueryHandlersIntegrationTestSuite) TestListOrders_PagesNewestFirst() {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var created []*order.Order
	for i := range 5 {
		created = append(created, s.addOrder(base.AddDate(0, 0, i), 1))
	}

	query, err := queries.NewListOrdersQuery(1, 2, queries.OrderFilter{})
	s.Require().NoError(err)
	page, err := queries.NewListOrdersQueryHandler(s.database.DB).Handle(context.Background(), query)
	s.Require().NoError(err)

	s.Require().Len(page.Items, 2)
	s.Equal(created[4].ID(), page.Items[0].ID)
	s.Equal(created[3].ID(), page.Items[1].ID)
	s.EqualValues(5, page.Meta.TotalItems)
	s.Equal(3, page.Meta.TotalPages)
	s.Require().NotNil(page.Meta.NextPage)
	s.Equal(2, *page.Meta.NextPage)
	s.Nil(page.Meta.PrevPage)

	query, err = queries.NewListOrdersQuery(3, 2, queries.OrderFilter{})
	s.Require().NoError(err)
	page, err = queries.NewListOrdersQueryHandler(s.database.DB).Handle(context.Background(), query)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal(created[0].ID(), page.Items[0].ID)
	s.Nil(page.Meta.NextPage)
}

func (s *QueryHandlersIntegrationTestSuite) TestListOrders_Filters() {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.addOrder(base, 1)
	inTransit := s.addOrder(base.AddDate(0, 0, 1), 1, shipment.Preparation, shipment.InTransit)
	late := s.addOrder(base.AddDate(0, 0, 10), 1)

	status := shipment.InTransit
	query, err := queries.NewListOrdersQuery(1, 10, queries.OrderFilter{Status: &status})
	s.Require().NoError(err)
	page, err := queries.NewListOrdersQueryHandler(s.database.DB).Handle(context.Background(), query)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal(inTransit.ID(), page.Items[0].ID)

	from := base.AddDate(0, 0, 5)
	carrierID := s.carrier.ID()
	query, err = queries.NewListOrdersQuery(1, 10, queries.OrderFilter{From: &from, CarrierID: &carrierID})
	s.Require().NoError(err)
	page, err = queries.NewListOrdersQueryHandler(s.database.DB).Handle(context.Background(), query)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal(late.ID(), page.Items[0].ID)

	other := kernel.NewUUID()
	query, err = queries.NewListOrdersQuery(1, 10, queries.OrderFilter{ClientID: &other})
	s.Require().NoError(err)
	page, err = queries.NewListOrdersQueryHandler(s.database.DB).Handle(context.Background(), query)
	s.Require().NoError(err)
	s.Empty(page.Items)
	s.Zero(page.Meta.TotalPages)
}

func (s *QueryHandlersIntegrationTestSuite) TestGetLowStockProducts() {
	ctx := context.Background()
	price, err := kernel.MoneyFromString("1.00")
	s.Require().NoError(err)
	healthy, err := product.NewProduct(kernel.NewUUID(), "SKU-2", "Plenty", price, 50, 5, "")
	s.Require().NoError(err)
	s.Require().NoError(s.uow.ProductRepository().Add(ctx, healthy))

	retired, err := product.NewProduct(kernel.NewUUID(), "SKU-3", "Retired", price, 0, 5, "")
	s.Require().NoError(err)
	retired.Deactivate()
	s.Require().NoError(s.uow.ProductRepository().Add(ctx, retired))

	low, err := queries.NewGetLowStockProductsQueryHandler(s.database.DB).
		Handle(ctx, queries.NewGetLowStockProductsQuery())
	s.Require().NoError(err)
	s.Require().Len(low, 1)
	s.Equal(s.product.ID(), low[0].ID)
	s.Equal(3, low[0].Stock)
	s.Equal(3, low[0].Shortfall())
}

func (s *QueryHandlersIntegrationTestSuite) TestGetRouteAvailability() {
	handler := queries.NewGetRouteAvailabilityQueryHandler(s.database.DB)
	ctx := context.Background()

	morning := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	query, err := queries.NewGetRouteAvailabilityQuery(s.route.ID(), morning)
	s.Require().NoError(err)
	availability, err := handler.Handle(ctx, query)
	s.Require().NoError(err)
	s.True(availability.Available)
	s.Empty(availability.Reason)

	night := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	query, err = queries.NewGetRouteAvailabilityQuery(s.route.ID(), night)
	s.Require().NoError(err)
	availability, err = handler.Handle(ctx, query)
	s.Require().NoError(err)
	s.False(availability.Available)
	s.Contains(availability.Reason, "8h-18h")

	s.route.Deactivate()
	s.Require().NoError(s.uow.RouteRepository().Update(ctx, s.route))
	query, err = queries.NewGetRouteAvailabilityQuery(s.route.ID(), morning)
	s.Require().NoError(err)
	availability, err = handler.Handle(ctx, query)
	s.Require().NoError(err)
	s.False(availability.Available)
	s.Equal("route is inactive", availability.Reason)
}

func (s *QueryHandlersIntegrationTestSuite) TestListShipmentStatuses() {
	ctx := context.Background()
	cancelled := s.statuses[shipment.Cancelled]
	st, err := s.uow.ShipmentStatusRepository().Get(ctx, cancelled.ID)
	s.Require().NoError(err)
	st.Deactivate()
	s.Require().NoError(s.uow.ShipmentStatusRepository().Update(ctx, st))

	handler := queries.NewListShipmentStatusesQueryHandler(s.database.DB)

	active, err := handler.Handle(ctx, queries.NewListShipmentStatusesQuery(false))
	s.Require().NoError(err)
	s.Require().Len(active, 5)
	s.Equal(shipment.Pending, active[0].Name)
	s.ElementsMatch([]shipment.StatusName{shipment.Preparation, shipment.Cancelled}, active[0].Next)

	all, err := handler.Handle(ctx, queries.NewListShipmentStatusesQuery(true))
	s.Require().NoError(err)
	s.Len(all, 6)
}
