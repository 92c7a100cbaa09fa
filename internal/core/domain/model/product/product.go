package product

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// DefaultStockMinimum is the low-stock threshold used when none is supplied.
const DefaultStockMinimum = 5

var (
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
	ErrProductIsInactive       = errors.New("product is inactive")
)

// Product is a sellable item together with its on-hand stock.
//
// Stock only changes through Reserve, Release, Rebook and AdjustStock, and
// none of them lets it drop below zero. Each of those methods returns the
// stock level before the change so callers can append a Movement to the
// ledger.
type Product struct {
	id           kernel.UUID
	code         string
	name         string
	price        kernel.Money
	stock        int
	stockMinimum int
	category     string
	active       bool

	guard guard.ConstructorGuard
}

// NewProduct creates an active product. code is upper-cased and name trimmed.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("10.00")
//	p, err := product.NewProduct(kernel.NewUUID(), "sku-1", "Widget", price, 5, product.DefaultStockMinimum, "tools")
func NewProduct(
	id kernel.UUID,
	code, name string,
	price kernel.Money,
	stock, stockMinimum int,
	category string,
) (*Product, error) {
	return RestoreProduct(id, code, name, price, stock, stockMinimum, category, true)
}

// RestoreProduct rebuilds a product loaded from storage.
func RestoreProduct(
	id kernel.UUID,
	code, name string,
	price kernel.Money,
	stock, stockMinimum int,
	category string,
	active bool,
) (*Product, error) {
	p := &Product{
		price:    price,
		category: strings.TrimSpace(category),
		active:   active,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setCode(code),
		p.setName(name),
		p.setStock(stock),
		p.setStockMinimum(stockMinimum),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID     { return p.id }
func (p *Product) Code() string        { return p.code }
func (p *Product) Name() string        { return p.name }
func (p *Product) Price() kernel.Money { return p.price }
func (p *Product) Stock() int          { return p.stock }
func (p *Product) StockMinimum() int   { return p.stockMinimum }
func (p *Product) Category() string    { return p.category }
func (p *Product) IsActive() bool      { return p.active }

// IsLowStock reports whether stock has fallen to or below the minimum.
func (p *Product) IsLowStock() bool {
	return p.stock <= p.stockMinimum
}

// EnsureActive fails for deactivated products, which may not be ordered.
func (p *Product) EnsureActive() error {
	if !p.active {
		return errs.NewValueIsInvalidErrorWithCause("productId", fmt.Errorf("%w: %s", ErrProductIsInactive, p.code))
	}
	return nil
}

// Reserve takes quantity units out of stock for a new order.
func (p *Product) Reserve(quantity int) (int, error) {
	if quantity <= 0 {
		return p.stock, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	if p.stock < quantity {
		return p.stock, NewInsufficientStockError(p.stock, quantity)
	}
	before := p.stock
	p.stock -= quantity
	return before, nil
}

// Release puts quantity units back into stock, e.g. when an order is
// cancelled or deleted.
func (p *Product) Release(quantity int) (int, error) {
	if quantity <= 0 {
		return p.stock, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	before := p.stock
	p.stock += quantity
	return before, nil
}

// Rebook replaces a reservation of oldQuantity with one of newQuantity.
// The units held by the old reservation count as available, so the check is
// stock + oldQuantity >= newQuantity.
func (p *Product) Rebook(oldQuantity, newQuantity int) (int, error) {
	if newQuantity <= 0 {
		return p.stock, errs.NewValueIsOutOfRangeError("quantity", newQuantity, 1, "unbounded")
	}
	available := p.stock + oldQuantity
	if available < newQuantity {
		return p.stock, NewInsufficientStockError(available, newQuantity)
	}
	before := p.stock
	p.stock = available - newQuantity
	return before, nil
}

// AdjustStock applies a signed manual correction to stock.
func (p *Product) AdjustStock(delta int) (int, error) {
	if delta == 0 {
		return p.stock, errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("adjustment must not be zero"))
	}
	if p.stock+delta < 0 {
		return p.stock, NewInsufficientStockError(p.stock, -delta)
	}
	before := p.stock
	p.stock += delta
	return before, nil
}

// Deactivate withdraws the product from sale while keeping historical orders
// pointing at it.
func (p *Product) Deactivate() {
	p.active = false
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	if n := utf8.RuneCountInString(code); n > 50 {
		return errs.NewValueIsOutOfRangeError("code length", n, 1, 50)
	}
	p.code = code
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if n := utf8.RuneCountInString(name); n < 3 || n > 100 {
		return errs.NewValueIsOutOfRangeError("name length", n, 3, 100)
	}
	p.name = name
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsOutOfRangeError("stock", stock, 0, "unbounded")
	}
	p.stock = stock
	return nil
}

func (p *Product) setStockMinimum(minimum int) error {
	if minimum < 0 {
		return errs.NewValueIsOutOfRangeError("stockMinimum", minimum, 0, "unbounded")
	}
	p.stockMinimum = minimum
	return nil
}
