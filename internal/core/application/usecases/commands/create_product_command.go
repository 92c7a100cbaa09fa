package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand adds a product to the catalog with an initial stock.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	code         string
	name         string
	price        kernel.Money
	stock        int
	stockMinimum int
	category     string

	guard guard.ConstructorGuard
}

// NewCreateProductCommand parses price as a decimal string. A nil stockMinimum
// falls back to product.DefaultStockMinimum.
func NewCreateProductCommand(
	code, name, price string,
	stock int,
	stockMinimum *int,
	category string,
) (CreateProductCommand, error) {
	cmd := CreateProductCommand{
		code:         strings.TrimSpace(code),
		name:         strings.TrimSpace(name),
		stock:        stock,
		stockMinimum: product.DefaultStockMinimum,
		category:     strings.TrimSpace(category),
		guard:        guard.NewConstructorGuard(),
	}
	if stockMinimum != nil {
		cmd.stockMinimum = *stockMinimum
	}

	if err := errors.Join(
		required("code", cmd.code),
		required("name", cmd.name),
		cmd.setPrice(price),
	); err != nil {
		return CreateProductCommand{}, err
	}

	return cmd, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) Code() string        { return c.code }
func (c CreateProductCommand) Name() string        { return c.name }
func (c CreateProductCommand) Price() kernel.Money { return c.price }
func (c CreateProductCommand) Stock() int          { return c.stock }
func (c CreateProductCommand) StockMinimum() int   { return c.stockMinimum }
func (c CreateProductCommand) Category() string    { return c.category }

func (c *CreateProductCommand) setPrice(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errs.NewValueIsRequiredError("price")
	}

	price, err := kernel.MoneyFromString(raw)
	if err != nil {
		return err
	}

	c.price = price
	return nil
}
