package client

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
	"logistics/internal/pkg/validation"
)

var (
	ErrClientIsNotConstructed = errors.New("Client must be created via NewClient constructor")
	ErrClientIsInactive       = errors.New("client is inactive")
)

// Status is the lifecycle flag of a client account.
type Status string

const (
	Active   Status = "ACTIVE"
	Inactive Status = "INACTIVE"
)

func (s Status) Validate() error {
	if s != Active && s != Inactive {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a client status", string(s)))
	}
	return nil
}

// Client is a customer that places orders.
//
// Email is the natural key: it is stored trimmed and lower-cased so that
// uniqueness holds regardless of how it was typed.
type Client struct {
	id      kernel.UUID
	name    string
	email   string
	phone   string
	address string
	status  Status

	guard guard.ConstructorGuard
}

// NewClient creates an ACTIVE client.
func NewClient(id kernel.UUID, name, email, phone, address string) (*Client, error) {
	return RestoreClient(id, name, email, phone, address, Active)
}

// RestoreClient rebuilds a client loaded from storage.
func RestoreClient(id kernel.UUID, name, email, phone, address string, status Status) (*Client, error) {
	c := &Client{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setEmail(email),
		c.setPhone(phone),
		c.setAddress(address),
		c.setStatus(status),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Client) Validate() error {
	if c == nil {
		return ErrClientIsNotConstructed
	}
	return c.guard.Validate(ErrClientIsNotConstructed)
}

func (c *Client) ID() kernel.UUID { return c.id }
func (c *Client) Name() string    { return c.name }
func (c *Client) Email() string   { return c.email }
func (c *Client) Phone() string   { return c.phone }
func (c *Client) Address() string { return c.address }
func (c *Client) Status() Status  { return c.status }

func (c *Client) IsActive() bool {
	return c.status == Active
}

// EnsureActive fails for INACTIVE clients, who may not place orders.
func (c *Client) EnsureActive() error {
	if !c.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause("clientId", fmt.Errorf("%w: %s", ErrClientIsInactive, c.email))
	}
	return nil
}

// Deactivate is the soft delete applied when orders still reference the client.
func (c *Client) Deactivate() {
	c.status = Inactive
}

func (c *Client) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Client) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		return errs.NewValueIsOutOfRangeError("name length", n, 2, 100)
	}
	c.name = name
	return nil
}

func (c *Client) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if err := validation.Var("email", email, "email"); err != nil {
		return err
	}
	c.email = email
	return nil
}

func (c *Client) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	if err := validation.Phone("phone", phone); err != nil {
		return err
	}
	c.phone = phone
	return nil
}

func (c *Client) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	if n := utf8.RuneCountInString(address); n < 5 || n > 255 {
		return errs.NewValueIsOutOfRangeError("address length", n, 5, 255)
	}
	c.address = address
	return nil
}

func (c *Client) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
