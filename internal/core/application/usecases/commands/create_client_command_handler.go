package commands

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/client"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/actor"
)

type CreateClientCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewCreateClientCommandHandler(uowFactory UoWFactory, logger *slog.Logger) CreateClientCommandHandler {
	return CreateClientCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "CreateClientCommandHandler"),
	}
}

// Handle stores a new ACTIVE client. A taken email fails with
// errs.ObjectAlreadyExistsError.
func (h *CreateClientCommandHandler) Handle(ctx context.Context, cmd CreateClientCommand) (*client.Client, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := client.NewClient(kernel.NewUUID(), cmd.Name(), cmd.Email(), cmd.Phone(), cmd.Address())
	if err != nil {
		return nil, err
	}

	if _, err = withTransaction(ctx, h.uowFactory, "CreateClient",
		func(ctx context.Context, uow UoW) (struct{}, error) {
			return struct{}{}, uow.ClientRepository().Add(ctx, created)
		}); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "client created", "client_id", created.ID().String(), "actor", actor.SubjectOf(ctx))
	return created, nil
}
