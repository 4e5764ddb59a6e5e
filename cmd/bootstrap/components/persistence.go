package components

import (
	"venuehub-api/internal/infra/db"
	"venuehub-api/internal/infra/readstore"
	"venuehub-api/internal/infra/uow"
	"venuehub-api/internal/usecase/queries"
	"venuehub-api/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewOfferingReadStore,
			fx.As(new(shared.OfferingReader)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
