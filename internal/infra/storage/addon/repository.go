package addon

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Repository репозиторий записей начислений за парковку (reservation_addons)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория начислений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает записи начислений одним INSERT; ID возвращаются в порядке вставки
func (r *Repository) CreateBatch(ctx context.Context, addons []*domain.ReservationAddon) ([]*domain.ReservationAddon, error) {
	if len(addons) == 0 {
		return addons, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := insertAddonsQuery(addons).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	created := make([]*domain.ReservationAddon, 0, len(addons))
	for i := 0; rows.Next(); i++ {
		if i >= len(addons) {
			return nil, fmt.Errorf("%w: CreateBatch - unexpected extra row", ErrScanRow)
		}
		a := *addons[i]
		if err := rows.Scan(&a.ID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan row: %w", ErrScanRow, err)
		}
		created = append(created, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - rows error: %w", ErrScanRow, err)
	}
	if len(created) != len(addons) {
		return nil, fmt.Errorf("%w: CreateBatch - inserted %d of %d rows", ErrExecQuery, len(created), len(addons))
	}

	return created, nil
}

func insertAddonsQuery(addons []*domain.ReservationAddon) squirrel.InsertBuilder {
	insertBuilder := psqlbuilder.Insert("reservation_addons").
		Columns(
			"hotel_id",
			"reservation_details_id",
			"addon_id",
			"hotel_addon_id",
			"date",
			"quantity",
			"unit_price",
		)

	for _, a := range addons {
		insertBuilder = insertBuilder.Values(
			a.HotelID,
			a.ReservationDetailsID,
			a.AddonID,
			a.HotelAddonID,
			a.Date,
			a.Quantity,
			a.UnitPrice,
		)
	}

	return insertBuilder.Suffix("RETURNING id, created_at")
}
