package spot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

var spotColumns = []string{
	"ps.id",
	"ps.parking_lot_id",
	"ps.spot_number",
	"ps.spot_type",
	"ps.capacity_units",
	"ps.is_active",
	"ps.vehicle_category_id",
	"ps.created_at",
}

// Repository репозиторий парковочных мест
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мест
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CountCompatible считает активные физические места отеля размером не меньше minUnits
func (r *Repository) CountCompatible(ctx context.Context, hotelID int64, minUnits int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := countCompatibleQuery(hotelID, minUnits).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountCompatible - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountCompatible - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// CountMatching считает активные физические места, подходящие под фильтр блокировки.
// SpotSize в фильтре сравнивается с capacity_units на точное совпадение.
func (r *Repository) CountMatching(ctx context.Context, filter domain.SpotFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := countMatchingQuery(filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountMatching - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountMatching - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// ListCompatible получает совместимые места отеля в стабильном порядке (парковка, номер, id).
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельные назначения
// на тот же отель выполнялись последовательно.
func (r *Repository) ListCompatible(ctx context.Context, hotelID int64, minUnits int) ([]*domain.ParkingSpot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := listCompatibleQuery(hotelID, minUnits)
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF ps")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCompatible - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCompatible - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSpots(rows)
}

// GetPoolSpot получает синтетическое место пула для отеля и категории.
// Внутри транзакции строка блокируется: все брони пула отеля/категории сериализуются на ней.
func (r *Repository) GetPoolSpot(ctx context.Context, hotelID, categoryID int64) (*domain.ParkingSpot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := poolSpotQuery(hotelID, categoryID)
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF ps")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPoolSpot - build select query: %w", ErrBuildQuery, err)
	}

	spot, err := scanSpot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPoolSpot - scan spot: %w", ErrScanRow, err)
	}

	return spot, nil
}

// CreatePoolSpot создает место пула в парковке lotID.
// При гонке (место уже создано параллельной транзакцией) возвращает ErrSpotNotFound,
// и вызывающий должен перечитать место через GetPoolSpot.
func (r *Repository) CreatePoolSpot(ctx context.Context, lotID int64, category *domain.VehicleCategory) (*domain.ParkingSpot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	spot := &domain.ParkingSpot{
		ParkingLotID:      lotID,
		SpotNumber:        domain.PoolSpotNumber(category.ID),
		SpotType:          domain.SpotTypeCapacityPool,
		CapacityUnits:     category.CapacityUnitsRequired,
		IsActive:          true,
		VehicleCategoryID: &category.ID,
	}

	query, args, err := psqlbuilder.Insert("parking_spots").
		Columns(
			"parking_lot_id",
			"spot_number",
			"spot_type",
			"capacity_units",
			"is_active",
			"vehicle_category_id",
		).
		Values(
			spot.ParkingLotID,
			spot.SpotNumber,
			spot.SpotType,
			spot.CapacityUnits,
			spot.IsActive,
			spot.VehicleCategoryID,
		).
		Suffix("ON CONFLICT DO NOTHING RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePoolSpot - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&spot.ID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePoolSpot - execute insert: %w", ErrExecQuery, err)
	}
	spot.CreatedAt = createdAt.Time

	return spot, nil
}

func countCompatibleQuery(hotelID int64, minUnits int) squirrel.SelectBuilder {
	return psqlbuilder.Select("COUNT(*)").
		From("parking_spots ps").
		Join("parking_lots pl ON pl.id = ps.parking_lot_id").
		Where(squirrel.Eq{"pl.hotel_id": hotelID}).
		Where(squirrel.Eq{"ps.is_active": true}).
		Where(squirrel.Eq{"ps.spot_type": domain.SpotTypeNormal}).
		Where(squirrel.GtOrEq{"ps.capacity_units": minUnits})
}

func countMatchingQuery(filter domain.SpotFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("parking_spots ps").
		Join("parking_lots pl ON pl.id = ps.parking_lot_id").
		Where(squirrel.Eq{"pl.hotel_id": filter.HotelID}).
		Where(squirrel.Eq{"ps.is_active": true}).
		Where(squirrel.Eq{"ps.spot_type": domain.SpotTypeNormal})

	if filter.ParkingLotID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"ps.parking_lot_id": *filter.ParkingLotID})
	}
	if filter.SpotSize != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"ps.capacity_units": *filter.SpotSize})
	}

	return selectBuilder
}

func listCompatibleQuery(hotelID int64, minUnits int) squirrel.SelectBuilder {
	return psqlbuilder.Select(spotColumns...).
		From("parking_spots ps").
		Join("parking_lots pl ON pl.id = ps.parking_lot_id").
		Where(squirrel.Eq{"pl.hotel_id": hotelID}).
		Where(squirrel.Eq{"ps.is_active": true}).
		Where(squirrel.Eq{"ps.spot_type": domain.SpotTypeNormal}).
		Where(squirrel.GtOrEq{"ps.capacity_units": minUnits}).
		OrderBy("ps.parking_lot_id ASC", "ps.spot_number ASC", "ps.id ASC")
}

func poolSpotQuery(hotelID, categoryID int64) squirrel.SelectBuilder {
	return psqlbuilder.Select(spotColumns...).
		From("parking_spots ps").
		Join("parking_lots pl ON pl.id = ps.parking_lot_id").
		Where(squirrel.Eq{"pl.hotel_id": hotelID}).
		Where(squirrel.Eq{"ps.spot_type": domain.SpotTypeCapacityPool}).
		Where(squirrel.Eq{"ps.vehicle_category_id": categoryID}).
		OrderBy("ps.id ASC").
		Limit(1)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSpot(row rowScanner) (*domain.ParkingSpot, error) {
	var spot domain.ParkingSpot
	var createdAt sql.NullTime

	err := row.Scan(
		&spot.ID,
		&spot.ParkingLotID,
		&spot.SpotNumber,
		&spot.SpotType,
		&spot.CapacityUnits,
		&spot.IsActive,
		&spot.VehicleCategoryID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	spot.CreatedAt = createdAt.Time

	return &spot, nil
}

// scanSpots сканирует результаты запроса в слайс мест
func (r *Repository) scanSpots(rows *sql.Rows) ([]*domain.ParkingSpot, error) {
	spots := make([]*domain.ParkingSpot, 0)

	for rows.Next() {
		spot, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSpots - scan row: %w", ErrScanRow, err)
		}
		spots = append(spots, spot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSpots - rows error: %w", ErrScanRow, err)
	}

	return spots, nil
}
