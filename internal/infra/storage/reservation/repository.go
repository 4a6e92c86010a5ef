package reservation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

var nightColumns = []string{
	"id",
	"hotel_id",
	"reservation_details_id",
	"parking_spot_id",
	"vehicle_category_id",
	"date",
	"status",
	"cancelled",
	"reservation_addon_id",
	"created_at",
}

// Repository репозиторий посуточных записей парковки (reservation_parking)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей парковки
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CountPoolReserved считает неотмененные записи на месте пула отеля/категории по датам.
// Ключ результата - domain.DateKey. Учитываются только статусы confirmed и reserved.
func (r *Repository) CountPoolReserved(ctx context.Context, hotelID, categoryID int64, dates domain.DateRange) (map[string]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := countPoolReservedQuery(hotelID, categoryID, dates).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountPoolReserved - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountPoolReserved - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var date sql.NullTime
		var count int
		if err := rows.Scan(&date, &count); err != nil {
			return nil, fmt.Errorf("%w: CountPoolReserved - scan row: %w", ErrScanRow, err)
		}
		counts[domain.DateKey(date.Time)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountPoolReserved - rows error: %w", ErrScanRow, err)
	}

	return counts, nil
}

// ListOccupied возвращает занятые места по датам: DateKey -> множество ID мест.
// Занятыми считаются неотмененные записи со статусами confirmed, reserved и blocked.
func (r *Repository) ListOccupied(ctx context.Context, spotIDs []int64, dates domain.DateRange) (map[string]map[int64]struct{}, error) {
	occupied := make(map[string]map[int64]struct{})
	if len(spotIDs) == 0 {
		return occupied, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listOccupiedQuery(spotIDs, dates).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupied - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupied - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var date sql.NullTime
		var spotID int64
		if err := rows.Scan(&date, &spotID); err != nil {
			return nil, fmt.Errorf("%w: ListOccupied - scan row: %w", ErrScanRow, err)
		}
		key := domain.DateKey(date.Time)
		if occupied[key] == nil {
			occupied[key] = make(map[int64]struct{})
		}
		occupied[key][spotID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOccupied - rows error: %w", ErrScanRow, err)
	}

	return occupied, nil
}

// CreateBatch создает записи одним INSERT и возвращает их с присвоенными ID
func (r *Repository) CreateBatch(ctx context.Context, nights []*domain.ReservationNight) ([]*domain.ReservationNight, error) {
	if len(nights) == 0 {
		return nights, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := insertNightsQuery(nights).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	created := make([]*domain.ReservationNight, 0, len(nights))
	for i := 0; rows.Next(); i++ {
		if i >= len(nights) {
			return nil, fmt.Errorf("%w: CreateBatch - unexpected extra row", ErrScanRow)
		}
		night := *nights[i]
		if err := rows.Scan(&night.ID, &night.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan row: %w", ErrScanRow, err)
		}
		created = append(created, &night)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - rows error: %w", ErrScanRow, err)
	}
	if len(created) != len(nights) {
		return nil, fmt.Errorf("%w: CreateBatch - inserted %d of %d rows", ErrExecQuery, len(created), len(nights))
	}

	return created, nil
}

// GetByReservation получает все записи бронирования, включая отмененные
func (r *Repository) GetByReservation(ctx context.Context, hotelID, reservationDetailsID int64) ([]*domain.ReservationNight, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(nightColumns...).
		From("reservation_parking").
		Where(squirrel.Eq{"hotel_id": hotelID}).
		Where(squirrel.Eq{"reservation_details_id": reservationDetailsID}).
		OrderBy("date ASC", "parking_spot_id ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservation - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservation - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	nights := make([]*domain.ReservationNight, 0)
	for rows.Next() {
		night, err := scanNight(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByReservation - scan row: %w", ErrScanRow, err)
		}
		nights = append(nights, night)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByReservation - rows error: %w", ErrScanRow, err)
	}

	if len(nights) == 0 {
		return nil, ErrReservationNotFound
	}

	return nights, nil
}

// CancelByReservation помечает все активные записи бронирования отмененными.
// Возвращает количество отмененных записей; ErrReservationNotFound, если отменять нечего.
func (r *Repository) CancelByReservation(ctx context.Context, hotelID, reservationDetailsID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservation_parking").
		Set("cancelled", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"hotel_id": hotelID}).
		Where(squirrel.Eq{"reservation_details_id": reservationDetailsID}).
		Where(squirrel.Eq{"cancelled": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelByReservation - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelByReservation - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelByReservation - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return 0, ErrReservationNotFound
	}

	return rowsAffected, nil
}

func countPoolReservedQuery(hotelID, categoryID int64, dates domain.DateRange) squirrel.SelectBuilder {
	return psqlbuilder.Select("rp.date", "COUNT(*)").
		From("reservation_parking rp").
		Join("parking_spots ps ON ps.id = rp.parking_spot_id").
		Where(squirrel.Eq{"rp.hotel_id": hotelID}).
		Where(squirrel.Eq{"rp.vehicle_category_id": categoryID}).
		Where(squirrel.Eq{"ps.spot_type": domain.SpotTypeCapacityPool}).
		Where(squirrel.Eq{"rp.cancelled": nil}).
		Where(squirrel.Eq{"rp.status": statusValues(domain.CountedStatuses)}).
		Where(squirrel.GtOrEq{"rp.date": dates.Start}).
		Where(squirrel.Lt{"rp.date": dates.End}).
		GroupBy("rp.date")
}

func listOccupiedQuery(spotIDs []int64, dates domain.DateRange) squirrel.SelectBuilder {
	return psqlbuilder.Select("date", "parking_spot_id").
		From("reservation_parking").
		Where(squirrel.Eq{"parking_spot_id": spotIDs}).
		Where(squirrel.Eq{"cancelled": nil}).
		Where(squirrel.Eq{"status": statusValues(domain.OccupyingStatuses)}).
		Where(squirrel.GtOrEq{"date": dates.Start}).
		Where(squirrel.Lt{"date": dates.End})
}

func insertNightsQuery(nights []*domain.ReservationNight) squirrel.InsertBuilder {
	insertBuilder := psqlbuilder.Insert("reservation_parking").
		Columns(
			"hotel_id",
			"reservation_details_id",
			"parking_spot_id",
			"vehicle_category_id",
			"date",
			"status",
			"reservation_addon_id",
		)

	for _, n := range nights {
		insertBuilder = insertBuilder.Values(
			n.HotelID,
			n.ReservationDetailsID,
			n.ParkingSpotID,
			n.VehicleCategoryID,
			n.Date,
			n.Status,
			n.ReservationAddonID,
		)
	}

	return insertBuilder.Suffix("RETURNING id, created_at")
}

func statusValues(statuses []domain.ReservationStatus) []string {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return values
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNight(row rowScanner) (*domain.ReservationNight, error) {
	var night domain.ReservationNight
	var cancelled sql.NullTime
	var addonID sql.NullInt64

	err := row.Scan(
		&night.ID,
		&night.HotelID,
		&night.ReservationDetailsID,
		&night.ParkingSpotID,
		&night.VehicleCategoryID,
		&night.Date,
		&night.Status,
		&cancelled,
		&addonID,
		&night.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	night.Date = domain.TruncateDate(night.Date)
	if cancelled.Valid {
		night.Cancelled = ptr.Ptr(cancelled.Time)
	}
	if addonID.Valid {
		night.ReservationAddonID = ptr.Ptr(addonID.Int64)
	}

	return &night, nil
}
