package hotel

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

// Repository репозиторий отелей и их парковок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отелей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает отель по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("hotels").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var hotel domain.Hotel
	err = executor.QueryRowContext(ctx, query, args...).Scan(&hotel.ID, &hotel.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan hotel: %w", ErrScanRow, err)
	}

	return &hotel, nil
}

// List получает все отели (для фоновых задач)
func (r *Repository) List(ctx context.Context) ([]*domain.Hotel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("hotels").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	hotels := make([]*domain.Hotel, 0)
	for rows.Next() {
		var hotel domain.Hotel
		if err := rows.Scan(&hotel.ID, &hotel.Name); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		hotels = append(hotels, &hotel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return hotels, nil
}

// GetLot получает парковку по ID
func (r *Repository) GetLot(ctx context.Context, lotID int64) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "hotel_id", "name", "description").
		From("parking_lots").
		Where(squirrel.Eq{"id": lotID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLot - build select query: %w", ErrBuildQuery, err)
	}

	var lot domain.ParkingLot
	err = executor.QueryRowContext(ctx, query, args...).Scan(&lot.ID, &lot.HotelID, &lot.Name, &lot.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLot - scan lot: %w", ErrScanRow, err)
	}

	return &lot, nil
}

// GetFirstLot получает парковку отеля с наименьшим ID.
// К ней привязывается синтетическое место пула ёмкости.
func (r *Repository) GetFirstLot(ctx context.Context, hotelID int64) (*domain.ParkingLot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "hotel_id", "name", "description").
		From("parking_lots").
		Where(squirrel.Eq{"hotel_id": hotelID}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetFirstLot - build select query: %w", ErrBuildQuery, err)
	}

	var lot domain.ParkingLot
	err = executor.QueryRowContext(ctx, query, args...).Scan(&lot.ID, &lot.HotelID, &lot.Name, &lot.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetFirstLot - scan lot: %w", ErrScanRow, err)
	}

	return &lot, nil
}
