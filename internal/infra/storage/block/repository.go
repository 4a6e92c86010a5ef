package block

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

var blockColumns = []string{
	"id",
	"hotel_id",
	"parking_lot_id",
	"spot_size",
	"start_date",
	"end_date",
	"number_of_spots",
	"comment",
	"created_at",
}

// Repository репозиторий блокировок емкости
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает блокировку
func (r *Repository) Create(ctx context.Context, block *domain.ParkingBlock) (*domain.ParkingBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("parking_blocks").
		Columns(
			"hotel_id",
			"parking_lot_id",
			"spot_size",
			"start_date",
			"end_date",
			"number_of_spots",
			"comment",
		).
		Values(
			block.HotelID,
			block.ParkingLotID,
			block.SpotSize,
			block.StartDate,
			block.EndDate,
			block.NumberOfSpots,
			block.Comment,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	created := *block
	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return &created, nil
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ParkingBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("parking_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	block, err := scanBlock(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %w", ErrScanRow, err)
	}

	return block, nil
}

// Delete удаляет блокировку; емкость сразу становится доступной
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("parking_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

// ListOverlapping получает блокировки отеля, пересекающиеся с [start, end] включительно
func (r *Repository) ListOverlapping(ctx context.Context, hotelID int64, start, end time.Time) ([]*domain.ParkingBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listOverlappingQuery(hotelID, start, end).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.ParkingBlock, 0)
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOverlapping - scan row: %w", ErrScanRow, err)
		}
		blocks = append(blocks, block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - rows error: %w", ErrScanRow, err)
	}

	return blocks, nil
}

// listOverlappingQuery: block.start <= end AND block.end >= start
func listOverlappingQuery(hotelID int64, start, end time.Time) squirrel.SelectBuilder {
	return psqlbuilder.Select(blockColumns...).
		From("parking_blocks").
		Where(squirrel.Eq{"hotel_id": hotelID}).
		Where(squirrel.LtOrEq{"start_date": domain.TruncateDate(end)}).
		Where(squirrel.GtOrEq{"end_date": domain.TruncateDate(start)}).
		OrderBy("start_date ASC", "id ASC")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlock(row rowScanner) (*domain.ParkingBlock, error) {
	var block domain.ParkingBlock
	var lotID sql.NullInt64
	var spotSize sql.NullInt64
	var comment sql.NullString

	err := row.Scan(
		&block.ID,
		&block.HotelID,
		&lotID,
		&spotSize,
		&block.StartDate,
		&block.EndDate,
		&block.NumberOfSpots,
		&comment,
		&block.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lotID.Valid {
		block.ParkingLotID = ptr.Ptr(lotID.Int64)
	}
	if spotSize.Valid {
		block.SpotSize = ptr.Ptr(int(spotSize.Int64))
	}
	block.Comment = comment.String
	block.StartDate = domain.TruncateDate(block.StartDate)
	block.EndDate = domain.TruncateDate(block.EndDate)

	return &block, nil
}
