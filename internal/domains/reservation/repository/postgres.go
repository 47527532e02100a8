package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"rental/config"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/internal/domains/reservation/conflict"
	"rental/internal/domains/reservation/model"
	"rental/shared/constant"
	"rental/shared/logger"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	entryColumns = "id, property_id, kind, status, start_date, end_date, version, " +
		"guest_id, guest_name, guest_email, guest_phone, created_at, modified_at, created_by, modified_by"

	queryLockProperty = "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))"

	queryFindOverlapping = "SELECT " + entryColumns + " FROM " + model.TableName +
		" WHERE property_id = $1 AND status = 'ACTIVE' AND start_date <= $3 AND $2 <= end_date" +
		" AND kind = ANY($4) AND id::text <> $5"

	queryInsert = "INSERT INTO " + model.TableName + " (" + entryColumns + ")" +
		" VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)"

	queryPropertyOf = "SELECT property_id FROM " + model.TableName + " WHERE id = $1"

	queryFindByIDForUpdate = "SELECT " + entryColumns + " FROM " + model.TableName + " WHERE id = $1 FOR UPDATE"

	queryUpdate = "UPDATE " + model.TableName + " SET status = $2, start_date = $3, end_date = $4," +
		" guest_name = $5, guest_email = $6, guest_phone = $7, modified_at = $8, modified_by = $9," +
		" version = version + 1 WHERE id = $1 AND version = $10"

	queryFindByID = "SELECT " + entryColumns + " FROM " + model.TableName + " WHERE id = $1"

	queryFindActiveBlocks = "SELECT " + entryColumns + " FROM " + model.TableName +
		" WHERE property_id = $1 AND kind = 'BLOCK' AND status = 'ACTIVE' ORDER BY start_date, id"

	queryFindByGuestAndInterval = "SELECT " + entryColumns + " FROM " + model.TableName +
		" WHERE property_id = $1 AND guest_id = $2 AND start_date = $3 AND end_date = $4" +
		" AND kind = 'BOOKING' AND status = 'ACTIVE' LIMIT 1"

	queryDelete = "DELETE FROM " + model.TableName + " WHERE id = $1"
)

// postgresStore serializes writers of one property with a transaction scoped
// advisory lock. The conflict query and the write run inside that
// transaction, and updates additionally compare and swap the version column.
type postgresStore struct {
	db        *postgres.Connection
	otel      otel.Otel
	txTimeout time.Duration
}

func NewPostgres(db *postgres.Connection, cfg *config.Config, otel otel.Otel) Reservation {
	return &postgresStore{
		db:        db,
		otel:      otel,
		txTimeout: time.Duration(cfg.DB.Postgres.TxTimeoutSeconds) * time.Second,
	}
}

// txFinder runs the overlap query on the transaction holding the property lock.
type txFinder struct {
	tx *sqlx.Tx
}

func (f txFinder) FindActiveOverlapping(ctx context.Context, propertyID string, interval model.Interval, rule conflict.Rule) ([]model.Entry, error) {
	kinds := make([]string, 0, len(rule.Kinds))
	for _, kind := range rule.Kinds {
		kinds = append(kinds, string(kind))
	}

	entries := []model.Entry{}

	err := f.tx.SelectContext(ctx, &entries, queryFindOverlapping,
		propertyID, interval.Start, interval.End, pq.Array(kinds), rule.ExcludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping entries: %w", err)
	}

	return entries, nil
}

func (p *postgresStore) withPropertyLock(ctx context.Context, propertyID string, fn func(ctx context.Context, tx *sqlx.Tx) error) (err error) {
	if p.txTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, p.txTimeout)
		defer cancel()
	}

	tx, err := p.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.ErrorWithStack(rbErr)
		}
	}()

	if _, err = tx.ExecContext(ctx, queryLockProperty, propertyID); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to lock property calendar: %w", err)
	}

	if err = fn(ctx, tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (p *postgresStore) CreateIfNoConflict(ctx context.Context, entry model.Entry, rule conflict.Rule) (res model.Entry, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.CreateIfNoConflict")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"reservation.property_id": entry.PropertyID,
		"reservation.kind":        string(entry.Kind),
	})

	entry.Version = 0

	err = p.withPropertyLock(ctx, entry.PropertyID, func(ctx context.Context, tx *sqlx.Tx) error {
		conflicts, err := conflict.Check(ctx, txFinder{tx: tx}, entry.PropertyID, entry.Interval(), rule)
		if err != nil {
			logger.ErrorWithStack(err)

			return err
		}

		if len(conflicts) > 0 {
			return &Conflicts{Entries: conflicts}
		}

		_, err = tx.ExecContext(ctx, queryInsert,
			entry.ID, entry.PropertyID, entry.Kind, entry.Status, entry.StartDate, entry.EndDate, entry.Version,
			entry.GuestID, entry.GuestName, entry.GuestEmail, entry.GuestPhone,
			entry.CreatedAt, entry.ModifiedAt, entry.CreatedBy, entry.ModifiedBy)
		if err != nil {
			return translateWriteError(err)
		}

		return nil
	})
	if err != nil {
		return model.Entry{}, err
	}

	return entry, nil
}

func (p *postgresStore) UpdateWithVersion(ctx context.Context, id string, expectedVersion int64, mutate Mutator) (res model.Entry, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.UpdateWithVersion")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("reservation.id", id)

	var propertyID string

	err = p.db.Write.GetContext(ctx, &propertyID, queryPropertyOf, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Entry{}, ErrNotFound
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return model.Entry{}, fmt.Errorf("failed to resolve reservation property: %w", err)
	}

	err = p.withPropertyLock(ctx, propertyID, func(ctx context.Context, tx *sqlx.Tx) error {
		var current model.Entry

		err := tx.GetContext(ctx, &current, queryFindByIDForUpdate, id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}

		if err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to load reservation: %w", err)
		}

		if current.Version != expectedVersion {
			return ErrStaleVersion
		}

		next, rule, err := applyMutation(current, mutate)
		if err != nil {
			return err
		}

		if next.IsActive() {
			conflicts, err := conflict.Check(ctx, txFinder{tx: tx}, next.PropertyID, next.Interval(), rule)
			if err != nil {
				logger.ErrorWithStack(err)

				return err
			}

			if len(conflicts) > 0 {
				return &Conflicts{Entries: conflicts}
			}
		}

		result, err := tx.ExecContext(ctx, queryUpdate,
			id, next.Status, next.StartDate, next.EndDate,
			next.GuestName, next.GuestEmail, next.GuestPhone, next.ModifiedAt, next.ModifiedBy,
			expectedVersion)
		if err != nil {
			return translateWriteError(err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}

		if affected == 0 {
			return ErrStaleVersion
		}

		res = next

		return nil
	})
	if err != nil {
		return model.Entry{}, err
	}

	return res, nil
}

// FindByID reads from the primary so a caller sees its own committed writes.
func (p *postgresStore) FindByID(ctx context.Context, id string) (res model.Entry, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.FindByID")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = p.db.Write.GetContext(ctx, &res, queryFindByID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Entry{}, ErrNotFound
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return model.Entry{}, fmt.Errorf("failed to get reservation: %w", err)
	}

	return res, nil
}

func (p *postgresStore) FindActiveBlocksByProperty(ctx context.Context, propertyID string) (res []model.Entry, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.FindActiveBlocksByProperty")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryFindActiveBlocks)

	res = []model.Entry{}

	if err = p.db.Read.SelectContext(ctx, &res, queryFindActiveBlocks, propertyID); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get blocks: %w", err)
	}

	return res, nil
}

func (p *postgresStore) FindByPropertyAndGuestAndInterval(ctx context.Context, propertyID, guestID string, interval model.Interval) (res model.Entry, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.FindByPropertyAndGuestAndInterval")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = p.db.Write.GetContext(ctx, &res, queryFindByGuestAndInterval, propertyID, guestID, interval.Start, interval.End)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Entry{}, ErrNotFound
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return model.Entry{}, fmt.Errorf("failed to find booking: %w", err)
	}

	return res, nil
}

func (p *postgresStore) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var propertyID string

	err = p.db.Write.GetContext(ctx, &propertyID, queryPropertyOf, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to resolve reservation property: %w", err)
	}

	return p.withPropertyLock(ctx, propertyID, func(ctx context.Context, tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, queryDelete, id)
		if err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to delete reservation: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}

		if affected == 0 {
			return ErrNotFound
		}

		return nil
	})
}

func translateWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case constant.PqErrorCodeFkViolation:
			return fmt.Errorf("property does not exist: %w", ErrNotFound)
		case constant.PqErrorCodeUniqueViolation:
			if strings.Contains(pqErr.Constraint, "pkey") {
				return fmt.Errorf("reservation id already taken: %w", ErrConflict)
			}
		}
	}

	logger.ErrorWithStack(err)

	return fmt.Errorf("failed to write reservation: %w", err)
}
