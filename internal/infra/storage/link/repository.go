package link

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения unique constraint
const uniqueViolation = "23505"

var linkColumns = []string{
	"id",
	"owner_id",
	"slug",
	"title",
	"meeting_length_minutes",
	"buffer_before_minutes",
	"buffer_after_minutes",
	"max_uses",
	"expiration_date",
	"max_days_ahead",
	"custom_questions",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со scheduling-ссылками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ссылок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую ссылку
// Кастомные вопросы сериализуются в JSONB одной колонкой - порядок вопросов
// сохраняется порядком элементов массива
func (r *Repository) Create(ctx context.Context, link *domain.SchedulingLink) (*domain.SchedulingLink, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	questions, err := json.Marshal(link.CustomQuestions)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal questions: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("scheduling_links").
		Columns(
			"owner_id",
			"slug",
			"title",
			"meeting_length_minutes",
			"buffer_before_minutes",
			"buffer_after_minutes",
			"max_uses",
			"expiration_date",
			"max_days_ahead",
			"custom_questions",
		).
		Values(
			link.OwnerID,
			link.Slug,
			link.Title,
			link.MeetingLengthMinutes,
			link.BufferBeforeMinutes,
			link.BufferAfterMinutes,
			link.MaxUses,
			link.ExpirationDate,
			link.MaxDaysAhead,
			questions,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&link.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrSlugConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	link.CreatedAt = createdAt.Time
	link.UpdatedAt = updatedAt.Time

	return link, nil
}

// GetBySlug получает ссылку по slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.SchedulingLink, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug})
}

// GetByID получает ссылку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SchedulingLink, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// ListByOwner получает все ссылки владельца (новые первыми)
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.SchedulingLink, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(linkColumns...).
		From("scheduling_links").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	links := make([]*domain.SchedulingLink, 0)
	for rows.Next() {
		link, err := scanLink(rows.Scan)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - rows error: %v", ErrScanRow, err)
	}

	return links, nil
}

// Delete удаляет ссылку владельца (каскадно удаляет её встречи)
func (r *Repository) Delete(ctx context.Context, id int64, ownerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("scheduling_links").
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLinkNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.SchedulingLink, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(linkColumns...).
		From("scheduling_links").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	link, err := scanLink(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}

	return link, nil
}

// scanLink сканирует одну строку ссылки (общий код для Row и Rows)
func scanLink(scan func(dest ...interface{}) error) (*domain.SchedulingLink, error) {
	var link domain.SchedulingLink
	var questions []byte
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&link.ID,
		&link.OwnerID,
		&link.Slug,
		&link.Title,
		&link.MeetingLengthMinutes,
		&link.BufferBeforeMinutes,
		&link.BufferAfterMinutes,
		&link.MaxUses,
		&link.ExpirationDate,
		&link.MaxDaysAhead,
		&questions,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanLink - scan row: %v", ErrScanRow, err)
	}

	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &link.CustomQuestions); err != nil {
			return nil, fmt.Errorf("%w: scanLink - unmarshal questions: %v", ErrScanRow, err)
		}
	}

	link.CreatedAt = createdAt.Time
	link.UpdatedAt = updatedAt.Time

	return &link, nil
}
