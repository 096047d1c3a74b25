package meeting

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var meetingColumns = []string{
	"id",
	"owner_id",
	"link_id",
	"invitee_email",
	"invitee_user_id",
	"linkedin_url",
	"start_time",
	"duration_minutes",
	"answers",
	"created_at",
}

// Repository репозиторий для работы со встречами
// Встречи append-only: отмена и изменение не поддерживаются
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория встреч
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет встречу
// Вызывается только внутри сериализуемой транзакции usecase создания встречи -
// сам по себе insert не проверяет пересечения
func (r *Repository) Create(ctx context.Context, meeting *domain.Meeting) (*domain.Meeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	answers, err := json.Marshal(meeting.Answers)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal answers: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("meetings").
		Columns(
			"owner_id",
			"link_id",
			"invitee_email",
			"invitee_user_id",
			"linkedin_url",
			"start_time",
			"duration_minutes",
			"answers",
		).
		Values(
			meeting.OwnerID,
			meeting.LinkID,
			meeting.InviteeEmail,
			meeting.InviteeUserID,
			meeting.LinkedInURL,
			meeting.StartTime,
			meeting.DurationMinutes,
			answers,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&meeting.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	meeting.CreatedAt = createdAt.Time

	return meeting, nil
}

// CountByLink возвращает количество закоммиченных встреч по ссылке
// Используется для проверки max_uses
func (r *Repository) CountByLink(ctx context.Context, linkID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("meetings").
		Where(squirrel.Eq{"link_id": linkID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByLink - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByLink - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// ListByOwnerOverlapping получает встречи владельца, пересекающиеся
// с полуоткрытым интервалом [from, to)
// Пересечение полуоткрытое: встреча, заканчивающаяся ровно в from, не попадает
//
// Внутри активной транзакции добавляет FOR UPDATE - это точка сериализации
// конкурентных бронирований одного владельца
func (r *Repository) ListByOwnerOverlapping(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.Meeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(meetingColumns...).
		From("meetings").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Expr("start_time < ?", to)).
		Where(squirrel.Expr("start_time + (duration_minutes * INTERVAL '1 minute') > ?", from)).
		OrderBy("start_time ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwnerOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwnerOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanMeetings(rows)
}

// ListByLink получает все встречи по ссылке (ранние первыми)
func (r *Repository) ListByLink(ctx context.Context, linkID int64) ([]*domain.Meeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(meetingColumns...).
		From("meetings").
		Where(squirrel.Eq{"link_id": linkID}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByLink - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByLink - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanMeetings(rows)
}

// scanMeetings сканирует результаты запроса в слайс встреч
func scanMeetings(rows *sql.Rows) ([]*domain.Meeting, error) {
	meetings := make([]*domain.Meeting, 0)

	for rows.Next() {
		var meeting domain.Meeting
		var answers []byte
		var createdAt sql.NullTime

		err := rows.Scan(
			&meeting.ID,
			&meeting.OwnerID,
			&meeting.LinkID,
			&meeting.InviteeEmail,
			&meeting.InviteeUserID,
			&meeting.LinkedInURL,
			&meeting.StartTime,
			&meeting.DurationMinutes,
			&answers,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanMeetings - scan row: %v", ErrScanRow, err)
		}

		if len(answers) > 0 {
			if err := json.Unmarshal(answers, &meeting.Answers); err != nil {
				return nil, fmt.Errorf("%w: scanMeetings - unmarshal answers: %v", ErrScanRow, err)
			}
		}

		meeting.StartTime = meeting.StartTime.UTC()
		meeting.CreatedAt = createdAt.Time

		meetings = append(meetings, &meeting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanMeetings - rows error: %v", ErrScanRow, err)
	}

	return meetings, nil
}
