package list_link_meetings

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/links/models"
)

type LinkService interface {
	ListMeetings(ctx context.Context, slug string, userID int64) (*models.MeetingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
