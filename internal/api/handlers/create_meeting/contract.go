package create_meeting

import (
	"context"

	createMeeting "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_meeting"
)

type CreateMeetingUseCase interface {
	Execute(ctx context.Context, req *createMeeting.Request) (*createMeeting.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
