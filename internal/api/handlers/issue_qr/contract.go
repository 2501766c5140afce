package issue_qr

import (
	"context"

	issueQR "github.com/m04kA/SMC-ParkingService/internal/usecase/issue_qr"
)

type IssueQRUseCase interface {
	Execute(ctx context.Context, req *issueQR.Request) (*issueQR.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
