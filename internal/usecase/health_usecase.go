package usecase

import (
	"context"
	"strconv"

	"trucking-quote-backend/pkg/email"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	mailer email.Mailer
}

func NewHealthUsecase(mailer email.Mailer) HealthUsecase {
	return &healthUsecase{mailer: mailer}
}

// Check reports liveness plus whether the mail transport has its credentials.
// Missing credentials do not make the service unhealthy.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	return map[string]string{
		"status":          "ok",
		"mail_provider":   u.mailer.Provider(),
		"mail_configured": strconv.FormatBool(email.Configured(u.mailer)),
	}
}
