package services

import (
	"time"

	"sellerhub/internal/domain"
)

func stamp(now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	return domain.Timestamp(now())
}
