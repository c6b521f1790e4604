package analytics

import "time"

func SetNow(uc *DashboardUseCase, now func() time.Time) { uc.now = now }
