package usecase

import "time"

// SetClock reemplaza el reloj de los casos de uso en tests.
func SetClock(uc interface{ setNow(func() time.Time) }, now func() time.Time) { uc.setNow(now) }

func (uc *ClientUseCase) setNow(now func() time.Time)         { uc.now = now }
func (uc *DepositReceiptUseCase) setNow(now func() time.Time) { uc.now = now }
