package analytics

import "time"

// SetClock fija el reloj del reporte en tests.
func (uc *ReportUseCase) SetClock(now func() time.Time) { uc.now = now }
