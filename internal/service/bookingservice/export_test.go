package bookingservice

import "time"

// SetClock fixa o relógio usado para validar datas.
func (s *Service) SetClock(now func() time.Time) { s.now = now }
