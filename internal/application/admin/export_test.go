package admin

import "time"

// SetClock reemplaza el reloj del almacén en los tests.
func (st *SessionStore) SetClock(now func() time.Time) { st.now = now }
