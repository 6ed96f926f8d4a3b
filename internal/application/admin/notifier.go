package admin

import "sync"

// Notification mensaje para el usuario.
type Notification struct {
	Tipo    string
	Mensaje string
}

const (
	NotificationSuccess = "success"
	NotificationError   = "error"
)

// Collector es un Notifier que acumula los mensajes de una petición.
type Collector struct {
	mu   sync.Mutex
	list []Notification
}

func (c *Collector) Success(message string) { c.add(NotificationSuccess, message) }

func (c *Collector) ShowError(message string) { c.add(NotificationError, message) }

func (c *Collector) add(tipo, msg string) {
	c.mu.Lock()
	c.list = append(c.list, Notification{Tipo: tipo, Mensaje: msg})
	c.mu.Unlock()
}

// Notifications mensajes recibidos, en orden.
func (c *Collector) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.list))
	copy(out, c.list)
	return out
}
