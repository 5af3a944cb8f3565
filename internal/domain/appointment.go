package domain

import "time"

// Appointment statuses. New appointments start Pendiente and move to
// Atendido when the workshop marks them handled.
const (
	AppointmentPending  = "Pendiente"
	AppointmentAttended = "Atendido"
)

// Appointment is a workshop service booking made from the storefront.
type Appointment struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nombre"`
	Phone     string    `json:"telefono"`
	Email     string    `json:"email"`
	Brand     string    `json:"marca"`
	Model     string    `json:"modelo"`
	Problem   string    `json:"problema"`
	Date      string    `json:"fecha_turno"`
	Time      string    `json:"hora"`
	Status    string    `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
}

// Subscriber is a newsletter signup.
type Subscriber struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminUser is a back-office account. PasswordHash is a bcrypt hash and is
// never serialized.
type AdminUser struct {
	ID           int64  `json:"id"`
	Username     string `json:"usuario"`
	PasswordHash string `json:"-"`
	Role         string `json:"rol"`
}
