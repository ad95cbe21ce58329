package entity

import "time"

// User es una cuenta autenticada (backend remoto). Las sesiones de invitado
// no tienen User: trabajan contra el almacenamiento local del dispositivo.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"` // "admin" | "vendedor"
	CreatedAt    time.Time `json:"createdAt"`
}
