package entity

import (
	"strings"
	"time"
)

// Roles de la aplicación.
const (
	RolAdmin     = "admin"
	RolEncargado = "encargado"
)

// Usuario representa una cuenta de la aplicación.
type Usuario struct {
	UID          string
	Email        string
	Nombre       string
	Rol          string
	Activo       bool
	PasswordHash string
	CreadoEn     time.Time
}

// EmailClave convierte un email en la clave bajo la que se guardan los roles
// pre-asignados: los puntos no son válidos en claves del árbol, se sustituyen
// por comas ("ana.perez@x.co" -> "ana,perez@x,co").
func EmailClave(email string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(email)), ".", ",")
}
