package domain

import "time"

// Client is a row from public.clientes.
type Client struct {
	ID             int64     `json:"id"`
	Nombre         string    `json:"nombre"`
	Email          string    `json:"email"`
	Telefono       string    `json:"telefono"`
	Ubicacion      string    `json:"ubicacion"`
	Estado         string    `json:"estado"`
	TasaConversion float64   `json:"tasa_conversion"`
	Satisfaccion   float64   `json:"satisfaccion"`
	FechaRegistro  time.Time `json:"fecha_registro"`
}

// NewClient carries the caller-provided fields for client creation. Estado
// and the stat columns are defaulted by the database.
type NewClient struct {
	Nombre    string `json:"nombre" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Telefono  string `json:"telefono"`
	Ubicacion string `json:"ubicacion"`
}

// RecentClient is the reduced shape used by the dashboard stats endpoint.
type RecentClient struct {
	ID            int64     `json:"id"`
	Nombre        string    `json:"nombre"`
	Email         string    `json:"email"`
	FechaRegistro time.Time `json:"fecha_registro"`
}
