package entity

import "time"

// Client representa un cliente de la empresa.
// Una vez referenciado por un documento, el nombre queda congelado en los
// números ya emitidos: renombrar el cliente nunca cambia identificadores
// anteriores (el número se persiste como string en el documento).
type Client struct {
	ID        string
	Name      string
	SIRET     string // Identificación fiscal del cliente
	Address   string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
