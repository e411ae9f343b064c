package repository

import "github.com/jdcamargo/cotizador-api/internal/domain/entity"

// CounterRepository define el puerto del contador secuencial de documentos.
//
// La clave es (kind, cliente, período MMYYYY). Next devuelve el valor
// anterior más uno y lo persiste en una sola operación atómica
// (read-modify-write): dos llamadas con la misma clave jamás devuelven el
// mismo valor, incluso si un despliegue futuro corre varios procesos.
// La primera llamada para una clave devuelve 1. Los valores nunca se reusan.
type CounterRepository interface {
	Next(kind entity.DocumentKind, clientID, period string) (int64, error)
}
