package domain

import "errors"

// Errores de dominio (sin dependencias externas). Cada fallo del flujo de
// cumplimiento se clasifica en exactamente uno de estos valores; el handler
// HTTP los traduce a códigos de respuesta.
var (
	// Errores de referencia: identificador de producto o bodega inexistente.
	// No reintentable: el caller envió ids incorrectos.
	ErrNotFound = errors.New("producto o bodega no encontrado")

	// Errores de regla de negocio: definitivos para esta petición.
	ErrNoEligibleOrder  = errors.New("no existe pedido elegible para la recepción")
	ErrAlreadyFulfilled = errors.New("el pedido ya fue cumplido")
	ErrTemporalConflict = errors.New("el pedido es posterior a la fecha declarada de la petición")

	// Errores de concurrencia: seguro reintentar el ciclo validar+ejecutar completo.
	ErrOrderVanished = errors.New("el pedido desapareció entre validación y ejecución")
	ErrWriteConflict = errors.New("transacción abortada por escritura concurrente")

	// Errores de infraestructura: reintentable con backoff (acotado por el caller).
	ErrStorageUnavailable = errors.New("almacenamiento no disponible")

	ErrInvalidInput = errors.New("entrada inválida")
)
