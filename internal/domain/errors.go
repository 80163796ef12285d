package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNoEncontrado        = errors.New("recurso no encontrado")
	ErrUsuarioNoEncontrado = errors.New("usuario no encontrado")
	ErrEmailRegistrado     = errors.New("el email ya está registrado")
	ErrEntradaInvalida     = errors.New("entrada inválida")
	ErrDuplicado           = errors.New("recurso duplicado")
	ErrNoAutorizado        = errors.New("no autorizado")
	ErrProhibido           = errors.New("acceso denegado")
	ErrConflicto           = errors.New("conflicto con el estado actual")

	// Taxonomía
	ErrClaveReservada = errors.New(`"activo" es una clave reservada de la taxonomía`)

	// Constructor de folios
	ErrPasoIncompleto     = errors.New("hay subactividades sin puntuar en este paso")
	ErrPuntuacionInvalida = errors.New("la puntuación debe estar entre 1 y 10")
	ErrFolioEnviado       = errors.New("el folio ya fue enviado")
	ErrPasoInvalido       = errors.New("operación no válida en el paso actual")

	// Asistencia
	ErrCamaraNoDisponible   = errors.New("cámara no disponible")
	ErrPosicionNoDisponible = errors.New("posición no disponible")
	ErrPermisoDenegado      = errors.New("permiso denegado")
	ErrMarcaIncompleta      = errors.New("se requiere foto y posición para guardar la marca")

	// Tareas
	ErrComentarioRequerido = errors.New("el comentario de cumplimiento es obligatorio")
	ErrTareaCompletada     = errors.New("la evidencia de una tarea completada es inmutable")
)
