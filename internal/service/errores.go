package service

import "errors"

// Typed outcomes of the permiso/corte core. Services never log and never
// panic on these; handlers decide the user-facing shape. Store failures are
// returned as-is (wrapped with %w at most) so callers can distinguish them.
var (
	ErrAccesoDenegado = errors.New("acceso denegado")
	ErrNoEncontrado   = errors.New("no encontrado")
	// ErrSinCorteActivo blocks all permiso creation: it is an operational /
	// configuration condition, not a user input error.
	ErrSinCorteActivo = errors.New("no existe un corte activo")
	ErrYaRevisado     = errors.New("el permiso ya fue revisado")
	// ErrCorteCerrado marks edits against a permiso whose owning corte is no
	// longer active — distinct from a permissions problem.
	ErrCorteCerrado = errors.New("el corte del permiso ya no está activo")
)

// ErrorValidacion is a recoverable per-field input error. Fatal marks rules
// that can never be overridden by the confirmation round-trip (e.g. fecha de
// inicio before the start of the active corte).
type ErrorValidacion struct {
	Campo   string
	Mensaje string
	Fatal   bool
}

func (e *ErrorValidacion) Error() string { return e.Campo + ": " + e.Mensaje }

func errCampo(campo, mensaje string) *ErrorValidacion {
	return &ErrorValidacion{Campo: campo, Mensaje: mensaje}
}

func errCampoFatal(campo, mensaje string) *ErrorValidacion {
	return &ErrorValidacion{Campo: campo, Mensaje: mensaje, Fatal: true}
}

// Confirmacion is NOT an error: the candidate dates are acceptable but spill
// past the end of the active corte, so the caller must acknowledge the
// warning and repeat the call with confirmado=true before anything persists.
type Confirmacion struct {
	Mensaje string
}
