package service

import (
	"testing"

	"github.com/rriojas/TecRHPermisos-sub000/internal/model"

	"github.com/stretchr/testify/assert"
)

var (
	actorEmpleado    = Actor{UsuarioID: 10, AreaID: 1, Empleado: true}
	actorAutorizador = Actor{UsuarioID: 20, AreaID: 1, Autorizador: true}
	actorAutorOtra   = Actor{UsuarioID: 21, AreaID: 2, Autorizador: true}
	actorRH          = Actor{UsuarioID: 30, AreaID: 3, RH: true}
	actorAdmin       = Actor{UsuarioID: 40, AreaID: 3, Administrador: true}
)

func permisoDe(solicitanteID uint) *model.Permiso {
	return &model.Permiso{ID: 100, SolicitanteID: solicitanteID, Activo: true}
}

func TestPuedeAcceder(t *testing.T) {
	p := permisoDe(10) // solicitante in area 1

	assert.True(t, PuedeAcceder(actorEmpleado, p, 1), "el solicitante ve lo suyo")
	assert.True(t, PuedeAcceder(actorAutorizador, p, 1), "autorizador de la misma area")
	assert.True(t, PuedeAcceder(actorRH, p, 1), "RH sin restriccion de area")
	assert.True(t, PuedeAcceder(actorAdmin, p, 1), "administrador sin restriccion")

	assert.False(t, PuedeAcceder(actorAutorOtra, p, 1), "autorizador de otra area")
	assert.False(t, PuedeAcceder(Actor{UsuarioID: 99, AreaID: 1, Empleado: true}, p, 1),
		"empleado ajeno aunque comparta area")
}

func TestPuedeAutorizar(t *testing.T) {
	p := permisoDe(10)
	activo := &model.Corte{ID: 1, Activo: true}
	cerrado := &model.Corte{ID: 1, Activo: false}

	assert.True(t, PuedeAutorizar(actorAutorizador, p, 1, activo))

	assert.False(t, PuedeAutorizar(actorAutorOtra, p, 1, activo), "area distinta")
	assert.False(t, PuedeAutorizar(actorRH, p, 1, activo), "RH no autoriza")
	assert.False(t, PuedeAutorizar(actorAdmin, p, 1, activo), "administrador no autoriza")
	assert.False(t, PuedeAutorizar(actorEmpleado, p, 1, activo), "empleado no autoriza")

	assert.False(t, PuedeAutorizar(actorAutorizador, p, 1, cerrado), "corte cerrado")
	assert.False(t, PuedeAutorizar(actorAutorizador, p, 1, nil), "sin corte")

	revisado := permisoDe(10)
	revisado.Revisado = true
	assert.False(t, PuedeAutorizar(actorAutorizador, revisado, 1, activo), "ya revisado")
}

func TestPuedeEditar(t *testing.T) {
	p := permisoDe(10)
	activo := &model.Corte{ID: 1, Activo: true}
	cerrado := &model.Corte{ID: 1, Activo: false}

	assert.True(t, PuedeEditar(actorEmpleado, p, 1, activo), "el solicitante edita lo suyo")
	assert.True(t, PuedeEditar(actorRH, p, 1, activo))
	assert.True(t, PuedeEditar(actorAdmin, p, 1, activo))

	// Autorizadores review, not edit; but RH precedence wins when combined.
	assert.False(t, PuedeEditar(actorAutorizador, p, 1, activo))
	mixto := Actor{UsuarioID: 50, AreaID: 1, Autorizador: true, RH: true}
	assert.True(t, PuedeEditar(mixto, p, 1, activo))

	assert.False(t, PuedeEditar(actorEmpleado, p, 1, cerrado), "corte cerrado bloquea a todos")
	assert.False(t, PuedeEditar(actorAdmin, p, 1, cerrado))
	assert.False(t, PuedeEditar(actorAdmin, p, 1, nil))

	revisado := permisoDe(10)
	revisado.Revisado = true
	assert.False(t, PuedeEditar(actorEmpleado, revisado, 1, activo), "revisado bloquea a todos")
	assert.False(t, PuedeEditar(actorAdmin, revisado, 1, activo))
}

func TestEsGestorYPrecedencia(t *testing.T) {
	assert.False(t, actorEmpleado.EsGestor())
	assert.False(t, actorAutorizador.EsGestor())
	assert.True(t, actorRH.EsGestor())
	assert.True(t, actorAdmin.EsGestor())
	assert.True(t, Actor{Autorizador: true, RH: true}.EsGestor())
}

func TestActorDeUsuario(t *testing.T) {
	u := &model.Usuario{
		ID: 7, AreaID: 2,
		EsEmpleado: true, EsAutorizador: true,
	}
	a := ActorDeUsuario(u)
	assert.Equal(t, uint(7), a.UsuarioID)
	assert.Equal(t, uint(2), a.AreaID)
	assert.True(t, a.Empleado)
	assert.True(t, a.Autorizador)
	assert.False(t, a.RH)
}
