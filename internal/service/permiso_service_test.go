package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rriojas/TecRHPermisos-sub000/internal/dto"
	"github.com/rriojas/TecRHPermisos-sub000/internal/model"
	"github.com/rriojas/TecRHPermisos-sub000/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubPermisoRepo struct {
	permisos []*model.Permiso
	nextID   uint
}

func newStubPermisoRepo() *stubPermisoRepo { return &stubPermisoRepo{} }

func (r *stubPermisoRepo) DB() *gorm.DB { return nil }

func (r *stubPermisoRepo) CreateTx(_ *gorm.DB, p *model.Permiso) error {
	r.nextID++
	p.ID = r.nextID
	r.permisos = append(r.permisos, p)
	return nil
}

func (r *stubPermisoRepo) FindByID(_ context.Context, id uint) (*model.Permiso, error) {
	for _, p := range r.permisos {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPermisoRepo) Update(_ context.Context, p *model.Permiso) error { return nil }

func (r *stubPermisoRepo) List(_ context.Context, filtro dto.PermisoFiltro, areaID *uint) ([]model.Permiso, error) {
	var out []model.Permiso
	for _, p := range r.permisos {
		if !p.Activo {
			continue
		}
		if filtro.CorteID != nil && p.CorteID != *filtro.CorteID {
			continue
		}
		if filtro.SolicitanteID != nil && p.SolicitanteID != *filtro.SolicitanteID {
			continue
		}
		if filtro.Revisado != nil && p.Revisado != *filtro.Revisado {
			continue
		}
		if areaID != nil && (p.Solicitante == nil || p.Solicitante.AreaID != *areaID) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPermisoRepo) CountByCorte(_ context.Context, corteID uint) (int64, error) {
	var n int64
	for _, p := range r.permisos {
		if p.CorteID == corteID {
			n++
		}
	}
	return n, nil
}

func (r *stubPermisoRepo) agregar(p *model.Permiso) {
	r.nextID++
	p.ID = r.nextID
	r.permisos = append(r.permisos, p)
}

func (r *stubPermisoRepo) limpiar() {
	r.permisos = nil
}

var _ repository.PermisoRepository = (*stubPermisoRepo)(nil)

type stubUsuarioRepo struct {
	usuarios map[uint]*model.Usuario
}

func newStubUsuarioRepo(usuarios ...*model.Usuario) *stubUsuarioRepo {
	r := &stubUsuarioRepo{usuarios: make(map[uint]*model.Usuario)}
	for _, u := range usuarios {
		r.usuarios[u.ID] = u
	}
	return r
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uint) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindAreaID(_ context.Context, id uint) (uint, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return u.AreaID, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error)    { return nil, nil }
func (r *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) { return nil, nil }
func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error   { return nil }
func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uint) error        { return nil }
func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uint) error         { return nil }

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

type stubTipoRepo struct {
	tipos []*model.TipoPermiso
}

func newStubTipoRepo() *stubTipoRepo {
	return &stubTipoRepo{tipos: []*model.TipoPermiso{tipoFalta, tipoRetardo}}
}

func (r *stubTipoRepo) FindByID(_ context.Context, id uint) (*model.TipoPermiso, error) {
	for _, t := range r.tipos {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTipoRepo) FindByClave(_ context.Context, clave string) (*model.TipoPermiso, error) {
	for _, t := range r.tipos {
		if t.Clave == clave {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTipoRepo) List(_ context.Context) ([]model.TipoPermiso, error) {
	out := make([]model.TipoPermiso, 0, len(r.tipos))
	for _, t := range r.tipos {
		out = append(out, *t)
	}
	return out, nil
}

var _ repository.TipoPermisoRepository = (*stubTipoRepo)(nil)

// ── Fixture ───────────────────────────────────────────────────────────────────

type fixture struct {
	permisos *stubPermisoRepo
	cortes   *stubCorteRepo
	usuarios *stubUsuarioRepo
	svc      PermisoService
}

// newFixture seeds an active corte 01..15 mar 2026 (with its trailing
// marcador) and three users: empleado 10 (area 1), autorizador 20 (area 1)
// and empleado 11 (area 2).
func newFixture(t *testing.T) *fixture {
	t.Helper()

	cortes := newStubCorteRepo()
	require.NoError(t, cortes.CreateTx(nil, &model.Corte{
		FechaInicio: fechaPtr(2026, 3, 1),
		FechaFin:    fechaPtr(2026, 3, 15),
		Activo:      true,
		CreadoPorID: 1,
	}))
	require.NoError(t, cortes.CreateTx(nil, &model.Corte{CreadoPorID: 1}))

	usuarios := newStubUsuarioRepo(
		&model.Usuario{ID: 10, Username: "empleado1", Nombre: "Empleado Uno", AreaID: 1, EsEmpleado: true, Activo: true},
		&model.Usuario{ID: 11, Username: "empleado2", Nombre: "Empleado Dos", AreaID: 2, EsEmpleado: true, Activo: true},
		&model.Usuario{ID: 20, Username: "autorizador1", Nombre: "Autorizador Uno", AreaID: 1, EsAutorizador: true, Activo: true},
		&model.Usuario{ID: 30, Username: "rh1", Nombre: "RH Uno", AreaID: 3, EsRH: true, Activo: true},
	)

	permisos := newStubPermisoRepo()
	return &fixture{
		permisos: permisos,
		cortes:   cortes,
		usuarios: usuarios,
		svc:      NewPermisoService(permisos, cortes, newStubTipoRepo(), usuarios),
	}
}

func solicitudBase() dto.CrearPermisoRequest {
	fin := "2026-03-05"
	return dto.CrearPermisoRequest{
		TipoPermisoID: tipoFalta.ID,
		FechaInicio:   "2026-03-03",
		FechaFin:      &fin,
		Motivo:        "tramite personal",
	}
}

// ── CrearPermiso ──────────────────────────────────────────────────────────────

func TestCrearPermiso_DentroDelCorte(t *testing.T) {
	f := newFixture(t)

	resp, conf, err := f.svc.CrearPermiso(context.Background(), actorEmpleado, solicitudBase())

	require.NoError(t, err)
	assert.Nil(t, conf)
	require.NotNil(t, resp)
	assert.Equal(t, uint(10), resp.SolicitanteID)
	assert.Equal(t, uint(1), resp.CorteID)
	require.NotNil(t, resp.Dias)
	assert.Equal(t, 3, *resp.Dias)
	assert.False(t, resp.Revisado)
	assert.True(t, resp.Editable)
	assert.Len(t, f.permisos.permisos, 1)
}

func TestCrearPermiso_ConfirmacionEnDosFases(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := solicitudBase()
	fin := "2026-04-07"
	req.FechaFin = &fin
	req.FechaInicio = "2026-03-10"

	// First phase: the out-of-corte fecha_fin comes back as a pending
	// confirmation and nothing is persisted.
	resp, conf, err := f.svc.CrearPermiso(ctx, actorEmpleado, req)
	require.NoError(t, err)
	assert.Nil(t, resp)
	require.NotNil(t, conf)
	assert.Empty(t, f.permisos.permisos)

	// Second phase: same payload plus confirmado=true persists.
	req.Confirmado = true
	resp, conf, err = f.svc.CrearPermiso(ctx, actorEmpleado, req)
	require.NoError(t, err)
	assert.Nil(t, conf)
	require.NotNil(t, resp)
	require.NotNil(t, resp.Dias)
	assert.Equal(t, 29, *resp.Dias)
	assert.Len(t, f.permisos.permisos, 1)
}

func TestCrearPermiso_InicioAnteriorAlCorteNoEsConfirmable(t *testing.T) {
	f := newFixture(t)

	req := solicitudBase()
	req.FechaInicio = "2026-02-20"
	req.Confirmado = true

	_, conf, err := f.svc.CrearPermiso(context.Background(), actorEmpleado, req)

	var ev *ErrorValidacion
	require.ErrorAs(t, err, &ev)
	assert.True(t, ev.Fatal)
	assert.Nil(t, conf)
	assert.Empty(t, f.permisos.permisos)
}

func TestCrearPermiso_EmpleadoSiempreSolicitaParaSiMismo(t *testing.T) {
	f := newFixture(t)

	req := solicitudBase()
	req.SolicitanteID = 11 // ignored: the actor is not RH/administrador

	resp, _, err := f.svc.CrearPermiso(context.Background(), actorEmpleado, req)
	require.NoError(t, err)
	assert.Equal(t, uint(10), resp.SolicitanteID)
}

func TestCrearPermiso_GestorSolicitaPorTerceros(t *testing.T) {
	f := newFixture(t)

	req := solicitudBase()
	req.SolicitanteID = 11

	resp, _, err := f.svc.CrearPermiso(context.Background(), actorRH, req)
	require.NoError(t, err)
	assert.Equal(t, uint(11), resp.SolicitanteID)

	req.SolicitanteID = 999
	_, _, err = f.svc.CrearPermiso(context.Background(), actorRH, req)
	var ev *ErrorValidacion
	require.ErrorAs(t, err, &ev)
	assert.Equal(t, "solicitante_id", ev.Campo)
}

func TestCrearPermiso_SinCorteActivo(t *testing.T) {
	f := newFixture(t)
	for _, c := range f.cortes.cortes {
		c.Activo = false
	}

	_, _, err := f.svc.CrearPermiso(context.Background(), actorEmpleado, solicitudBase())
	assert.ErrorIs(t, err, ErrSinCorteActivo)
	assert.Empty(t, f.permisos.permisos)
}

func TestCrearPermiso_RetardoSinFechaFin(t *testing.T) {
	f := newFixture(t)

	req := dto.CrearPermisoRequest{
		TipoPermisoID: tipoRetardo.ID,
		FechaInicio:   "2026-03-03T08:17",
		Motivo:        "trafico",
	}
	resp, conf, err := f.svc.CrearPermiso(context.Background(), actorEmpleado, req)

	require.NoError(t, err)
	assert.Nil(t, conf)
	assert.Nil(t, resp.FechaFin)
	assert.Nil(t, resp.Dias)
	assert.Equal(t, "2026-03-03T08:17", resp.FechaInicio)
}

// ── Revisar ───────────────────────────────────────────────────────────────────

func crearPendiente(t *testing.T, f *fixture) uint {
	t.Helper()
	resp, conf, err := f.svc.CrearPermiso(context.Background(), actorEmpleado, solicitudBase())
	require.NoError(t, err)
	require.Nil(t, conf)
	return resp.ID
}

func TestRevisar_AutorizadorDeLaMismaArea(t *testing.T) {
	f := newFixture(t)
	id := crearPendiente(t, f)

	resp, err := f.svc.Revisar(context.Background(), actorAutorizador, id, true)

	require.NoError(t, err)
	assert.True(t, resp.Revisado)
	assert.True(t, resp.ConGoce)
	require.NotNil(t, resp.AutorizadorID)
	assert.Equal(t, actorAutorizador.UsuarioID, *resp.AutorizadorID)
	assert.NotNil(t, resp.AutorizadoAt)
	assert.False(t, resp.Editable, "revisado deja de ser editable")
}

func TestRevisar_DobleRevisionEsTerminal(t *testing.T) {
	f := newFixture(t)
	id := crearPendiente(t, f)
	ctx := context.Background()

	_, err := f.svc.Revisar(ctx, actorAutorizador, id, true)
	require.NoError(t, err)

	guardado, err := f.permisos.FindByID(ctx, id)
	require.NoError(t, err)
	primerAutorizador := *guardado.AutorizadorID
	primerInstante := *guardado.AutorizadoAt

	// The second review fails without touching the stored decision, even
	// with the opposite con_goce.
	_, err = f.svc.Revisar(ctx, actorAutorizador, id, false)
	assert.ErrorIs(t, err, ErrYaRevisado)

	guardado, err = f.permisos.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, guardado.ConGoce)
	assert.Equal(t, primerAutorizador, *guardado.AutorizadorID)
	assert.Equal(t, primerInstante, *guardado.AutorizadoAt)
}

func TestRevisar_AreaDistintaDenegada(t *testing.T) {
	f := newFixture(t)
	id := crearPendiente(t, f)

	_, err := f.svc.Revisar(context.Background(), actorAutorOtra, id, true)
	assert.ErrorIs(t, err, ErrAccesoDenegado)
}

func TestRevisar_RHNoAutoriza(t *testing.T) {
	f := newFixture(t)
	id := crearPendiente(t, f)

	_, err := f.svc.Revisar(context.Background(), actorRH, id, true)
	assert.ErrorIs(t, err, ErrAccesoDenegado)
}

func TestRevisar_CorteCerradoDenegado(t *testing.T) {
	f := newFixture(t)
	id := crearPendiente(t, f)
	f.cortes.cortes[0].Activo = false

	_, err := f.svc.Revisar(context.Background(), actorAutorizador, id, true)
	assert.ErrorIs(t, err, ErrAccesoDenegado)
}

// ── EditarPermiso ─────────────────────────────────────────────────────────────

func edicionBase() dto.EditarPermisoRequest {
	fin := "2026-03-06"
	return dto.EditarPermisoRequest{
		TipoPermisoID: tipoFalta.ID,
		FechaInicio:   "2026-03-04",
		FechaFin:      &fin,
		Motivo:        "tramite personal (corregido)",
	}
}

func TestEditarPermiso_Solicitante(t *testing.T) {
	f := newFixture(t)
	id := crearPendiente(t, f)

	resp, err := f.svc.EditarPermiso(context.Background(), actorEmpleado, id, edicionBase())

	require.NoError(t, err)
	assert.Equal(t, "2026-03-04T00:00", resp.FechaInicio)
	require.NotNil(t, resp.Dias)
	assert.Equal(t, 3, *resp.Dias)
	assert.Equal(t, "tramite personal (corregido)", resp.Motivo)
}

func TestEditarPermiso_RevisadoBloqueado(t *testing.T) {
	f := newFixture(t)
	id := crearPendiente(t, f)
	_, err := f.svc.Revisar(context.Background(), actorAutorizador, id, true)
	require.NoError(t, err)

	_, err = f.svc.EditarPermiso(context.Background(), actorEmpleado, id, edicionBase())
	assert.ErrorIs(t, err, ErrYaRevisado)

	// RH hits the same lock: the reviewed state binds every role.
	_, err = f.svc.EditarPermiso(context.Background(), actorRH, id, edicionBase())
	assert.ErrorIs(t, err, ErrYaRevisado)
}

func TestEditarPermiso_CorteCerradoBloqueado(t *testing.T) {
	f := newFixture(t)
	id := crearPendiente(t, f)
	f.cortes.cortes[0].Activo = false

	_, err := f.svc.EditarPermiso(context.Background(), actorEmpleado, id, edicionBase())
	assert.ErrorIs(t, err, ErrCorteCerrado)
}

func TestEditarPermiso_AutorizadorPuroRechazado(t *testing.T) {
	f := newFixture(t)
	id := crearPendiente(t, f)

	_, err := f.svc.EditarPermiso(context.Background(), actorAutorizador, id, edicionBase())
	assert.ErrorIs(t, err, ErrAccesoDenegado)

	// RH who also happens to be autorizador passes: precedence, not flags.
	mixto := Actor{UsuarioID: 50, AreaID: 1, Autorizador: true, RH: true}
	_, err = f.svc.EditarPermiso(context.Background(), mixto, id, edicionBase())
	assert.NoError(t, err)
}

func TestEditarPermiso_FinFueraDelCorteEsErrorDuro(t *testing.T) {
	f := newFixture(t)
	id := crearPendiente(t, f)

	req := edicionBase()
	fin := "2026-04-07"
	req.FechaFin = &fin

	// No confirmation round-trip on edit.
	_, err := f.svc.EditarPermiso(context.Background(), actorEmpleado, id, req)
	var ev *ErrorValidacion
	require.ErrorAs(t, err, &ev)
	assert.Equal(t, "fecha_fin", ev.Campo)
}

func TestEditarPermiso_AjenoDenegado(t *testing.T) {
	f := newFixture(t)
	id := crearPendiente(t, f)

	otro := Actor{UsuarioID: 11, AreaID: 2, Empleado: true}
	_, err := f.svc.EditarPermiso(context.Background(), otro, id, edicionBase())
	assert.ErrorIs(t, err, ErrAccesoDenegado)
}

// ── EliminarPermiso ───────────────────────────────────────────────────────────

func TestEliminarPermiso_DisponibleDespuesDeRevision(t *testing.T) {
	f := newFixture(t)
	id := crearPendiente(t, f)
	ctx := context.Background()

	_, err := f.svc.Revisar(ctx, actorAutorizador, id, true)
	require.NoError(t, err)

	// Deletion is not locked by the reviewed state (contrast with edit).
	require.NoError(t, f.svc.EliminarPermiso(ctx, actorEmpleado, id))

	_, err = f.svc.ObtenerPermiso(ctx, actorEmpleado, id)
	assert.ErrorIs(t, err, ErrNoEncontrado)

	// Deleting again: logical deletion reads as absence.
	err = f.svc.EliminarPermiso(ctx, actorEmpleado, id)
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestEliminarPermiso_AjenoDenegado(t *testing.T) {
	f := newFixture(t)
	id := crearPendiente(t, f)

	otro := Actor{UsuarioID: 11, AreaID: 2, Empleado: true}
	err := f.svc.EliminarPermiso(context.Background(), otro, id)
	assert.ErrorIs(t, err, ErrAccesoDenegado)
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func TestObtenerPermiso_Acceso(t *testing.T) {
	f := newFixture(t)
	id := crearPendiente(t, f)
	ctx := context.Background()

	casos := []struct {
		nombre  string
		actor   Actor
		permite bool
	}{
		{"solicitante", actorEmpleado, true},
		{"autorizador de su area", actorAutorizador, true},
		{"rh", actorRH, true},
		{"autorizador de otra area", actorAutorOtra, false},
		{"empleado ajeno", Actor{UsuarioID: 11, AreaID: 2, Empleado: true}, false},
	}
	for _, c := range casos {
		_, err := f.svc.ObtenerPermiso(ctx, c.actor, id)
		if c.permite {
			assert.NoError(t, err, c.nombre)
		} else {
			assert.ErrorIs(t, err, ErrAccesoDenegado, c.nombre)
		}
	}
}

func TestListarPermisos_AlcancePorRol(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// One permiso per employee, in areas 1 and 2.
	_, _, err := f.svc.CrearPermiso(ctx, actorEmpleado, solicitudBase())
	require.NoError(t, err)
	otro := Actor{UsuarioID: 11, AreaID: 2, Empleado: true}
	_, _, err = f.svc.CrearPermiso(ctx, otro, solicitudBase())
	require.NoError(t, err)

	// Empleado: own rows only, even when filtering for someone else.
	lista, err := f.svc.ListarPermisos(ctx, actorEmpleado, dto.PermisoFiltro{SolicitanteID: ptrUint(11)})
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, uint(10), lista[0].SolicitanteID)

	// Autorizador: their area.
	lista, err = f.svc.ListarPermisos(ctx, actorAutorizador, dto.PermisoFiltro{})
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, uint(10), lista[0].SolicitanteID)

	// RH: everything.
	lista, err = f.svc.ListarPermisos(ctx, actorRH, dto.PermisoFiltro{})
	require.NoError(t, err)
	assert.Len(t, lista, 2)
}

func ptrUint(v uint) *uint { return &v }

func TestActualizarEvidencia(t *testing.T) {
	f := newFixture(t)
	id := crearPendiente(t, f)
	ctx := context.Background()

	ruta := "permiso_1/adjunto.pdf"
	resp, err := f.svc.ActualizarEvidencia(ctx, actorEmpleado, id, &ruta)
	require.NoError(t, err)
	require.NotNil(t, resp.Evidencia)
	assert.Equal(t, ruta, *resp.Evidencia)

	resp, err = f.svc.ActualizarEvidencia(ctx, actorEmpleado, id, nil)
	require.NoError(t, err)
	assert.Nil(t, resp.Evidencia)

	// Same locks as the edit surface.
	_, err = f.svc.Revisar(ctx, actorAutorizador, id, true)
	require.NoError(t, err)
	_, err = f.svc.ActualizarEvidencia(ctx, actorEmpleado, id, &ruta)
	assert.ErrorIs(t, err, ErrYaRevisado)
}

func TestObtenerParaImpresion(t *testing.T) {
	f := newFixture(t)
	id := crearPendiente(t, f)
	ctx := context.Background()

	p, err := f.svc.ObtenerParaImpresion(ctx, actorEmpleado, id)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	require.NotNil(t, p.Solicitante)

	otro := Actor{UsuarioID: 11, AreaID: 2, Empleado: true}
	_, err = f.svc.ObtenerParaImpresion(ctx, otro, id)
	assert.ErrorIs(t, err, ErrAccesoDenegado)
}

func TestCargarActivo_ErroresDelRepositorio(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ObtenerPermiso(context.Background(), actorRH, 999)
	assert.ErrorIs(t, err, ErrNoEncontrado)
	assert.False(t, errors.Is(err, ErrAccesoDenegado))
}
