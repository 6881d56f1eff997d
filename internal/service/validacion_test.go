package service

import (
	"testing"
	"time"

	"github.com/rriojas/TecRHPermisos-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fecha(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fechaPtr(y int, m time.Month, d int) *time.Time {
	t := fecha(y, m, d)
	return &t
}

func corteDePrueba() *model.Corte {
	return &model.Corte{
		ID:          1,
		FechaInicio: fechaPtr(2026, 3, 1),
		FechaFin:    fechaPtr(2026, 3, 15),
		Activo:      true,
	}
}

var (
	tipoFalta   = &model.TipoPermiso{ID: 1, Clave: model.ClaveFalta, Nombre: "Falta"}
	tipoRetardo = &model.TipoPermiso{ID: 2, Clave: model.ClaveRetardo, Nombre: "Retardo"}
)

func TestValidarFechas_RangoDentroDelCorte(t *testing.T) {
	v, conf, err := ValidarFechas(tipoFalta, fechaPtr(2026, 3, 3), fechaPtr(2026, 3, 5), corteDePrueba(), false)

	require.NoError(t, err)
	assert.Nil(t, conf)
	require.NotNil(t, v)
	require.NotNil(t, v.Dias)
	assert.Equal(t, 3, *v.Dias)
}

func TestValidarFechas_MismoDiaCuentaUno(t *testing.T) {
	v, conf, err := ValidarFechas(tipoFalta, fechaPtr(2026, 3, 3), fechaPtr(2026, 3, 3), corteDePrueba(), false)

	require.NoError(t, err)
	assert.Nil(t, conf)
	require.NotNil(t, v.Dias)
	assert.Equal(t, 1, *v.Dias)
}

func TestValidarFechas_FechaInicioObligatoria(t *testing.T) {
	_, _, err := ValidarFechas(tipoFalta, nil, fechaPtr(2026, 3, 5), corteDePrueba(), false)

	var ev *ErrorValidacion
	require.ErrorAs(t, err, &ev)
	assert.Equal(t, "fecha_inicio", ev.Campo)
}

func TestValidarFechas_FechaFinObligatoriaSalvoRetardo(t *testing.T) {
	_, _, err := ValidarFechas(tipoFalta, fechaPtr(2026, 3, 3), nil, corteDePrueba(), false)
	var ev *ErrorValidacion
	require.ErrorAs(t, err, &ev)
	assert.Equal(t, "fecha_fin", ev.Campo)

	// Retardos are single-instant: no fecha_fin, no day count.
	instante := time.Date(2026, 3, 3, 8, 17, 0, 0, time.UTC)
	v, conf, err := ValidarFechas(tipoRetardo, &instante, nil, corteDePrueba(), false)
	require.NoError(t, err)
	assert.Nil(t, conf)
	assert.Nil(t, v.FechaFin)
	assert.Nil(t, v.Dias)
	assert.Equal(t, instante, v.FechaInicio)
}

func TestValidarFechas_InicioDespuesDeFin(t *testing.T) {
	_, _, err := ValidarFechas(tipoFalta, fechaPtr(2026, 3, 10), fechaPtr(2026, 3, 5), corteDePrueba(), false)

	var ev *ErrorValidacion
	require.ErrorAs(t, err, &ev)
	assert.Equal(t, "fecha_inicio", ev.Campo)
	assert.False(t, ev.Fatal)
}

func TestValidarFechas_InicioAnteriorAlCorteEsFatal(t *testing.T) {
	// Never confirmable, even with confirmado=true.
	for _, confirmado := range []bool{false, true} {
		_, conf, err := ValidarFechas(tipoFalta, fechaPtr(2026, 2, 20), fechaPtr(2026, 3, 5), corteDePrueba(), confirmado)

		var ev *ErrorValidacion
		require.ErrorAs(t, err, &ev)
		assert.Equal(t, "fecha_inicio", ev.Campo)
		assert.True(t, ev.Fatal)
		assert.Nil(t, conf)
	}
}

func TestValidarFechas_FinFueraDelCortePideConfirmacion(t *testing.T) {
	v, conf, err := ValidarFechas(tipoFalta, fechaPtr(2026, 3, 10), fechaPtr(2026, 4, 7), corteDePrueba(), false)

	require.NoError(t, err)
	assert.Nil(t, v)
	require.NotNil(t, conf)
	assert.Contains(t, conf.Mensaje, "15/03/2026")
}

func TestValidarFechas_ConfirmadoAceptaFinFueraDelCorte(t *testing.T) {
	v, conf, err := ValidarFechas(tipoFalta, fechaPtr(2026, 3, 10), fechaPtr(2026, 4, 7), corteDePrueba(), true)

	require.NoError(t, err)
	assert.Nil(t, conf)
	require.NotNil(t, v)
	require.NotNil(t, v.Dias)
	assert.Equal(t, 29, *v.Dias)
}

func TestValidarFechas_OrdenDeReglas(t *testing.T) {
	// Inverted range wins over the out-of-corte confirmation: rules
	// short-circuit in declaration order.
	_, conf, err := ValidarFechas(tipoFalta, fechaPtr(2026, 4, 10), fechaPtr(2026, 4, 5), corteDePrueba(), false)

	var ev *ErrorValidacion
	require.ErrorAs(t, err, &ev)
	assert.Equal(t, "fecha_inicio", ev.Campo)
	assert.Nil(t, conf)
}

func TestValidarFechas_ComparaPorDiaNoPorHora(t *testing.T) {
	// An instant late on the corte's last day is still inside the corte.
	inicio := time.Date(2026, 3, 15, 23, 30, 0, 0, time.UTC)
	fin := time.Date(2026, 3, 15, 23, 45, 0, 0, time.UTC)
	v, conf, err := ValidarFechas(tipoFalta, &inicio, &fin, corteDePrueba(), false)

	require.NoError(t, err)
	assert.Nil(t, conf)
	require.NotNil(t, v.Dias)
	assert.Equal(t, 1, *v.Dias)
}

func TestParseFecha_Formatos(t *testing.T) {
	dia, err := parseFecha("2026-03-03")
	require.NoError(t, err)
	assert.Equal(t, fecha(2026, 3, 3), dia)

	instante, err := parseFecha("2026-03-03T08:17")
	require.NoError(t, err)
	assert.Equal(t, 8, instante.Hour())
	assert.Equal(t, 17, instante.Minute())

	_, err = parseFecha("03/03/2026")
	assert.Error(t, err)
}

func TestParseFechaCampo_ErrorDeCampo(t *testing.T) {
	_, err := parseFechaCampo("fecha_inicio", "no-es-fecha")

	var ev *ErrorValidacion
	require.ErrorAs(t, err, &ev)
	assert.Equal(t, "fecha_inicio", ev.Campo)
}
