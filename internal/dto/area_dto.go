package dto

type CrearAreaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=100"`
}

type ActualizarAreaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=100"`
}

type AreaResponse struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
	Activo bool   `json:"activo"`
}

type TipoPermisoResponse struct {
	ID     uint   `json:"id"`
	Clave  string `json:"clave"`
	Nombre string `json:"nombre"`
}
