package entity

// Company representa una organización/tenant. CompanyCode es la clave inmutable.
type Company struct {
	Code       string
	Containers []Container // se carga solo en la vista de detalle
}
