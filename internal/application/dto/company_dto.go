package dto

// CreateCompanyRequest alta de empresa.
type CreateCompanyRequest struct {
	CompanyCode string `json:"companyCode" validate:"required,min=1,max=25,alphanumunicode"`
}

// CompanyResponse empresa con sus contenedores.
type CompanyResponse struct {
	CompanyCode string              `json:"companyCode"`
	Containers  []ContainerResponse `json:"containers"`
}
