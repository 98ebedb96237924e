package repository

// Store agrupa los repositorios atados a una misma conexión o transacción.
type Store struct {
	Users       UserRepository
	Memberships MembershipRepository
	Companies   CompanyRepository
	Containers  ContainerRepository
	Counts      CountRepository
}
