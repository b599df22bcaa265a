package domain

const (
	RoleAdmin       = "admin"
	RoleSalesperson = "salesperson"
	RoleCustomer    = "customer"
)

// User models an authenticated actor in the storefront.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Phone   string `json:"phone,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
	Address string `json:"address,omitempty"`
	Active  bool   `json:"active"`
}
