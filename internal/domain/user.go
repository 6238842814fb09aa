package domain

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsSeller reports whether the user signed up with the seller role.
func (u User) IsSeller() bool {
	return equalFold(u.Role, RoleSeller)
}

type SellerProfile struct {
	ShopName *string `json:"shop_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	City     *string `json:"city,omitempty"`
	Address  *string `json:"address,omitempty"`
}

type Seller struct {
	ID      int64          `json:"id"`
	Name    string         `json:"name"`
	Email   *string        `json:"email,omitempty"`
	Role    *string        `json:"role,omitempty"`
	Profile *SellerProfile `json:"seller_profile,omitempty"`
}

// ShopLabel is the shop name when the seller has a profile, otherwise the seller's name.
func (s *Seller) ShopLabel() string {
	if s == nil {
		return ""
	}
	if s.Profile != nil && s.Profile.ShopName != nil && *s.Profile.ShopName != "" {
		return *s.Profile.ShopName
	}
	return s.Name
}

type Registration struct {
	Name     string
	Email    string
	Password string
	Role     string
	Profile  *SellerProfile
}

type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Credential is the remote bearer token kept for a signed-in user.
type Credential struct {
	UserID   int64
	Token    string
	Role     string
	UserName string
}
