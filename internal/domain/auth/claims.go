package auth

// Claims are the access token claims the attendance API relies on.
type Claims struct {
	EmployeeID string
	IsAdmin    bool
}

// TokenTypeAccess is the only token type accepted by the API.
const TokenTypeAccess = "access"
