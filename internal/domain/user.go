package domain

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// User approval mirrors the seller application once an admin decides on it.
const UserApprovalNone = "none"

type User struct {
	ID             int64  `db:"id" json:"id"`
	FirebaseUID    string `db:"firebase_uid" json:"firebaseUid"`
	Email          string `db:"email" json:"email"`
	Name           string `db:"name" json:"name"`
	Role           string `db:"role" json:"role"`
	ApprovalStatus string `db:"approval_status" json:"approvalStatus"`
	CreatedAt      string `db:"created_at" json:"createdAt"`
	UpdatedAt      string `db:"updated_at" json:"updatedAt"`
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// Principal is the identity asserted by a verified token.
type Principal struct {
	UID   string
	Email string
	Name  string
}
