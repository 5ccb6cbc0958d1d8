package domain

// Identity is the authenticated account snapshot that a session carries.
// ProfileID is the trainer or member profile row id for those roles and
// zero for admins.
type Identity struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FullName  string `json:"full_name"`
	ProfileID uint   `json:"profile_id,omitempty"`
}
