package session

import "context"

// Keys persisted by the durable session mirror. One row per key.
const (
	KeyUserID     = "user_id"
	KeyUsername   = "username"
	KeyUserType   = "user_type"
	KeyEmail      = "email"
	KeyPhone      = "phone"
	KeyFullName   = "full_name"
	KeyProfileID  = "profile_id"
	KeyIsLoggedIn = "is_logged_in"
)

// Store persists the session snapshot so a restarted process can pick the
// session back up. Save replaces the whole snapshot, Load returns it (an
// empty map when nothing is stored) and Wipe clears every key.
type Store interface {
	Save(ctx context.Context, state map[string]string) error
	Load(ctx context.Context) (map[string]string, error)
	Wipe(ctx context.Context) error
}
