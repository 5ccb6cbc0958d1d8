package session

import (
	"context"
	"log"
	"strconv"
	"sync"

	"fitconnect/internal/core/domain"
)

// Authority is the single process-wide session holder. All reads and writes
// go through one mutex, and every mutation is mirrored to the durable Store
// before the in-memory state changes. Construct it explicitly with New and
// share the one instance; there is no package-level singleton.
type Authority struct {
	mu       sync.Mutex
	store    Store
	identity *domain.Identity
	loaded   bool
}

// New creates a session authority backed by the given store
func New(store Store) *Authority {
	return &Authority{store: store}
}

// Establish records the authenticated identity as the current session.
// It overwrites any previous session whole; no field survives from the
// prior occupant.
func (a *Authority) Establish(ctx context.Context, identity domain.Identity) error {
	if identity.UserID == 0 || identity.Username == "" || !identity.Role.Valid() {
		return domain.ErrInvalidInput
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.store.Save(ctx, snapshot(identity)); err != nil {
		return err
	}
	id := identity
	a.identity = &id
	a.loaded = true
	return nil
}

// Current returns the identity of the live session, or ErrUnauthorized when
// no session is established. The first call after process start reads the
// durable mirror so a restart does not log the occupant out.
func (a *Authority) Current(ctx context.Context) (*domain.Identity, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.restoreLocked(ctx); err != nil {
		return nil, err
	}
	if a.identity == nil {
		return nil, domain.ErrUnauthorized
	}
	id := *a.identity
	return &id, nil
}

// IsLoggedIn reports whether a session is currently established
func (a *Authority) IsLoggedIn(ctx context.Context) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.restoreLocked(ctx); err != nil {
		return false
	}
	return a.identity != nil
}

// Logout tears the session down. Wiping an already-empty session is a no-op,
// not an error.
func (a *Authority) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.store.Wipe(ctx); err != nil {
		return err
	}
	a.identity = nil
	a.loaded = true
	return nil
}

// restoreLocked lazily reads the durable mirror once per process. Caller
// must hold a.mu.
func (a *Authority) restoreLocked(ctx context.Context) error {
	if a.loaded {
		return nil
	}
	state, err := a.store.Load(ctx)
	if err != nil {
		return err
	}
	a.loaded = true
	if state[KeyIsLoggedIn] != "true" {
		return nil
	}
	identity, err := fromSnapshot(state)
	if err != nil {
		log.Printf("⚠️ Discarding corrupt session state: %v", err)
		return nil
	}
	a.identity = identity
	return nil
}

func snapshot(identity domain.Identity) map[string]string {
	return map[string]string{
		KeyUserID:     strconv.FormatUint(uint64(identity.UserID), 10),
		KeyUsername:   identity.Username,
		KeyUserType:   identity.Role.String(),
		KeyEmail:      identity.Email,
		KeyPhone:      identity.Phone,
		KeyFullName:   identity.FullName,
		KeyProfileID:  strconv.FormatUint(uint64(identity.ProfileID), 10),
		KeyIsLoggedIn: "true",
	}
}

func fromSnapshot(state map[string]string) (*domain.Identity, error) {
	userID, err := strconv.ParseUint(state[KeyUserID], 10, 32)
	if err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(state[KeyUserType])
	if err != nil {
		return nil, err
	}
	profileID, _ := strconv.ParseUint(state[KeyProfileID], 10, 32)
	return &domain.Identity{
		UserID:    uint(userID),
		Username:  state[KeyUsername],
		Role:      role,
		Email:     state[KeyEmail],
		Phone:     state[KeyPhone],
		FullName:  state[KeyFullName],
		ProfileID: uint(profileID),
	}, nil
}
