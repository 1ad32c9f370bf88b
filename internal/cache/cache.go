// Package cache holds the in-process item and claim lists between requests.
// Reads are served from the cached lists; mutations call the backend first
// and patch the lists only on success, so a failed call never changes what
// pages render. Refreshes are explicit: page handlers decide when to go back
// to the backend.
package cache

import (
	"context"
	"sync"

	"github.com/mitwpu/finditnow/internal/backend"
	"github.com/mitwpu/finditnow/internal/model"
)

// Store caches the global item list and per-user claim lists.
type Store struct {
	backend *backend.Client

	mu         sync.RWMutex
	items      []model.Item
	userClaims map[string][]model.Claim
}

// NewStore creates an empty cache in front of client.
func NewStore(client *backend.Client) *Store {
	return &Store{
		backend:    client,
		userClaims: make(map[string][]model.Claim),
	}
}

// RefreshItems replaces the cached item list from the backend.
func (s *Store) RefreshItems(ctx context.Context, token string) error {
	items, err := s.backend.ListItems(ctx, token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Items returns a copy of the cached item list.
func (s *Store) Items() []model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Item returns the cached item with the given id, or false.
func (s *Store) Item(id string) (model.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return model.Item{}, false
}

// CreateItem reports a new item and appends it to the cached list.
func (s *Store) CreateItem(ctx context.Context, token string, draft model.ItemDraft) (model.Item, error) {
	item, err := s.backend.CreateItem(ctx, token, draft)
	if err != nil {
		return model.Item{}, err
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
	return item, nil
}

// UpdateItem updates an item and patches it in the cached list.
func (s *Store) UpdateItem(ctx context.Context, token, id string, draft model.ItemDraft) (model.Item, error) {
	item, err := s.backend.UpdateItem(ctx, token, id, draft)
	if err != nil {
		return model.Item{}, err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = item
			break
		}
	}
	s.mu.Unlock()
	return item, nil
}

// DeleteItem deletes an item and splices it out of the cached list.
func (s *Store) DeleteItem(ctx context.Context, token, id string) error {
	if err := s.backend.DeleteItem(ctx, token, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.mu.Unlock()
	return nil
}

// RefreshUserClaims replaces the cached claim list for one user.
func (s *Store) RefreshUserClaims(ctx context.Context, token, userID string) error {
	claims, err := s.backend.UserClaims(ctx, token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.userClaims[userID] = claims
	s.mu.Unlock()
	return nil
}

// UserClaims returns a copy of the cached claims filed by one user.
func (s *Store) UserClaims(userID string) []model.Claim {
	s.mu.RLock()
	defer s.mu.RUnlock()
	claims := s.userClaims[userID]
	out := make([]model.Claim, len(claims))
	copy(out, claims)
	return out
}

// CreateClaim files a claim and appends it to the claimant's cached list.
func (s *Store) CreateClaim(ctx context.Context, token, userID string, draft model.ClaimDraft) (model.Claim, error) {
	claim, err := s.backend.CreateClaim(ctx, token, draft)
	if err != nil {
		return model.Claim{}, err
	}

	s.mu.Lock()
	s.userClaims[userID] = append(s.userClaims[userID], claim)
	s.mu.Unlock()
	return claim, nil
}

// UpdateClaimStatus transitions a claim and patches every cached copy of it.
// Approval changes which items are still claimable, so the item list is
// re-fetched as well; a failed re-fetch keeps the previous list.
func (s *Store) UpdateClaimStatus(ctx context.Context, token, id, status string) (model.Claim, error) {
	claim, err := s.backend.UpdateClaimStatus(ctx, token, id, status)
	if err != nil {
		return model.Claim{}, err
	}

	s.mu.Lock()
	for userID, claims := range s.userClaims {
		for i := range claims {
			if claims[i].ID == id {
				claims[i] = claim
				s.userClaims[userID] = claims
			}
		}
	}
	s.mu.Unlock()

	_ = s.RefreshItems(ctx, token)
	return claim, nil
}

// DeleteClaim withdraws a claim and splices it out of the claimant's cached
// list.
func (s *Store) DeleteClaim(ctx context.Context, token, userID, id string) error {
	if err := s.backend.DeleteClaim(ctx, token, id); err != nil {
		return err
	}

	s.mu.Lock()
	claims := s.userClaims[userID]
	kept := claims[:0]
	for _, claim := range claims {
		if claim.ID != id {
			kept = append(kept, claim)
		}
	}
	s.userClaims[userID] = kept
	s.mu.Unlock()
	return nil
}

// Invalidate drops all cached state (used when a session ends or the
// backend rejects the token).
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.items = nil
	s.userClaims = make(map[string][]model.Claim)
	s.mu.Unlock()
}
