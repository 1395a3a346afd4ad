package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const maxSlugAttempts = 100

// slugify lowercases s and collapses every run of non-alphanumerics into a dash
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > 200 {
		slug = strings.Trim(slug[:200], "-")
	}
	if slug == "" {
		return "listing"
	}
	return slug
}

// uniqueSlug derives a slug from title that exists() reports as free
func uniqueSlug(ctx context.Context, title string, exists func(ctx context.Context, slug string) (bool, error)) (string, error) {
	base := slugify(title)
	candidate := base
	for i := 1; i <= maxSlugAttempts; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, uuid.New().String()[:8]), nil
}

// publicFilter scopes a list query. Callers asking for their own listings see
// every status; everyone else sees only publicStatus.
func publicFilter(filter domain.ListingFilter, actor *domain.Actor, mine bool, publicStatus string) domain.ListingFilter {
	if mine && actor != nil {
		owner := actor.UserID
		filter.OwnerID = &owner
		return filter
	}
	filter.OwnerID = nil
	filter.Status = publicStatus
	return filter
}

// canView reports whether actor may read a listing that is not public
func canView(actor *domain.Actor, ownerID uuid.UUID, status, publicStatus string) bool {
	if status == publicStatus {
		return true
	}
	return actor != nil && actor.CanModify(ownerID)
}

func requireOwner(actor domain.Actor, ownerID uuid.UUID) error {
	if !actor.CanModify(ownerID) {
		return fmt.Errorf("%w: only the owner or an admin can modify this listing", domain.ErrForbidden)
	}
	return nil
}

func requireAdmin(actor domain.Actor) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: admin role required", domain.ErrForbidden)
	}
	return nil
}

// listingCache wraps an optional domain.ListingCache. Cache failures are
// logged and never fail the request.
type listingCache struct {
	cache domain.ListingCache
}

func (c listingCache) get(ctx context.Context, kind domain.ListingKind, id uuid.UUID, dest any) bool {
	if c.cache == nil {
		return false
	}
	ok, err := c.cache.Get(ctx, kind, id, dest)
	if err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Str("id", id.String()).Msg("listing cache read failed")
		return false
	}
	return ok
}

func (c listingCache) set(ctx context.Context, kind domain.ListingKind, id uuid.UUID, value any) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, kind, id, value); err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Str("id", id.String()).Msg("listing cache write failed")
	}
}

func (c listingCache) invalidate(ctx context.Context, kind domain.ListingKind, id uuid.UUID) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Invalidate(ctx, kind, id); err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Str("id", id.String()).Msg("listing cache invalidation failed")
	}
}

// nonBlankContent trims free text and rejects it when nothing is left
func nonBlankContent(s string) (string, error) {
	content := strings.TrimSpace(s)
	if content == "" {
		return "", fmt.Errorf("%w: content must not be blank", domain.ErrInvalidInput)
	}
	return content, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
