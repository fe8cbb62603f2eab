package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/emstack/ems-console/modules/profile/domain/aggregates/profile"
	"github.com/emstack/ems-console/pkg/querycache"
	"github.com/emstack/ems-console/pkg/session"
)

// ErrNoSession is returned when a profile read reaches the service without a
// signed-in user on the context.
var ErrNoSession = errors.New("no session in context")

// UpdateResult reports what a save did. Changed is false when the draft
// matched the current record and no request was made.
type UpdateResult struct {
	Profile profile.Profile
	Changed bool
}

// ProfileService caches each signed-in user's record under a key scoped by
// user id; the cache is process-wide while sessions are per-browser, so an
// unscoped key would serve one user's record to another. A successful save
// patches the cached record in place instead of refetching; the update
// response already carries the merged profile.
type ProfileService struct {
	repo  profile.Repository
	cache *querycache.Cache
	log   *logrus.Logger
}

func NewProfileService(repo profile.Repository, cache *querycache.Cache, log *logrus.Logger) *ProfileService {
	return &ProfileService{repo: repo, cache: cache, log: log}
}

// ProfileKey identifies one user's cached profile record.
func ProfileKey(userID string) querycache.Key {
	return querycache.Key{Resource: querycache.ResourceProfile, View: userID}
}

func (s *ProfileService) Get(ctx context.Context) (profile.Profile, error) {
	sess, ok := session.Use(ctx)
	if !ok {
		return profile.Profile{}, ErrNoSession
	}
	return querycache.FetchAs(ctx, s.cache, ProfileKey(sess.UserID), func(ctx context.Context) (profile.Profile, error) {
		return s.repo.Get(ctx)
	})
}

func (s *ProfileService) Update(ctx context.Context, dto *profile.UpdateDTO) (*UpdateResult, error) {
	sess, ok := session.Use(ctx)
	if !ok {
		return nil, ErrNoSession
	}
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if dto.IsNoOp(current) {
		return &UpdateResult{Profile: current, Changed: false}, nil
	}

	var updated profile.Profile
	key := ProfileKey(sess.UserID)
	err = s.cache.Mutate(ctx, "profile:update:"+sess.UserID, func(ctx context.Context) error {
		var err error
		updated, err = s.repo.Update(ctx, dto)
		return err
	}, querycache.MutationHooks{
		OnSuccess: func() {
			// Merge the editable fields into the cached record. Departments
			// and the rest of the read-only data stay as fetched.
			patched := s.cache.Patch(key, func(v any) any {
				cached, ok := v.(profile.Profile)
				if !ok {
					return v
				}
				return cached.WithEdits(updated.Name(), updated.ProfileImage())
			})
			if !patched {
				s.cache.Invalidate(key)
			}
		},
		OnError: func(err error) {
			s.log.WithError(err).Error("profile update failed")
		},
	})
	if err != nil {
		return nil, err
	}

	merged, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &UpdateResult{Profile: merged, Changed: true}, nil
}
