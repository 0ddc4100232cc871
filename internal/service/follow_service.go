package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"SafeCampus/internal/model"
	"SafeCampus/internal/pkg"
	"SafeCampus/internal/repository/mysql"
)

// SocialGraphRepo is the relation-table side of the social graph. Follow and
// Unfollow report changed=false when the edge was already in the requested
// state.
type SocialGraphRepo interface {
	Follow(ctx context.Context, followerID, followeeID uint64) (bool, error)
	Unfollow(ctx context.Context, followerID, followeeID uint64) (bool, error)
	IsFollowing(ctx context.Context, followerID, followeeID uint64) (bool, error)
	FollowingIDs(ctx context.Context, userID uint64) ([]uint64, error)
	FollowerIDs(ctx context.Context, userID uint64) ([]uint64, error)
}

// UserReader is the subset of the user store the graph services need.
type UserReader interface {
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	ListByIDs(ctx context.Context, ids []uint64) ([]model.User, error)
}

type FollowService struct {
	repo  SocialGraphRepo
	users UserReader
}

func NewFollowService() *FollowService {
	return &FollowService{
		repo:  &mysql.FollowRepository{DB: mysql.DB},
		users: &mysql.UserRepository{DB: mysql.DB},
	}
}

// Follow adds the edge viewer->target. Both derived sets (viewer.following,
// target.followers) come from the same relation row, so they update together
// or not at all.
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uint64) error {
	if followerID == 0 || followeeID == 0 {
		return pkg.Invalid("user id is required")
	}
	if followerID == followeeID {
		return pkg.Policy("you cannot follow yourself")
	}

	target, err := s.users.FindByID(ctx, followeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkg.NotFound("account to be followed does not exist")
		}
		return pkg.Internal(err)
	}
	if !target.CanBeFollowed {
		return pkg.Policy("this account cannot be followed")
	}

	changed, err := s.repo.Follow(ctx, followerID, followeeID)
	if err != nil {
		return pkg.Internal(err)
	}
	if !changed {
		return pkg.Policy("you are already following this account")
	}
	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uint64) error {
	if followerID == 0 || followeeID == 0 {
		return pkg.Invalid("user id is required")
	}
	if followerID == followeeID {
		return pkg.Policy("you cannot unfollow yourself")
	}

	changed, err := s.repo.Unfollow(ctx, followerID, followeeID)
	if err != nil {
		return pkg.Internal(err)
	}
	if !changed {
		return pkg.Policy("you are not following this account")
	}
	return nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	if followerID == 0 || followeeID == 0 {
		return false, pkg.Invalid("user id is required")
	}
	ok, err := s.repo.IsFollowing(ctx, followerID, followeeID)
	if err != nil {
		return false, pkg.Internal(err)
	}
	return ok, nil
}

func (s *FollowService) ListFollowers(ctx context.Context, userID uint64) ([]model.User, error) {
	ids, err := s.repo.FollowerIDs(ctx, userID)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	if len(ids) == 0 {
		return []model.User{}, nil
	}
	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	return users, nil
}

func (s *FollowService) ListFollowing(ctx context.Context, userID uint64) ([]model.User, error) {
	ids, err := s.repo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	if len(ids) == 0 {
		return []model.User{}, nil
	}
	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	return users, nil
}

// Sender delivers one outbox row downstream.
type Sender func(ctx context.Context, ob *model.SocialOutbox) error

// OutboxRelayer drains pending follow/unfollow events to kafka on a ticker.
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
	log       *logrus.Entry
}

func NewOutboxRelayer(sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: mysql.DB},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
		log:       logrus.WithField("component", "outbox-relayer"),
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		r.log.WithError(err).Warn("outbox query failed")
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			r.log.WithError(err).WithField("outbox_id", ob.ID).Warn("outbox send failed")
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// KafkaSender adapts the event producer to the relayer.
func KafkaSender(p *pkg.EventProducer) Sender {
	return func(ctx context.Context, ob *model.SocialOutbox) error {
		return p.Publish(ctx, ob.Follower, []byte(ob.Payload))
	}
}

// LogSender is the fallback sender used when no kafka brokers are configured.
func LogSender(ctx context.Context, ob *model.SocialOutbox) error {
	logrus.WithFields(logrus.Fields{
		"type":     ob.EventType,
		"follower": ob.Follower,
		"followee": ob.Followee,
	}).Info("outbox event")
	return nil
}

// FollowCountReconciler periodically re-derives the denormalized
// follower/following counters from the relation table.
type FollowCountReconciler struct {
	repo      *mysql.FollowCountReconcilerRepo
	batchSize int
	interval  time.Duration
	cursor    uint64
	log       *logrus.Entry
}

func NewFollowCountReconciler() *FollowCountReconciler {
	return &FollowCountReconciler{
		repo:      &mysql.FollowCountReconcilerRepo{DB: mysql.DB},
		batchSize: 500,
		interval:  5 * time.Minute,
		log:       logrus.WithField("component", "follow-reconciler"),
	}
}

func (r *FollowCountReconciler) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.reconcileOnce(ctx)
		}
	}
}

func (r *FollowCountReconciler) reconcileOnce(ctx context.Context) {
	users, next, err := r.repo.ReconcileList(ctx, r.batchSize, r.cursor)
	if err != nil {
		r.log.WithError(err).Warn("reconcile list failed")
		return
	}
	if len(users) == 0 {
		// wrap around and start from the beginning on the next tick
		r.cursor = 0
		return
	}
	r.cursor = next

	for _, u := range users {
		realFollowing, err := r.repo.RealFollowings(ctx, u.ID)
		if err != nil {
			continue
		}
		realFollowers, err := r.repo.RealFollowers(ctx, u.ID)
		if err != nil {
			continue
		}
		if realFollowing != u.FollowingCount {
			_ = r.repo.ReconcileFollowings(ctx, u.ID, realFollowing)
		}
		if realFollowers != u.FollowerCount {
			_ = r.repo.ReconcileFollowers(ctx, u.ID, realFollowers)
		}
	}
}
