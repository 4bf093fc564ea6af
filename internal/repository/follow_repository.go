package repository

import (
	"context"
	"fmt"
	"studylog_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type FollowRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewFollowRepository(db *gorm.DB, rdb *redis.Client) *FollowRepository {
	return &FollowRepository{DB: db, Redis: rdb}
}

func followedKey(userID uint) string {
	return fmt.Sprintf("feed:follows:%d", userID)
}

func (r *FollowRepository) Create(ctx context.Context, follow *model.Follow) error {
	err := r.DB.Create(follow).Error
	if err == nil && r.Redis != nil {
		r.Redis.Del(ctx, followedKey(follow.FollowerID))
	}
	return err
}

func (r *FollowRepository) Delete(ctx context.Context, followerID, followingID uint) (int64, error) {
	result := r.DB.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follow{})
	if result.Error == nil && r.Redis != nil {
		r.Redis.Del(ctx, followedKey(followerID))
	}
	return result.RowsAffected, result.Error
}

func (r *FollowRepository) Exists(followerID, followingID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// FollowingIDs returns the viewer's followed set straight from the table.
func (r *FollowRepository) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).
		Table("follows").
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	return ids, err
}

// FollowingIDsCached reads the followed set from Redis, falling back to the
// database and repopulating the set on a miss. A sentinel zero member is
// stored for users who follow nobody so the empty result is cached too.
func (r *FollowRepository) FollowingIDsCached(ctx context.Context, userID uint) ([]uint, error) {
	if r.Redis == nil {
		return r.FollowingIDs(ctx, userID)
	}

	key := followedKey(userID)
	cached, err := r.Redis.SMembers(ctx, key).Result()
	if err == nil && len(cached) > 0 {
		ids := make([]uint, 0, len(cached))
		for _, s := range cached {
			var id uint
			fmt.Sscanf(s, "%d", &id)
			if id > 0 {
				ids = append(ids, id)
			}
		}
		return ids, nil
	}

	ids, err := r.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		pipe := r.Redis.Pipeline()
		for _, id := range ids {
			pipe.SAdd(ctx, key, id)
		}
		pipe.Expire(ctx, key, 24*time.Hour)
		pipe.Exec(ctx)
	} else {
		r.Redis.SAdd(ctx, key, 0)
		r.Redis.Expire(ctx, key, 5*time.Minute)
	}
	return ids, nil
}

func (r *FollowRepository) FollowerCount(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *FollowRepository) FollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
