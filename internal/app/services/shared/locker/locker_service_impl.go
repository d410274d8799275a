package locker

import (
	"context"
	"fmt"
	"mentorin-service/internal/app/contracts"
	"mentorin-service/internal/pkg/constvars"
	"mentorin-service/internal/pkg/exceptions"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type lockService struct {
	redisRepo contracts.RedisRepository
	Log       *zap.Logger
}

func NewLockService(repo contracts.RedisRepository, logger *zap.Logger) contracts.LockerService {
	return &lockService{
		redisRepo: repo,
		Log:       logger,
	}
}

func (s *lockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	token := uuid.NewString()
	acquired, err := s.redisRepo.TrySetNX(ctx, key, token, expiration)
	if err != nil {
		s.Log.Error("lockService.TryLock error calling redisRepo.TrySetNX",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false, "", err
	}

	if !acquired {
		s.Log.Debug("lockService.TryLock not acquired",
			zap.String(constvars.LoggingRedisKey, key),
		)
		return false, "", nil
	}

	s.Log.Debug("lockService.TryLock acquired lock",
		zap.String(constvars.LoggingRedisKey, key),
		zap.String(constvars.LoggingLockValueKey, token),
		zap.Duration(constvars.LoggingLockExpirationTimeKey, expiration),
	)
	return true, token, nil
}

func (s *lockService) Unlock(ctx context.Context, key, token string) error {
	storedToken, err := s.redisRepo.Get(ctx, key)
	if err != nil {
		s.Log.Error("lockService.Unlock error retrieving lock from redis",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}

	if storedToken == "" {
		// Lock already expired, nothing to release.
		return nil
	}

	if storedToken != token {
		err := exceptions.ErrRedisUnlock(fmt.Errorf("lock not owned by this client"))
		s.Log.Error("lockService.Unlock lock ownership mismatch",
			zap.String(constvars.LoggingRedisKey, key),
			zap.String(constvars.LoggingLockValueKey, token),
			zap.Error(err),
		)
		return err
	}

	return s.redisRepo.Delete(ctx, key)
}

func (s *lockService) Refresh(ctx context.Context, key, token string, expiration time.Duration) error {
	storedToken, err := s.redisRepo.Get(ctx, key)
	if err != nil {
		return err
	}
	if storedToken != token {
		return exceptions.ErrRedisUnlock(fmt.Errorf("lock not owned by this client"))
	}
	return s.redisRepo.Expire(ctx, key, expiration)
}
