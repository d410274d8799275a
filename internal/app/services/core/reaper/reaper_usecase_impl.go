package reaper

import (
	"context"
	"mentorin-service/internal/app/contracts"
	"mentorin-service/internal/pkg/constvars"
	"mentorin-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type expiryReaperUsecase struct {
	Log          *zap.Logger
	OverrideRepo contracts.DateOverrideSlotRepository
	Location     *time.Location
}

func NewExpiryReaperUsecase(
	logger *zap.Logger,
	overrideRepo contracts.DateOverrideSlotRepository,
	location *time.Location,
) contracts.ExpiryReaperUsecase {
	return &expiryReaperUsecase{
		Log:          logger,
		OverrideRepo: overrideRepo,
		Location:     location,
	}
}

// SweepExpired deletes every date override whose end instant is at or before
// now. The candidate set is bounded to dates up to today, so the scan never
// touches future overrides. Running twice at the same instant deletes nothing
// the second time.
func (uc *expiryReaperUsecase) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	localNow := now.In(uc.Location)
	cutoff := utils.NormalizeDate(localNow)

	candidates, err := uc.OverrideRepo.FindDatedOnOrBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, slot := range candidates {
		endInstant, err := utils.CombineDateAndClock(slot.Date, slot.EndTime, uc.Location)
		if err != nil {
			uc.Log.Warn("reaper: skipping override with unparseable end time",
				zap.String(constvars.LoggingSlotIDKey, slot.ID),
				zap.Error(err),
			)
			continue
		}
		if endInstant.After(localNow) {
			continue
		}
		if err := uc.OverrideRepo.Delete(ctx, slot.ID); err != nil {
			uc.Log.Warn("reaper: failed to delete expired override",
				zap.String(constvars.LoggingSlotIDKey, slot.ID),
				zap.Error(err),
			)
			continue
		}
		deleted++
	}

	if deleted > 0 {
		uc.Log.Info("reaper: expired date overrides removed",
			zap.Int(constvars.LoggingDeletedCountKey, deleted),
		)
	}
	return deleted, nil
}
