package usecase

import (
	"context"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
)

func (s *Usecase) GetSettings(ctx context.Context) (*entity.Settings, error) {
	ctx, span := s.startSpan(ctx, "GetSettings")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.userStore(ctx, clm.UserID); err != nil {
		return nil, err
	}

	out := s.settings.Get(clm.UserID)

	return &out, nil
}

type UpdateSettingsInput struct {
	Patch entity.SettingsPatch
}

func (s *Usecase) UpdateSettings(ctx context.Context, in UpdateSettingsInput) (*entity.Settings, error) {
	ctx, span := s.startSpan(ctx, "UpdateSettings")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.userStore(ctx, clm.UserID); err != nil {
		return nil, err
	}

	merged, err := s.settings.Update(ctx, clm.UserID, in.Patch)
	if err != nil {
		return nil, err
	}

	return &merged, nil
}
