package usecase

import (
	"context"

	"github.com/wicaksonoadi/edubell/internal/pkg/goerror"
	"github.com/wicaksonoadi/edubell/internal/pkg/jwt"
)

func (s *Usecase) requireAuth(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

func (s *Usecase) requireAdmin(ctx context.Context) (*jwt.Claims, error) {
	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if !clm.IsAdmin() {
		return nil, goerror.NewBusiness("admin role required", goerror.CodeForbidden)
	}

	return clm, nil
}
