package usecase

import (
	"context"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
	"github.com/wicaksonoadi/edubell/internal/notification/store"
	"github.com/wicaksonoadi/edubell/internal/pkg/goerror"
)

type ListInboxInput struct {
	Search   string `validate:"omitempty,max=200"`
	Type     string `validate:"omitempty"`
	Priority string `validate:"omitempty,oneof=low medium high urgent"`
	Archived bool
}

type ListInboxOutput struct {
	Items       []entity.Notification
	UnreadCount int
}

func (s *Usecase) ListInbox(ctx context.Context, in ListInboxInput) (*ListInboxOutput, error) {
	ctx, span := s.startSpan(ctx, "ListInbox")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	// "all" is an explicit match-everything sentinel, same as leaving
	// the field out.
	if in.Type == "all" {
		in.Type = ""
	}
	if in.Priority == "all" {
		in.Priority = ""
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	typ := entity.TypeFromString(in.Type)
	if in.Type != "" && typ == entity.TypeUnknown {
		return nil, goerror.NewBusiness("notification type is not supported", goerror.CodeInvalidFormat)
	}

	st, err := s.userStore(ctx, clm.UserID)
	if err != nil {
		return nil, err
	}

	filter := entity.Filter{
		SearchText:      in.Search,
		Type:            typ,
		Priority:        entity.PriorityFromString(in.Priority),
		IncludeArchived: in.Archived,
	}

	return &ListInboxOutput{
		Items:       store.ApplyFilter(st.List(), filter),
		UnreadCount: st.UnreadCount(),
	}, nil
}

func (s *Usecase) UnreadCount(ctx context.Context) (int, error) {
	ctx, span := s.startSpan(ctx, "UnreadCount")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return 0, err
	}

	st, err := s.userStore(ctx, clm.UserID)
	if err != nil {
		return 0, err
	}

	return st.UnreadCount(), nil
}
