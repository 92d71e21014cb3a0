package usecase

import (
	"context"
	"log/slog"

	"github.com/wicaksonoadi/edubell/internal/pkg/goerror"
)

type MarkInboxReadInput struct {
	ID int64 `validate:"required,gt=0"`
}

func (s *Usecase) MarkInboxRead(ctx context.Context, in MarkInboxReadInput) error {
	ctx, span := s.startSpan(ctx, "MarkInboxRead")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	st, err := s.userStore(ctx, clm.UserID)
	if err != nil {
		return err
	}

	if !st.MarkRead(in.ID) {
		return goerror.NewBusiness("inbox notification not found", goerror.CodeNotFound)
	}

	if err := s.repoDB.SetNotificationRead(ctx, clm.UserID, in.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo mark inbox read", "user_id", clm.UserID, "notification_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func (s *Usecase) MarkAllInboxRead(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "MarkAllInboxRead")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return err
	}

	st, err := s.userStore(ctx, clm.UserID)
	if err != nil {
		return err
	}

	if changed := st.MarkAllRead(); len(changed) == 0 {
		return nil
	}

	if err := s.repoDB.SetAllNotificationsRead(ctx, clm.UserID); err != nil {
		slog.ErrorContext(ctx, "failed to repo mark all inbox read", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

type ArchiveInboxInput struct {
	ID int64 `validate:"required,gt=0"`
}

func (s *Usecase) ArchiveInbox(ctx context.Context, in ArchiveInboxInput) error {
	ctx, span := s.startSpan(ctx, "ArchiveInbox")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	st, err := s.userStore(ctx, clm.UserID)
	if err != nil {
		return err
	}

	if !st.Archive(in.ID) {
		return goerror.NewBusiness("inbox notification not found", goerror.CodeNotFound)
	}

	if err := s.repoDB.SetNotificationArchived(ctx, clm.UserID, in.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo archive inbox notification", "user_id", clm.UserID, "notification_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

type DeleteInboxInput struct {
	ID int64 `validate:"required,gt=0"`
}

func (s *Usecase) DeleteInbox(ctx context.Context, in DeleteInboxInput) error {
	ctx, span := s.startSpan(ctx, "DeleteInbox")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	st, err := s.userStore(ctx, clm.UserID)
	if err != nil {
		return err
	}

	if !st.Delete(in.ID) {
		return goerror.NewBusiness("inbox notification not found", goerror.CodeNotFound)
	}

	if err := s.repoDB.DeleteNotification(ctx, clm.UserID, in.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete inbox notification", "user_id", clm.UserID, "notification_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
