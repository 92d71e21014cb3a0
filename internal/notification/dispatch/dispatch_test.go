package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
)

type fakeEmail struct {
	calls int
	err   error
}

func (f *fakeEmail) SendEmail(_ context.Context, _ int64, _ entity.Notification) error {
	f.calls++
	return f.err
}

type fakePush struct {
	calls              int
	requireInteraction bool
	err                error
}

func (f *fakePush) SendPush(_ context.Context, _ int64, _ entity.Notification, requireInteraction bool) error {
	f.calls++
	f.requireInteraction = requireInteraction
	return f.err
}

func sample(typ entity.Type, prio entity.Priority) entity.Notification {
	return entity.Notification{ID: 11, UserID: 7, Title: "t", Message: "m", Type: typ, Priority: prio}
}

func TestDispatch(t *testing.T) {

	t.Run("AllChannelsEnabled", func(t *testing.T) {

		// Arrange
		email, push := &fakeEmail{}, &fakePush{}
		d := NewDispatcher(email, push)

		// Act
		report := d.Dispatch(context.Background(), sample(entity.TypeGeneral, entity.PriorityLow), entity.DefaultSettings())

		// Assert
		for _, c := range []entity.Channel{entity.ChannelInApp, entity.ChannelEmail, entity.ChannelPush} {
			if report[c] != entity.DeliveryOutcomeSent {
				t.Fatalf("expected %v sent, got %v", c, report[c])
			}
		}
		if email.calls != 1 || push.calls != 1 {
			t.Fatalf("expected each sender invoked once, got email=%d push=%d", email.calls, push.calls)
		}
	})

	t.Run("DisabledChannelSkipsSender", func(t *testing.T) {

		// Arrange
		email, push := &fakeEmail{}, &fakePush{}
		d := NewDispatcher(email, push)
		s := entity.DefaultSettings()
		s.Email.Enabled = false

		// Act
		report := d.Dispatch(context.Background(), sample(entity.TypeGeneral, entity.PriorityLow), s)

		// Assert
		if report[entity.ChannelEmail] != entity.DeliveryOutcomeSkippedDisabled {
			t.Fatalf("expected email skipped, got %v", report[entity.ChannelEmail])
		}
		if email.calls != 0 {
			t.Fatalf("expected email sender never invoked, got %d calls", email.calls)
		}
		if report[entity.ChannelPush] != entity.DeliveryOutcomeSent {
			t.Fatalf("expected push unaffected, got %v", report[entity.ChannelPush])
		}
	})

	t.Run("CategoryFlagSkipsSender", func(t *testing.T) {

		// Arrange
		email, push := &fakeEmail{}, &fakePush{}
		d := NewDispatcher(email, push)
		s := entity.DefaultSettings()
		s.Push.DiscussionReplies = false

		// Act
		report := d.Dispatch(context.Background(), sample(entity.TypeDiscussionMention, entity.PriorityMedium), s)

		// Assert
		if report[entity.ChannelPush] != entity.DeliveryOutcomeSkippedDisabled {
			t.Fatalf("expected push skipped for mention, got %v", report[entity.ChannelPush])
		}
		if push.calls != 0 {
			t.Fatalf("expected push sender never invoked")
		}
	})

	t.Run("MasterSwitchDominatesCategoryFlag", func(t *testing.T) {

		// Arrange
		email, push := &fakeEmail{}, &fakePush{}
		d := NewDispatcher(email, push)
		s := entity.DefaultSettings()
		s.Email.Enabled = false
		s.Email.AssignmentDue = true

		// Act
		report := d.Dispatch(context.Background(), sample(entity.TypeAssignmentDue, entity.PriorityHigh), s)

		// Assert
		if report[entity.ChannelEmail] != entity.DeliveryOutcomeSkippedDisabled {
			t.Fatalf("expected disabled channel to skip, got %v", report[entity.ChannelEmail])
		}
	})

	t.Run("SenderErrorOnlyFailsItsChannel", func(t *testing.T) {

		// Arrange
		email := &fakeEmail{err: errors.New("smtp timeout")}
		push := &fakePush{}
		d := NewDispatcher(email, push)

		// Act
		report := d.Dispatch(context.Background(), sample(entity.TypeGeneral, entity.PriorityLow), entity.DefaultSettings())

		// Assert
		if report[entity.ChannelEmail] != entity.DeliveryOutcomeFailed {
			t.Fatalf("expected email failed, got %v", report[entity.ChannelEmail])
		}
		if report[entity.ChannelPush] != entity.DeliveryOutcomeSent {
			t.Fatalf("expected push sent, got %v", report[entity.ChannelPush])
		}
		if report[entity.ChannelInApp] != entity.DeliveryOutcomeSent {
			t.Fatalf("expected in-app sent, got %v", report[entity.ChannelInApp])
		}
	})

	t.Run("UrgentPrioritySetsRequireInteraction", func(t *testing.T) {

		// Arrange
		push := &fakePush{}
		d := NewDispatcher(&fakeEmail{}, push)

		// Act
		d.Dispatch(context.Background(), sample(entity.TypeSystemMaintenance, entity.PriorityUrgent), entity.DefaultSettings())

		// Assert
		if !push.requireInteraction {
			t.Fatalf("expected urgent push to require interaction")
		}
	})

	t.Run("NonUrgentPriorityDoesNot", func(t *testing.T) {

		// Arrange
		push := &fakePush{}
		d := NewDispatcher(&fakeEmail{}, push)

		// Act
		d.Dispatch(context.Background(), sample(entity.TypeGeneral, entity.PriorityHigh), entity.DefaultSettings())

		// Assert
		if push.requireInteraction {
			t.Fatalf("expected non-urgent push not to require interaction")
		}
	})
}
