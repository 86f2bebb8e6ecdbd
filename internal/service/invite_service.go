package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookclub/internal/models"
	"bookclub/internal/observability"
	"bookclub/internal/repository"

	"gorm.io/gorm"
)

// Invite outcome statuses reported per recipient.
const (
	InviteOutcomeInvited = "invited"
	InviteOutcomeSkipped = "skipped"
	InviteOutcomeError   = "error"
)

// Skip reasons for recipients that were not invited.
const (
	InviteReasonNotFriend      = "not a friend"
	InviteReasonAlreadyMember  = "already a member"
	InviteReasonAlreadyInvited = "already invited"
	InviteReasonUnknownUser    = "user not found"
)

// InviteOutcome reports what happened for one recipient of a batch invite.
type InviteOutcome struct {
	RecipientID uint   `json:"recipient_id"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
}

// FriendChecker is the friend-graph boundary the invitation workflow
// consumes. Only confirmed friends of the inviter may be invited.
type FriendChecker interface {
	AreFriends(ctx context.Context, userA, userB uint) (bool, error)
}

// InviteService runs the friend-gated invitation workflow. Invitations are
// workflow records resolving exactly once; the recipient's feed entry is a
// separate notification.
type InviteService struct {
	inviteRepo repository.InvitationRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	friends    FriendChecker
	groups     *GroupService
	notifier   *NotificationService
}

func NewInviteService(
	inviteRepo repository.InvitationRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	friends FriendChecker,
	groups *GroupService,
	notifier *NotificationService,
) *InviteService {
	return &InviteService{
		inviteRepo: inviteRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		friends:    friends,
		groups:     groups,
		notifier:   notifier,
	}
}

// Invite creates pending invitations for each eligible recipient and
// reports a per-recipient outcome list. Partial success is the normal
// case: ineligible recipients are skipped with a reason, and one
// recipient's failure never aborts the rest of the batch.
func (s *InviteService) Invite(ctx context.Context, groupID, inviterID uint, recipientIDs []uint) ([]InviteOutcome, error) {
	if len(recipientIDs) == 0 {
		return nil, models.NewValidationError("At least one recipient is required")
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Group", groupID)
	}
	if err != nil {
		return nil, err
	}
	if !ResolveRole(group, inviterID).IsMember {
		return nil, models.NewForbiddenError("Only group members can send invitations")
	}

	inviterName := s.displayName(ctx, inviterID)
	outcomes := make([]InviteOutcome, 0, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		outcome := s.inviteOne(ctx, group, inviterID, inviterName, recipientID)
		observability.InviteOutcomes.WithLabelValues(outcome.Status, outcome.Reason).Inc()
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (s *InviteService) inviteOne(ctx context.Context, group *models.Group, inviterID uint, inviterName string, recipientID uint) InviteOutcome {
	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InviteOutcome{RecipientID: recipientID, Status: InviteOutcomeSkipped, Reason: InviteReasonUnknownUser}
		}
		return InviteOutcome{RecipientID: recipientID, Status: InviteOutcomeError, Reason: err.Error()}
	}

	friends, err := s.friends.AreFriends(ctx, inviterID, recipientID)
	if err != nil {
		return InviteOutcome{RecipientID: recipientID, Status: InviteOutcomeError, Reason: err.Error()}
	}
	if !friends {
		return InviteOutcome{RecipientID: recipientID, Status: InviteOutcomeSkipped, Reason: InviteReasonNotFriend}
	}

	if ResolveRole(group, recipientID).IsMember {
		return InviteOutcome{RecipientID: recipientID, Status: InviteOutcomeSkipped, Reason: InviteReasonAlreadyMember}
	}

	if _, err := s.inviteRepo.GetPending(ctx, group.ID, inviterID, recipientID); err == nil {
		return InviteOutcome{RecipientID: recipientID, Status: InviteOutcomeSkipped, Reason: InviteReasonAlreadyInvited}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return InviteOutcome{RecipientID: recipientID, Status: InviteOutcomeError, Reason: err.Error()}
	}

	inv := &models.Invitation{
		GroupID:     group.ID,
		InviterID:   inviterID,
		RecipientID: recipientID,
	}
	if err := s.inviteRepo.Create(ctx, inv); err != nil {
		return InviteOutcome{RecipientID: recipientID, Status: InviteOutcomeError, Reason: err.Error()}
	}

	s.notifier.Notify(ctx, recipientID, inviterID, models.NotificationGroupInvite,
		fmt.Sprintf("%s invited you to join the group %q", inviterName, group.Name),
		&inv.ID)

	return InviteOutcome{RecipientID: recipientID, Status: InviteOutcomeInvited}
}

// Accept resolves a pending invitation and joins the recipient to the
// group. The membership write bypasses the normal join preconditions: if
// the recipient independently joined already, membership is untouched but
// the invitation still transitions to accepted.
func (s *InviteService) Accept(ctx context.Context, groupID, recipientID, invitationID uint) error {
	inv, err := s.ownedInvitation(ctx, groupID, recipientID, invitationID)
	if err != nil {
		return err
	}
	if inv.Resolved() {
		// Duplicate resolution attempts are tolerated.
		return nil
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Group", groupID)
	}
	if err != nil {
		return err
	}

	if !ResolveRole(group, recipientID).IsMember {
		member := &models.GroupMember{
			GroupID:  groupID,
			UserID:   recipientID,
			Role:     models.GroupRoleMember,
			JoinedAt: time.Now(),
		}
		if err := s.groupRepo.AddMember(ctx, member); err != nil {
			return err
		}
		observability.MembershipMutations.WithLabelValues("invite_accept").Inc()
		if err := s.groups.TouchActivity(ctx, groupID); err != nil {
			return err
		}
	}

	if err := s.inviteRepo.Resolve(ctx, invitationID, models.InvitationStatusAccepted, time.Now()); err != nil &&
		!errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	s.notifier.Notify(ctx, inv.InviterID, recipientID, models.NotificationGroupInviteAccepted,
		fmt.Sprintf("%s accepted your invitation to %q", s.displayName(ctx, recipientID), group.Name),
		&groupID)
	return nil
}

// Decline resolves a pending invitation without touching membership.
func (s *InviteService) Decline(ctx context.Context, groupID, recipientID, invitationID uint) error {
	inv, err := s.ownedInvitation(ctx, groupID, recipientID, invitationID)
	if err != nil {
		return err
	}
	if inv.Resolved() {
		return nil
	}

	if err := s.inviteRepo.Resolve(ctx, invitationID, models.InvitationStatusDeclined, time.Now()); err != nil &&
		!errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	s.notifier.Notify(ctx, inv.InviterID, recipientID, models.NotificationGroupInviteDeclined,
		fmt.Sprintf("%s declined your group invitation", s.displayName(ctx, recipientID)),
		&groupID)
	return nil
}

// ownedInvitation loads an invitation and checks it belongs to the
// recipient and targets the group. Mismatches read as not-found rather
// than leaking another user's invitation state.
func (s *InviteService) ownedInvitation(ctx context.Context, groupID, recipientID, invitationID uint) (*models.Invitation, error) {
	inv, err := s.inviteRepo.GetByID(ctx, invitationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Invitation", invitationID)
	}
	if err != nil {
		return nil, err
	}
	if inv.RecipientID != recipientID || inv.GroupID != groupID {
		return nil, models.NewNotFoundError("Invitation", invitationID)
	}
	return inv, nil
}

func (s *InviteService) displayName(ctx context.Context, userID uint) string {
	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		return user.Username
	}
	return "Someone"
}
