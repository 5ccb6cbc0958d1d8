package services

import (
	"context"
	"errors"
	"testing"

	"fitconnect/internal/adapters/persistence/models"
	"fitconnect/internal/core/domain"
)

func newSocialFixture(t *testing.T) (*SocialService, *fakeFriendRequestRepo) {
	t.Helper()
	ctx := context.Background()

	members := newFakeMemberRepo()
	requests := newFakeFriendRequestRepo(members)

	_ = members.Create(ctx, &models.Member{UserID: 20, FullName: "Somchai J.", Status: models.UserStatusActive})
	_ = members.Create(ctx, &models.Member{UserID: 21, FullName: "Nok P.", Status: models.UserStatusActive})
	_ = members.Create(ctx, &models.Member{UserID: 22, FullName: "Lek T.", Status: models.UserStatusActive})

	return NewSocialService(requests, members), requests
}

func TestSendRequest(t *testing.T) {
	service, _ := newSocialFixture(t)
	ctx := context.Background()

	request, err := service.SendRequest(ctx, 1, 2)
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if request.Status != models.FriendRequestPending {
		t.Errorf("expected PENDING, got %s", request.Status)
	}
	if request.FromMemberID != 1 || request.ToMemberID != 2 {
		t.Errorf("unexpected endpoints: %+v", request)
	}
}

func TestSendRequestToSelf(t *testing.T) {
	service, _ := newSocialFixture(t)

	if _, err := service.SendRequest(context.Background(), 1, 1); !errors.Is(err, domain.ErrSelfRequest) {
		t.Fatalf("expected ErrSelfRequest, got %v", err)
	}
}

func TestSendRequestUnknownMember(t *testing.T) {
	service, _ := newSocialFixture(t)
	ctx := context.Background()

	if _, err := service.SendRequest(ctx, 99, 1); !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
	if _, err := service.SendRequest(ctx, 1, 99); !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestPendingRequestBlocksBothDirections(t *testing.T) {
	service, _ := newSocialFixture(t)
	ctx := context.Background()

	if _, err := service.SendRequest(ctx, 1, 2); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if _, err := service.SendRequest(ctx, 1, 2); !errors.Is(err, domain.ErrRequestPending) {
		t.Fatalf("expected ErrRequestPending on resend, got %v", err)
	}
	// The reverse direction is the same pair
	if _, err := service.SendRequest(ctx, 2, 1); !errors.Is(err, domain.ErrRequestPending) {
		t.Fatalf("expected ErrRequestPending on reverse send, got %v", err)
	}
}

func TestAcceptedPairCannotReopen(t *testing.T) {
	service, _ := newSocialFixture(t)
	ctx := context.Background()

	request, err := service.SendRequest(ctx, 1, 2)
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if _, err := service.Respond(ctx, request.ID, 2, true); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if _, err := service.SendRequest(ctx, 1, 2); !errors.Is(err, domain.ErrAlreadyFriends) {
		t.Fatalf("expected ErrAlreadyFriends, got %v", err)
	}
	if _, err := service.SendRequest(ctx, 2, 1); !errors.Is(err, domain.ErrAlreadyFriends) {
		t.Fatalf("expected ErrAlreadyFriends on reverse, got %v", err)
	}
}

func TestDeclinedPairMaySendAgain(t *testing.T) {
	service, _ := newSocialFixture(t)
	ctx := context.Background()

	request, err := service.SendRequest(ctx, 1, 2)
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if _, err := service.Respond(ctx, request.ID, 2, false); err != nil {
		t.Fatalf("decline failed: %v", err)
	}

	// A declined pair is not blocked from trying again
	if _, err := service.SendRequest(ctx, 1, 2); err != nil {
		t.Fatalf("resend after decline failed: %v", err)
	}
}

func TestRespondOnlyRecipient(t *testing.T) {
	service, _ := newSocialFixture(t)
	ctx := context.Background()

	request, err := service.SendRequest(ctx, 1, 2)
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	// The sender cannot answer their own request
	if _, err := service.Respond(ctx, request.ID, 1, true); !errors.Is(err, domain.ErrNotRecipient) {
		t.Fatalf("expected ErrNotRecipient for sender, got %v", err)
	}
	// Neither can a third member
	if _, err := service.Respond(ctx, request.ID, 3, true); !errors.Is(err, domain.ErrNotRecipient) {
		t.Fatalf("expected ErrNotRecipient for bystander, got %v", err)
	}
}

func TestRespondIsTerminal(t *testing.T) {
	service, _ := newSocialFixture(t)
	ctx := context.Background()

	request, err := service.SendRequest(ctx, 1, 2)
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	accepted, err := service.Respond(ctx, request.ID, 2, true)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if accepted.Status != models.FriendRequestAccepted {
		t.Errorf("expected ACCEPTED, got %s", accepted.Status)
	}

	// Answering again, either way, is rejected
	if _, err := service.Respond(ctx, request.ID, 2, false); !errors.Is(err, domain.ErrRequestClosed) {
		t.Fatalf("expected ErrRequestClosed, got %v", err)
	}
	if _, err := service.Respond(ctx, request.ID, 2, true); !errors.Is(err, domain.ErrRequestClosed) {
		t.Fatalf("expected ErrRequestClosed, got %v", err)
	}
}

func TestRespondUnknownRequest(t *testing.T) {
	service, _ := newSocialFixture(t)

	if _, err := service.Respond(context.Background(), 999, 2, true); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPendingRequestsSentAndReceived(t *testing.T) {
	service, _ := newSocialFixture(t)
	ctx := context.Background()

	if _, err := service.SendRequest(ctx, 1, 2); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if _, err := service.SendRequest(ctx, 3, 1); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	sent, err := service.PendingRequests(ctx, 1, true)
	if err != nil {
		t.Fatalf("sent listing failed: %v", err)
	}
	if len(sent) != 1 || sent[0].ToMemberID != 2 {
		t.Errorf("unexpected sent list: %+v", sent)
	}

	received, err := service.PendingRequests(ctx, 1, false)
	if err != nil {
		t.Fatalf("received listing failed: %v", err)
	}
	if len(received) != 1 || received[0].FromMemberID != 3 {
		t.Errorf("unexpected received list: %+v", received)
	}
}

func TestFriendsListsBothDirections(t *testing.T) {
	service, _ := newSocialFixture(t)
	ctx := context.Background()

	// 1 -> 2 accepted, 3 -> 1 accepted
	r1, _ := service.SendRequest(ctx, 1, 2)
	if _, err := service.Respond(ctx, r1.ID, 2, true); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	r2, _ := service.SendRequest(ctx, 3, 1)
	if _, err := service.Respond(ctx, r2.ID, 1, true); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	// 2 -> 3 declined, must not show up
	r3, _ := service.SendRequest(ctx, 2, 3)
	if _, err := service.Respond(ctx, r3.ID, 3, false); err != nil {
		t.Fatalf("decline failed: %v", err)
	}

	friends, err := service.Friends(ctx, 1)
	if err != nil {
		t.Fatalf("friends listing failed: %v", err)
	}
	if len(friends) != 2 {
		t.Fatalf("expected 2 friends, got %d", len(friends))
	}
	ids := map[uint]bool{}
	for _, f := range friends {
		ids[f.ID] = true
	}
	if !ids[2] || !ids[3] {
		t.Errorf("expected friends {2,3}, got %v", ids)
	}

	friends2, err := service.Friends(ctx, 2)
	if err != nil {
		t.Fatalf("friends listing failed: %v", err)
	}
	if len(friends2) != 1 || friends2[0].ID != 1 {
		t.Errorf("expected member 2 to have friend {1}, got %+v", friends2)
	}
}
