package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"devclub.community/models"
	"devclub.community/repositories"
)

func countRSVPs(t *testing.T, svc *RSVPService, eventID uint) int64 {
	t.Helper()
	var count int64
	if err := svc.db.Model(&models.RSVP{}).Where("event_id = ?", eventID).Count(&count).Error; err != nil {
		t.Fatalf("count rsvps: %v", err)
	}
	return count
}

func TestAdmitBasic(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	event := createTestEvent(t, db, user.ID, 1)
	svc := NewRSVPServiceDB(db)
	ctx := context.Background()

	rsvp, err := svc.Admit(ctx, AdmitInput{EventID: event.ID, UserEmail: "a@x.com", UserName: "A"})
	if err != nil {
		t.Fatalf("first admit failed: %v", err)
	}
	if rsvp.Status != models.RSVPStatusPending {
		t.Errorf("new rsvp status = %q, want pending", rsvp.Status)
	}
	if rsvp.UserEmail != "a@x.com" {
		t.Errorf("email = %q, want normalized a@x.com", rsvp.UserEmail)
	}
	if rsvp.ConfirmationCode == "" {
		t.Error("confirmation code not assigned")
	}
	if rsvp.SubmittedAt.IsZero() {
		t.Error("submittedAt not stamped")
	}

	// Capacity 1 is now taken.
	_, err = svc.Admit(ctx, AdmitInput{EventID: event.ID, UserEmail: "b@x.com", UserName: "B"})
	if !errors.Is(err, ErrRSVPEventFull) {
		t.Fatalf("second admit err = %v, want ErrRSVPEventFull", err)
	}
	if got := countRSVPs(t, svc, event.ID); got != 1 {
		t.Errorf("rsvp count = %d, want 1 (failed admit must not write)", got)
	}
}

func TestAdmitDuplicateEmailCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	event := createTestEvent(t, db, user.ID, 10)
	svc := NewRSVPServiceDB(db)
	ctx := context.Background()

	if _, err := svc.Admit(ctx, AdmitInput{EventID: event.ID, UserEmail: "a@x.com", UserName: "A"}); err != nil {
		t.Fatalf("admit failed: %v", err)
	}
	_, err := svc.Admit(ctx, AdmitInput{EventID: event.ID, UserEmail: "A@X.com", UserName: "A2"})
	if !errors.Is(err, ErrRSVPDuplicate) {
		t.Fatalf("duplicate admit err = %v, want ErrRSVPDuplicate", err)
	}
	if got := countRSVPs(t, svc, event.ID); got != 1 {
		t.Errorf("rsvp count = %d, want 1", got)
	}
}

func TestAdmitDuplicateRegardlessOfStatus(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	event := createTestEvent(t, db, user.ID, 10)
	svc := NewRSVPServiceDB(db)
	ctx := context.Background()

	rsvp, err := svc.Admit(ctx, AdmitInput{EventID: event.ID, UserEmail: "a@x.com", UserName: "A"})
	if err != nil {
		t.Fatalf("admit failed: %v", err)
	}
	if _, err := svc.SetStatus(ctx, rsvp.ID, "cancelled"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	// A cancelled reservation still blocks re-admission of the same email.
	_, err = svc.Admit(ctx, AdmitInput{EventID: event.ID, UserEmail: "a@x.com", UserName: "A"})
	if !errors.Is(err, ErrRSVPDuplicate) {
		t.Fatalf("re-admit err = %v, want ErrRSVPDuplicate", err)
	}
}

func TestAdmitPastEvent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	event := createTestEvent(t, db, user.ID, 0)
	if err := db.Model(event).Update("date", time.Now().UTC().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("backdate event: %v", err)
	}
	svc := NewRSVPServiceDB(db)

	_, err := svc.Admit(context.Background(), AdmitInput{EventID: event.ID, UserEmail: "a@x.com", UserName: "A"})
	if !errors.Is(err, ErrRSVPEventInPast) {
		t.Fatalf("admit err = %v, want ErrRSVPEventInPast", err)
	}
	if got := countRSVPs(t, svc, event.ID); got != 0 {
		t.Errorf("rsvp count = %d, want 0", got)
	}
}

func TestAdmitInactiveOrMissingEvent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	event := createTestEvent(t, db, user.ID, 0)
	if err := db.Model(event).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate event: %v", err)
	}
	svc := NewRSVPServiceDB(db)
	ctx := context.Background()

	_, err := svc.Admit(ctx, AdmitInput{EventID: event.ID, UserEmail: "a@x.com", UserName: "A"})
	if !errors.Is(err, ErrRSVPEventNotFound) {
		t.Fatalf("inactive event err = %v, want ErrRSVPEventNotFound", err)
	}
	_, err = svc.Admit(ctx, AdmitInput{EventID: 9999, UserEmail: "a@x.com", UserName: "A"})
	if !errors.Is(err, ErrRSVPEventNotFound) {
		t.Fatalf("missing event err = %v, want ErrRSVPEventNotFound", err)
	}
}

func TestCancellationFreesCapacity(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	event := createTestEvent(t, db, user.ID, 1)
	svc := NewRSVPServiceDB(db)
	ctx := context.Background()

	first, err := svc.Admit(ctx, AdmitInput{EventID: event.ID, UserEmail: "a@x.com", UserName: "A"})
	if err != nil {
		t.Fatalf("admit failed: %v", err)
	}
	if _, err := svc.SetStatus(ctx, first.ID, "confirmed"); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := svc.Admit(ctx, AdmitInput{EventID: event.ID, UserEmail: "b@x.com", UserName: "B"}); !errors.Is(err, ErrRSVPEventFull) {
		t.Fatalf("full event err = %v, want ErrRSVPEventFull", err)
	}

	if _, err := svc.SetStatus(ctx, first.ID, "cancelled"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, err := svc.Admit(ctx, AdmitInput{EventID: event.ID, UserEmail: "b@x.com", UserName: "B"}); err != nil {
		t.Fatalf("admit after cancellation failed: %v", err)
	}
}

func TestAdmitConcurrentCapacityNotOversold(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	const capacity = 3
	event := createTestEvent(t, db, user.ID, capacity)
	svc := NewRSVPServiceDB(db)
	ctx := context.Background()

	const attempts = 12
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Admit(ctx, AdmitInput{
				EventID:   event.ID,
				UserEmail: fmt.Sprintf("user%d@x.com", i),
				UserName:  fmt.Sprintf("User %d", i),
			})
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, err := range errs {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, ErrRSVPEventFull):
		default:
			t.Fatalf("unexpected admit error: %v", err)
		}
	}
	if admitted != capacity {
		t.Errorf("admitted = %d, want %d", admitted, capacity)
	}
	if got := countRSVPs(t, svc, event.ID); got != capacity {
		t.Errorf("stored rsvps = %d, want %d", got, capacity)
	}
}

func TestAdmitConcurrentSameEmailSingleRecord(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	event := createTestEvent(t, db, user.ID, 0)
	svc := NewRSVPServiceDB(db)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Admit(ctx, AdmitInput{EventID: event.ID, UserEmail: "same@x.com", UserName: "Same"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrRSVPDuplicate):
		default:
			t.Fatalf("unexpected admit error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("successful admissions = %d, want exactly 1", succeeded)
	}
	if got := countRSVPs(t, svc, event.ID); got != 1 {
		t.Errorf("stored rsvps = %d, want 1", got)
	}
}

func TestSetStatusPermissiveTransitions(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	event := createTestEvent(t, db, user.ID, 0)
	svc := NewRSVPServiceDB(db)
	ctx := context.Background()

	rsvp, err := svc.Admit(ctx, AdmitInput{EventID: event.ID, UserEmail: "a@x.com", UserName: "A"})
	if err != nil {
		t.Fatalf("admit failed: %v", err)
	}

	// Every transition between the three states is allowed, no-ops and
	// resurrection from cancelled included. Deliberately permissive.
	sequence := []string{"confirmed", "confirmed", "cancelled", "confirmed", "pending"}
	for _, status := range sequence {
		updated, err := svc.SetStatus(ctx, rsvp.ID, status)
		if err != nil {
			t.Fatalf("SetStatus(%q) failed: %v", status, err)
		}
		if string(updated.Status) != status {
			t.Errorf("status = %q, want %q", updated.Status, status)
		}
	}
}

func TestSetStatusInvalid(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	event := createTestEvent(t, db, user.ID, 0)
	svc := NewRSVPServiceDB(db)
	ctx := context.Background()

	rsvp, err := svc.Admit(ctx, AdmitInput{EventID: event.ID, UserEmail: "a@x.com", UserName: "A"})
	if err != nil {
		t.Fatalf("admit failed: %v", err)
	}

	if _, err := svc.SetStatus(ctx, rsvp.ID, "bogus"); !errors.Is(err, ErrRSVPInvalidStatus) {
		t.Fatalf("SetStatus(bogus) err = %v, want ErrRSVPInvalidStatus", err)
	}
	var reloaded models.RSVP
	if err := db.First(&reloaded, rsvp.ID).Error; err != nil {
		t.Fatalf("reload rsvp: %v", err)
	}
	if reloaded.Status != models.RSVPStatusPending {
		t.Errorf("status after invalid update = %q, want pending (unchanged)", reloaded.Status)
	}

	if _, err := svc.SetStatus(ctx, 9999, "confirmed"); !errors.Is(err, ErrRSVPNotFound) {
		t.Fatalf("SetStatus on missing id err = %v, want ErrRSVPNotFound", err)
	}
}

func TestListForUserExcludesDeletedEvents(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	kept := createTestEvent(t, db, user.ID, 0)
	doomed := createTestEvent(t, db, user.ID, 0)
	svc := NewRSVPServiceDB(db)
	ctx := context.Background()

	for _, ev := range []*models.Event{kept, doomed} {
		if _, err := svc.Admit(ctx, AdmitInput{EventID: ev.ID, UserEmail: "member@x.com", UserName: "M"}); err != nil {
			t.Fatalf("admit failed: %v", err)
		}
	}
	if err := db.Model(doomed).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate event: %v", err)
	}

	rsvps, err := svc.ListForUser(ctx, "Member@X.com", repositories.RSVPListOptions{})
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(rsvps) != 1 {
		t.Fatalf("len = %d, want 1 (soft-deleted event's rsvp hidden)", len(rsvps))
	}
	if rsvps[0].EventID != kept.ID {
		t.Errorf("remaining rsvp event = %d, want %d", rsvps[0].EventID, kept.ID)
	}
}

func TestListForEventStats(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	event := createTestEvent(t, db, user.ID, 0)
	svc := NewRSVPServiceDB(db)
	ctx := context.Background()

	emails := []string{"a@x.com", "b@x.com", "c@x.com"}
	var ids []uint
	for _, email := range emails {
		rsvp, err := svc.Admit(ctx, AdmitInput{EventID: event.ID, UserEmail: email, UserName: "N"})
		if err != nil {
			t.Fatalf("admit failed: %v", err)
		}
		ids = append(ids, rsvp.ID)
	}
	if _, err := svc.SetStatus(ctx, ids[0], "confirmed"); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := svc.SetStatus(ctx, ids[1], "cancelled"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	report, err := svc.ListForEvent(ctx, event.ID, "")
	if err != nil {
		t.Fatalf("ListForEvent failed: %v", err)
	}
	if len(report.RSVPs) != 3 {
		t.Errorf("rsvps = %d, want 3", len(report.RSVPs))
	}
	want := map[models.RSVPStatus]int64{
		models.RSVPStatusPending:   1,
		models.RSVPStatusConfirmed: 1,
		models.RSVPStatusCancelled: 1,
	}
	for status, count := range want {
		if report.Stats[status] != count {
			t.Errorf("stats[%s] = %d, want %d", status, report.Stats[status], count)
		}
	}

	filtered, err := svc.ListForEvent(ctx, event.ID, "cancelled")
	if err != nil {
		t.Fatalf("filtered ListForEvent failed: %v", err)
	}
	if len(filtered.RSVPs) != 1 {
		t.Errorf("filtered rsvps = %d, want 1", len(filtered.RSVPs))
	}
}
