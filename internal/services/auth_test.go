package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jobbook/jobbook-backend/internal/types"
)

func TestRegisterCreatesInactiveUserAndEnqueues(t *testing.T) {
	env := newTestEnv(t, mustDate(t, "2024-11-05"))
	admin := env.createAdmin(t)

	user, err := env.auth.Register(context.Background(), RegisterInput{
		Email:     "New.Surveyor@Example.COM",
		Password:  "correct horse",
		FirstName: "Sam",
		LastName:  "Nowak",
		Role:      types.RoleSurveyor,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.IsActive {
		t.Fatal("a fresh registration must be inactive")
	}
	if user.Email != "new.surveyor@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Password == "correct horse" {
		t.Fatal("password stored in plain text")
	}

	// One notice to the applicant, one to each administrator.
	got := env.notificationsByEvent(t, types.EventRegistrationSubmitted)
	if len(got) != 2 {
		t.Fatalf("registration_submitted notifications: want=2 got=%d", len(got))
	}
	recipients := map[uuid.UUID]string{}
	for _, n := range got {
		recipients[n.RecipientID] = n.Content
	}
	if _, ok := recipients[user.ID]; !ok {
		t.Fatalf("applicant %s not notified, recipients=%v", user.ID, recipients)
	}
	adminContent, ok := recipients[admin.ID]
	if !ok {
		t.Fatalf("admin %s not notified, recipients=%v", admin.ID, recipients)
	}
	if !strings.Contains(adminContent, user.Email) {
		t.Fatalf("admin notice should name the applicant, got=%q", adminContent)
	}
}

func TestRegisterRejectsWeakPasswords(t *testing.T) {
	env := newTestEnv(t, mustDate(t, "2024-11-05"))

	base := RegisterInput{
		Email:     "a@b.test",
		FirstName: "A",
		LastName:  "B",
		Role:      types.RoleSurveyor,
	}

	short := base
	short.Password = "abc"
	if _, err := env.auth.Register(context.Background(), short); err == nil {
		t.Fatal("short password accepted")
	}

	numeric := base
	numeric.Password = "1234567890"
	_, err := env.auth.Register(context.Background(), numeric)
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "password" {
		t.Fatalf("numeric password: want password ValidationError, got=%v", err)
	}
}

func TestRegisterRejectsUnderageBirthDate(t *testing.T) {
	env := newTestEnv(t, mustDate(t, "2024-11-05"))

	birthDate := mustDate(t, "2010-01-01")
	_, err := env.auth.Register(context.Background(), RegisterInput{
		Email:     "kid@b.test",
		Password:  "correct horse",
		FirstName: "A",
		LastName:  "B",
		Role:      types.RoleSurveyor,
		BirthDate: &birthDate,
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "birth_date" {
		t.Fatalf("want birth_date ValidationError, got=%v", err)
	}
}

func TestLoginRequiresApproval(t *testing.T) {
	env := newTestEnv(t, mustDate(t, "2024-11-05"))

	user, err := env.auth.Register(context.Background(), RegisterInput{
		Email:     "pending@b.test",
		Password:  "correct horse",
		FirstName: "A",
		LastName:  "B",
		Role:      types.RoleSurveyor,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := env.auth.Login(context.Background(), user.Email, "correct horse"); !errors.Is(err, ErrAccountNotActive) {
		t.Fatalf("login before approval: want ErrAccountNotActive got=%v", err)
	}

	if _, err := env.userSvc.Approve(context.Background(), user.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	token, loggedIn, err := env.auth.Login(context.Background(), user.Email, "correct horse")
	if err != nil {
		t.Fatalf("login after approval: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("login user: want=%s got=%s", user.ID, loggedIn.ID)
	}

	parsedID, err := env.auth.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if parsedID != user.ID {
		t.Fatalf("token subject: want=%s got=%s", user.ID, parsedID)
	}

	accepted := env.notificationsByEvent(t, types.EventRegistrationAccepted)
	if len(accepted) != 1 || accepted[0].RecipientID != user.ID {
		t.Fatalf("registration_accepted: want one for %s, got=%d", user.ID, len(accepted))
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	env := newTestEnv(t, mustDate(t, "2024-11-05"))

	user, err := env.auth.Register(context.Background(), RegisterInput{
		Email:     "x@b.test",
		Password:  "correct horse",
		FirstName: "A",
		LastName:  "B",
		Role:      types.RoleSurveyor,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := env.userSvc.Approve(context.Background(), user.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	if _, _, err := env.auth.Login(context.Background(), user.Email, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials got=%v", err)
	}
	if _, _, err := env.auth.Login(context.Background(), "nobody@b.test", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: want ErrInvalidCredentials got=%v", err)
	}
}

func TestApproveTwiceSendsOneNotification(t *testing.T) {
	env := newTestEnv(t, mustDate(t, "2024-11-05"))
	user := env.createUser(t, types.RoleSurveyor, false)

	for i := 0; i < 2; i++ {
		if _, err := env.userSvc.Approve(context.Background(), user.ID); err != nil {
			t.Fatalf("Approve #%d: %v", i+1, err)
		}
	}
	got := env.notificationsByEvent(t, types.EventRegistrationAccepted)
	if len(got) != 1 {
		t.Fatalf("registration_accepted notifications: want=1 got=%d", len(got))
	}
}
