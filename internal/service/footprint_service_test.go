package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Footprint-meow/Footprint-BackEnd/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() (*FootprintService, *MockFootprintRepository, *MockGuestbookRepository) {
	guestbookRepo := NewMockGuestbookRepository()
	footprintRepo := NewMockFootprintRepository(guestbookRepo)
	hasher := &BcryptHasher{cost: bcrypt.MinCost}
	return NewFootprintService(footprintRepo, guestbookRepo, hasher), footprintRepo, guestbookRepo
}

func seedGuestbook(repo *MockGuestbookRepository, id, hostID string, lat, lon float64) *models.Guestbook {
	guestbook := &models.Guestbook{
		ID:        id,
		Name:      "test guestbook",
		HostID:    hostID,
		Latitude:  lat,
		Longitude: lon,
	}
	repo.Create(guestbook)
	return guestbook
}

func TestCreateFootprint(t *testing.T) {
	svc, footprintRepo, guestbookRepo := newTestService()
	seedGuestbook(guestbookRepo, "gb-1", "host1", 37.0, 127.0)

	footprint, err := svc.CreateFootprint(CreateFootprintInput{
		GuestbookID: "gb-1",
		Writer:      "visitor",
		Content:     "hello",
		Latitude:    37.0,
		Longitude:   127.0,
		Password:    "1234",
		IsSecret:    true,
	})
	if err != nil {
		t.Fatalf("CreateFootprint error = %v", err)
	}

	stored, err := footprintRepo.FindByID(footprint.ID)
	if err != nil {
		t.Fatalf("footprint was not persisted: %v", err)
	}
	if stored.Password == "" || stored.Password == "1234" {
		t.Errorf("password was not hashed, got %q", stored.Password)
	}
	if !svc.hasher.Matches("1234", stored.Password) {
		t.Error("stored digest does not match the original password")
	}
	if stored.GuestbookID != "gb-1" {
		t.Errorf("GuestbookID = %q, want %q", stored.GuestbookID, "gb-1")
	}
	if stored.IsChecked {
		t.Error("new footprint should start unchecked")
	}

	guestbook, _ := guestbookRepo.FindByID("gb-1")
	if !guestbook.HasUnreadUpdate {
		t.Error("guestbook unread flag was not set")
	}
}

func TestCreateFootprintOutOfArea(t *testing.T) {
	svc, footprintRepo, guestbookRepo := newTestService()
	seedGuestbook(guestbookRepo, "gb-1", "host1", 37.0, 127.0)

	// ~167 km from the guestbook anchor.
	_, err := svc.CreateFootprint(CreateFootprintInput{
		GuestbookID: "gb-1",
		Writer:      "visitor",
		Content:     "too far",
		Latitude:    38.5,
		Longitude:   127.0,
	})
	if !errors.Is(err, ErrOutOfArea) {
		t.Fatalf("CreateFootprint error = %v, want ErrOutOfArea", err)
	}
	if len(footprintRepo.footprints) != 0 {
		t.Error("rejected footprint must not be persisted")
	}

	guestbook, _ := guestbookRepo.FindByID("gb-1")
	if guestbook.HasUnreadUpdate {
		t.Error("guestbook unread flag must not be set on rejection")
	}
}

func TestCreateFootprintGuestbookNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateFootprint(CreateFootprintInput{GuestbookID: "missing"})
	if !errors.Is(err, ErrGuestbookNotFound) {
		t.Errorf("CreateFootprint error = %v, want ErrGuestbookNotFound", err)
	}
}

func TestCreateFootprintNonSecretCarriesNoDigest(t *testing.T) {
	svc, footprintRepo, guestbookRepo := newTestService()
	seedGuestbook(guestbookRepo, "gb-1", "host1", 37.0, 127.0)

	footprint, err := svc.CreateFootprint(CreateFootprintInput{
		GuestbookID: "gb-1",
		Writer:      "visitor",
		Content:     "public note",
		Latitude:    37.0,
		Longitude:   127.0,
		Password:    "ignored",
		IsSecret:    false,
	})
	if err != nil {
		t.Fatalf("CreateFootprint error = %v", err)
	}

	stored, _ := footprintRepo.FindByID(footprint.ID)
	if stored.Password != "" {
		t.Errorf("non-secret footprint stored digest %q, want empty", stored.Password)
	}
}

func TestGetSecretFootprint(t *testing.T) {
	svc, footprintRepo, guestbookRepo := newTestService()
	seedGuestbook(guestbookRepo, "gb-1", "host1", 37.0, 127.0)
	created, err := svc.CreateFootprint(CreateFootprintInput{
		GuestbookID: "gb-1",
		Writer:      "visitor",
		Content:     "secret note",
		Latitude:    37.0,
		Longitude:   127.0,
		Password:    "1234",
		IsSecret:    true,
	})
	if err != nil {
		t.Fatalf("CreateFootprint error = %v", err)
	}

	tests := []struct {
		name      string
		password  string
		callerID  string
		wantErr   error
		wantFound bool
	}{
		{"Correct password, no caller", "1234", "", nil, true},
		{"Wrong password, host caller", "wrong", "host1", nil, true},
		{"Correct password and host caller", "1234", "host1", nil, true},
		{"Wrong password, foreign caller", "wrong", "someone_else", ErrForbidden, false},
		{"Wrong password, no caller", "wrong", "", ErrForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, err := svc.GetSecretFootprint(created.ID, tt.password, tt.callerID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("GetSecretFootprint error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantFound {
				if response.ID != created.ID {
					t.Errorf("response ID = %d, want %d", response.ID, created.ID)
				}
				if response.Content != "secret note" {
					t.Errorf("response Content = %q, want %q", response.Content, "secret note")
				}
				if !response.IsChecked {
					t.Error("successful read must report is_checked=true")
				}
			}
		})
	}

	stored, _ := footprintRepo.FindByID(created.ID)
	if !stored.IsChecked {
		t.Error("successful reads must persist the checked flag")
	}

	if _, err := svc.GetSecretFootprint(9999, "1234", ""); !errors.Is(err, ErrFootprintNotFound) {
		t.Errorf("GetSecretFootprint(missing) error = %v, want ErrFootprintNotFound", err)
	}
}

// Changing only the caller identity from absent to the host must flip a
// password-mismatch failure into success.
func TestAuthorityCallerIdentityFlipsOutcome(t *testing.T) {
	svc, _, guestbookRepo := newTestService()
	seedGuestbook(guestbookRepo, "gb-1", "host1", 37.0, 127.0)
	created, _ := svc.CreateFootprint(CreateFootprintInput{
		GuestbookID: "gb-1", Writer: "v", Content: "c",
		Latitude: 37.0, Longitude: 127.0,
		Password: "1234", IsSecret: true,
	})

	if _, err := svc.GetSecretFootprint(created.ID, "wrong", ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden with absent caller, got %v", err)
	}
	if _, err := svc.GetSecretFootprint(created.ID, "wrong", "host1"); err != nil {
		t.Fatalf("expected success with host caller, got %v", err)
	}
}

func TestNonSecretFootprintOnlyHostPathApplies(t *testing.T) {
	svc, _, guestbookRepo := newTestService()
	seedGuestbook(guestbookRepo, "gb-1", "host1", 37.0, 127.0)
	created, _ := svc.CreateFootprint(CreateFootprintInput{
		GuestbookID: "gb-1", Writer: "v", Content: "public",
		Latitude: 37.0, Longitude: 127.0,
	})

	// Empty digest must never pass the password check, whatever is supplied.
	if _, err := svc.GetSecretFootprint(created.ID, "", ""); !errors.Is(err, ErrForbidden) {
		t.Errorf("empty password on non-secret footprint: error = %v, want ErrForbidden", err)
	}
	if _, err := svc.GetSecretFootprint(created.ID, "anything", ""); !errors.Is(err, ErrForbidden) {
		t.Errorf("password on non-secret footprint: error = %v, want ErrForbidden", err)
	}
	if _, err := svc.GetSecretFootprint(created.ID, "", "host1"); err != nil {
		t.Errorf("host on non-secret footprint: error = %v, want success", err)
	}
}

func TestDeleteFootprint(t *testing.T) {
	svc, footprintRepo, guestbookRepo := newTestService()
	seedGuestbook(guestbookRepo, "gb-1", "host1", 37.0, 127.0)
	created, _ := svc.CreateFootprint(CreateFootprintInput{
		GuestbookID: "gb-1", Writer: "v", Content: "c",
		Latitude: 37.0, Longitude: 127.0,
		Password: "1234", IsSecret: true,
	})

	if _, err := svc.DeleteFootprint(created.ID, "wrong", ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("DeleteFootprint with wrong password: error = %v, want ErrForbidden", err)
	}
	if _, err := footprintRepo.FindByID(created.ID); err != nil {
		t.Fatal("forbidden delete must not remove the footprint")
	}

	guestbookID, err := svc.DeleteFootprint(created.ID, "1234", "")
	if err != nil {
		t.Fatalf("DeleteFootprint error = %v", err)
	}
	if guestbookID != "gb-1" {
		t.Errorf("DeleteFootprint guestbook id = %q, want %q", guestbookID, "gb-1")
	}
	if _, err := footprintRepo.FindByID(created.ID); err == nil {
		t.Error("footprint still present after delete")
	}

	if _, err := svc.DeleteFootprint(created.ID, "1234", ""); !errors.Is(err, ErrFootprintNotFound) {
		t.Errorf("DeleteFootprint(deleted) error = %v, want ErrFootprintNotFound", err)
	}
}

func TestReadCheckFootprint(t *testing.T) {
	svc, footprintRepo, guestbookRepo := newTestService()
	seedGuestbook(guestbookRepo, "gb-1", "host1", 37.0, 127.0)
	created, _ := svc.CreateFootprint(CreateFootprintInput{
		GuestbookID: "gb-1", Writer: "v", Content: "c",
		Latitude: 37.0, Longitude: 127.0,
	})

	// Absent and foreign callers are silent no-ops, never errors.
	if err := svc.ReadCheckFootprint(created.ID, ""); err != nil {
		t.Fatalf("ReadCheckFootprint with absent caller: error = %v", err)
	}
	if err := svc.ReadCheckFootprint(created.ID, "stranger"); err != nil {
		t.Fatalf("ReadCheckFootprint with foreign caller: error = %v", err)
	}
	stored, _ := footprintRepo.FindByID(created.ID)
	if stored.IsChecked {
		t.Fatal("non-host acknowledgment must not mark the footprint checked")
	}

	if err := svc.ReadCheckFootprint(created.ID, "host1"); err != nil {
		t.Fatalf("ReadCheckFootprint by host: error = %v", err)
	}
	stored, _ = footprintRepo.FindByID(created.ID)
	if !stored.IsChecked {
		t.Fatal("host acknowledgment must mark the footprint checked")
	}

	// Idempotent on repeat.
	if err := svc.ReadCheckFootprint(created.ID, "host1"); err != nil {
		t.Fatalf("repeated ReadCheckFootprint: error = %v", err)
	}
	stored, _ = footprintRepo.FindByID(created.ID)
	if !stored.IsChecked {
		t.Error("checked flag must stay true")
	}

	if err := svc.ReadCheckFootprint(9999, "host1"); !errors.Is(err, ErrFootprintNotFound) {
		t.Errorf("ReadCheckFootprint(missing) error = %v, want ErrFootprintNotFound", err)
	}
}

func TestGetFootprintListByDate(t *testing.T) {
	svc, footprintRepo, guestbookRepo := newTestService()
	guestbook := seedGuestbook(guestbookRepo, "gb-1", "host1", 37.0, 127.0)

	// 25 footprints across 5 days, 5 per day, oldest first.
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		footprint := &models.Footprint{
			Writer:      fmt.Sprintf("writer%d", i),
			Content:     fmt.Sprintf("content %d", i),
			GuestbookID: "gb-1",
			CreatedAt:   base.AddDate(0, 0, i/5).Add(time.Duration(i%5) * time.Minute),
		}
		if err := footprintRepo.CreateWithGuestbook(footprint, guestbook); err != nil {
			t.Fatalf("seed footprint %d: %v", i, err)
		}
	}

	slice, err := svc.GetFootprintListByDate("gb-1", 0, 10)
	if err != nil {
		t.Fatalf("GetFootprintListByDate error = %v", err)
	}
	if !slice.IsFirst {
		t.Error("page 0 must report is_first=true")
	}
	if slice.IsLast {
		t.Error("page 0 of 25 items with size 10 must report is_last=false")
	}
	if slice.Page != 0 || slice.Size != 10 {
		t.Errorf("page metadata = (%d,%d), want (0,10)", slice.Page, slice.Size)
	}

	total := 0
	for _, group := range slice.Groups {
		total += len(group.Footprints)
		for _, fp := range group.Footprints {
			if fp.CreateDate() != group.Date {
				t.Errorf("footprint %d dated %s landed in bucket %s", fp.ID, fp.CreateDate(), group.Date)
			}
		}
	}
	if total != 10 {
		t.Errorf("bucket sizes sum to %d, want 10", total)
	}

	// Newest-first page: buckets are May 5 then May 4.
	if len(slice.Groups) != 2 {
		t.Fatalf("got %d buckets, want 2", len(slice.Groups))
	}
	if slice.Groups[0].Date != "2024-05-05" || slice.Groups[1].Date != "2024-05-04" {
		t.Errorf("bucket order = [%s %s], want [2024-05-05 2024-05-04]",
			slice.Groups[0].Date, slice.Groups[1].Date)
	}

	// Within a bucket the fetch order (newest first) is preserved.
	first := slice.Groups[0].Footprints
	for i := 1; i < len(first); i++ {
		if first[i].CreatedAt.After(first[i-1].CreatedAt) {
			t.Error("bucket reordered footprints relative to fetch order")
			break
		}
	}

	last, err := svc.GetFootprintListByDate("gb-1", 2, 10)
	if err != nil {
		t.Fatalf("GetFootprintListByDate page 2 error = %v", err)
	}
	if last.IsFirst {
		t.Error("page 2 must report is_first=false")
	}
	if !last.IsLast {
		t.Error("page 2 of 25 items with size 10 must report is_last=true")
	}
}

func TestGetFootprintListByDateEmptyGuestbook(t *testing.T) {
	svc, _, guestbookRepo := newTestService()
	seedGuestbook(guestbookRepo, "gb-1", "host1", 37.0, 127.0)

	slice, err := svc.GetFootprintListByDate("gb-1", 0, 10)
	if err != nil {
		t.Fatalf("GetFootprintListByDate error = %v", err)
	}
	if len(slice.Groups) != 0 {
		t.Errorf("empty guestbook produced %d buckets", len(slice.Groups))
	}
	if !slice.IsFirst || !slice.IsLast {
		t.Error("empty result must be both first and last")
	}
}

func TestAttachAndGetPhoto(t *testing.T) {
	svc, _, guestbookRepo := newTestService()
	seedGuestbook(guestbookRepo, "gb-1", "host1", 37.0, 127.0)
	secret, _ := svc.CreateFootprint(CreateFootprintInput{
		GuestbookID: "gb-1", Writer: "v", Content: "c",
		Latitude: 37.0, Longitude: 127.0,
		Password: "1234", IsSecret: true,
	})
	public, _ := svc.CreateFootprint(CreateFootprintInput{
		GuestbookID: "gb-1", Writer: "v", Content: "c",
		Latitude: 37.0, Longitude: 127.0,
	})

	if err := svc.AttachPhoto(9999, "footprints/x.jpg"); !errors.Is(err, ErrFootprintNotFound) {
		t.Errorf("AttachPhoto(missing) error = %v, want ErrFootprintNotFound", err)
	}
	if err := svc.AttachPhoto(secret.ID, "footprints/secret.jpg"); err != nil {
		t.Fatalf("AttachPhoto error = %v", err)
	}
	if err := svc.AttachPhoto(public.ID, "footprints/public.jpg"); err != nil {
		t.Fatalf("AttachPhoto error = %v", err)
	}

	// Secret footprint photos require the same dual authorization.
	if _, err := svc.GetPhotoKey(secret.ID, "wrong", ""); !errors.Is(err, ErrForbidden) {
		t.Errorf("GetPhotoKey with wrong password: error = %v, want ErrForbidden", err)
	}
	key, err := svc.GetPhotoKey(secret.ID, "1234", "")
	if err != nil || key != "footprints/secret.jpg" {
		t.Errorf("GetPhotoKey = (%q, %v), want footprints/secret.jpg", key, err)
	}
	if key, err := svc.GetPhotoKey(secret.ID, "", "host1"); err != nil || key != "footprints/secret.jpg" {
		t.Errorf("GetPhotoKey as host = (%q, %v), want footprints/secret.jpg", key, err)
	}

	// Public footprint photos are open.
	if key, err := svc.GetPhotoKey(public.ID, "", ""); err != nil || key != "footprints/public.jpg" {
		t.Errorf("GetPhotoKey on public footprint = (%q, %v)", key, err)
	}

	// No photo attached.
	bare, _ := svc.CreateFootprint(CreateFootprintInput{
		GuestbookID: "gb-1", Writer: "v", Content: "c",
		Latitude: 37.0, Longitude: 127.0,
	})
	if _, err := svc.GetPhotoKey(bare.ID, "", ""); !errors.Is(err, ErrPhotoNotFound) {
		t.Errorf("GetPhotoKey without photo: error = %v, want ErrPhotoNotFound", err)
	}
}
