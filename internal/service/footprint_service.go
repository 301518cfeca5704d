package service

import (
	"errors"

	"github.com/Footprint-meow/Footprint-BackEnd/internal/models"
	"github.com/Footprint-meow/Footprint-BackEnd/internal/repository"
	"gorm.io/gorm"
)

type FootprintService struct {
	footprintRepo repository.FootprintRepositoryInterface
	guestbookRepo repository.GuestbookRepositoryInterface
	hasher        PasswordHasher
}

func NewFootprintService(footprintRepo repository.FootprintRepositoryInterface, guestbookRepo repository.GuestbookRepositoryInterface, hasher PasswordHasher) *FootprintService {
	return &FootprintService{
		footprintRepo: footprintRepo,
		guestbookRepo: guestbookRepo,
		hasher:        hasher,
	}
}

type CreateFootprintInput struct {
	GuestbookID string  `json:"guestbook_id"`
	Writer      string  `json:"writer"`
	Content     string  `json:"content"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Password    string  `json:"password"`
	IsSecret    bool    `json:"is_secret"`
}

// CreateFootprint validates the submission coordinate against the target
// guestbook, hashes the password for secret footprints, and persists the
// footprint together with the guestbook's unread flag in one transaction.
// The returned footprint carries the guestbook preloaded.
func (s *FootprintService) CreateFootprint(input CreateFootprintInput) (*models.Footprint, error) {
	guestbook, err := s.guestbookRepo.FindByID(input.GuestbookID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGuestbookNotFound
	}
	if err != nil {
		return nil, err
	}

	if !withinRange(guestbook.Latitude, guestbook.Longitude, input.Latitude, input.Longitude) {
		return nil, ErrOutOfArea
	}

	footprint := &models.Footprint{
		Writer:      input.Writer,
		Content:     input.Content,
		IsSecret:    input.IsSecret,
		GuestbookID: guestbook.ID,
	}
	// The digest is set here and only here; it is never mapped in from the
	// request.
	if input.IsSecret {
		digest, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		footprint.Password = digest
	}

	guestbook.HasUnreadUpdate = true
	if err := s.footprintRepo.CreateWithGuestbook(footprint, guestbook); err != nil {
		return nil, err
	}
	footprint.Guestbook = *guestbook
	return footprint, nil
}

// GetSecretFootprint returns the footprint after the dual authorization
// check and marks it as checked by the host.
func (s *FootprintService) GetSecretFootprint(footprintID uint, password, callerID string) (models.FootprintResponse, error) {
	footprint, err := s.checkFootprintAuthority(footprintID, password, callerID)
	if err != nil {
		return models.FootprintResponse{}, err
	}
	if err := s.footprintRepo.MarkChecked(footprint.ID); err != nil {
		return models.FootprintResponse{}, err
	}
	footprint.IsChecked = true
	return footprint.ToResponse(), nil
}

// DeleteFootprint removes the footprint permanently after the dual
// authorization check. It returns the owning guestbook's id so callers can
// invalidate derived state such as cached listing pages.
func (s *FootprintService) DeleteFootprint(footprintID uint, password, callerID string) (string, error) {
	footprint, err := s.checkFootprintAuthority(footprintID, password, callerID)
	if err != nil {
		return "", err
	}
	if err := s.footprintRepo.Delete(footprint); err != nil {
		return "", err
	}
	return footprint.GuestbookID, nil
}

// ReadCheckFootprint marks the footprint as checked when the caller is the
// guestbook's host. Anyone else, including unauthenticated viewers, gets a
// silent no-op; the endpoint is hit opportunistically on page view.
func (s *FootprintService) ReadCheckFootprint(footprintID uint, callerID string) error {
	footprint, err := s.footprintRepo.FindByID(footprintID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrFootprintNotFound
	}
	if err != nil {
		return err
	}

	if callerID == "" || footprint.Guestbook.HostID != callerID {
		return nil
	}
	return s.footprintRepo.MarkChecked(footprintID)
}

// GetFootprintListByDate fetches one page of the guestbook's footprints and
// regroups it into calendar-date buckets. Buckets keep first-seen order,
// which for the newest-first page ordering means newest date first.
func (s *FootprintService) GetFootprintListByDate(guestbookID string, page, size int) (*models.FootprintByDateSlice, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 10
	}

	footprints, isFirst, isLast, err := s.footprintRepo.PageByGuestbook(guestbookID, page, size)
	if err != nil {
		return nil, err
	}

	responses := make([]models.FootprintResponse, len(footprints))
	for i, fp := range footprints {
		responses[i] = fp.ToResponse()
	}

	return &models.FootprintByDateSlice{
		Groups:  groupByDate(responses),
		Page:    page,
		Size:    size,
		IsFirst: isFirst,
		IsLast:  isLast,
	}, nil
}

// AttachPhoto records the stored object key on the footprint.
func (s *FootprintService) AttachPhoto(footprintID uint, key string) error {
	if _, err := s.footprintRepo.FindByID(footprintID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFootprintNotFound
		}
		return err
	}
	return s.footprintRepo.SetPhotoKey(footprintID, key)
}

// GetPhotoKey resolves the object key of a footprint's photo. Photos of
// secret footprints are gated by the same dual authorization as the
// footprint body.
func (s *FootprintService) GetPhotoKey(footprintID uint, password, callerID string) (string, error) {
	footprint, err := s.footprintRepo.FindByID(footprintID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrFootprintNotFound
	}
	if err != nil {
		return "", err
	}
	if footprint.IsSecret {
		if err := s.authorize(footprint, password, callerID); err != nil {
			return "", err
		}
	}
	if footprint.PhotoKey == "" {
		return "", ErrPhotoNotFound
	}
	return footprint.PhotoKey, nil
}

// checkFootprintAuthority loads the footprint and runs the dual
// authorization check on it.
func (s *FootprintService) checkFootprintAuthority(footprintID uint, password, callerID string) (*models.Footprint, error) {
	footprint, err := s.footprintRepo.FindByID(footprintID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFootprintNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.authorize(footprint, password, callerID); err != nil {
		return nil, err
	}
	return footprint, nil
}

// authorize passes when the supplied password matches the footprint's digest
// OR the caller is the guestbook's host. Either alone is sufficient. An
// empty callerID means the request was unauthenticated, which is a normal
// input here, not a failure. Non-secret footprints carry no digest, so for
// them only the host path applies.
func (s *FootprintService) authorize(footprint *models.Footprint, password, callerID string) error {
	passwordOK := footprint.Password != "" && s.hasher.Matches(password, footprint.Password)
	hostOK := callerID != "" && footprint.Guestbook.HostID == callerID
	if !passwordOK && !hostOK {
		return ErrForbidden
	}
	return nil
}

// groupByDate buckets the page by calendar date, preserving fetch order
// within each bucket.
func groupByDate(responses []models.FootprintResponse) []models.FootprintDateGroup {
	groups := make([]models.FootprintDateGroup, 0)
	index := make(map[string]int)
	for _, r := range responses {
		date := r.CreateDate()
		i, ok := index[date]
		if !ok {
			i = len(groups)
			index[date] = i
			groups = append(groups, models.FootprintDateGroup{Date: date})
		}
		groups[i].Footprints = append(groups[i].Footprints, r)
	}
	return groups
}
