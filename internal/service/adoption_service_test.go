package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shelter-adoption-api/internal/dto"
	"github.com/noah-isme/shelter-adoption-api/internal/models"
	"github.com/noah-isme/shelter-adoption-api/internal/repository"
	appErrors "github.com/noah-isme/shelter-adoption-api/pkg/errors"
)

type dogStub struct {
	dogs map[string]*models.Dog
}

func newDogStub(dogs ...models.Dog) *dogStub {
	stub := &dogStub{dogs: make(map[string]*models.Dog)}
	for i := range dogs {
		dog := dogs[i]
		stub.dogs[dog.ID] = &dog
	}
	return stub
}

func (d *dogStub) GetByID(ctx context.Context, id string) (*models.Dog, error) {
	dog, ok := d.dogs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copy := *dog
	return &copy, nil
}

// adoptionStoreStub mimics the conditional writes of the SQL repository.
type adoptionStoreStub struct {
	items     map[string]*models.AdoptionRequest
	dogs      *dogStub
	seq       int
	filter    models.AdoptionRequestFilter
	beforeCAS func(id string)
	createErr error
}

func newAdoptionStoreStub(dogs *dogStub) *adoptionStoreStub {
	return &adoptionStoreStub{items: make(map[string]*models.AdoptionRequest), dogs: dogs}
}

func (s *adoptionStoreStub) put(item models.AdoptionRequest) {
	if item.VetReview == "" {
		item.VetReview = models.VetReviewPending
	}
	s.items[item.ID] = &item
}

func (s *adoptionStoreStub) Create(ctx context.Context, req *models.AdoptionRequest) error {
	if s.createErr != nil {
		return s.createErr
	}
	for _, existing := range s.items {
		if existing.AdopterID == req.AdopterID && existing.DogID == req.DogID {
			return repository.ErrDuplicate
		}
	}
	s.seq++
	req.ID = "req-" + string(rune('0'+s.seq))
	req.RequestStatus = models.AdoptionStatusPending
	req.VetReview = models.VetReviewPending
	copy := *req
	s.items[req.ID] = &copy
	return nil
}

func (s *adoptionStoreStub) GetByID(ctx context.Context, id string) (*models.AdoptionRequest, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copy := *item
	return &copy, nil
}

func (s *adoptionStoreStub) ExistsForAdopterAndDog(ctx context.Context, adopterID, dogID string) (bool, error) {
	for _, item := range s.items {
		if item.AdopterID == adopterID && item.DogID == dogID {
			return true, nil
		}
	}
	return false, nil
}

func (s *adoptionStoreStub) List(ctx context.Context, filter models.AdoptionRequestFilter) ([]models.AdoptionRequest, int, error) {
	s.filter = filter
	items, _ := s.ListAll(ctx, filter)
	return items, len(items), nil
}

func (s *adoptionStoreStub) ListAll(ctx context.Context, filter models.AdoptionRequestFilter) ([]models.AdoptionRequest, error) {
	out := make([]models.AdoptionRequest, 0, len(s.items))
	for _, item := range s.items {
		if filter.AdopterID != "" && item.AdopterID != filter.AdopterID {
			continue
		}
		if filter.DogID != "" && item.DogID != filter.DogID {
			continue
		}
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *adoptionStoreStub) pending(id string) (*models.AdoptionRequest, error) {
	if s.beforeCAS != nil {
		s.beforeCAS(id)
	}
	item, ok := s.items[id]
	if !ok || item.RequestStatus != models.AdoptionStatusPending {
		return nil, sql.ErrNoRows
	}
	return item, nil
}

func (s *adoptionStoreStub) UpdateDetails(ctx context.Context, params repository.UpdateAdoptionParams) error {
	item, err := s.pending(params.ID)
	if err != nil {
		return err
	}
	if params.DogID != nil {
		item.DogID = *params.DogID
	}
	if params.FullName != nil {
		item.FullName = *params.FullName
	}
	if params.Phone != nil {
		item.Phone = *params.Phone
	}
	if params.HasOtherPets != nil {
		item.HasOtherPets = *params.HasOtherPets
	}
	item.UpdatedAt = params.UpdatedAt
	return nil
}

func (s *adoptionStoreStub) Decide(ctx context.Context, params repository.DecisionParams) error {
	item, err := s.pending(params.ID)
	if err != nil {
		return err
	}
	if params.Status == models.AdoptionStatusApproved {
		dog, ok := s.dogs.dogs[item.DogID]
		if !ok {
			return errors.New("dog missing")
		}
		if dog.Status == models.DogStatusAdopted {
			return repository.ErrDogUnavailable
		}
		dog.Status = models.DogStatusAdopted
	}
	item.RequestStatus = params.Status
	item.DecidedBy = &params.DecidedBy
	item.DecidedAt = &params.DecidedAt
	item.DecisionNote = params.Note
	return nil
}

func (s *adoptionStoreStub) UpdateVetReview(ctx context.Context, params repository.VetReviewParams) error {
	item, err := s.pending(params.ID)
	if err != nil {
		return err
	}
	item.VetReview = params.Status
	item.VetReviewNote = params.Note
	return nil
}

func (s *adoptionStoreStub) Delete(ctx context.Context, id string) error {
	if _, err := s.pending(id); err != nil {
		return err
	}
	delete(s.items, id)
	return nil
}

type auditStub struct {
	logs []models.AuditLog
	err  error
}

func (a *auditStub) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	a.logs = append(a.logs, *log)
	return a.err
}

type cacheRepoStub struct {
	values  map[string]interface{}
	deleted []string
}

func newCacheRepoStub() *cacheRepoStub {
	return &cacheRepoStub{values: make(map[string]interface{})}
}

func (c *cacheRepoStub) Get(ctx context.Context, key string, dest interface{}) error {
	value, ok := c.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	if target, ok := dest.(*dto.AdoptionDashboardResponse); ok {
		*target = *(value.(*dto.AdoptionDashboardResponse))
	}
	return nil
}

func (c *cacheRepoStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *cacheRepoStub) DeleteByPattern(ctx context.Context, pattern string) error {
	c.deleted = append(c.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.values {
		if strings.HasPrefix(key, prefix) {
			delete(c.values, key)
		}
	}
	return nil
}

type schedulerStub struct {
	ids []string
}

func (s *schedulerStub) Schedule(id string) {
	s.ids = append(s.ids, id)
}

type adoptionFixture struct {
	svc       *AdoptionService
	store     *adoptionStoreStub
	dogs      *dogStub
	audit     *auditStub
	cache     *cacheRepoStub
	scheduler *schedulerStub
}

func newAdoptionFixture() *adoptionFixture {
	dogs := newDogStub(
		models.Dog{ID: "dog-1", Name: "Bruno", Breed: "Mixed", Status: models.DogStatusAdoption},
		models.Dog{ID: "dog-2", Name: "Luna", Breed: "Kintamani", Status: models.DogStatusAdoption},
		models.Dog{ID: "dog-3", Name: "Max", Status: models.DogStatusAdopted},
	)
	store := newAdoptionStoreStub(dogs)
	audit := &auditStub{}
	cacheRepo := newCacheRepoStub()
	scheduler := &schedulerStub{}
	svc := NewAdoptionService(store, dogs, audit, nil, nil,
		WithAdoptionCache(NewCacheService(cacheRepo, nil, time.Minute, nil, true)),
		WithAdoptionMetrics(NewMetricsService()),
		WithCertificateScheduler(scheduler),
	)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return &adoptionFixture{svc: svc, store: store, dogs: dogs, audit: audit, cache: cacheRepo, scheduler: scheduler}
}

var (
	adminActor   = &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin}
	vetActor     = &models.JWTClaims{UserID: "vet-1", Role: models.RoleVet}
	adopterActor = &models.JWTClaims{UserID: "adopter-1", Role: models.RoleAdopter}
	otherAdopter = &models.JWTClaims{UserID: "adopter-2", Role: models.RoleAdopter}
)

func validCreateRequest(dogID string) dto.CreateAdoptionRequest {
	return dto.CreateAdoptionRequest{
		DogID:         dogID,
		FullName:      "Rina Wijaya",
		Email:         "rina@example.com",
		Phone:         "+628123456",
		Address:       "Jl. Melati 4",
		AdopterStatus: "employed",
		HomeType:      "house",
		Agreed:        true,
	}
}

func (f *adoptionFixture) pendingRequest(id, adopterID, dogID string) {
	f.store.put(models.AdoptionRequest{ID: id, AdopterID: adopterID, DogID: dogID, FullName: "Rina Wijaya", RequestStatus: models.AdoptionStatusPending})
}

func TestAdoptionServiceCreate(t *testing.T) {
	f := newAdoptionFixture()
	f.cache.values[dashboardCacheKey] = &dto.AdoptionDashboardResponse{}

	item, err := f.svc.Create(context.Background(), validCreateRequest("dog-1"), adopterActor)
	require.NoError(t, err)
	assert.Equal(t, models.AdoptionStatusPending, item.RequestStatus)
	assert.Equal(t, "adopter-1", item.AdopterID)
	require.Len(t, f.audit.logs, 1)
	assert.Equal(t, models.AuditActionAdoptionCreate, f.audit.logs[0].Action)
	assert.Equal(t, []string{dashboardCachePattern}, f.cache.deleted)
	assert.Empty(t, f.cache.values)
}

func TestAdoptionServiceCreateRejections(t *testing.T) {
	f := newAdoptionFixture()
	_, err := f.svc.Create(context.Background(), validCreateRequest("dog-1"), adopterActor)
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), validCreateRequest("dog-1"), adopterActor)
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	_, err = f.svc.Create(context.Background(), validCreateRequest("dog-3"), adopterActor)
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	_, err = f.svc.Create(context.Background(), validCreateRequest("dog-404"), adopterActor)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = f.svc.Create(context.Background(), validCreateRequest("dog-2"), adminActor)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	notAgreed := validCreateRequest("dog-2")
	notAgreed.Agreed = false
	_, err = f.svc.Create(context.Background(), notAgreed, adopterActor)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = f.svc.Create(context.Background(), validCreateRequest("dog-2"), nil)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestAdoptionServiceCreateMapsUniqueViolation(t *testing.T) {
	f := newAdoptionFixture()
	f.store.createErr = repository.ErrDuplicate

	_, err := f.svc.Create(context.Background(), validCreateRequest("dog-1"), adopterActor)
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestAdoptionServiceApproveFlipsDog(t *testing.T) {
	f := newAdoptionFixture()
	f.pendingRequest("req-a", "adopter-1", "dog-1")

	resp, err := f.svc.Approve(context.Background(), "req-a", dto.DecisionRequest{Note: " good match "}, adminActor)
	require.NoError(t, err)
	assert.Equal(t, models.AdoptionStatusApproved, resp.Status)
	assert.Equal(t, models.DogStatusAdopted, resp.DogStatus)
	assert.Equal(t, models.DogStatusAdopted, f.dogs.dogs["dog-1"].Status)

	stored := f.store.items["req-a"]
	assert.Equal(t, models.AdoptionStatusApproved, stored.RequestStatus)
	require.NotNil(t, stored.DecisionNote)
	assert.Equal(t, "good match", *stored.DecisionNote)
	assert.Equal(t, []string{"req-a"}, f.scheduler.ids)
	require.Len(t, f.audit.logs, 1)
	assert.Equal(t, models.AuditActionAdoptionApprove, f.audit.logs[0].Action)
}

func TestAdoptionServiceSecondApprovalForSameDogConflicts(t *testing.T) {
	f := newAdoptionFixture()
	f.pendingRequest("req-a", "adopter-1", "dog-1")
	f.pendingRequest("req-b", "adopter-2", "dog-1")

	_, err := f.svc.Approve(context.Background(), "req-a", dto.DecisionRequest{}, adminActor)
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), "req-b", dto.DecisionRequest{}, adminActor)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, "dog has already been adopted", appErr.Message)

	assert.Equal(t, models.AdoptionStatusApproved, f.store.items["req-a"].RequestStatus)
	assert.Equal(t, models.AdoptionStatusPending, f.store.items["req-b"].RequestStatus)
	assert.Equal(t, []string{"req-a"}, f.scheduler.ids)
	require.Len(t, f.audit.logs, 1)

	_, err = f.svc.Reject(context.Background(), "req-b", dto.DecisionRequest{}, adminActor)
	require.NoError(t, err)
	assert.Equal(t, models.AdoptionStatusRejected, f.store.items["req-b"].RequestStatus)
}

func TestAdoptionServiceApproveConflictsWhenDogAdoptedConcurrently(t *testing.T) {
	f := newAdoptionFixture()
	f.pendingRequest("req-b", "adopter-2", "dog-2")
	f.store.beforeCAS = func(string) {
		f.dogs.dogs["dog-2"].Status = models.DogStatusAdopted
	}

	_, err := f.svc.Approve(context.Background(), "req-b", dto.DecisionRequest{}, adminActor)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Equal(t, models.AdoptionStatusPending, f.store.items["req-b"].RequestStatus)
	assert.Empty(t, f.scheduler.ids)
	assert.Empty(t, f.audit.logs)
}

func TestAdoptionServiceTerminalStatesNeverTransition(t *testing.T) {
	f := newAdoptionFixture()
	f.pendingRequest("req-a", "adopter-1", "dog-1")
	f.pendingRequest("req-b", "adopter-2", "dog-2")

	_, err := f.svc.Approve(context.Background(), "req-a", dto.DecisionRequest{}, adminActor)
	require.NoError(t, err)
	_, err = f.svc.Reject(context.Background(), "req-b", dto.DecisionRequest{Note: "no yard"}, adminActor)
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), "req-a", dto.DecisionRequest{}, adminActor)
	assert.ErrorIs(t, err, appErrors.ErrInvalidTransition)
	_, err = f.svc.Reject(context.Background(), "req-a", dto.DecisionRequest{}, adminActor)
	assert.ErrorIs(t, err, appErrors.ErrInvalidTransition)
	_, err = f.svc.Approve(context.Background(), "req-b", dto.DecisionRequest{}, adminActor)
	assert.ErrorIs(t, err, appErrors.ErrInvalidTransition)

	assert.Equal(t, models.AdoptionStatusApproved, f.store.items["req-a"].RequestStatus)
	assert.Equal(t, models.AdoptionStatusRejected, f.store.items["req-b"].RequestStatus)
	assert.Equal(t, models.DogStatusAdoption, f.dogs.dogs["dog-2"].Status)
}

func TestAdoptionServiceRejectLeavesDogUntouched(t *testing.T) {
	f := newAdoptionFixture()
	f.pendingRequest("req-a", "adopter-1", "dog-1")

	resp, err := f.svc.Reject(context.Background(), "req-a", dto.DecisionRequest{}, adminActor)
	require.NoError(t, err)
	assert.Equal(t, models.AdoptionStatusRejected, resp.Status)
	assert.Equal(t, models.DogStatusAdoption, f.dogs.dogs["dog-1"].Status)
	assert.Empty(t, f.scheduler.ids)
}

func TestAdoptionServiceDecisionRequiresAdmin(t *testing.T) {
	f := newAdoptionFixture()
	f.pendingRequest("req-a", "adopter-1", "dog-1")

	_, err := f.svc.Approve(context.Background(), "req-a", dto.DecisionRequest{}, vetActor)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	_, err = f.svc.Reject(context.Background(), "req-a", dto.DecisionRequest{}, adopterActor)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	_, err = f.svc.Approve(context.Background(), "missing", dto.DecisionRequest{}, adminActor)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestAdoptionServiceLostRaceReportsInvalidTransition(t *testing.T) {
	f := newAdoptionFixture()
	f.pendingRequest("req-a", "adopter-1", "dog-1")
	f.store.beforeCAS = func(id string) {
		f.store.items[id].RequestStatus = models.AdoptionStatusRejected
	}

	_, err := f.svc.Approve(context.Background(), "req-a", dto.DecisionRequest{}, adminActor)
	assert.ErrorIs(t, err, appErrors.ErrInvalidTransition)
	assert.Equal(t, models.DogStatusAdoption, f.dogs.dogs["dog-1"].Status)
	assert.Empty(t, f.audit.logs)
}

func TestAdoptionServiceLostRaceToDeleteReportsNotFound(t *testing.T) {
	f := newAdoptionFixture()
	f.pendingRequest("req-a", "adopter-1", "dog-1")
	f.store.beforeCAS = func(id string) {
		delete(f.store.items, id)
	}

	_, err := f.svc.Reject(context.Background(), "req-a", dto.DecisionRequest{}, adminActor)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestAdoptionServiceUpdate(t *testing.T) {
	f := newAdoptionFixture()
	f.pendingRequest("req-a", "adopter-1", "dog-1")
	name := "  Rina W. "
	pets := true

	updated, err := f.svc.Update(context.Background(), "req-a", dto.UpdateAdoptionRequest{FullName: &name, HasOtherPets: &pets}, adopterActor)
	require.NoError(t, err)
	assert.Equal(t, "Rina W.", updated.FullName)
	assert.True(t, updated.HasOtherPets)
	assert.Equal(t, f.svc.now().UTC(), updated.UpdatedAt)

	_, err = f.svc.Update(context.Background(), "req-a", dto.UpdateAdoptionRequest{FullName: &name}, otherAdopter)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	dog := "dog-2"
	_, err = f.svc.Update(context.Background(), "req-a", dto.UpdateAdoptionRequest{DogID: &dog}, adopterActor)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	moved, err := f.svc.Update(context.Background(), "req-a", dto.UpdateAdoptionRequest{DogID: &dog}, adminActor)
	require.NoError(t, err)
	assert.Equal(t, "dog-2", moved.DogID)

	_, err = f.svc.Update(context.Background(), "req-a", dto.UpdateAdoptionRequest{}, adopterActor)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestAdoptionServiceUpdateAfterDecision(t *testing.T) {
	f := newAdoptionFixture()
	f.pendingRequest("req-a", "adopter-1", "dog-1")
	_, err := f.svc.Approve(context.Background(), "req-a", dto.DecisionRequest{}, adminActor)
	require.NoError(t, err)

	phone := "0811111111"
	_, err = f.svc.Update(context.Background(), "req-a", dto.UpdateAdoptionRequest{Phone: &phone}, adopterActor)
	assert.ErrorIs(t, err, appErrors.ErrInvalidTransition)
}

func TestAdoptionServiceDelete(t *testing.T) {
	f := newAdoptionFixture()
	f.pendingRequest("req-a", "adopter-1", "dog-1")
	f.pendingRequest("req-b", "adopter-1", "dog-2")

	assert.ErrorIs(t, f.svc.Delete(context.Background(), "req-a", otherAdopter), appErrors.ErrForbidden)
	require.NoError(t, f.svc.Delete(context.Background(), "req-a", adopterActor))
	assert.NotContains(t, f.store.items, "req-a")

	_, err := f.svc.Reject(context.Background(), "req-b", dto.DecisionRequest{}, adminActor)
	require.NoError(t, err)
	assert.ErrorIs(t, f.svc.Delete(context.Background(), "req-b", adminActor), appErrors.ErrInvalidTransition)
	assert.ErrorIs(t, f.svc.Delete(context.Background(), "req-a", adminActor), appErrors.ErrNotFound)
}

func TestAdoptionServiceRecordVetReview(t *testing.T) {
	f := newAdoptionFixture()
	f.pendingRequest("req-a", "adopter-1", "dog-1")

	_, err := f.svc.RecordVetReview(context.Background(), "req-a", dto.VetReviewRequest{Status: models.VetReviewCleared}, adopterActor)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = f.svc.RecordVetReview(context.Background(), "req-a", dto.VetReviewRequest{Status: "unknown"}, vetActor)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	item, err := f.svc.RecordVetReview(context.Background(), "req-a", dto.VetReviewRequest{Status: models.VetReviewFlagged, Note: "skin condition"}, vetActor)
	require.NoError(t, err)
	assert.Equal(t, models.VetReviewFlagged, item.VetReview)
	assert.Equal(t, models.AdoptionStatusPending, item.RequestStatus)

	// A flagged review does not block approval.
	_, err = f.svc.Approve(context.Background(), "req-a", dto.DecisionRequest{}, adminActor)
	require.NoError(t, err)

	_, err = f.svc.RecordVetReview(context.Background(), "req-a", dto.VetReviewRequest{Status: models.VetReviewCleared}, vetActor)
	assert.ErrorIs(t, err, appErrors.ErrInvalidTransition)
}

func TestAdoptionServiceGetAndList(t *testing.T) {
	f := newAdoptionFixture()
	f.pendingRequest("req-a", "adopter-1", "dog-1")
	f.pendingRequest("req-b", "adopter-2", "dog-1")

	_, err := f.svc.Get(context.Background(), "req-a", otherAdopter)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	item, err := f.svc.Get(context.Background(), "req-a", vetActor)
	require.NoError(t, err)
	assert.Equal(t, "req-a", item.ID)
	_, err = f.svc.Get(context.Background(), "missing", adminActor)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	mine, pagination, err := f.svc.ListMine(context.Background(), dto.AdoptionQuery{}, otherAdopter)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "req-b", mine[0].ID)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)

	_, pagination, err = f.svc.List(context.Background(), dto.AdoptionQuery{Page: 3, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, pagination.PageSize)
	assert.Equal(t, 200, f.store.filter.Offset)
	assert.Equal(t, 100, f.store.filter.Limit)

	byDog, _, err := f.svc.ListByDog(context.Background(), "dog-1", dto.AdoptionQuery{})
	require.NoError(t, err)
	assert.Len(t, byDog, 2)
	_, _, err = f.svc.ListByDog(context.Background(), " ", dto.AdoptionQuery{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestAdoptionServiceExport(t *testing.T) {
	f := newAdoptionFixture()
	f.store.put(models.AdoptionRequest{
		ID:            "req-a",
		AdopterID:     "adopter-1",
		DogID:         "dog-1",
		FullName:      "Rina, Wijaya",
		Email:         "rina@example.com",
		RequestStatus: models.AdoptionStatusPending,
		CreatedAt:     time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
	})

	var buf bytes.Buffer
	require.NoError(t, f.svc.Export(context.Background(), dto.AdoptionQuery{}, &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID,Dog ID,Adopter ID,Full Name"))
	assert.Contains(t, lines[1], `"Rina, Wijaya"`)
	assert.Contains(t, lines[1], "2026-02-01T08:00:00Z")
}

func TestAdoptionServiceAuditFailureDoesNotFail(t *testing.T) {
	f := newAdoptionFixture()
	f.audit.err = errors.New("audit down")
	f.pendingRequest("req-a", "adopter-1", "dog-1")

	_, err := f.svc.Reject(context.Background(), "req-a", dto.DecisionRequest{}, adminActor)
	require.NoError(t, err)
}
