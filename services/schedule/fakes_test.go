package schedule_test

import (
	"context"
	"sync"
	"time"

	applicationRepo "courtflow/database/repository/application"
	caseRepo "courtflow/database/repository/case"
	rescheduleRepo "courtflow/database/repository/reschedule"
	userRepo "courtflow/database/repository/user"
	"courtflow/models"
	"courtflow/services/schedule"
)

// In-memory fakes for the repository and collaborator interfaces. They mirror
// the conditional-write semantics of the Mongo implementations so the
// services' compare-and-swap paths are exercised for real.

func scheduled(status string) bool {
	for _, s := range models.ScheduledStatuses() {
		if status == s {
			return true
		}
	}
	return false
}

type fakeCaseRepo struct {
	mu    sync.Mutex
	cases map[string]*models.Case
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{cases: make(map[string]*models.Case)}
}

func (r *fakeCaseRepo) Create(_ context.Context, c *models.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.cases[c.ID] = &cp
	return nil
}

func (r *fakeCaseRepo) GetByID(_ context.Context, id string) (*models.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cases[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCaseRepo) FindScheduledBySlot(_ context.Context, jurisdiction string, slot models.TimeSlot) (*models.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.cases {
		if c.Jurisdiction == jurisdiction && scheduled(c.Status) && c.Slot().Equal(slot) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCaseRepo) ListScheduled(_ context.Context) ([]models.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Case
	for _, c := range r.cases {
		if scheduled(c.Status) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCaseRepo) MoveSchedule(_ context.Context, caseID string, from, to models.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cases[caseID]
	if !ok || !scheduled(c.Status) || !c.Slot().Equal(from) {
		return caseRepo.ErrStaleSchedule
	}
	for _, other := range r.cases {
		if other.ID != caseID && other.Jurisdiction == c.Jurisdiction &&
			scheduled(other.Status) && other.Slot().Equal(to) {
			return caseRepo.ErrSlotTaken
		}
	}
	c.ScheduledDate = to.Date
	c.ScheduledTime = to.Time
	c.Reminders = models.ReminderState{}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeCaseRepo) SetStatus(_ context.Context, caseID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cases[caseID]
	if !ok {
		return caseRepo.ErrStaleSchedule
	}
	c.Status = status
	return nil
}

func (r *fakeCaseRepo) MarkReminderSent(_ context.Context, caseID string, t models.ReminderThreshold) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cases[caseID]
	if !ok || !scheduled(c.Status) || c.Reminders.Sent(t) {
		return false, nil
	}
	c.Reminders.MarkSent(t)
	return true, nil
}

type fakeRescheduleRepo struct {
	mu        sync.Mutex
	requests  map[string]*models.RescheduleRequest
	proposals map[string]*models.AdminRescheduleProposal
}

func newFakeRescheduleRepo() *fakeRescheduleRepo {
	return &fakeRescheduleRepo{
		requests:  make(map[string]*models.RescheduleRequest),
		proposals: make(map[string]*models.AdminRescheduleProposal),
	}
}

func (r *fakeRescheduleRepo) CreateRequest(_ context.Context, req *models.RescheduleRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.requests {
		if existing.CaseID == req.CaseID && existing.Status == models.RescheduleStatusPending {
			return rescheduleRepo.ErrDuplicatePending
		}
	}
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *fakeRescheduleRepo) GetRequest(_ context.Context, id string) (*models.RescheduleRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRescheduleRepo) FindPendingByCase(_ context.Context, caseID string) (*models.RescheduleRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.CaseID == caseID && req.Status == models.RescheduleStatusPending {
			cp := *req
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRescheduleRepo) ResolveRequest(_ context.Context, id, status, adminID, comments string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok || req.Status != models.RescheduleStatusPending {
		return rescheduleRepo.ErrNotPending
	}
	req.Status = status
	req.AdminID = adminID
	req.AdminComments = comments
	req.RespondedAt = &at
	return nil
}

func (r *fakeRescheduleRepo) CreateProposal(_ context.Context, p *models.AdminRescheduleProposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.proposals {
		if existing.CaseID == p.CaseID && existing.Status == models.ProposalStatusOpen {
			return rescheduleRepo.ErrDuplicateOpen
		}
	}
	cp := *p
	r.proposals[p.ID] = &cp
	return nil
}

func (r *fakeRescheduleRepo) GetOpenProposalByCase(_ context.Context, caseID string) (*models.AdminRescheduleProposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.proposals {
		if p.CaseID == caseID && p.Status == models.ProposalStatusOpen {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRescheduleRepo) ConfirmProposal(_ context.Context, id string, chosen models.TimeSlot, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.proposals[id]
	if !ok || p.Status != models.ProposalStatusOpen {
		return rescheduleRepo.ErrNotOpen
	}
	p.Status = models.ProposalStatusConfirmed
	p.ChosenSlot = &chosen
	p.RespondedAt = &at
	return nil
}

func (r *fakeRescheduleRepo) WithdrawProposal(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.proposals[id]
	if !ok || p.Status != models.ProposalStatusOpen {
		return rescheduleRepo.ErrNotOpen
	}
	p.Status = models.ProposalStatusWithdrawn
	p.RespondedAt = &at
	return nil
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps []models.JurorApplication
}

func (r *fakeApplicationRepo) Insert(_ context.Context, app *models.JurorApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps = append(r.apps, *app)
	return nil
}

func (r *fakeApplicationRepo) ListByCase(_ context.Context, caseID string) ([]models.JurorApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.JurorApplication
	for _, app := range r.apps {
		if app.CaseID == caseID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) DeleteByCase(_ context.Context, caseID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []models.JurorApplication
	var deleted int64
	for _, app := range r.apps {
		if app.CaseID == caseID {
			deleted++
			continue
		}
		kept = append(kept, app)
	}
	r.apps = kept
	return deleted, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateFCMToken(_ context.Context, id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.FCMToken = token
	}
	return nil
}

func (r *fakeUserRepo) ListAdmins(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var admins []models.User
	for _, u := range r.users {
		if u.Role == models.RoleAdmin {
			admins = append(admins, *u)
		}
	}
	return admins, nil
}

type sentNote struct {
	recipient string
	template  string
	data      map[string]string
}

type fakeNotifier struct {
	mu    sync.Mutex
	sends []sentNote
	err   error
}

func (n *fakeNotifier) Send(_ context.Context, recipientID, templateID string, data map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sends = append(n.sends, sentNote{recipient: recipientID, template: templateID, data: data})
	return nil
}

func (n *fakeNotifier) sent() []sentNote {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentNote(nil), n.sends...)
}

type fakeDeduper struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newFakeDeduper() *fakeDeduper {
	return &fakeDeduper{keys: make(map[string]bool)}
}

func (d *fakeDeduper) MarkOnce(_ context.Context, key string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.keys[key] {
		return false, nil
	}
	d.keys[key] = true
	return true, nil
}

// fakeTxn runs the function directly; the fakes' conditional writes stand in
// for transactional isolation.
type fakeTxn struct{}

func (fakeTxn) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeQueue struct {
	mu       sync.Mutex
	enqueued []models.ReminderPayload
	err      error
}

func (q *fakeQueue) EnqueueReminder(_ context.Context, p models.ReminderPayload) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.enqueued = append(q.enqueued, p)
	return nil
}

// testEnv bundles a fully wired negotiation service over fakes.
type testEnv struct {
	cases       *fakeCaseRepo
	reschedules *fakeRescheduleRepo
	apps        *fakeApplicationRepo
	users       *fakeUserRepo
	notifier    *fakeNotifier
	deduper     *fakeDeduper
	service     *schedule.DefaultNegotiationService
}

func newTestEnv() *testEnv {
	cases := newFakeCaseRepo()
	reschedules := newFakeRescheduleRepo()
	apps := &fakeApplicationRepo{}
	users := newFakeUserRepo()
	notifier := &fakeNotifier{}
	deduper := newFakeDeduper()

	_ = users.Create(context.Background(), &models.User{ID: "admin-1", Role: models.RoleAdmin})

	resolver := &schedule.DefaultConflictResolver{Cases: cases}
	cascade := &schedule.DefaultApplicationCascade{
		Cases:    cases,
		Apps:     apps,
		Notifier: notifier,
		Dedupe:   deduper,
	}
	svc := &schedule.DefaultNegotiationService{
		Cases:       cases,
		Reschedules: reschedules,
		Users:       users,
		Resolver:    resolver,
		Cascade:     cascade,
		Txn:         fakeTxn{},
		Notifier:    notifier,
	}
	return &testEnv{
		cases:       cases,
		reschedules: reschedules,
		apps:        apps,
		users:       users,
		notifier:    notifier,
		deduper:     deduper,
		service:     svc,
	}
}

func (e *testEnv) addCase(id, jurisdiction, date, hhmm string) *models.Case {
	c := &models.Case{
		ID:            id,
		CaseNumber:    "SC-" + id,
		Jurisdiction:  jurisdiction,
		AttorneyID:    "attorney-" + id,
		Title:         "Test case " + id,
		ScheduledDate: date,
		ScheduledTime: hhmm,
		Status:        models.CaseStatusAwaitingTrial,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	_ = e.cases.Create(context.Background(), c)
	return c
}

func (e *testEnv) addApplication(caseID, jurorID string) {
	_ = e.apps.Insert(context.Background(), &models.JurorApplication{
		ID:        caseID + "-" + jurorID,
		CaseID:    caseID,
		JurorID:   jurorID,
		Status:    models.ApplicationStatusApproved,
		AppliedAt: time.Now().UTC(),
	})
}

var _ caseRepo.CaseRepository = (*fakeCaseRepo)(nil)
var _ rescheduleRepo.RescheduleRepository = (*fakeRescheduleRepo)(nil)
var _ applicationRepo.ApplicationRepository = (*fakeApplicationRepo)(nil)
var _ userRepo.UserRepository = (*fakeUserRepo)(nil)
