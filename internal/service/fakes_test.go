package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/domain"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/events"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/repository"
)

type fakeGrievanceRepo struct {
	mu        sync.Mutex
	byTicket  map[string]domain.Grievance
	createErr error
	listErr   error
	updateErr map[string]error
}

func newFakeGrievanceRepo() *fakeGrievanceRepo {
	return &fakeGrievanceRepo{
		byTicket:  make(map[string]domain.Grievance),
		updateErr: make(map[string]error),
	}
}

func (f *fakeGrievanceRepo) Create(_ context.Context, grievance *domain.Grievance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	grievance.ID = uuid.NewString()
	grievance.CreatedAt = time.Now()
	grievance.UpdatedAt = grievance.CreatedAt
	f.byTicket[grievance.TicketID] = *grievance
	return nil
}

func (f *fakeGrievanceRepo) Update(_ context.Context, grievance *domain.Grievance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.updateErr[grievance.TicketID]; err != nil {
		return err
	}
	if _, ok := f.byTicket[grievance.TicketID]; !ok {
		return pgx.ErrNoRows
	}
	grievance.UpdatedAt = time.Now()
	f.byTicket[grievance.TicketID] = *grievance
	return nil
}

func (f *fakeGrievanceRepo) GetByTicketID(_ context.Context, ticketID string) (*domain.Grievance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byTicket[ticketID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := stored
	return &copied, nil
}

func (f *fakeGrievanceRepo) ListWithFilter(_ context.Context, filter repository.GrievanceFilter) ([]domain.Grievance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []domain.Grievance
	for _, grievance := range f.byTicket {
		if filter.DepartmentID != nil && grievance.DepartmentID != *filter.DepartmentID {
			continue
		}
		result = append(result, grievance)
	}
	return result, nil
}

func (f *fakeGrievanceRepo) ListOverdueUnresolved(_ context.Context, now time.Time) ([]domain.Grievance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []domain.Grievance
	for _, grievance := range f.byTicket {
		if grievance.Status != domain.GrievanceStatusResolved && grievance.ResolutionDeadline.Before(now) {
			result = append(result, grievance)
		}
	}
	return result, nil
}

type fakeSequenceRepo struct {
	mu   sync.Mutex
	seqs map[string]int
	err  error
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{seqs: make(map[string]int)}
}

func (f *fakeSequenceRepo) Next(_ context.Context, year int, month time.Month) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	key := fmt.Sprintf("%04d-%02d", year, month)
	f.seqs[key]++
	return f.seqs[key], nil
}

type fakeDepartmentRepo struct {
	byID map[string]domain.Department
}

func newFakeDepartmentRepo(departments ...domain.Department) *fakeDepartmentRepo {
	repo := &fakeDepartmentRepo{byID: make(map[string]domain.Department)}
	for _, dept := range departments {
		repo.byID[dept.ID] = dept
	}
	return repo
}

func (f *fakeDepartmentRepo) Create(_ context.Context, dept *domain.Department) error {
	f.byID[dept.ID] = *dept
	return nil
}

func (f *fakeDepartmentRepo) Update(_ context.Context, dept *domain.Department) error {
	f.byID[dept.ID] = *dept
	return nil
}

func (f *fakeDepartmentRepo) GetByID(_ context.Context, id string) (*domain.Department, error) {
	dept, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &dept, nil
}

func (f *fakeDepartmentRepo) List(_ context.Context) ([]domain.Department, error) {
	var result []domain.Department
	for _, dept := range f.byID {
		result = append(result, dept)
	}
	return result, nil
}

type fakeCategoryRepo struct {
	byID map[string]domain.Category
}

func newFakeCategoryRepo(categories ...domain.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{byID: make(map[string]domain.Category)}
	for _, category := range categories {
		repo.byID[category.ID] = category
	}
	return repo
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	f.byID[category.ID] = *category
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	category, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &category, nil
}

func (f *fakeCategoryRepo) ListByDepartment(_ context.Context, departmentID string) ([]domain.Category, error) {
	var result []domain.Category
	for _, category := range f.byID {
		if category.DepartmentID == departmentID {
			result = append(result, category)
		}
	}
	return result, nil
}

type fakeWorkerRepo struct {
	byID map[string]domain.Worker
}

func newFakeWorkerRepo(workers ...domain.Worker) *fakeWorkerRepo {
	repo := &fakeWorkerRepo{byID: make(map[string]domain.Worker)}
	for _, worker := range workers {
		repo.byID[worker.ID] = worker
	}
	return repo
}

func (f *fakeWorkerRepo) Create(_ context.Context, worker *domain.Worker) error {
	f.byID[worker.ID] = *worker
	return nil
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id string) (*domain.Worker, error) {
	worker, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &worker, nil
}

func (f *fakeWorkerRepo) ListByDepartment(_ context.Context, departmentID string) ([]domain.Worker, error) {
	var result []domain.Worker
	for _, worker := range f.byID {
		if worker.DepartmentID == departmentID {
			result = append(result, worker)
		}
	}
	return result, nil
}

type fakeAccountRepo struct {
	accounts []domain.Account
	listErr  error
}

func (f *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	f.accounts = append(f.accounts, *account)
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	for i := range f.accounts {
		if f.accounts[i].ID == id {
			account := f.accounts[i]
			return &account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for i := range f.accounts {
		if f.accounts[i].Email == email {
			account := f.accounts[i]
			return &account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAccountRepo) ListEmailsByRole(_ context.Context, role domain.AccountRole) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []string
	for _, account := range f.accounts {
		if account.Role == role {
			result = append(result, account.Email)
		}
	}
	return result, nil
}

func (f *fakeAccountRepo) ListEmailsByRoleAndDepartment(_ context.Context, role domain.AccountRole, departmentID string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []string
	for _, account := range f.accounts {
		if account.Role == role && account.DepartmentID != nil && *account.DepartmentID == departmentID {
			result = append(result, account.Email)
		}
	}
	return result, nil
}

// recordingDispatcher captures published events without handlers.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []events.Event
	for _, event := range d.events {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}

// fakeSender records outbound mail and can fail on demand.
type fakeSender struct {
	mu       sync.Mutex
	sent     []sentMail
	failWith error
}

type sentMail struct {
	receivers []string
	subject   string
	body      string
}

func (f *fakeSender) Send(receivers []string, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.sent = append(f.sent, sentMail{receivers: receivers, subject: subject, body: body})
	return nil
}
