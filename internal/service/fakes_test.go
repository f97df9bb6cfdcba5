package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-crm/internal/domain"
	"github.com/spec-kit/field-crm/internal/repository"
)

// In-memory repositories backing the service tests.

type fakeLeadRepo struct {
	mu    sync.Mutex
	leads map[string]domain.Lead
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: make(map[string]domain.Lead)}
}

func (r *fakeLeadRepo) Create(ctx context.Context, lead *domain.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead.ID = uuid.NewString()
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = lead.CreatedAt
	r.leads[lead.ID] = *lead
	return nil
}

func (r *fakeLeadRepo) Update(ctx context.Context, lead *domain.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leads[lead.ID]; !ok {
		return pgx.ErrNoRows
	}
	lead.UpdatedAt = time.Now()
	r.leads[lead.ID] = *lead
	return nil
}

func (r *fakeLeadRepo) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := lead
	return &copied, nil
}

func (r *fakeLeadRepo) List(ctx context.Context, filter repository.LeadFilter) ([]domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Lead
	for _, lead := range r.leads {
		if filter.Kind != nil && lead.Kind != *filter.Kind {
			continue
		}
		if filter.AssignedTo != nil && (lead.AssignedTo == nil || *lead.AssignedTo != *filter.AssignedTo) {
			continue
		}
		if filter.Status != nil && lead.Status != *filter.Status {
			continue
		}
		if filter.City != nil && lead.City != *filter.City {
			continue
		}
		result = append(result, lead)
	}
	return result, nil
}

func (r *fakeLeadRepo) SetNextFollowupDate(ctx context.Context, id string, date *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return pgx.ErrNoRows
	}
	lead.NextFollowupDate = date
	lead.UpdatedAt = time.Now()
	r.leads[id] = lead
	return nil
}

func (r *fakeLeadRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leads[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.leads, id)
	return nil
}

type fakeFollowupRepo struct {
	mu        sync.Mutex
	followups map[string]domain.Followup
}

func newFakeFollowupRepo() *fakeFollowupRepo {
	return &fakeFollowupRepo{followups: make(map[string]domain.Followup)}
}

func (r *fakeFollowupRepo) Create(ctx context.Context, followup *domain.Followup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	followup.ID = uuid.NewString()
	followup.CreatedAt = time.Now()
	followup.UpdatedAt = followup.CreatedAt
	r.followups[followup.ID] = *followup
	return nil
}

func (r *fakeFollowupRepo) Update(ctx context.Context, followup *domain.Followup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.followups[followup.ID]; !ok {
		return pgx.ErrNoRows
	}
	followup.UpdatedAt = time.Now()
	r.followups[followup.ID] = *followup
	return nil
}

func (r *fakeFollowupRepo) GetByID(ctx context.Context, id string) (*domain.Followup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	followup, ok := r.followups[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := followup
	return &copied, nil
}

func (r *fakeFollowupRepo) List(ctx context.Context, filter repository.FollowupFilter) ([]domain.Followup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Followup
	for _, followup := range r.followups {
		if filter.CreatedBy != nil && followup.CreatedBy != *filter.CreatedBy {
			continue
		}
		if filter.Status != nil && followup.Status != *filter.Status {
			continue
		}
		if filter.LeadKind != nil && followup.LeadKind != *filter.LeadKind {
			continue
		}
		if filter.DueFrom != nil && followup.FollowupDate.Before(*filter.DueFrom) {
			continue
		}
		if filter.DueTo != nil && followup.FollowupDate.After(*filter.DueTo) {
			continue
		}
		result = append(result, followup)
	}
	return result, nil
}

func (r *fakeFollowupRepo) ListByLead(ctx context.Context, leadID string) ([]domain.Followup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Followup
	for _, followup := range r.followups {
		if followup.LeadID == leadID {
			result = append(result, followup)
		}
	}
	return result, nil
}

func (r *fakeFollowupRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.followups[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.followups, id)
	return nil
}

type fakeServiceRequestRepo struct {
	mu       sync.Mutex
	requests map[string]domain.ServiceRequest
}

func newFakeServiceRequestRepo() *fakeServiceRequestRepo {
	return &fakeServiceRequestRepo{requests: make(map[string]domain.ServiceRequest)}
}

func (r *fakeServiceRequestRepo) Create(ctx context.Context, sr *domain.ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sr.ID = uuid.NewString()
	sr.CreatedAt = time.Now()
	sr.UpdatedAt = sr.CreatedAt
	r.requests[sr.ID] = *sr
	return nil
}

func (r *fakeServiceRequestRepo) Update(ctx context.Context, sr *domain.ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[sr.ID]; !ok {
		return pgx.ErrNoRows
	}
	sr.UpdatedAt = time.Now()
	r.requests[sr.ID] = *sr
	return nil
}

func (r *fakeServiceRequestRepo) GetByID(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sr, ok := r.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := sr
	return &copied, nil
}

func (r *fakeServiceRequestRepo) List(ctx context.Context, filter repository.ServiceRequestFilter) ([]domain.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.ServiceRequest
	for _, sr := range r.requests {
		if filter.AssignedTo != nil && (sr.AssignedTo == nil || *sr.AssignedTo != *filter.AssignedTo) {
			continue
		}
		if filter.Status != nil && sr.Status != *filter.Status {
			continue
		}
		if filter.ChargeType != nil && sr.ChargeType != *filter.ChargeType {
			continue
		}
		if filter.Priority != nil && sr.Priority != *filter.Priority {
			continue
		}
		result = append(result, sr)
	}
	return result, nil
}

func (r *fakeServiceRequestRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.requests, id)
	return nil
}

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]domain.PlantTicket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]domain.PlantTicket)}
}

func (r *fakeTicketRepo) Create(ctx context.Context, ticket *domain.PlantTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) Update(ctx context.Context, ticket *domain.PlantTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.PlantTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := ticket
	return &copied, nil
}

func (r *fakeTicketRepo) GetByTicketID(ctx context.Context, ticketID string) (*domain.PlantTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ticket := range r.tickets {
		if ticket.TicketID == ticketID {
			copied := ticket
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) List(ctx context.Context, filter repository.TicketFilter) ([]domain.PlantTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.PlantTicket
	for _, ticket := range r.tickets {
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && ticket.Priority != *filter.Priority {
			continue
		}
		result = append(result, ticket)
	}
	return result, nil
}

func (r *fakeTicketRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

type fakeProposalRepo struct {
	mu        sync.Mutex
	proposals map[string]domain.Proposal
}

func newFakeProposalRepo() *fakeProposalRepo {
	return &fakeProposalRepo{proposals: make(map[string]domain.Proposal)}
}

func (r *fakeProposalRepo) Create(ctx context.Context, proposal *domain.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	proposal.ID = uuid.NewString()
	proposal.CreatedAt = time.Now()
	proposal.UpdatedAt = proposal.CreatedAt
	r.proposals[proposal.ID] = *proposal
	return nil
}

func (r *fakeProposalRepo) Update(ctx context.Context, proposal *domain.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.proposals[proposal.ID]; !ok {
		return pgx.ErrNoRows
	}
	proposal.UpdatedAt = time.Now()
	r.proposals[proposal.ID] = *proposal
	return nil
}

func (r *fakeProposalRepo) GetByID(ctx context.Context, id string) (*domain.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	proposal, ok := r.proposals[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := proposal
	return &copied, nil
}

func (r *fakeProposalRepo) List(ctx context.Context, salesPersonID *string) ([]domain.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Proposal
	for _, proposal := range r.proposals {
		if salesPersonID != nil && proposal.SalesPersonID != *salesPersonID {
			continue
		}
		result = append(result, proposal)
	}
	return result, nil
}

func (r *fakeProposalRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.proposals[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.proposals, id)
	return nil
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]domain.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[string]domain.Customer)}
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	customer.ID = uuid.NewString()
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt
	r.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[customer.ID]; !ok {
		return pgx.ErrNoRows
	}
	customer.UpdatedAt = time.Now()
	r.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	customer, ok := r.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := customer
	return &copied, nil
}

func (r *fakeCustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Customer
	for _, customer := range r.customers {
		result = append(result, customer)
	}
	return result, nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.customers, id)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.User
	for _, user := range r.users {
		result = append(result, user)
	}
	return result, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

// fakeAllocator mints deterministic sequential ids.
type fakeAllocator struct {
	mu   sync.Mutex
	next map[string]int
	err  error
}

func newFakeAllocator() *fakeAllocator {
	return &fakeAllocator{next: make(map[string]int)}
}

func (a *fakeAllocator) Next(ctx context.Context, prefix string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return "", a.err
	}
	a.next[prefix]++
	return fmt.Sprintf("%s-2026-%03d", prefix, a.next[prefix]), nil
}

// fakeFileStore records saved names and returns predictable paths.
type fakeFileStore struct {
	mu    sync.Mutex
	saved []string
}

func (s *fakeFileStore) Save(ctx context.Context, originalName string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path := "uploads/" + originalName
	s.saved = append(s.saved, path)
	return path, nil
}

// Test actors.

func adminActor() *domain.User {
	return &domain.User{ID: uuid.NewString(), Role: domain.RoleAdmin, Status: domain.UserStatusActive}
}

func salesActor() *domain.User {
	return &domain.User{ID: uuid.NewString(), Role: domain.RoleSales, Status: domain.UserStatusActive}
}

func serviceActor() *domain.User {
	return &domain.User{ID: uuid.NewString(), Role: domain.RoleService, Status: domain.UserStatusActive}
}
