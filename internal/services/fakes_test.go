package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"invoice-service/internal/email"
	"invoice-service/internal/models"
	"invoice-service/internal/repository"

	"github.com/google/uuid"
)

// In-memory repositories. They return the same sentinel errors as the
// Postgres implementations.

type fakeClientRepo struct {
	mu      sync.Mutex
	clients map[string]models.Client
}

func newFakeClientRepo(clients ...*models.Client) *fakeClientRepo {
	r := &fakeClientRepo{clients: make(map[string]models.Client)}
	for _, c := range clients {
		r.clients[c.ID] = *c
	}
	return r
}

func (r *fakeClientRepo) Create(_ context.Context, c *models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	r.clients[c.ID] = *c
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *fakeClientRepo) GetAll(_ context.Context) ([]*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Client, 0, len(r.clients))
	for _, c := range r.clients {
		c := c
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeClientRepo) Update(_ context.Context, c *models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[c.ID]; !ok {
		return repository.ErrNotFound
	}
	r.clients[c.ID] = *c
	return nil
}

func (r *fakeClientRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

type fakeCompanyRepo struct {
	companies map[string]models.Company
}

func newFakeCompanyRepo(companies ...*models.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{companies: make(map[string]models.Company)}
	for _, c := range companies {
		r.companies[c.ID] = *c
	}
	return r
}

func (r *fakeCompanyRepo) Create(_ context.Context, c *models.Company) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	r.companies[c.ID] = *c
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (*models.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCompanyRepo) GetAll(_ context.Context) ([]*models.Company, error) {
	out := make([]*models.Company, 0, len(r.companies))
	for _, c := range r.companies {
		c := c
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, c *models.Company) error {
	if _, ok := r.companies[c.ID]; !ok {
		return repository.ErrNotFound
	}
	r.companies[c.ID] = *c
	return nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.companies[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.companies, id)
	return nil
}

type fakeBankRepo struct {
	banks map[string]models.BankDetail
}

func newFakeBankRepo(banks ...*models.BankDetail) *fakeBankRepo {
	r := &fakeBankRepo{banks: make(map[string]models.BankDetail)}
	for _, b := range banks {
		r.banks[b.ID] = *b
	}
	return r
}

func (r *fakeBankRepo) Create(_ context.Context, b *models.BankDetail) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	r.banks[b.ID] = *b
	return nil
}

func (r *fakeBankRepo) GetByID(_ context.Context, id string) (*models.BankDetail, error) {
	b, ok := r.banks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *fakeBankRepo) GetAll(_ context.Context) ([]*models.BankDetail, error) {
	out := make([]*models.BankDetail, 0, len(r.banks))
	for _, b := range r.banks {
		b := b
		out = append(out, &b)
	}
	return out, nil
}

func (r *fakeBankRepo) Update(_ context.Context, b *models.BankDetail) error {
	if _, ok := r.banks[b.ID]; !ok {
		return repository.ErrNotFound
	}
	r.banks[b.ID] = *b
	return nil
}

func (r *fakeBankRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.banks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.banks, id)
	return nil
}

// fakeSettingsRepo holds at most one record, like the singleton index.
type fakeSettingsRepo struct {
	settings *models.Settings
}

func (r *fakeSettingsRepo) Create(_ context.Context, s *models.Settings) error {
	if r.settings != nil {
		return repository.ErrDuplicate
	}
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	stored := *s
	stored.Company, stored.Bank = nil, nil
	r.settings = &stored
	return nil
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*models.Settings, error) {
	if r.settings == nil {
		return nil, repository.ErrNotFound
	}
	s := *r.settings
	return &s, nil
}

func (r *fakeSettingsRepo) GetByID(ctx context.Context, id string) (*models.Settings, error) {
	if r.settings == nil || r.settings.ID != id {
		return nil, repository.ErrNotFound
	}
	return r.Get(ctx)
}

func (r *fakeSettingsRepo) Update(_ context.Context, s *models.Settings) error {
	if r.settings == nil || r.settings.ID != s.ID {
		return repository.ErrNotFound
	}
	stored := *s
	stored.Company, stored.Bank = nil, nil
	r.settings = &stored
	return nil
}

func (r *fakeSettingsRepo) Delete(_ context.Context, id string) error {
	if r.settings == nil || r.settings.ID != id {
		return repository.ErrNotFound
	}
	r.settings = nil
	return nil
}

func (r *fakeSettingsRepo) IsCompanyReferenced(_ context.Context, companyID string) (bool, error) {
	return r.settings != nil && r.settings.CompanyID == companyID, nil
}

func (r *fakeSettingsRepo) IsBankReferenced(_ context.Context, bankID string) (bool, error) {
	return r.settings != nil && r.settings.BankID == bankID, nil
}

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	seq      int64
	invoices map[string]models.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[string]models.Invoice)}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *models.Invoice, numberFor func(seq int64) string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	number := numberFor(r.seq + 1)
	for _, existing := range r.invoices {
		if existing.InvoiceNumber == number {
			return repository.ErrDuplicate
		}
	}
	r.seq++

	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	now := time.Now()
	inv.InvoiceNumber = number
	inv.Date = now
	inv.CreatedAt = now
	inv.UpdatedAt = now
	r.invoices[inv.ID] = stripInvoice(inv)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &inv, nil
}

func (r *fakeInvoiceRepo) GetAll(_ context.Context) ([]*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		inv := inv
		out = append(out, &inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceNumber > out[j].InvoiceNumber })
	return out, nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, inv *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invoices[inv.ID]; !ok {
		return repository.ErrNotFound
	}
	inv.UpdatedAt = time.Now()
	r.invoices[inv.ID] = stripInvoice(inv)
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invoices[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) CountByClient(_ context.Context, clientID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, inv := range r.invoices {
		if inv.ClientID == clientID {
			count++
		}
	}
	return count, nil
}

func (r *fakeInvoiceRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.invoices)
}

func stripInvoice(inv *models.Invoice) models.Invoice {
	stored := *inv
	stored.Client, stored.Settings = nil, nil
	return stored
}

type fakeUserRepo struct {
	users map[string]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		out = append(out, &u)
	}
	return out, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int, error) {
	return len(r.users), nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeMailer struct {
	sent []email.Message
	err  error
}

func (m *fakeMailer) Send(msg email.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// fakeRenderer records calls and can be told to fail.
type fakeRenderer struct {
	*PDFRenderer
	renders int
	err     error
}

func (r *fakeRenderer) Render(inv *models.Invoice) (string, error) {
	r.renders++
	if r.err != nil {
		return "", r.err
	}
	return r.PDFRenderer.Render(inv)
}

type recordingArchive struct {
	uploaded []string
	deleted  []string
}

func (a *recordingArchive) FUploadFile(_ context.Context, objectName, _, _ string) error {
	a.uploaded = append(a.uploaded, objectName)
	return nil
}

func (a *recordingArchive) DeleteFile(_ context.Context, objectName string) error {
	a.deleted = append(a.deleted, objectName)
	return nil
}
