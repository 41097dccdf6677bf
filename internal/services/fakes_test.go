package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"ishtop_backend/internal/models"
	"ishtop_backend/internal/repositories"

	"github.com/google/uuid"
)

// In-memory реализации репозиториев. Воспроизводят контракт боевых
// реализаций: те же sentinel-ошибки, та же семантика дедупликации,
// счетчиков и ленивой чистки сессий.

// --- users ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

// Create дедуплицирует телефон только непустой - как частичный
// уникальный индекс в боевой схеме.
func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if (user.Phone != "" && u.Phone == user.Phone) ||
			(user.Email != "" && u.Email == user.Email) {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByPhone(_ context.Context, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) SearchWorkers(_ context.Context, filter repositories.WorkerFilter) ([]models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.User
	for _, u := range r.users {
		if u.Role != models.UserRoleWorker {
			continue
		}
		if filter.City != "" && !strings.EqualFold(u.City, filter.City) {
			continue
		}
		if filter.WorkerType != "" && u.WorkerType != filter.WorkerType {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, *u)
	}

	total := int64(len(matched))
	offset := (filter.Page - 1) * filter.Limit
	if offset >= len(matched) {
		return []models.User{}, total, nil
	}
	end := offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// --- sessions ---

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *session
	r.sessions[session.Token] = &cp
	return nil
}

// FindByToken повторяет ленивую чистку боевого репозитория:
// просроченная строка удаляется и отдается как отсутствующая.
func (r *fakeSessionRepo) FindByToken(_ context.Context, token string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	if s.ExpiresAt.Before(time.Now()) {
		delete(r.sessions, token)
		return nil, repositories.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

func (r *fakeSessionRepo) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *fakeSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// --- otp ---

type fakeOtpRepo struct {
	mu     sync.Mutex
	phones []*models.OtpCode
	emails []*models.EmailOtpCode
}

func newFakeOtpRepo() *fakeOtpRepo {
	return &fakeOtpRepo{}
}

func (r *fakeOtpRepo) CreatePhone(_ context.Context, code *models.OtpCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now()
	}
	cp := *code
	r.phones = append(r.phones, &cp)
	return nil
}

func (r *fakeOtpRepo) FindActiveByPhone(_ context.Context, phone string, now time.Time) (*models.OtpCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.phones) - 1; i >= 0; i-- {
		c := r.phones[i]
		if c.Phone == phone && !c.Verified && c.ExpiresAt.After(now) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrOtpNotFound
}

func (r *fakeOtpRepo) IncrementPhoneAttempts(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.phones {
		if c.ID == id {
			c.Attempts++
			return nil
		}
	}
	return repositories.ErrOtpNotFound
}

func (r *fakeOtpRepo) MarkPhoneVerified(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.phones {
		if c.ID == id {
			c.Verified = true
			return nil
		}
	}
	return repositories.ErrOtpNotFound
}

func (r *fakeOtpRepo) CreateEmail(_ context.Context, code *models.EmailOtpCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now()
	}
	cp := *code
	r.emails = append(r.emails, &cp)
	return nil
}

func (r *fakeOtpRepo) FindActiveByEmail(_ context.Context, email string, now time.Time) (*models.EmailOtpCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.emails) - 1; i >= 0; i-- {
		c := r.emails[i]
		if c.Email == email && !c.Verified && c.ExpiresAt.After(now) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrOtpNotFound
}

func (r *fakeOtpRepo) IncrementEmailAttempts(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.emails {
		if c.ID == id {
			c.Attempts++
			return nil
		}
	}
	return repositories.ErrOtpNotFound
}

func (r *fakeOtpRepo) MarkEmailVerified(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.emails {
		if c.ID == id {
			c.Verified = true
			return nil
		}
	}
	return repositories.ErrOtpNotFound
}

func (r *fakeOtpRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*models.OtpCode
	var removed int64
	for _, c := range r.phones {
		if c.ExpiresAt.Before(before) {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	r.phones = kept
	return removed, nil
}

// backdate сдвигает created_at последнего кода назад, чтобы проверить
// окно переотправки без time.Sleep.
func (r *fakeOtpRepo) backdate(phone string, by time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.phones) - 1; i >= 0; i-- {
		if r.phones[i].Phone == phone {
			r.phones[i].CreatedAt = r.phones[i].CreatedAt.Add(-by)
			return
		}
	}
}

func (r *fakeOtpRepo) backdateEmail(email string, by time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.emails) - 1; i >= 0; i-- {
		if r.emails[i].Email == email {
			r.emails[i].CreatedAt = r.emails[i].CreatedAt.Add(-by)
			return
		}
	}
}

// --- orders ---

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*models.Order{}}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	order.CreatedAt = time.Now()
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id string, orderType models.OrderType) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Type != orderType {
		return nil, repositories.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) List(_ context.Context, filter repositories.OrderFilter) ([]models.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Order
	for _, o := range r.orders {
		if o.Type != filter.Type {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, o.Status) {
			continue
		}
		if filter.City != "" && !strings.EqualFold(o.City, filter.City) {
			continue
		}
		if filter.SpecializationID != "" && o.SpecializationID != filter.SpecializationID {
			continue
		}
		matched = append(matched, *o)
	}

	total := int64(len(matched))
	offset := (filter.Page - 1) * filter.Limit
	if offset >= len(matched) {
		return []models.Order{}, total, nil
	}
	end := offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeOrderRepo) ListActiveWithSpecialization(_ context.Context, orderType models.OrderType) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if o.Type == orderType && o.SpecializationID != "" && containsStatus(models.ActiveOrderStatuses, o.Status) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) IncrementViews(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		o.ViewsCount++
	}
	return nil
}

// RegisterApplication повторяет атомарный UPDATE боевого репозитория:
// оба счетчика +1 и перевод new -> response_received одним действием.
func (r *fakeOrderRepo) RegisterApplication(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return repositories.ErrOrderNotFound
	}
	o.ApplicantsCount++
	o.PendingApplicantsCount++
	if o.Status == models.OrderStatusNew {
		o.Status = models.OrderStatusResponseReceived
	}
	return nil
}

func (r *fakeOrderRepo) DecrementPending(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return repositories.ErrOrderNotFound
	}
	if o.PendingApplicantsCount > 0 {
		o.PendingApplicantsCount--
	}
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, from []models.OrderStatus, to models.OrderStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return false, nil
	}
	if !containsStatus(from, o.Status) {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (r *fakeOrderRepo) CancelExpiredDaily(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, o := range r.orders {
		if o.Type == models.OrderTypeDaily &&
			containsStatus(models.ActiveOrderStatuses, o.Status) &&
			o.ServiceDate != nil && o.ServiceDate.Before(before) {
			o.Status = models.OrderStatusCancelled
			n++
		}
	}
	return n, nil
}

func (r *fakeOrderRepo) get(id string) *models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		cp := *o
		return &cp
	}
	return nil
}

// --- applicants ---

type fakeApplicantRepo struct {
	mu         sync.Mutex
	applicants []*models.Applicant
}

func newFakeApplicantRepo() *fakeApplicantRepo {
	return &fakeApplicantRepo{}
}

func (r *fakeApplicantRepo) Create(_ context.Context, applicant *models.Applicant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.applicants {
		if a.OrderID == applicant.OrderID && a.WorkerID == applicant.WorkerID {
			return repositories.ErrAlreadyApplied
		}
	}
	if applicant.ID == "" {
		applicant.ID = uuid.NewString()
	}
	cp := *applicant
	r.applicants = append(r.applicants, &cp)
	return nil
}

func (r *fakeApplicantRepo) FindByID(_ context.Context, id string) (*models.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.applicants {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repositories.ErrApplicantNotFound
}

func (r *fakeApplicantRepo) ExistsForOrderAndWorker(_ context.Context, orderID, workerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.applicants {
		if a.OrderID == orderID && a.WorkerID == workerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeApplicantRepo) ListByOrder(_ context.Context, orderID string) ([]models.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Applicant{}
	for _, a := range r.applicants {
		if a.OrderID == orderID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicantRepo) ListByWorker(_ context.Context, workerID string) ([]models.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Applicant{}
	for _, a := range r.applicants {
		if a.WorkerID == workerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicantRepo) UpdateStatus(_ context.Context, id string, status models.ApplicantStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.applicants {
		if a.ID == id {
			a.Status = status
			return nil
		}
	}
	return repositories.ErrApplicantNotFound
}

func (r *fakeApplicantRepo) CountAcceptedByOrder(_ context.Context, orderID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.applicants {
		if a.OrderID == orderID && a.Status == models.ApplicantStatusAccepted {
			n++
		}
	}
	return n, nil
}

func (r *fakeApplicantRepo) CountCompletedByWorker(_ context.Context, workerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.applicants {
		if a.WorkerID == workerID && a.Status == models.ApplicantStatusCompleted {
			n++
		}
	}
	return n, nil
}

// --- vacancy applications ---

type fakeVacancyAppRepo struct {
	mu           sync.Mutex
	applications []*models.VacancyApplication
}

func newFakeVacancyAppRepo() *fakeVacancyAppRepo {
	return &fakeVacancyAppRepo{}
}

func (r *fakeVacancyAppRepo) Create(_ context.Context, application *models.VacancyApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.applications {
		if a.VacancyID == application.VacancyID && a.ApplicantID == application.ApplicantID {
			return repositories.ErrAlreadyApplied
		}
	}
	if application.ID == "" {
		application.ID = uuid.NewString()
	}
	cp := *application
	r.applications = append(r.applications, &cp)
	return nil
}

func (r *fakeVacancyAppRepo) FindByID(_ context.Context, id string) (*models.VacancyApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.applications {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repositories.ErrVacancyApplicationNotFound
}

func (r *fakeVacancyAppRepo) ExistsForVacancyAndApplicant(_ context.Context, vacancyID, applicantID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.applications {
		if a.VacancyID == vacancyID && a.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeVacancyAppRepo) ListByVacancy(_ context.Context, vacancyID string) ([]models.VacancyApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.VacancyApplication{}
	for _, a := range r.applications {
		if a.VacancyID == vacancyID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeVacancyAppRepo) ListByApplicant(_ context.Context, applicantID string) ([]models.VacancyApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.VacancyApplication{}
	for _, a := range r.applications {
		if a.ApplicantID == applicantID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeVacancyAppRepo) UpdateStatus(_ context.Context, id string, status models.VacancyApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.applications {
		if a.ID == id {
			a.Status = status
			return nil
		}
	}
	return repositories.ErrVacancyApplicationNotFound
}

// --- reviews ---

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []*models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{}
}

func (r *fakeReviewRepo) Create(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.reviews {
		if rv.OrderID == review.OrderID && rv.CustomerID == review.CustomerID {
			return repositories.ErrReviewAlreadyExists
		}
	}
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	cp := *review
	r.reviews = append(r.reviews, &cp)
	return nil
}

func (r *fakeReviewRepo) ExistsForOrderAndCustomer(_ context.Context, orderID, customerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.reviews {
		if rv.OrderID == orderID && rv.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) ListByWorker(_ context.Context, workerID string, page, limit int) ([]models.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Review
	for i := len(r.reviews) - 1; i >= 0; i-- {
		if r.reviews[i].WorkerID == workerID {
			matched = append(matched, *r.reviews[i])
		}
	}
	total := int64(len(matched))
	offset := (page - 1) * limit
	if offset >= len(matched) {
		return []models.Review{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeReviewRepo) StatsForWorker(_ context.Context, workerID string) (*repositories.RatingStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := repositories.RatingStats{}
	var sum float64
	for _, rv := range r.reviews {
		if rv.WorkerID == workerID {
			stats.TotalReviews++
			sum += float64(rv.Rating)
		}
	}
	if stats.TotalReviews > 0 {
		stats.AverageRating = sum / float64(stats.TotalReviews)
	}
	return &stats, nil
}

func (r *fakeReviewRepo) StatsForWorkers(ctx context.Context, workerIDs []string) (map[string]repositories.RatingStats, error) {
	out := make(map[string]repositories.RatingStats, len(workerIDs))
	for _, id := range workerIDs {
		stats, _ := r.StatsForWorker(ctx, id)
		if stats.TotalReviews > 0 {
			out[id] = *stats
		}
	}
	return out, nil
}

// --- contact log ---

type fakeContactLogRepo struct {
	mu    sync.Mutex
	views []models.OrderPhoneView
	calls []models.OrderPhoneCall
}

func newFakeContactLogRepo() *fakeContactLogRepo {
	return &fakeContactLogRepo{}
}

func (r *fakeContactLogRepo) LogPhoneView(_ context.Context, view *models.OrderPhoneView) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, *view)
	return nil
}

func (r *fakeContactLogRepo) LogPhoneCall(_ context.Context, call *models.OrderPhoneCall) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, *call)
	return nil
}

// --- notify ---

// captureSMSProvider запоминает последний отправленный код.
type captureSMSProvider struct {
	mu       sync.Mutex
	lastCode string
	fail     bool
}

func (p *captureSMSProvider) SendOTP(_ context.Context, _ string, code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return context.DeadlineExceeded
	}
	p.lastCode = code
	return nil
}

func (p *captureSMSProvider) last() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastCode
}

type captureEmailProvider struct {
	mu       sync.Mutex
	lastCode string
	fail     bool
}

func (p *captureEmailProvider) SendOTP(_ context.Context, _ string, code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return context.DeadlineExceeded
	}
	p.lastCode = code
	return nil
}

func (p *captureEmailProvider) last() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastCode
}

func containsStatus(list []models.OrderStatus, status models.OrderStatus) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}
	return false
}
