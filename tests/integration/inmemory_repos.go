package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"edupay-service/internal/core/domain"
	"edupay-service/internal/core/ports"

	"github.com/google/uuid"
)

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu  sync.RWMutex
	txs map[uuid.UUID]*domain.PaymentTransaction
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{txs: make(map[uuid.UUID]*domain.PaymentTransaction)}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, t *domain.PaymentTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.txs {
		if existing.ReferenceCode == t.ReferenceCode {
			return fmt.Errorf("reference code already exists")
		}
	}
	cp := *t
	r.txs[t.ID] = &cp
	return nil
}

func (r *inMemoryTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.txs[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *inMemoryTransactionRepo) GetByReference(ctx context.Context, referenceCode string) (*domain.PaymentTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.txs {
		if t.ReferenceCode == referenceCode {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryTransactionRepo) GetByProcessorTxID(ctx context.Context, processorTxID string) (*domain.PaymentTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.txs {
		if t.ProcessorTransactionID != nil && *t.ProcessorTransactionID == processorTxID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryTransactionRepo) UpdateState(ctx context.Context, id uuid.UUID, update ports.TransactionStateUpdate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.txs[id]
	if !ok {
		return false, fmt.Errorf("transaction not found")
	}
	changed := t.State != update.State
	t.State = update.State
	if update.ProcessorTransactionID != nil {
		t.ProcessorTransactionID = update.ProcessorTransactionID
	}
	if update.ResponseCode != nil {
		t.ResponseCode = update.ResponseCode
	}
	if update.ResponseMessage != nil {
		t.ResponseMessage = update.ResponseMessage
	}
	t.UpdatedAt = time.Now()
	return changed, nil
}

func (r *inMemoryTransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.PaymentTransaction, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.PaymentTransaction
	for _, t := range r.txs {
		if params.State != nil && t.State != *params.State {
			continue
		}
		if params.Currency != nil && t.Currency != *params.Currency {
			continue
		}
		if params.From != nil && t.CreatedAt.Unix() < *params.From {
			continue
		}
		if params.To != nil && t.CreatedAt.Unix() > *params.To {
			continue
		}
		matched = append(matched, *t)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	page := params.Page
	if page < 1 {
		page = 1
	}
	size := params.PageSize
	if size < 1 {
		size = 20
	}
	start := (page - 1) * size
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *inMemoryTransactionRepo) GetStats(ctx context.Context, periodStart *int64) (*ports.TransactionStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &ports.TransactionStats{}
	for _, t := range r.txs {
		if periodStart != nil && t.CreatedAt.Unix() < *periodStart {
			continue
		}
		stats.TotalTransactions++
		switch t.State {
		case domain.PaymentStatePending:
			stats.Pending++
		case domain.PaymentStateApproved:
			stats.Approved++
			stats.ApprovedRevenue += t.Amount
		case domain.PaymentStateRejected:
			stats.Rejected++
		case domain.PaymentStateError:
			stats.Errored++
		}
	}
	return stats, nil
}

// --- In-Memory User Repo ---

type inMemoryUserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
}

func newInMemoryUserRepo() *inMemoryUserRepo {
	return &inMemoryUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *inMemoryUserRepo) add(u *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
}

func (r *inMemoryUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *inMemoryUserRepo) UpdateExternalUsername(ctx context.Context, id uuid.UUID, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	u.ExternalUsername = &username
	return nil
}

func (r *inMemoryUserRepo) externalUsername(id uuid.UUID) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok || u.ExternalUsername == nil {
		return ""
	}
	return *u.ExternalUsername
}

// --- In-Memory Delivery Repo ---

type inMemoryDeliveryRepo struct {
	mu   sync.RWMutex
	logs map[uuid.UUID]*domain.DeliveryLog
}

func newInMemoryDeliveryRepo() *inMemoryDeliveryRepo {
	return &inMemoryDeliveryRepo{logs: make(map[uuid.UUID]*domain.DeliveryLog)}
}

func (r *inMemoryDeliveryRepo) Create(ctx context.Context, log *domain.DeliveryLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *log
	r.logs[log.ID] = &cp
	return nil
}

func (r *inMemoryDeliveryRepo) Update(ctx context.Context, log *domain.DeliveryLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.logs[log.ID]; !ok {
		return fmt.Errorf("delivery log not found")
	}
	cp := *log
	r.logs[log.ID] = &cp
	return nil
}

func (r *inMemoryDeliveryRepo) GetByTransactionID(ctx context.Context, txID uuid.UUID) ([]domain.DeliveryLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.DeliveryLog
	for _, l := range r.logs {
		if l.TransactionID == txID {
			out = append(out, *l)
		}
	}
	return out, nil
}

// --- In-Memory Audit Repo ---

type inMemoryAuditRepo struct {
	mu      sync.RWMutex
	entries []domain.AuditLog
}

func newInMemoryAuditRepo() *inMemoryAuditRepo {
	return &inMemoryAuditRepo{}
}

func (r *inMemoryAuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *log)
	return nil
}

// --- Stub processor gateway ---

// stubGateway answers every authorization with a canned result, the way
// the sandbox processor would.
type stubGateway struct {
	mu     sync.Mutex
	result ports.PaymentResult
	orders []ports.CheckoutOrder
}

func newStubGateway(result ports.PaymentResult) *stubGateway {
	return &stubGateway{result: result}
}

func (g *stubGateway) Authorize(ctx context.Context, order ports.CheckoutOrder) *ports.PaymentResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.orders = append(g.orders, order)
	cp := g.result
	return &cp
}

// --- Stub LMS client ---

type stubLMS struct {
	mu       sync.Mutex
	nextID   int64
	accounts []ports.NewLMSAccount
	enrolled [][3]int64 // roleID, accountID, courseID
	courses  []domain.Course
}

func newStubLMS(courses []domain.Course) *stubLMS {
	return &stubLMS{nextID: 1000, courses: courses}
}

func (l *stubLMS) CreateUser(ctx context.Context, acct ports.NewLMSAccount) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.accounts = append(l.accounts, acct)
	return l.nextID, nil
}

func (l *stubLMS) CategoryCourses(ctx context.Context, categoryID int64) ([]domain.Course, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.courses, nil
}

func (l *stubLMS) EnrolUser(ctx context.Context, roleID, accountID, courseID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enrolled = append(l.enrolled, [3]int64{roleID, accountID, courseID})
	return nil
}

func (l *stubLMS) createdAccounts() []ports.NewLMSAccount {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ports.NewLMSAccount, len(l.accounts))
	copy(out, l.accounts)
	return out
}

func (l *stubLMS) enrollments() [][3]int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([][3]int64, len(l.enrolled))
	copy(out, l.enrolled)
	return out
}
