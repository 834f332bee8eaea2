package apiclient

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"htxagri/internal/auth"
	"htxagri/internal/config"
	"htxagri/internal/handlers"
	"htxagri/internal/models"
	"htxagri/internal/store"
	"htxagri/internal/websocket"

	"github.com/jmoiron/sqlx"
)

// The round-trip tests run the client against the real router backed by
// in-memory stores, so the request path, auth middleware, and JSON contracts
// are exercised end to end.

type memDB struct{}

func (memDB) GetContext(context.Context, any, string, ...any) error    { return nil }
func (memDB) SelectContext(context.Context, any, string, ...any) error { return nil }
func (memDB) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, nil
}

type memTxRunner struct{}

func (memTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	return fn(nil)
}

type memUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func (s *memUserStore) Create(_ context.Context, _ store.Execer, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, sql.ErrNoRows
}

func (s *memUserStore) GetByID(_ context.Context, userID string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return models.User{}, sql.ErrNoRows
	}
	return user, nil
}

func (s *memUserStore) GetRole(ctx context.Context, userID string) (string, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

type memMemberStore struct {
	mu      sync.Mutex
	members map[string]models.Member
}

func (s *memMemberStore) Create(_ context.Context, _ store.Execer, member models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	member.CreatedAt = time.Now().UTC()
	s.members[member.ID] = member
	return nil
}

func (s *memMemberStore) List(context.Context) ([]models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	members := make([]models.Member, 0, len(s.members))
	for _, member := range s.members {
		members = append(members, member)
	}
	return members, nil
}

func (s *memMemberStore) GetByID(_ context.Context, memberID string) (models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	member, ok := s.members[memberID]
	if !ok {
		return models.Member{}, sql.ErrNoRows
	}
	return member, nil
}

func (s *memMemberStore) Update(_ context.Context, _ store.Execer, member models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.members[member.ID]
	if !ok {
		return sql.ErrNoRows
	}
	member.CreatedAt = existing.CreatedAt
	s.members[member.ID] = member
	return nil
}

func (s *memMemberStore) Delete(_ context.Context, _ store.Execer, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[memberID]; !ok {
		return sql.ErrNoRows
	}
	delete(s.members, memberID)
	return nil
}

type memProductStore struct {
	mu       sync.Mutex
	products map[string]models.Product
}

func (s *memProductStore) Create(_ context.Context, _ store.Execer, product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product.CreatedAt = time.Now().UTC()
	s.products[product.ID] = product
	return nil
}

func (s *memProductStore) List(context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make([]models.Product, 0, len(s.products))
	for _, product := range s.products {
		products = append(products, product)
	}
	return products, nil
}

func (s *memProductStore) GetByID(_ context.Context, productID string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[productID]
	if !ok {
		return models.Product{}, sql.ErrNoRows
	}
	return product, nil
}

func (s *memProductStore) Update(_ context.Context, _ store.Execer, product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		return sql.ErrNoRows
	}
	s.products[product.ID] = product
	return nil
}

func (s *memProductStore) Delete(_ context.Context, _ store.Execer, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[productID]; !ok {
		return sql.ErrNoRows
	}
	delete(s.products, productID)
	return nil
}

type memHarvestStore struct {
	mu       sync.Mutex
	harvests map[string]models.Harvest
}

func (s *memHarvestStore) Create(_ context.Context, _ store.Execer, harvest models.Harvest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	harvest.CreatedAt = time.Now().UTC()
	s.harvests[harvest.ID] = harvest
	return nil
}

func (s *memHarvestStore) List(context.Context) ([]models.Harvest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	harvests := make([]models.Harvest, 0, len(s.harvests))
	for _, harvest := range s.harvests {
		harvests = append(harvests, harvest)
	}
	return harvests, nil
}

func (s *memHarvestStore) GetByID(_ context.Context, harvestID string) (models.Harvest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	harvest, ok := s.harvests[harvestID]
	if !ok {
		return models.Harvest{}, sql.ErrNoRows
	}
	return harvest, nil
}

type memContractStore struct {
	mu        sync.Mutex
	contracts map[string]models.Contract
	items     map[string][]models.ContractItem
}

func (s *memContractStore) Create(_ context.Context, _ store.Execer, contract models.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	contract.CreatedAt = time.Now().UTC()
	contract.Items = nil
	s.contracts[contract.ID] = contract
	return nil
}

func (s *memContractStore) InsertItems(_ context.Context, _ store.Execer, items []models.ContractItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		s.items[item.ContractID] = append(s.items[item.ContractID], item)
	}
	return nil
}

func (s *memContractStore) List(context.Context) ([]models.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contracts := make([]models.Contract, 0, len(s.contracts))
	for _, contract := range s.contracts {
		contracts = append(contracts, contract)
	}
	return contracts, nil
}

func (s *memContractStore) GetByID(_ context.Context, contractID string) (models.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contract, ok := s.contracts[contractID]
	if !ok {
		return models.Contract{}, sql.ErrNoRows
	}
	return contract, nil
}

func (s *memContractStore) ItemsByContract(_ context.Context, contractID string) ([]models.ContractItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[contractID], nil
}

func (s *memContractStore) UpdateStatus(_ context.Context, _ store.Execer, contractID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	contract, ok := s.contracts[contractID]
	if !ok {
		return sql.ErrNoRows
	}
	contract.Status = status
	s.contracts[contractID] = contract
	return nil
}

type memFinanceStore struct {
	mu           sync.Mutex
	transactions []models.FinancialTransaction
}

func (s *memFinanceStore) Create(_ context.Context, _ store.Execer, transaction models.FinancialTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	transaction.CreatedAt = time.Now().UTC()
	s.transactions = append(s.transactions, transaction)
	return nil
}

func (s *memFinanceStore) List(_ context.Context, txType string, limit, offset int) ([]models.FinancialTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var filtered []models.FinancialTransaction
	for _, transaction := range s.transactions {
		if txType == "" || transaction.TransactionType == txType {
			filtered = append(filtered, transaction)
		}
	}
	if offset >= len(filtered) {
		return nil, nil
	}
	filtered = filtered[offset:]
	if limit < len(filtered) {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

type memDashboardStore struct {
	members *memMemberStore
}

func (s *memDashboardStore) Stats(context.Context) (models.DashboardStats, error) {
	s.members.mu.Lock()
	defer s.members.mu.Unlock()
	return models.DashboardStats{TotalMembers: int64(len(s.members.members))}, nil
}

type testBackend struct {
	server  *httptest.Server
	users   *memUserStore
	members *memMemberStore
	manager models.User
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	passwordHash, err := auth.HashPassword("secret")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	manager := models.User{
		ID:           "user-manager",
		Username:     "nguyenvana",
		Email:        "vana@htx.vn",
		PasswordHash: passwordHash,
		FullName:     "Nguyen Van A",
		Role:         models.RoleManager,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	users := &memUserStore{users: map[string]models.User{manager.ID: manager}}
	members := &memMemberStore{members: map[string]models.Member{}}
	cfg := config.Config{
		AppEnv:         "test",
		JWTSecret:      "secret",
		TokenTTL:       time.Minute,
		AllowedOrigins: "*",
	}
	handler := handlers.New(
		memDB{},
		memTxRunner{},
		cfg,
		users,
		members,
		&memProductStore{products: map[string]models.Product{}},
		&memHarvestStore{harvests: map[string]models.Harvest{}},
		&memContractStore{contracts: map[string]models.Contract{}, items: map[string][]models.ContractItem{}},
		&memFinanceStore{},
		&memDashboardStore{members: members},
		websocket.NewHub(),
	)
	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)
	return &testBackend{server: server, users: users, members: members, manager: manager}
}

func loggedInClient(t *testing.T, backend *testBackend) *Client {
	t.Helper()
	client := New(backend.server.URL)
	if _, err := client.Login(context.Background(), "nguyenvana", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return client
}

func TestLoginAndCurrentUserRoundTrip(t *testing.T) {
	backend := newTestBackend(t)
	client := New(backend.server.URL)

	auth, err := client.Login(context.Background(), "nguyenvana", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if auth.TokenType != "bearer" || auth.AccessToken == "" {
		t.Fatalf("unexpected auth response: %#v", auth)
	}

	user, err := client.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("current user failed: %v", err)
	}
	if user.Username != "nguyenvana" {
		t.Fatalf("expected nguyenvana, got %q", user.Username)
	}
}

func TestCurrentUserWithoutLogin(t *testing.T) {
	backend := newTestBackend(t)
	client := New(backend.server.URL)
	_, err := client.CurrentUser(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestMemberLifecycleRoundTrip(t *testing.T) {
	backend := newTestBackend(t)
	client := loggedInClient(t, backend)
	ctx := context.Background()

	created, err := client.CreateMember(ctx, MemberCreate{
		UserID:       backend.manager.ID,
		MemberCode:   "HTX-001",
		JoinDate:     "2024-01-15",
		ShareCapital: 5000000,
	})
	if err != nil {
		t.Fatalf("create member failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected server-assigned id")
	}
	if !created.IsActive {
		t.Fatalf("new member must be active")
	}

	fetched, err := client.GetMember(ctx, created.ID)
	if err != nil {
		t.Fatalf("get member failed: %v", err)
	}
	if fetched.MemberCode != "HTX-001" || fetched.ShareCapital != 5000000 || fetched.JoinDate != "2024-01-15" {
		t.Fatalf("round-trip mismatch: %#v", fetched)
	}

	// partial update: only share_capital changes
	newCapital := int64(7000000)
	updated, err := client.UpdateMember(ctx, created.ID, MemberUpdate{ShareCapital: &newCapital})
	if err != nil {
		t.Fatalf("update member failed: %v", err)
	}
	if updated.ShareCapital != 7000000 {
		t.Fatalf("expected share_capital 7000000, got %d", updated.ShareCapital)
	}
	if updated.MemberCode != "HTX-001" || updated.JoinDate != "2024-01-15" || !updated.IsActive {
		t.Fatalf("partial update clobbered unrelated fields: %#v", updated)
	}

	msg, err := client.DeleteMember(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete member failed: %v", err)
	}
	if msg.Message != "Member deleted successfully" {
		t.Fatalf("unexpected message: %q", msg.Message)
	}

	_, err = client.GetMember(ctx, created.ID)
	if !IsNotFound(err) {
		t.Fatalf("expected 404 after delete, got %v", err)
	}
}

func TestExpiredTokenTearsDownSession(t *testing.T) {
	backend := newTestBackend(t)
	expired, err := auth.GenerateToken("secret", backend.manager.ID, -time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	store := NewMemoryTokenStore()
	store.SetToken(expired)
	callbacks := 0
	client := New(backend.server.URL,
		WithTokenStore(store),
		WithUnauthorizedHandler(func() { callbacks++ }),
	)
	_, err = client.ListMembers(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("expected 401, got %v", err)
	}
	if store.Token() != "" {
		t.Fatalf("expected token cleared")
	}
	if callbacks != 1 {
		t.Fatalf("expected callback once, fired %d times", callbacks)
	}

	// re-login recovers the session
	if _, err := client.Login(context.Background(), "nguyenvana", "secret"); err != nil {
		t.Fatalf("re-login failed: %v", err)
	}
	if _, err := client.ListMembers(context.Background()); err != nil {
		t.Fatalf("list after re-login failed: %v", err)
	}
}

func TestContractStatusRoundTrip(t *testing.T) {
	backend := newTestBackend(t)
	client := loggedInClient(t, backend)
	ctx := context.Background()

	created, err := client.CreateContract(ctx, ContractCreate{
		ContractCode: "HD-2024-001",
		MemberID:     "mem-1",
		CustomerID:   "cust-1",
		Title:        "Rice supply Q3",
		StartDate:    "2024-07-01",
		EndDate:      "2024-09-30",
	})
	if err != nil {
		t.Fatalf("create contract failed: %v", err)
	}
	if created.Status != ContractDraft {
		t.Fatalf("expected draft, got %s", created.Status)
	}

	activated, err := client.UpdateContractStatus(ctx, created.ID, ContractActive)
	if err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if activated.Status != ContractActive {
		t.Fatalf("expected active, got %s", activated.Status)
	}

	// draft is not reachable from active
	_, err = client.UpdateContractStatus(ctx, created.ID, ContractDraft)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid transition, got %v", err)
	}
}
