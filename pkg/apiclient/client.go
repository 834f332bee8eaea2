// Package apiclient is the typed client for the cooperative's REST API. It
// owns the bearer-token lifecycle: tokens are attached to every request while
// present in the store, and a 401 on any authenticated call clears the store
// and notifies the configured callback so the caller can re-authenticate.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenStore
	onUnauthorized func()
}

type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTokenStore overrides the default in-memory token store.
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) {
		c.tokens = store
	}
}

// WithUnauthorizedHandler registers a callback invoked after the session is
// torn down on a 401. It runs at most once per failed call and never for
// Login itself.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		tokens:     NewMemoryTokenStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges credentials for a bearer token and stores it. A rejected
// login leaves the store untouched.
func (c *Client) Login(ctx context.Context, username, password string) (AuthResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	var auth AuthResponse
	err := c.send(ctx, http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &auth, false)
	if err != nil {
		return AuthResponse{}, err
	}
	c.tokens.SetToken(auth.AccessToken)
	return auth, nil
}

// Logout drops the stored token. The server keeps no session state.
func (c *Client) Logout() {
	c.tokens.Clear()
}

func (c *Client) Register(ctx context.Context, req UserCreate) (User, error) {
	var user User
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", req, &user)
	return user, err
}

func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var user User
	err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, &user)
	return user, err
}

func (c *Client) ListMembers(ctx context.Context) ([]Member, error) {
	var members []Member
	err := c.doJSON(ctx, http.MethodGet, "/api/members/", nil, &members)
	return members, err
}

func (c *Client) GetMember(ctx context.Context, memberID string) (Member, error) {
	var member Member
	err := c.doJSON(ctx, http.MethodGet, "/api/members/"+memberID, nil, &member)
	return member, err
}

func (c *Client) CreateMember(ctx context.Context, req MemberCreate) (Member, error) {
	var member Member
	err := c.doJSON(ctx, http.MethodPost, "/api/members/", req, &member)
	return member, err
}

func (c *Client) UpdateMember(ctx context.Context, memberID string, req MemberUpdate) (Member, error) {
	var member Member
	err := c.doJSON(ctx, http.MethodPut, "/api/members/"+memberID, req, &member)
	return member, err
}

func (c *Client) DeleteMember(ctx context.Context, memberID string) (Message, error) {
	var msg Message
	err := c.doJSON(ctx, http.MethodDelete, "/api/members/"+memberID, nil, &msg)
	return msg, err
}

func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	err := c.doJSON(ctx, http.MethodGet, "/api/products/", nil, &products)
	return products, err
}

func (c *Client) GetProduct(ctx context.Context, productID string) (Product, error) {
	var product Product
	err := c.doJSON(ctx, http.MethodGet, "/api/products/"+productID, nil, &product)
	return product, err
}

func (c *Client) CreateProduct(ctx context.Context, req ProductCreate) (Product, error) {
	var product Product
	err := c.doJSON(ctx, http.MethodPost, "/api/products/", req, &product)
	return product, err
}

func (c *Client) UpdateProduct(ctx context.Context, productID string, req ProductUpdate) (Product, error) {
	var product Product
	err := c.doJSON(ctx, http.MethodPut, "/api/products/"+productID, req, &product)
	return product, err
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) (Message, error) {
	var msg Message
	err := c.doJSON(ctx, http.MethodDelete, "/api/products/"+productID, nil, &msg)
	return msg, err
}

func (c *Client) ListHarvests(ctx context.Context) ([]Harvest, error) {
	var harvests []Harvest
	err := c.doJSON(ctx, http.MethodGet, "/api/harvests/", nil, &harvests)
	return harvests, err
}

func (c *Client) GetHarvest(ctx context.Context, harvestID string) (Harvest, error) {
	var harvest Harvest
	err := c.doJSON(ctx, http.MethodGet, "/api/harvests/"+harvestID, nil, &harvest)
	return harvest, err
}

func (c *Client) CreateHarvest(ctx context.Context, req HarvestCreate) (Harvest, error) {
	var harvest Harvest
	err := c.doJSON(ctx, http.MethodPost, "/api/harvests/", req, &harvest)
	return harvest, err
}

func (c *Client) ListContracts(ctx context.Context) ([]Contract, error) {
	var contracts []Contract
	err := c.doJSON(ctx, http.MethodGet, "/api/contracts/", nil, &contracts)
	return contracts, err
}

func (c *Client) GetContract(ctx context.Context, contractID string) (Contract, error) {
	var contract Contract
	err := c.doJSON(ctx, http.MethodGet, "/api/contracts/"+contractID, nil, &contract)
	return contract, err
}

func (c *Client) CreateContract(ctx context.Context, req ContractCreate) (Contract, error) {
	var contract Contract
	err := c.doJSON(ctx, http.MethodPost, "/api/contracts/", req, &contract)
	return contract, err
}

func (c *Client) UpdateContractStatus(ctx context.Context, contractID string, status ContractStatus) (Contract, error) {
	var contract Contract
	payload := map[string]ContractStatus{"status": status}
	err := c.doJSON(ctx, http.MethodPut, "/api/contracts/"+contractID+"/status", payload, &contract)
	return contract, err
}

func (c *Client) ListTransactions(ctx context.Context, filter TransactionFilter) ([]FinancialTransaction, error) {
	query := url.Values{}
	if filter.Type != "" {
		query.Set("type", string(filter.Type))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		query.Set("offset", strconv.Itoa(filter.Offset))
	}
	path := "/api/finance/transactions"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var transactions []FinancialTransaction
	err := c.doJSON(ctx, http.MethodGet, path, nil, &transactions)
	return transactions, err
}

func (c *Client) CreateTransaction(ctx context.Context, req TransactionCreate) (FinancialTransaction, error) {
	var transaction FinancialTransaction
	err := c.doJSON(ctx, http.MethodPost, "/api/finance/transactions", req, &transaction)
	return transaction, err
}

func (c *Client) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	err := c.doJSON(ctx, http.MethodGet, "/api/dashboard/stats", nil, &stats)
	return stats, err
}

// doJSON marshals payload (if any), sends the request with the stored token
// attached, and decodes a 2xx body into out.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}
	return c.send(ctx, method, path, body, "application/json", out, true)
}

// send is the single request path. teardown selects the 401 behavior: every
// call except Login clears the session and fires the callback when the
// server rejects its token.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, out any, teardown bool) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized && teardown {
		c.tokens.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &APIError{StatusCode: resp.StatusCode, Body: respBody}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: respBody}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
