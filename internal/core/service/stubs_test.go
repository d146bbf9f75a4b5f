package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[uint]*domain.User
	nextID    uint
	createErr error // if set, Create returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[uint]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	stored.CreatedAt = time.Now().UTC()
	r.byID[stored.ID] = stored
	return cloneUser(stored), nil
}

// add inserts a user directly, bypassing registration.
func (r *stubUserRepo) add(name, email, account string) *domain.User {
	u, _ := r.Create(context.Background(), &domain.User{Name: name, Email: email, PayoutAccountID: account, Role: domain.RoleMember})
	return u
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubProductRepo struct {
	byID    map[uint]*domain.Product
	nextID  uint
	reviews *stubReviewRepo // cascade target on Delete
}

func newStubProductRepo(reviews *stubReviewRepo) *stubProductRepo {
	return &stubProductRepo{byID: make(map[uint]*domain.Product), reviews: reviews}
}

func (r *stubProductRepo) titleTaken(title string, except uint) bool {
	for _, p := range r.byID {
		if p.Title == title && p.ID != except {
			return true
		}
	}
	return false
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if r.titleTaken(p.Title, 0) {
		return nil, domain.ErrDuplicateTitle
	}
	r.nextID++
	stored := *p
	stored.ID = r.nextID
	r.byID[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	out := *p
	return &out, nil
}

func (r *stubProductRepo) List(_ context.Context, titleFilter string) ([]*domain.Product, error) {
	var out []*domain.Product
	needle := strings.ToLower(titleFilter)
	for _, p := range r.byID {
		if needle != "" && !strings.Contains(strings.ToLower(p.Title), needle) {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProductRepo) ListByOwner(_ context.Context, ownerID uint) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.byID {
		if p.OwnerID == ownerID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if _, ok := r.byID[p.ID]; !ok {
		return nil, domain.ErrProductNotFound
	}
	if r.titleTaken(p.Title, p.ID) {
		return nil, domain.ErrDuplicateTitle
	}
	stored := *p
	r.byID[p.ID] = &stored
	out := stored
	return &out, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	if r.reviews != nil {
		for rid, rv := range r.reviews.byID {
			if rv.ProductID == id {
				delete(r.reviews.byID, rid)
			}
		}
	}
	return nil
}

type stubReviewRepo struct {
	byID   map[uint]*domain.Review
	nextID uint
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{byID: make(map[uint]*domain.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, rv *domain.Review) (*domain.Review, error) {
	r.nextID++
	stored := *rv
	stored.ID = r.nextID
	r.byID[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, id uint) (*domain.Review, error) {
	rv, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	out := *rv
	return &out, nil
}

func (r *stubReviewRepo) ListByProduct(_ context.Context, productID uint) ([]domain.Review, error) {
	var out []domain.Review
	for _, rv := range r.byID {
		if rv.ProductID == productID {
			out = append(out, *rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubReviewRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubChatRepo struct {
	byID      map[uint]*domain.Chat
	nextID    uint
	nextMsgID uint
}

func newStubChatRepo() *stubChatRepo {
	return &stubChatRepo{byID: make(map[uint]*domain.Chat)}
}

func cloneChat(c *domain.Chat) *domain.Chat {
	clone := *c
	clone.Messages = append([]domain.Message(nil), c.Messages...)
	return &clone
}

func (r *stubChatRepo) CreateWithMessage(_ context.Context, chat *domain.Chat, first *domain.Message) (*domain.Chat, error) {
	r.nextID++
	r.nextMsgID++
	stored := cloneChat(chat)
	stored.ID = r.nextID
	msg := *first
	msg.ID = r.nextMsgID
	msg.ChatID = stored.ID
	stored.Messages = []domain.Message{msg}
	r.byID[stored.ID] = stored
	return cloneChat(stored), nil
}

func (r *stubChatRepo) FindByID(_ context.Context, id uint) (*domain.Chat, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrChatNotFound
	}
	return cloneChat(c), nil
}

func (r *stubChatRepo) AppendMessage(_ context.Context, msg *domain.Message) (*domain.Message, error) {
	c, ok := r.byID[msg.ChatID]
	if !ok {
		return nil, domain.ErrChatNotFound
	}
	r.nextMsgID++
	stored := *msg
	stored.ID = r.nextMsgID
	c.Messages = append(c.Messages, stored)
	return &stored, nil
}

func (r *stubChatRepo) ListByParticipant(_ context.Context, userID uint) ([]*domain.Chat, error) {
	var out []*domain.Chat
	for _, c := range r.byID {
		if c.SenderID == userID || c.ReceiverID == userID {
			out = append(out, cloneChat(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---------------------------------------------------------------------------
// Payment processor and side-channel stubs
// ---------------------------------------------------------------------------

type stubGateway struct {
	calls []string // operation names in call order

	accountErrs []error // consumed one per CreateConnectedAccount call
	linkErr     error
	priceErr    error
	sessionErr  error

	accountKeys  []string
	priceKeys    []string
	sessionKeys  []string
	priceInput   ports.PriceInput
	sessionInput ports.CheckoutSessionInput
	sessionSeq   int
}

func (g *stubGateway) CreateConnectedAccount(_ context.Context, in ports.ConnectedAccountInput) (string, error) {
	g.calls = append(g.calls, "account")
	g.accountKeys = append(g.accountKeys, in.IdempotencyKey)
	if len(g.accountErrs) > 0 {
		err := g.accountErrs[0]
		g.accountErrs = g.accountErrs[1:]
		if err != nil {
			return "", err
		}
	}
	return "acct_" + strings.SplitN(in.Email, "@", 2)[0], nil
}

func (g *stubGateway) CreateOnboardingLink(_ context.Context, in ports.OnboardingLinkInput) (string, error) {
	g.calls = append(g.calls, "link")
	if g.linkErr != nil {
		return "", g.linkErr
	}
	return "https://connect.example.com/setup/" + in.AccountID, nil
}

func (g *stubGateway) CreatePrice(_ context.Context, in ports.PriceInput) (string, error) {
	g.calls = append(g.calls, "price")
	g.priceInput = in
	g.priceKeys = append(g.priceKeys, in.IdempotencyKey)
	if g.priceErr != nil {
		return "", g.priceErr
	}
	return "price_1", nil
}

func (g *stubGateway) CreateCheckoutSession(_ context.Context, in ports.CheckoutSessionInput) (*ports.RemoteCheckoutSession, error) {
	g.calls = append(g.calls, "session")
	g.sessionInput = in
	g.sessionKeys = append(g.sessionKeys, in.IdempotencyKey)
	if g.sessionErr != nil {
		return nil, g.sessionErr
	}
	g.sessionSeq++
	id := fmt.Sprintf("cs_test_%d", g.sessionSeq)
	return &ports.RemoteCheckoutSession{ID: id, URL: "https://checkout.example.com/" + id}, nil
}

func (g *stubGateway) count(op string) int {
	n := 0
	for _, c := range g.calls {
		if c == op {
			n++
		}
	}
	return n
}

// hangingGateway never answers; every call returns once its context ends.
type hangingGateway struct {
	calls int
}

func (g *hangingGateway) wait(ctx context.Context) error {
	g.calls++
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("call made without a deadline")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (g *hangingGateway) CreateConnectedAccount(ctx context.Context, _ ports.ConnectedAccountInput) (string, error) {
	return "", g.wait(ctx)
}

func (g *hangingGateway) CreateOnboardingLink(ctx context.Context, _ ports.OnboardingLinkInput) (string, error) {
	return "", g.wait(ctx)
}

func (g *hangingGateway) CreatePrice(ctx context.Context, _ ports.PriceInput) (string, error) {
	return "", g.wait(ctx)
}

func (g *hangingGateway) CreateCheckoutSession(ctx context.Context, _ ports.CheckoutSessionInput) (*ports.RemoteCheckoutSession, error) {
	return nil, g.wait(ctx)
}

type stubAudit struct {
	records   map[string]*domain.CheckoutSession
	insertErr error
}

func newStubAudit() *stubAudit {
	return &stubAudit{records: make(map[string]*domain.CheckoutSession)}
}

func (a *stubAudit) Insert(_ context.Context, s *domain.CheckoutSession) error {
	if a.insertErr != nil {
		return a.insertErr
	}
	clone := *s
	a.records[s.SessionID] = &clone
	return nil
}

func (a *stubAudit) FindBySessionID(_ context.Context, sessionID string) (*domain.CheckoutSession, error) {
	s, ok := a.records[sessionID]
	if !ok {
		return nil, domain.ErrCheckoutNotFound
	}
	clone := *s
	return &clone, nil
}

func (a *stubAudit) MarkReturned(_ context.Context, sessionID string, at time.Time) error {
	s, ok := a.records[sessionID]
	if !ok {
		return domain.ErrCheckoutNotFound
	}
	s.Stage = domain.CheckoutReturned
	s.ReturnedAt = &at
	return nil
}

type stubReplay struct {
	entries map[string]*domain.CheckoutSession
}

func newStubReplay() *stubReplay {
	return &stubReplay{entries: make(map[string]*domain.CheckoutSession)}
}

func (r *stubReplay) Get(_ context.Context, key string) (*domain.CheckoutSession, error) {
	s, ok := r.entries[key]
	if !ok {
		return nil, nil
	}
	clone := *s
	return &clone, nil
}

func (r *stubReplay) Put(_ context.Context, key string, s *domain.CheckoutSession) error {
	clone := *s
	r.entries[key] = &clone
	return nil
}

type stubNotifier struct {
	sent []string // seller emails
	err  error

	deadlines []bool // whether each call carried a deadline
	hang      bool   // block until the context ends
}

func (n *stubNotifier) CheckoutReturned(ctx context.Context, seller *domain.User, _ *domain.CheckoutSession) error {
	_, ok := ctx.Deadline()
	n.deadlines = append(n.deadlines, ok)
	if n.hang {
		<-ctx.Done()
		return ctx.Err()
	}
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, seller.Email)
	return nil
}

type stubRevoker struct {
	revoked map[string]time.Time
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Time)}
}

func (r *stubRevoker) Revoke(_ context.Context, sessionID string, until time.Time) error {
	r.revoked[sessionID] = until
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	_, ok := r.revoked[sessionID]
	return ok, nil
}

var errProcessorDown = errors.New("processor unavailable")

func member(u *domain.User) domain.Actor {
	return domain.Actor{ID: u.ID, Name: u.Name, Role: u.Role}
}

var admin = domain.Actor{ID: 999, Name: "Admin", Role: domain.RoleAdmin}
