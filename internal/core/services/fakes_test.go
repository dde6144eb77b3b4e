package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/Aquaier/Savoo/internal/core/domain"
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string {
	return &s
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// memoryRateRepo is an in-memory exchange rate table.
type memoryRateRepo struct {
	mu           sync.Mutex
	rates        map[string]domain.ExchangeRate
	replaceCalls int
	findErr      error
}

func newMemoryRateRepo(seed map[string]string) *memoryRateRepo {
	r := &memoryRateRepo{rates: map[string]domain.ExchangeRate{}}
	for code, rate := range seed {
		r.rates[code] = domain.ExchangeRate{CurrencyCode: code, RateToBase: dec(rate)}
	}
	return r
}

func (r *memoryRateRepo) FindExchangeRate(_ context.Context, code string) (*domain.ExchangeRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	rate, ok := r.rates[code]
	if !ok {
		return nil, apperrors.NewNotFoundError("exchange rate " + code)
	}
	return &rate, nil
}

func (r *memoryRateRepo) ListExchangeRates(_ context.Context) ([]domain.ExchangeRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ExchangeRate, 0, len(r.rates))
	for _, rate := range r.rates {
		out = append(out, rate)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrencyCode < out[j].CurrencyCode })
	return out, nil
}

func (r *memoryRateRepo) ReplaceExchangeRates(_ context.Context, rates []domain.ExchangeRate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaceCalls++
	r.rates = make(map[string]domain.ExchangeRate, len(rates))
	for _, rate := range rates {
		r.rates[rate.CurrencyCode] = rate
	}
	return nil
}

func (r *memoryRateRepo) rate(code string) (decimal.Decimal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rate, ok := r.rates[code]
	return rate.RateToBase, ok
}

func (r *memoryRateRepo) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rates)
}

// MockRateProvider records refresh requests.
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) RefreshRates(ctx context.Context, force bool) {
	m.Called(ctx, force)
}

// noopRateProvider never touches the table.
type noopRateProvider struct{}

func (noopRateProvider) RefreshRates(context.Context, bool) {}

// memoryBudgetRepo stores budgets and honors the notification claim.
type memoryBudgetRepo struct {
	mu      sync.Mutex
	budgets map[string]domain.Budget
	claims  int
}

func newMemoryBudgetRepo(budgets ...domain.Budget) *memoryBudgetRepo {
	r := &memoryBudgetRepo{budgets: map[string]domain.Budget{}}
	for _, b := range budgets {
		r.budgets[b.BudgetID] = b
	}
	return r
}

func (r *memoryBudgetRepo) FindBudgetByID(_ context.Context, userID, budgetID string) (*domain.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.budgets[budgetID]
	if !ok || b.UserID != userID {
		return nil, apperrors.NewNotFoundError("budget " + budgetID)
	}
	return &b, nil
}

func (r *memoryBudgetRepo) ListBudgets(_ context.Context, userID string) ([]domain.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Budget
	for _, b := range r.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BudgetID < out[j].BudgetID })
	return out, nil
}

func (r *memoryBudgetRepo) ListRecentBudgets(ctx context.Context, userID string, limit int) ([]domain.Budget, error) {
	all, _ := r.ListBudgets(ctx, userID)
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memoryBudgetRepo) SaveBudget(_ context.Context, b domain.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.budgets[b.BudgetID] = b
	return nil
}

func (r *memoryBudgetRepo) UpdateBudget(_ context.Context, b domain.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.budgets[b.BudgetID]; !ok {
		return apperrors.NewNotFoundError("budget " + b.BudgetID)
	}
	r.budgets[b.BudgetID] = b
	return nil
}

func (r *memoryBudgetRepo) DeleteBudget(_ context.Context, userID, budgetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.budgets[budgetID]
	if !ok || b.UserID != userID {
		return apperrors.NewNotFoundError("budget " + budgetID)
	}
	delete(r.budgets, budgetID)
	return nil
}

func (r *memoryBudgetRepo) ClaimBudgetNotification(_ context.Context, budgetID string, at, dayStart time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.budgets[budgetID]
	if !ok {
		return false, nil
	}
	if b.LastNotifiedAt != nil && !b.LastNotifiedAt.Before(dayStart) {
		return false, nil
	}
	stamp := at
	b.LastNotifiedAt = &stamp
	r.budgets[budgetID] = b
	r.claims++
	return true, nil
}

func (r *memoryBudgetRepo) get(id string) domain.Budget {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.budgets[id]
}

// memoryTxnRepo is an in-memory transaction table.
type memoryTxnRepo struct {
	mu   sync.Mutex
	txns []domain.Transaction
}

func (r *memoryTxnRepo) FindTransactionByID(_ context.Context, userID, id string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.txns {
		if t.TransactionID == id && t.UserID == userID {
			return &t, nil
		}
	}
	return nil, apperrors.NewNotFoundError("transaction " + id)
}

func (r *memoryTxnRepo) ListTransactions(_ context.Context, userID string, f domain.TransactionFilter) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Transaction
	for _, t := range r.txns {
		switch {
		case t.UserID != userID,
			f.From != nil && t.OccurredOn.Before(*f.From),
			f.To != nil && t.OccurredOn.After(*f.To),
			f.Type != nil && t.Type != *f.Type,
			f.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *f.CategoryID):
			continue
		}
		if f.AfterDate != nil {
			older := t.OccurredOn.Before(*f.AfterDate) ||
				(t.OccurredOn.Equal(*f.AfterDate) && t.CreatedAt.Before(*f.AfterCreatedAt))
			if !older {
				continue
			}
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OccurredOn.Equal(out[j].OccurredOn) {
			return out[i].OccurredOn.After(out[j].OccurredOn)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *memoryTxnRepo) ListExpensesBetween(_ context.Context, userID string, from, to time.Time) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Transaction
	for _, t := range r.txns {
		if t.UserID == userID && t.Type == domain.TransactionExpense && !t.OccurredOn.Before(from) && !t.OccurredOn.After(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memoryTxnRepo) SaveTransaction(_ context.Context, t domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txns = append(r.txns, t)
	return nil
}

func (r *memoryTxnRepo) SaveTransactionsInTx(_ context.Context, _ pgx.Tx, txns []domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txns = append(r.txns, txns...)
	return nil
}

func (r *memoryTxnRepo) UpdateTransaction(_ context.Context, t domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.txns {
		if r.txns[i].TransactionID == t.TransactionID {
			r.txns[i] = t
			return nil
		}
	}
	return apperrors.NewNotFoundError("transaction " + t.TransactionID)
}

func (r *memoryTxnRepo) DeleteTransaction(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.txns {
		if r.txns[i].TransactionID == id && r.txns[i].UserID == userID {
			r.txns = append(r.txns[:i], r.txns[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("transaction " + id)
}

// stubCategoryReader knows a fixed set of category IDs per user.
type stubCategoryReader struct {
	owned map[string]string // categoryID -> userID
}

func (r *stubCategoryReader) FindCategoryByID(_ context.Context, userID, categoryID string) (*domain.Category, error) {
	if owner, ok := r.owned[categoryID]; ok && owner == userID {
		return &domain.Category{CategoryID: categoryID, UserID: userID, Name: "cat-" + categoryID}, nil
	}
	return nil, apperrors.NewNotFoundError("category " + categoryID)
}

func (r *stubCategoryReader) ListCategories(_ context.Context, userID string, _ *domain.CategoryType) ([]domain.Category, error) {
	var out []domain.Category
	for id, owner := range r.owned {
		if owner == userID {
			out = append(out, domain.Category{CategoryID: id, UserID: userID, Name: "cat-" + id})
		}
	}
	return out, nil
}

// stubUserReader resolves display currencies from a fixed default.
type stubUserReader struct {
	defaultCurrency string
}

func (u stubUserReader) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	return &domain.User{UserID: userID, DefaultCurrency: u.defaultCurrency}, nil
}

func (u stubUserReader) DisplayCurrency(_ context.Context, _ string, requested string) (string, error) {
	return domain.NormalizeCurrencyCode(requested, u.defaultCurrency), nil
}

// MockMaterializer records recurring materialization requests.
type MockMaterializer struct {
	mock.Mock
}

func (m *MockMaterializer) Materialize(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// memoryGoalRepo keeps goals and contributions in memory. Begin snapshots the
// state and an uncommitted Rollback restores it.
type memoryGoalRepo struct {
	goals         map[string]domain.SavingsGoal
	contributions map[string][]domain.SavingsGoalContribution

	snapshot *memoryGoalRepo
	commits  int
	rollback int

	failContributionSave error
}

func newMemoryGoalRepo(goals ...domain.SavingsGoal) *memoryGoalRepo {
	r := &memoryGoalRepo{
		goals:         map[string]domain.SavingsGoal{},
		contributions: map[string][]domain.SavingsGoalContribution{},
	}
	for _, g := range goals {
		r.goals[g.GoalID] = g
	}
	return r
}

func (r *memoryGoalRepo) clone() *memoryGoalRepo {
	c := newMemoryGoalRepo()
	for id, g := range r.goals {
		c.goals[id] = g
	}
	for id, cs := range r.contributions {
		c.contributions[id] = append([]domain.SavingsGoalContribution(nil), cs...)
	}
	return c
}

func (r *memoryGoalRepo) Begin(context.Context) (pgx.Tx, error) {
	r.snapshot = r.clone()
	return nil, nil
}

func (r *memoryGoalRepo) Commit(context.Context, pgx.Tx) error {
	r.snapshot = nil
	r.commits++
	return nil
}

func (r *memoryGoalRepo) Rollback(context.Context, pgx.Tx) error {
	if r.snapshot != nil {
		r.goals, r.contributions = r.snapshot.goals, r.snapshot.contributions
		r.snapshot = nil
		r.rollback++
	}
	return nil
}

func (r *memoryGoalRepo) FindGoalByID(_ context.Context, userID, goalID string) (*domain.SavingsGoal, error) {
	g, ok := r.goals[goalID]
	if !ok || g.UserID != userID {
		return nil, apperrors.NewNotFoundError("savings goal " + goalID)
	}
	return &g, nil
}

func (r *memoryGoalRepo) ListGoals(_ context.Context, userID string) ([]domain.SavingsGoal, error) {
	var out []domain.SavingsGoal
	for _, g := range r.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GoalID < out[j].GoalID })
	return out, nil
}

func (r *memoryGoalRepo) ListContributions(_ context.Context, goalID string) ([]domain.SavingsGoalContribution, error) {
	return append([]domain.SavingsGoalContribution(nil), r.contributions[goalID]...), nil
}

func (r *memoryGoalRepo) ContributionTotals(_ context.Context, goalIDs []string) (map[string]portsrepo.ContributionTotal, error) {
	out := make(map[string]portsrepo.ContributionTotal, len(goalIDs))
	for _, id := range goalIDs {
		total := portsrepo.ContributionTotal{Sum: decimal.Zero}
		for _, c := range r.contributions[id] {
			total.Sum = total.Sum.Add(c.Amount)
			total.Count++
		}
		out[id] = total
	}
	return out, nil
}

func (r *memoryGoalRepo) SaveGoalInTx(_ context.Context, _ pgx.Tx, g domain.SavingsGoal) error {
	r.goals[g.GoalID] = g
	return nil
}

func (r *memoryGoalRepo) UpdateGoal(_ context.Context, g domain.SavingsGoal) error {
	existing, ok := r.goals[g.GoalID]
	if !ok {
		return apperrors.NewNotFoundError("savings goal " + g.GoalID)
	}
	g.CurrentAmount = existing.CurrentAmount
	r.goals[g.GoalID] = g
	return nil
}

func (r *memoryGoalRepo) DeleteGoal(_ context.Context, userID, goalID string) error {
	g, ok := r.goals[goalID]
	if !ok || g.UserID != userID {
		return apperrors.NewNotFoundError("savings goal " + goalID)
	}
	delete(r.goals, goalID)
	delete(r.contributions, goalID)
	return nil
}

func (r *memoryGoalRepo) FindGoalForUpdate(ctx context.Context, _ pgx.Tx, userID, goalID string) (*domain.SavingsGoal, error) {
	return r.FindGoalByID(ctx, userID, goalID)
}

func (r *memoryGoalRepo) UpdateGoalAmountInTx(_ context.Context, _ pgx.Tx, goalID string, amount decimal.Decimal, at time.Time) error {
	g := r.goals[goalID]
	g.CurrentAmount = amount
	g.LastUpdatedAt = at
	r.goals[goalID] = g
	return nil
}

func (r *memoryGoalRepo) FindContributionForUpdate(_ context.Context, _ pgx.Tx, goalID, contributionID string) (*domain.SavingsGoalContribution, error) {
	for _, c := range r.contributions[goalID] {
		if c.ContributionID == contributionID {
			return &c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("contribution " + contributionID)
}

func (r *memoryGoalRepo) SaveContributionInTx(_ context.Context, _ pgx.Tx, c domain.SavingsGoalContribution) error {
	if r.failContributionSave != nil {
		return r.failContributionSave
	}
	r.contributions[c.GoalID] = append(r.contributions[c.GoalID], c)
	return nil
}

func (r *memoryGoalRepo) UpdateContributionInTx(_ context.Context, _ pgx.Tx, c domain.SavingsGoalContribution) error {
	cs := r.contributions[c.GoalID]
	for i := range cs {
		if cs[i].ContributionID == c.ContributionID {
			cs[i] = c
			return nil
		}
	}
	return apperrors.NewNotFoundError("contribution " + c.ContributionID)
}

func (r *memoryGoalRepo) DeleteContributionInTx(_ context.Context, _ pgx.Tx, goalID, contributionID string) error {
	cs := r.contributions[goalID]
	for i := range cs {
		if cs[i].ContributionID == contributionID {
			r.contributions[goalID] = append(cs[:i:i], cs[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("contribution " + contributionID)
}

// memoryCategoryRepo is an in-memory category table.
type memoryCategoryRepo struct {
	mu         sync.Mutex
	categories []domain.Category
	saveErr    error
}

func (r *memoryCategoryRepo) FindCategoryByID(_ context.Context, userID, categoryID string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.CategoryID == categoryID && c.UserID == userID {
			return &c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("category " + categoryID)
}

func (r *memoryCategoryRepo) ListCategories(_ context.Context, userID string, t *domain.CategoryType) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Category
	for _, c := range r.categories {
		if c.UserID == userID && (t == nil || c.Type == *t) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryCategoryRepo) SaveCategory(_ context.Context, c domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.categories = append(r.categories, c)
	return nil
}

func (r *memoryCategoryRepo) SaveCategories(_ context.Context, cs []domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	for _, c := range cs {
		exists := false
		for _, existing := range r.categories {
			if existing.UserID == c.UserID && existing.Name == c.Name {
				exists = true
				break
			}
		}
		if !exists {
			r.categories = append(r.categories, c)
		}
	}
	return nil
}

func (r *memoryCategoryRepo) UpdateCategory(_ context.Context, c domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.categories {
		if r.categories[i].CategoryID == c.CategoryID {
			r.categories[i] = c
			return nil
		}
	}
	return apperrors.NewNotFoundError("category " + c.CategoryID)
}

func (r *memoryCategoryRepo) DeleteCategory(_ context.Context, userID, categoryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.categories {
		if r.categories[i].CategoryID == categoryID && r.categories[i].UserID == userID {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("category " + categoryID)
}

// memoryBudgetTypeRepo is an in-memory budget type catalogue with the
// per-user unique name constraint.
type memoryBudgetTypeRepo struct {
	mu    sync.Mutex
	types []domain.BudgetType
}

func (r *memoryBudgetTypeRepo) ListBudgetTypes(_ context.Context, userID string) ([]domain.BudgetType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.BudgetType
	for _, t := range r.types {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryBudgetTypeRepo) FindBudgetTypeByName(_ context.Context, userID, name string) (*domain.BudgetType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.types {
		if t.UserID == userID && t.Name == name {
			return &t, nil
		}
	}
	return nil, apperrors.NewNotFoundError("budget type " + name)
}

func (r *memoryBudgetTypeRepo) SaveBudgetType(_ context.Context, bt domain.BudgetType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.types {
		if t.UserID == bt.UserID && t.Name == bt.Name {
			return apperrors.ErrDuplicate
		}
	}
	r.types = append(r.types, bt)
	return nil
}

func (r *memoryBudgetTypeRepo) DeleteBudgetType(_ context.Context, userID, budgetTypeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.types {
		if t.BudgetTypeID == budgetTypeID && t.UserID == userID {
			r.types = append(r.types[:i], r.types[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("budget type " + budgetTypeID)
}

// memoryUserRepo is an in-memory users table keyed by ID.
type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]domain.User{}}
}

func (r *memoryUserRepo) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("user " + userID)
	}
	return &u, nil
}

func (r *memoryUserRepo) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user with email " + email)
}

func (r *memoryUserRepo) SaveUser(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return apperrors.ErrDuplicate
		}
	}
	r.users[user.UserID] = user
	return nil
}

func (r *memoryUserRepo) UpdateUser(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.UserID]; !ok {
		return apperrors.NewNotFoundError("user " + user.UserID)
	}
	r.users[user.UserID] = user
	return nil
}

func (r *memoryUserRepo) MarkUserLoggedIn(_ context.Context, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return apperrors.NewNotFoundError("user " + userID)
	}
	u.LastLoginAt = &at
	r.users[userID] = u
	return nil
}

func (r *memoryUserRepo) SetResetToken(_ context.Context, userID, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return apperrors.NewNotFoundError("user " + userID)
	}
	u.ResetTokenHash = tokenHash
	u.ResetTokenExpiresAt = &expiresAt
	r.users[userID] = u
	return nil
}

func (r *memoryUserRepo) ConsumeResetToken(_ context.Context, userID, tokenHash, passwordHash string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok || u.ResetTokenHash == "" || u.ResetTokenHash != tokenHash || !u.ResetTokenUsable(at) {
		return false, nil
	}
	u.PasswordHash = passwordHash
	u.ResetTokenHash = ""
	u.ResetTokenExpiresAt = nil
	r.users[userID] = u
	return true, nil
}

func (r *memoryUserRepo) byEmail(email string) domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u
		}
	}
	return domain.User{}
}
