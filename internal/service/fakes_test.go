package service

import (
	"context"
	"sort"

	"github.com/findash/findash/internal/model"
	"github.com/findash/findash/internal/repository"
)

// fakeExpenseStore is an in-memory ExpenseStore for service tests.
type fakeExpenseStore struct {
	nextID   int64
	users    map[int64]bool
	expenses map[int64]*model.Expense
}

func newFakeExpenseStore(userIDs ...int64) *fakeExpenseStore {
	users := make(map[int64]bool, len(userIDs))
	for _, id := range userIDs {
		users[id] = true
	}
	return &fakeExpenseStore{
		users:    users,
		expenses: make(map[int64]*model.Expense),
	}
}

func (f *fakeExpenseStore) CreateExpenses(ctx context.Context, expenses []*model.Expense) error {
	for _, e := range expenses {
		if !f.users[e.UserID] {
			return repository.ErrOwnerMissing
		}
	}
	for _, e := range expenses {
		f.nextID++
		e.ID = f.nextID
		stored := *e
		f.expenses[e.ID] = &stored
	}
	return nil
}

func (f *fakeExpenseStore) GetExpenseByID(ctx context.Context, id int64) (*model.Expense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return nil, repository.ErrExpenseNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeExpenseStore) ListExpenses(ctx context.Context) ([]*model.Expense, error) {
	out := make([]*model.Expense, 0, len(f.expenses))
	for _, e := range f.expenses {
		copied := *e
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeExpenseStore) ListExpensesByUser(ctx context.Context, userID int64) ([]*model.Expense, error) {
	all, _ := f.ListExpenses(ctx)
	out := make([]*model.Expense, 0)
	for _, e := range all {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExpenseStore) UpdateExpense(ctx context.Context, expense *model.Expense) error {
	if _, ok := f.expenses[expense.ID]; !ok {
		return repository.ErrExpenseNotFound
	}
	stored := *expense
	f.expenses[expense.ID] = &stored
	return nil
}

func (f *fakeExpenseStore) DeleteExpense(ctx context.Context, id int64) error {
	delete(f.expenses, id)
	return nil
}

func (f *fakeExpenseStore) DeleteExpenses(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		delete(f.expenses, id)
	}
	return nil
}

// fakeIncomeStore mirrors fakeExpenseStore for incomes.
type fakeIncomeStore struct {
	nextID  int64
	users   map[int64]bool
	incomes map[int64]*model.Income
}

func newFakeIncomeStore(userIDs ...int64) *fakeIncomeStore {
	users := make(map[int64]bool, len(userIDs))
	for _, id := range userIDs {
		users[id] = true
	}
	return &fakeIncomeStore{
		users:   users,
		incomes: make(map[int64]*model.Income),
	}
}

func (f *fakeIncomeStore) CreateIncomes(ctx context.Context, incomes []*model.Income) error {
	for _, in := range incomes {
		if !f.users[in.UserID] {
			return repository.ErrOwnerMissing
		}
	}
	for _, in := range incomes {
		f.nextID++
		in.ID = f.nextID
		stored := *in
		f.incomes[in.ID] = &stored
	}
	return nil
}

func (f *fakeIncomeStore) GetIncomeByID(ctx context.Context, id int64) (*model.Income, error) {
	in, ok := f.incomes[id]
	if !ok {
		return nil, repository.ErrIncomeNotFound
	}
	copied := *in
	return &copied, nil
}

func (f *fakeIncomeStore) ListIncomes(ctx context.Context) ([]*model.Income, error) {
	out := make([]*model.Income, 0, len(f.incomes))
	for _, in := range f.incomes {
		copied := *in
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeIncomeStore) ListIncomesByUser(ctx context.Context, userID int64) ([]*model.Income, error) {
	all, _ := f.ListIncomes(ctx)
	out := make([]*model.Income, 0)
	for _, in := range all {
		if in.UserID == userID {
			out = append(out, in)
		}
	}
	return out, nil
}

func (f *fakeIncomeStore) UpdateIncome(ctx context.Context, income *model.Income) error {
	if _, ok := f.incomes[income.ID]; !ok {
		return repository.ErrIncomeNotFound
	}
	stored := *income
	f.incomes[income.ID] = &stored
	return nil
}

func (f *fakeIncomeStore) DeleteIncome(ctx context.Context, id int64) error {
	delete(f.incomes, id)
	return nil
}

func (f *fakeIncomeStore) DeleteIncomes(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		delete(f.incomes, id)
	}
	return nil
}

// fakeGoalStore is an in-memory GoalStore for service tests.
type fakeGoalStore struct {
	nextID int64
	users  map[int64]bool
	goals  map[int64]*model.Goal
}

func newFakeGoalStore(userIDs ...int64) *fakeGoalStore {
	users := make(map[int64]bool, len(userIDs))
	for _, id := range userIDs {
		users[id] = true
	}
	return &fakeGoalStore{
		users: users,
		goals: make(map[int64]*model.Goal),
	}
}

func (f *fakeGoalStore) CreateGoal(ctx context.Context, goal *model.Goal) error {
	if !f.users[goal.UserID] {
		return repository.ErrOwnerMissing
	}
	f.nextID++
	goal.ID = f.nextID
	stored := *goal
	f.goals[goal.ID] = &stored
	return nil
}

func (f *fakeGoalStore) GetGoalByID(ctx context.Context, id int64) (*model.Goal, error) {
	g, ok := f.goals[id]
	if !ok {
		return nil, repository.ErrGoalNotFound
	}
	copied := *g
	return &copied, nil
}

func (f *fakeGoalStore) ListGoals(ctx context.Context) ([]*model.Goal, error) {
	out := make([]*model.Goal, 0, len(f.goals))
	for _, g := range f.goals {
		copied := *g
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeGoalStore) ListGoalsByUser(ctx context.Context, userID int64) ([]*model.Goal, error) {
	all, _ := f.ListGoals(ctx)
	out := make([]*model.Goal, 0)
	for _, g := range all {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoalStore) UpdateGoal(ctx context.Context, goal *model.Goal) error {
	if _, ok := f.goals[goal.ID]; !ok {
		return repository.ErrGoalNotFound
	}
	stored := *goal
	f.goals[goal.ID] = &stored
	return nil
}

func (f *fakeGoalStore) DeleteGoal(ctx context.Context, id int64) error {
	delete(f.goals, id)
	return nil
}

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	nextID int64
	users  map[int64]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User)}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	f.nextID++
	user.ID = f.nextID
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	out := make([]*model.User, 0, len(f.users))
	for _, u := range f.users {
		copied := *u
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserStore) UpdateUser(ctx context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	for id, u := range f.users {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) DeleteUser(ctx context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

// fakeUserCache records cache traffic for assertions.
type fakeUserCache struct {
	byID    map[int64]*model.User
	byEmail map[string]*model.User
	sets    int
	dels    int
}

func newFakeUserCache() *fakeUserCache {
	return &fakeUserCache{
		byID:    make(map[int64]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (f *fakeUserCache) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserCache) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserCache) SetUser(ctx context.Context, user *model.User) error {
	f.sets++
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserCache) InvalidateUser(ctx context.Context, user *model.User) error {
	f.dels++
	delete(f.byID, user.ID)
	delete(f.byEmail, user.Email)
	return nil
}
