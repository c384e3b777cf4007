package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/elduverx/gruposmCRM-sub002/internal/models"
	"github.com/elduverx/gruposmCRM-sub002/internal/repository"
	"github.com/google/uuid"
)

type memActivities struct {
	mu        sync.Mutex
	rows      []models.Activity
	createErr error
	countErr  error
}

func (m *memActivities) CreateActivity(_ context.Context, a *models.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	m.rows = append(m.rows, *a)
	return nil
}

func (m *memActivities) CountByGoal(_ context.Context, goalID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return 0, m.countErr
	}
	n := 0
	for _, a := range m.rows {
		if a.GoalID != nil && *a.GoalID == goalID {
			n++
		}
	}
	return n, nil
}

func (m *memActivities) GetActivity(_ context.Context, id string) (*models.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.rows {
		if a.ID == id {
			out := a
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memActivities) ListUserActivities(_ context.Context, userID string, limit int) ([]models.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Activity{}
	for i := len(m.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if m.rows[i].UserID == userID {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

func (m *memActivities) DeleteActivity(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.rows {
		if a.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memActivities) all() []models.Activity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Activity(nil), m.rows...)
}

type memGoals struct {
	mu        sync.Mutex
	goals     map[string]*models.Goal
	order     []string
	updateErr error
}

func newMemGoals() *memGoals {
	return &memGoals{goals: map[string]*models.Goal{}}
}

func (m *memGoals) CreateGoal(_ context.Context, g *models.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	stored := *g
	m.goals[g.ID] = &stored
	m.order = append(m.order, g.ID)
	return nil
}

func (m *memGoals) GetGoalByID(_ context.Context, id string) (*models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *g
	return &out, nil
}

func (m *memGoals) FindOpenGoals(_ context.Context, userID string, category models.GoalCategory, now time.Time) ([]models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Goal{}
	for _, id := range m.order {
		g := m.goals[id]
		if g.UserID == userID && g.Category == category && g.Open(now) {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (m *memGoals) UpdateProgress(_ context.Context, id string, currentCount int, isCompleted bool, updatedAt time.Time) (*models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	g, ok := m.goals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	g.CurrentCount = currentCount
	g.IsCompleted = isCompleted
	g.UpdatedAt = updatedAt
	out := *g
	return &out, nil
}

func (m *memGoals) ListUserGoals(_ context.Context, userID string) ([]models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Goal{}
	for _, id := range m.order {
		if g := m.goals[id]; g.UserID == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (m *memGoals) ListGoalsEndingBetween(_ context.Context, from, to time.Time) ([]models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Goal{}
	for _, id := range m.order {
		g := m.goals[id]
		if !g.IsCompleted && g.EndDate != nil && g.EndDate.After(from) && !g.EndDate.After(to) {
			out = append(out, *g)
		}
	}
	return out, nil
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
	err   error
}

func newMemUsers(ids ...string) *memUsers {
	m := &memUsers{users: map[string]*models.User{}}
	for _, id := range ids {
		m.users[id] = &models.User{ID: id, Email: id + "@example.com", Role: models.RoleUser}
	}
	return m
}

func (m *memUsers) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	stored := *u
	m.users[u.ID] = &stored
	return nil
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) UpdateLastActive(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.LastActiveAt = at
	return nil
}

type memZones struct {
	zones []models.Zone
}

func (m *memZones) CreateZone(_ context.Context, z *models.Zone) error {
	if z.ID == "" {
		z.ID = uuid.NewString()
	}
	m.zones = append(m.zones, *z)
	return nil
}

func (m *memZones) GetZoneByID(_ context.Context, id string) (*models.Zone, error) {
	for _, z := range m.zones {
		if z.ID == id {
			out := z
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memZones) ListZones(context.Context) ([]models.Zone, error) {
	return append([]models.Zone{}, m.zones...), nil
}

func (m *memZones) UpdateZone(_ context.Context, z *models.Zone) error {
	for i := range m.zones {
		if m.zones[i].ID == z.ID {
			m.zones[i] = *z
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memZones) DeleteZone(_ context.Context, id string) error {
	for i := range m.zones {
		if m.zones[i].ID == id {
			m.zones = append(m.zones[:i], m.zones[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memProperties struct {
	props   map[string]*models.Property
	zoneErr error
}

func newMemProperties(props ...models.Property) *memProperties {
	m := &memProperties{props: map[string]*models.Property{}}
	for i := range props {
		p := props[i]
		m.props[p.ID] = &p
	}
	return m
}

func (m *memProperties) CreateProperty(_ context.Context, p *models.Property) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	stored := *p
	m.props[p.ID] = &stored
	return nil
}

func (m *memProperties) GetPropertyByID(_ context.Context, id string) (*models.Property, error) {
	p, ok := m.props[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (m *memProperties) ListProperties(context.Context) ([]models.Property, error) {
	out := []models.Property{}
	for _, p := range m.props {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProperties) ListGeocodedProperties(ctx context.Context) ([]models.Property, error) {
	all, _ := m.ListProperties(ctx)
	out := []models.Property{}
	for _, p := range all {
		if _, ok := p.Location(); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProperties) SetPropertyZone(_ context.Context, id string, zoneID *string) error {
	if m.zoneErr != nil {
		return m.zoneErr
	}
	p, ok := m.props[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.ZoneID = zoneID
	return nil
}

func (m *memProperties) SetLocated(_ context.Context, id string, located bool) (*models.Property, error) {
	p, ok := m.props[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.IsLocated = located
	out := *p
	return &out, nil
}

type memNotifications struct {
	rows []models.Notification
}

func (m *memNotifications) CreateNotification(_ context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = time.Now()
	n.ExpiresAt = n.CreatedAt.Add(7 * 24 * time.Hour)
	m.rows = append(m.rows, *n)
	return nil
}

func (m *memNotifications) GetUserNotifications(_ context.Context, userID string, now time.Time) ([]models.Notification, error) {
	out := []models.Notification{}
	for _, n := range m.rows {
		if n.UserID == userID && n.ExpiresAt.After(now) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNotifications) HasNotificationForTarget(_ context.Context, userID, notifType, targetID string) (bool, error) {
	for _, n := range m.rows {
		if n.UserID == userID && n.Type == notifType && n.TargetID != nil && *n.TargetID == targetID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memNotifications) MarkAsRead(_ context.Context, userID, id string) error {
	for i := range m.rows {
		if m.rows[i].ID == id && m.rows[i].UserID == userID {
			m.rows[i].Read = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memNotifications) DeleteNotification(_ context.Context, userID, id string) error {
	for i := range m.rows {
		if m.rows[i].ID == id && m.rows[i].UserID == userID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memNotifications) DeleteExpiredNotifications(_ context.Context, now time.Time) (int64, error) {
	kept := m.rows[:0]
	var n int64
	for _, row := range m.rows {
		if row.ExpiresAt.After(now) {
			kept = append(kept, row)
		} else {
			n++
		}
	}
	m.rows = kept
	return n, nil
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
