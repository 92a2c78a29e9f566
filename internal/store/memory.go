package store

import (
	"context"
	"sort"
	"sync"

	"github.com/lib/pq"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/models"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/util"
)

// Memory is a process-local Store used for development and tests.
// Records are copied in and out so callers never share state with the store.
type Memory struct {
	mu       sync.RWMutex
	seq      map[string]uint
	users    map[uint]models.User
	dreams   map[uint]models.Dream
	analyses map[uint]models.DreamAnalysis // keyed by dream id
	nfts     map[uint]models.DreamNFT
	sleep    map[uint]models.SleepData
	rewards  map[uint]models.MiningReward
}

func NewMemory() *Memory {
	return &Memory{
		seq:      map[string]uint{},
		users:    map[uint]models.User{},
		dreams:   map[uint]models.Dream{},
		analyses: map[uint]models.DreamAnalysis{},
		nfts:     map[uint]models.DreamNFT{},
		sleep:    map[uint]models.SleepData{},
		rewards:  map[uint]models.MiningReward{},
	}
}

func (m *Memory) next(table string) uint {
	m.seq[table]++
	return m.seq[table]
}

func sortedIDs[T any](rows map[uint]T) []uint {
	ids := make([]uint, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func cloneStrings(s pq.StringArray) pq.StringArray {
	if s == nil {
		return nil
	}
	return append(pq.StringArray{}, s...)
}

func (m *Memory) GetUser(_ context.Context, id uint) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range sortedIDs(m.users) {
		if u := m.users[id]; u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return ErrAlreadyExists
		}
	}
	u.ID = m.next("users")
	if u.CreatedAt.IsZero() {
		u.CreatedAt = util.Now()
	}
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) UpdateUser(_ context.Context, id uint, upd models.UserUpdate) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	upd.Apply(&u)
	m.users[id] = u
	return &u, nil
}

func (m *Memory) GetDream(_ context.Context, id uint) (*models.Dream, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.dreams[id]
	if !ok {
		return nil, ErrNotFound
	}
	d.Tags = cloneStrings(d.Tags)
	return &d, nil
}

func (m *Memory) ListDreamsByUser(_ context.Context, userID uint) ([]models.Dream, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Dream
	for _, id := range sortedIDs(m.dreams) {
		if d := m.dreams[id]; d.UserID == userID {
			d.Tags = cloneStrings(d.Tags)
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *Memory) CreateDream(_ context.Context, d *models.Dream) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[d.UserID]; !ok {
		return ErrNotFound
	}
	now := util.Now()
	d.ID = m.next("dreams")
	d.CreatedAt, d.UpdatedAt = now, now
	if d.RecordedAt.IsZero() {
		d.RecordedAt = now
	}
	stored := *d
	stored.Tags = cloneStrings(d.Tags)
	m.dreams[d.ID] = stored
	return nil
}

func (m *Memory) UpdateDream(_ context.Context, id uint, upd models.DreamUpdate) (*models.Dream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dreams[id]
	if !ok {
		return nil, ErrNotFound
	}
	upd.Apply(&d)
	d.Tags = cloneStrings(d.Tags)
	d.UpdatedAt = util.Now()
	m.dreams[id] = d
	return &d, nil
}

func (m *Memory) ListDreamsWithoutReward(_ context.Context) ([]models.Dream, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rewarded := map[uint]bool{}
	for _, r := range m.rewards {
		if r.DreamID != nil {
			rewarded[*r.DreamID] = true
		}
	}
	var out []models.Dream
	for _, id := range sortedIDs(m.dreams) {
		if !rewarded[id] {
			d := m.dreams[id]
			d.Tags = cloneStrings(d.Tags)
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *Memory) GetDreamAnalysis(_ context.Context, dreamID uint) (*models.DreamAnalysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.analyses[dreamID]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *Memory) CreateDreamAnalysis(_ context.Context, a *models.DreamAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.dreams[a.DreamID]; !ok {
		return ErrNotFound
	}
	if _, ok := m.analyses[a.DreamID]; ok {
		return ErrAlreadyExists
	}
	a.ID = m.next("dream_analyses")
	a.CreatedAt = util.Now()
	m.analyses[a.DreamID] = *a
	return nil
}

func (m *Memory) GetDreamNFT(_ context.Context, id uint) (*models.DreamNFT, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.nfts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &n, nil
}

func (m *Memory) ListDreamNFTsByUser(_ context.Context, userID uint) ([]models.DreamNFT, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.DreamNFT
	for _, id := range sortedIDs(m.nfts) {
		if n := m.nfts[id]; n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *Memory) ListDreamNFTs(_ context.Context, limit int) ([]models.DreamNFT, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.DreamNFT
	for _, id := range sortedIDs(m.nfts) {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, m.nfts[id])
	}
	return out, nil
}

func (m *Memory) CreateDreamNFT(_ context.Context, n *models.DreamNFT) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.dreams[n.DreamID]; !ok {
		return ErrNotFound
	}
	if _, ok := m.users[n.UserID]; !ok {
		return ErrNotFound
	}
	n.ID = m.next("dream_nfts")
	n.CreatedAt = util.Now()
	m.nfts[n.ID] = *n
	return nil
}

func (m *Memory) ListSleepDataByUser(_ context.Context, userID uint) ([]models.SleepData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.SleepData
	for _, id := range sortedIDs(m.sleep) {
		if s := m.sleep[id]; s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *Memory) CreateSleepData(_ context.Context, s *models.SleepData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[s.UserID]; !ok {
		return ErrNotFound
	}
	s.ID = m.next("sleep_data")
	s.CreatedAt = util.Now()
	m.sleep[s.ID] = *s
	return nil
}

func (m *Memory) GetMiningReward(_ context.Context, id uint) (*models.MiningReward, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rewards[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *Memory) ListMiningRewardsByUser(_ context.Context, userID uint) ([]models.MiningReward, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.MiningReward
	for _, id := range sortedIDs(m.rewards) {
		if r := m.rewards[id]; r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) CreateMiningReward(_ context.Context, r *models.MiningReward) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[r.UserID]
	if !ok {
		return ErrNotFound
	}
	if r.DreamID != nil {
		if _, ok := m.dreams[*r.DreamID]; !ok {
			return ErrNotFound
		}
		for _, existing := range m.rewards {
			if existing.DreamID != nil && *existing.DreamID == *r.DreamID && existing.Activity == r.Activity {
				return ErrAlreadyExists
			}
		}
	}
	if r.Currency == "" {
		r.Currency = models.CurrencyDream
	}
	r.ID = m.next("mining_rewards")
	r.CreatedAt = util.Now()
	m.rewards[r.ID] = *r
	u.TotalEarnings = u.TotalEarnings.Add(r.Amount)
	m.users[u.ID] = u
	return nil
}

var _ Store = (*Memory)(nil)
