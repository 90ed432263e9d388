package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"portfolio/internal/models"
	"portfolio/internal/repository"
)

var nopLogger = zerolog.Nop()

type memUserStore struct {
	mu         sync.Mutex
	users      map[string]models.User
	lastLogins map[string]time.Time
	findErr    error
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		users:      map[string]models.User{},
		lastLogins: map[string]time.Time{},
	}
}

func (s *memUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return models.User{}, s.findErr
	}
	user, ok := s.users[username]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (s *memUserStore) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *memUserStore) Create(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrUserConflict
		}
	}
	s.users[user.Username] = user
	return nil
}

func (s *memUserStore) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, u := range s.users {
		if u.ID == id {
			u.LastLoginAt = &at
			s.users[name] = u
			s.lastLogins[id] = at
			return nil
		}
	}
	return repository.ErrUserNotFound
}

// racingUserStore reports no existing account, then loses the insert race.
type racingUserStore struct {
	*memUserStore
}

func (racingUserStore) ExistsByUsernameOrEmail(context.Context, string, string) (bool, error) {
	return false, nil
}

type recordingMetrics struct {
	mu    sync.Mutex
	auths []string
}

func (m *recordingMetrics) RecordAuth(operation, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auths = append(m.auths, operation+":"+outcome)
}

func (m *recordingMetrics) RecordHTTPRequest(string, int, time.Duration) {}

type memCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	generations map[string]int64
	gets        int
	invalidated []string
	failGet     bool
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}, generations: map[string]int64{}}
}

func memKey(resource string, gen int64, variant string) string {
	return fmt.Sprintf("%s:%d:%s", resource, gen, variant)
}

func (c *memCache) Generation(_ context.Context, resource string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[resource], nil
}

func (c *memCache) Get(_ context.Context, resource string, gen int64, variant string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet {
		return false, errors.New("redis down")
	}
	raw, ok := c.entries[memKey(resource, gen, variant)]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) Set(_ context.Context, resource string, gen int64, variant string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[memKey(resource, gen, variant)] = raw
	return nil
}

func (c *memCache) Invalidate(_ context.Context, resource string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, resource)
	c.generations[resource]++
	return nil
}

type memProjectStore struct {
	mu       sync.Mutex
	projects map[string]models.Project
	lists    int
	// onList runs after each List read, before the result is returned.
	onList func()
}

func newMemProjectStore() *memProjectStore {
	return &memProjectStore{projects: map[string]models.Project{}}
}

func (s *memProjectStore) Create(_ context.Context, p models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = p
	return nil
}

func (s *memProjectStore) Update(_ context.Context, p models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[p.ID]; !ok {
		return repository.ErrNotFound
	}
	s.projects[p.ID] = p
	return nil
}

func (s *memProjectStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *memProjectStore) GetByID(_ context.Context, id string) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return models.Project{}, repository.ErrNotFound
	}
	return p, nil
}

func (s *memProjectStore) List(_ context.Context, featuredOnly bool) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	out := []models.Project{}
	for _, p := range s.projects {
		if featuredOnly && !p.IsFeatured {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	if s.onList != nil {
		s.onList()
	}
	return out, nil
}

type memSkillStore struct {
	mu     sync.Mutex
	skills []models.Skill
	lists  []string
}

func (s *memSkillStore) Create(_ context.Context, skill models.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skills = append(s.skills, skill)
	return nil
}

func (s *memSkillStore) Update(_ context.Context, skill models.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.skills {
		if s.skills[i].ID == skill.ID {
			s.skills[i] = skill
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memSkillStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.skills {
		if s.skills[i].ID == id {
			s.skills = append(s.skills[:i], s.skills[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memSkillStore) GetByID(_ context.Context, id string) (models.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, skill := range s.skills {
		if skill.ID == id {
			return skill, nil
		}
	}
	return models.Skill{}, repository.ErrNotFound
}

func (s *memSkillStore) List(_ context.Context, category string) ([]models.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists = append(s.lists, category)
	out := []models.Skill{}
	for _, skill := range s.skills {
		if category == "" || skill.Category == category {
			out = append(out, skill)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

type memContactStore struct {
	mu       sync.Mutex
	messages []models.ContactMessage
	cutoff   time.Time
}

func (s *memContactStore) Create(_ context.Context, m models.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
	return nil
}

func (s *memContactStore) List(_ context.Context, unreadOnly bool) ([]models.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.ContactMessage{}
	for _, m := range s.messages {
		if unreadOnly && m.IsRead {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *memContactStore) MarkRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].IsRead = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memContactStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memContactStore) DeleteReadBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cutoff = cutoff
	kept := s.messages[:0]
	var removed int64
	for _, m := range s.messages {
		if m.IsRead && m.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	s.messages = kept
	return removed, nil
}

type memObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	removed []string
}

func newMemObjectStore() *memObjectStore {
	return &memObjectStore{objects: map[string][]byte{}, types: map[string]string{}}
}

const objectBaseURL = "http://cdn.test/portfolio-images/"

func (s *memObjectStore) Put(_ context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	if int64(buf.Len()) != size {
		return "", errors.New("size mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = buf.Bytes()
	s.types[key] = contentType
	return objectBaseURL + key, nil
}

func (s *memObjectStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.removed = append(s.removed, key)
	return nil
}

func (s *memObjectStore) KeyFromURL(raw string) (string, bool) {
	if !strings.HasPrefix(raw, objectBaseURL) {
		return "", false
	}
	return strings.TrimPrefix(raw, objectBaseURL), true
}
