// Package session хранит текущего пользователя клиента в памяти процесса.
package session

import (
	"log/slog"
	"sync"

	"github.com/capacityx/apontamentos/models"
)

// DefaultUsers возвращает статический набор пользователей приложения.
func DefaultUsers() []models.User {
	return []models.User{
		{Name: "Matheus Nogueira", Email: "matheus@gmail.com", Password: "123456"},
		{Name: "João da Silva", Email: "joao@gmail.com", Password: "012345"},
	}
}

// Store хранит текущую сессию. Создается при старте и передается экранам явно.
type Store struct {
	mu      sync.RWMutex
	users   []models.User
	current *models.User
}

// NewStore создает хранилище сессии поверх заданного набора пользователей.
func NewStore(users []models.User) *Store {
	copied := make([]models.User, len(users))
	copy(copied, users)
	return &Store{users: copied}
}

// Login ищет пользователя с точным совпадением email и пароля.
// При неудаче ранее установленная сессия не меняется.
func (s *Store) Login(email, password string) bool {
	for i := range s.users {
		u := s.users[i]
		if u.Email != email || u.Password != password {
			continue
		}
		s.mu.Lock()
		s.current = &u
		s.mu.Unlock()
		slog.Info("Вход выполнен", "email", email)
		return true
	}
	slog.Info("Неудачная попытка входа", "email", email)
	return false
}

// Logout безусловно очищает текущую сессию.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	slog.Info("Сессия завершена")
}

// Current возвращает текущего пользователя, если вход выполнен.
func (s *Store) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}
