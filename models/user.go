package models

// User представляет пользователя клиента.
// Набор пользователей статический, пароль хранится и сравнивается как есть.
type User struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"-"` // Не сериализуем пароль
}
