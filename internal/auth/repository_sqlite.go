package auth

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type SQLiteUserRepository struct {
	db *sql.DB
}

func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

func (r *SQLiteUserRepository) Save(user *User) error {
	// Generate UUID if not already set
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	_, err := r.db.Exec(`
		INSERT INTO users (id, name, email, password)
		VALUES (?, ?, ?, ?)
	`, user.ID, user.Name, user.Email, user.Password)
	return err
}

func (r *SQLiteUserRepository) ExistsByEmail(email string) (bool, error) {
	row := r.db.QueryRow(`SELECT 1 FROM users WHERE email = ? LIMIT 1`, email)

	var exists int
	if err := row.Scan(&exists); err != nil {
		return false, nil
	}
	return true, nil
}

func (r *SQLiteUserRepository) FindByEmail(email string) (*User, error) {
	row := r.db.QueryRow(`
		SELECT id, name, email, password
		FROM users WHERE email = ?
	`, email)

	user := &User{}
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password); err != nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}
