package store

import (
	"context"
	"errors"

	"github.com/harena/myshop/internal/models"
	"gorm.io/gorm"
)

// RegisterUser inserts a new user row and returns its id. No uniqueness
// check is performed on the email: registering the same address twice
// yields two distinct users. That is a documented limitation of this
// layer, not something it silently corrects.
func (s *Store) RegisterUser(ctx context.Context, email, password string) (uint, error) {
	user := models.User{Email: email, Password: password}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return 0, storageErr("user insert", err)
	}
	return user.ID, nil
}

// Authenticate looks up the user matching both email and password by
// exact, case-sensitive equality and returns its id. A miss on either
// column is ErrCredentialMismatch, an ordinary outcome for the caller.
func (s *Store) Authenticate(ctx context.Context, email, password string) (uint, error) {
	var user models.User
	err := s.DB.WithContext(ctx).
		Where("email = ? AND password = ?", email, password).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrCredentialMismatch
	}
	if err != nil {
		return 0, storageErr("user lookup", err)
	}
	return user.ID, nil
}
