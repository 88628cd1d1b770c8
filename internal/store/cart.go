package store

import (
	"context"
	"errors"

	"github.com/harena/myshop/internal/models"
	"gorm.io/gorm"
)

// ReserveToCart reserves quantity units of an article for a user: it
// inserts a cart row and decrements the article's stock in one
// transaction, so a reader never observes one write without the other.
//
// The total is trusted as supplied; this layer does not recompute
// price * quantity. Expected rejections come back as ErrArticleNotFound
// or ErrInsufficientStock with no mutation in either case.
func (s *Store) ReserveToCart(ctx context.Context, articleID uint, quantity int, total float64, userID uint) (uint, error) {
	var entry models.CartEntry

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.Select("id", "stock").First(&article, articleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrArticleNotFound
			}
			return storageErr("stock read", err)
		}
		if article.Stock < quantity {
			return ErrInsufficientStock
		}

		entry = models.CartEntry{
			ArticleID: articleID,
			Quantity:  quantity,
			Total:     total,
			UserID:    userID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return storageErr("cart insert", err)
		}

		// The guard re-checks stock in the UPDATE itself so the decrement
		// can never push it below zero, even under a concurrent writer.
		res := tx.Model(&models.Article{}).
			Where("id = ? AND stock >= ?", articleID, quantity).
			Update("stock", gorm.Expr("stock - ?", quantity))
		if res.Error != nil {
			return storageErr("stock update", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return entry.ID, nil
}

// CartForUser lists a user's pending reservations.
func (s *Store) CartForUser(ctx context.Context, userID uint) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&entries).Error; err != nil {
		return nil, storageErr("cart list", err)
	}
	return entries, nil
}

// ClearCart removes every cart entry of a user. Stock is not restored;
// the caller clears the cart only after turning it into an order.
func (s *Store) ClearCart(ctx context.Context, userID uint) error {
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartEntry{}).Error; err != nil {
		return storageErr("cart clear", err)
	}
	return nil
}
