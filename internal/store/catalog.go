package store

import (
	"context"
	"errors"

	"github.com/harena/myshop/internal/models"
	"gorm.io/gorm"
)

// AddArticle inserts a new catalog item. The store performs no validation
// here; the caller is responsible for supplying a non-negative stock.
func (s *Store) AddArticle(ctx context.Context, name string, price float64, stock int, photo string) error {
	article := models.Article{Name: name, Price: price, Stock: stock, Photo: photo}
	if err := s.DB.WithContext(ctx).Create(&article).Error; err != nil {
		return storageErr("article insert", err)
	}
	return nil
}

// Article fetches one catalog item by id.
func (s *Store) Article(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := s.DB.WithContext(ctx).First(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, storageErr("article lookup", err)
	}
	return &article, nil
}

// Articles lists the whole catalog in insertion order.
func (s *Store) Articles(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	if err := s.DB.WithContext(ctx).Order("id").Find(&articles).Error; err != nil {
		return nil, storageErr("article list", err)
	}
	return articles, nil
}
