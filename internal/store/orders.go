package store

import (
	"context"

	"github.com/harena/myshop/internal/models"
)

// CreateOrder inserts a commande row and returns its id. Date is opaque
// caller-supplied text and the total is not recomputed from cart or line
// contents; order creation and line creation are independent operations.
func (s *Store) CreateOrder(ctx context.Context, userID uint, date string, total float64) (uint, error) {
	order := models.Commande{UserID: userID, Date: date, Total: total}
	if err := s.DB.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, storageErr("commande insert", err)
	}
	return order.ID, nil
}

// AddOrderLine inserts one commande_line row. The referenced order and
// article ids are not checked against existing rows.
func (s *Store) AddOrderLine(ctx context.Context, orderID, articleID uint, quantity int, total float64) (uint, error) {
	line := models.CommandeLine{
		CommandeID: orderID,
		ArticleID:  articleID,
		Quantity:   quantity,
		Total:      total,
	}
	if err := s.DB.WithContext(ctx).Create(&line).Error; err != nil {
		return 0, storageErr("commande_line insert", err)
	}
	return line.ID, nil
}

// OrdersForUser lists a user's orders, newest first.
func (s *Store) OrdersForUser(ctx context.Context, userID uint) ([]models.Commande, error) {
	var orders []models.Commande
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&orders).Error; err != nil {
		return nil, storageErr("commande list", err)
	}
	return orders, nil
}

// OrderLines lists the lines of one order.
func (s *Store) OrderLines(ctx context.Context, orderID uint) ([]models.CommandeLine, error) {
	var lines []models.CommandeLine
	if err := s.DB.WithContext(ctx).Where("commande_id = ?", orderID).Order("id").Find(&lines).Error; err != nil {
		return nil, storageErr("commande_line list", err)
	}
	return lines, nil
}
