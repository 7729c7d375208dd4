package repositories

import (
	"context"
	"errors"

	"github.com/kamaumbugua/soko-api/models"
	"github.com/kamaumbugua/soko-api/services"
	"gorm.io/gorm"
)

// GormStore implements services.Store on a gorm connection. Transaction hands
// fn a store bound to the transaction handle, so every write inside commits or
// rolls back as one unit.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Products() services.ProductStore { return &productRepository{db: s.db} }
func (s *GormStore) Orders() services.OrderStore     { return &orderRepository{db: s.db} }
func (s *GormStore) Carts() services.CartStore       { return &cartRepository{db: s.db} }

func (s *GormStore) Transaction(ctx context.Context, fn func(services.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(tx))
	})
}

type productRepository struct {
	db *gorm.DB
}

func (r *productRepository) FindProduct(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DecrementStock is the single conditional update that makes concurrent
// ordering safe: the WHERE clause rejects the decrement when stock has dropped
// below the requested quantity since it was last read.
func (r *productRepository) DecrementStock(ctx context.Context, id, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *productRepository) IncrementStock(ctx context.Context, id, quantity int) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity)).Error
}

type orderRepository struct {
	db *gorm.DB
}

func (r *orderRepository) InsertOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) FindOrder(ctx context.Context, id int) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("OrderItems").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) SaveOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// TransitionStatus follows the DecrementStock shape: the WHERE clause on the
// expected current status rejects the update when another request moved the
// order first.
func (r *orderRepository) TransitionStatus(ctx context.Context, id int, from, to string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		UpdateColumn("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *orderRepository) FindOrdersByUser(ctx context.Context, userId int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("OrderItems").
		Where("user_id = ?", userId).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) FindAllOrders(ctx context.Context, search, sortOrder string, limit, offset int) ([]models.Order, int64, error) {
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := r.db.WithContext(ctx).Preload("OrderItems")
	countQuery := r.db.WithContext(ctx).Model(&models.Order{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("order_number LIKE ? OR id LIKE ?", pattern, pattern)
		countQuery = countQuery.Where("order_number LIKE ? OR id LIKE ?", pattern, pattern)
	}

	var orders []models.Order
	err := query.Order("created_at " + sortOrder).
		Limit(limit).Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	var count int64
	if err := countQuery.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

type cartRepository struct {
	db *gorm.DB
}

func (r *cartRepository) ClearCart(ctx context.Context, userId int) error {
	var cart models.Cart
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
}
