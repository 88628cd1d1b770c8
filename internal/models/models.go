package models

// Article is one catalog item. Stock is the quantity still available for
// reservation and never goes below zero.
type Article struct {
	ID    uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name  string  `gorm:"column:name;type:text"              json:"name"`
	Price float64 `gorm:"column:price;type:real"             json:"price"`
	Stock int     `gorm:"column:stock;type:integer"          json:"stock"`
	Photo string  `gorm:"column:photo;type:text"             json:"photo"`
}

func (Article) TableName() string { return "article" }

// User holds the login credentials. The password is stored as the opaque
// text the caller supplied; hashing is not part of this layer's contract.
type User struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email    string `gorm:"column:email;type:text"             json:"email"`
	Password string `gorm:"column:password;type:text"          json:"-"`
}

func (User) TableName() string { return "user" }

// CartEntry is a pending stock reservation: it only exists if the matching
// decrement of Article.Stock succeeded in the same transaction.
type CartEntry struct {
	ID        uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ArticleID uint    `gorm:"column:article_id;type:integer"     json:"article_id"`
	Quantity  int     `gorm:"column:quantity;type:integer"       json:"quantity"`
	Total     float64 `gorm:"column:total;type:real"             json:"total"`
	UserID    uint    `gorm:"column:user_id;type:integer"        json:"user_id"`
}

func (CartEntry) TableName() string { return "cart" }

// Commande is a finalized order. Date is caller-supplied opaque text and
// Total is trusted as given, neither is recomputed here.
type Commande struct {
	ID     uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID uint    `gorm:"column:user_id;type:integer"        json:"user_id"`
	Date   string  `gorm:"column:date;type:text"              json:"date"`
	Total  float64 `gorm:"column:total;type:real"             json:"total"`
}

func (Commande) TableName() string { return "commande" }

// CommandeLine is one item-quantity-total entry within a Commande.
type CommandeLine struct {
	ID         uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CommandeID uint    `gorm:"column:commande_id;type:integer"    json:"commande_id"`
	ArticleID  uint    `gorm:"column:article_id;type:integer"     json:"article_id"`
	Quantity   int     `gorm:"column:quantity;type:integer"       json:"quantity"`
	Total      float64 `gorm:"column:total;type:real"             json:"total"`
}

func (CommandeLine) TableName() string { return "commande_line" }
