package domain

import "time"

// TimeLayout is fixed width so lexical order of stored timestamps equals chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

func Timestamp(t time.Time) string { return t.UTC().Format(TimeLayout) }

const PlaceholderImage = "/placeholder-product.jpg"

type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Product struct {
	ID            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	Description   string  `db:"description" json:"description"`
	Price         string  `db:"price" json:"price"`
	OriginalPrice *string `db:"original_price" json:"originalPrice"`
	CategoryID    int64   `db:"category_id" json:"categoryId"`
	SellerID      int64   `db:"seller_id" json:"sellerId"`
	Image         string  `db:"image" json:"image"`
	Brand         string  `db:"brand" json:"brand"`
	IsActive      bool    `db:"is_active" json:"isActive"`
	CreatedAt     string  `db:"created_at" json:"createdAt"`
}
