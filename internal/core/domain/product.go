package domain

import "time"

// DatePostedLayout is the display format used for listing and message dates.
const DatePostedLayout = "January 02, 2006"

// Product is a listing owned by a seller. Price is kept as the decimal string
// the seller entered; it is converted to minor units only at checkout.
type Product struct {
	ID          uint   `json:"id"`
	OwnerID     uint   `json:"owner_id"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	DatePosted  string `json:"date_posted"`
}

// Review is free text left on a product by an authenticated user.
type Review struct {
	ID         uint   `json:"id"`
	ProductID  uint   `json:"product_id"`
	AuthorID   uint   `json:"author_id"`
	AuthorName string `json:"author_name,omitempty"`
	Text       string `json:"text"`
}

// ProductDetail is a product with its seller and reviews resolved.
type ProductDetail struct {
	Product
	SellerName string   `json:"seller_name"`
	Reviews    []Review `json:"reviews"`
}

// FormatDatePosted renders t the way listings and messages display dates.
func FormatDatePosted(t time.Time) string {
	return t.Format(DatePostedLayout)
}
