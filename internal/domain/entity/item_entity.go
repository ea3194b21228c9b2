package entity

// MaxItemPrice bounds Item.Price so the minor-unit amount (price*100) fits in int64
// with a wide margin. Keep in sync with the validate/binding tags and the items_price_cap check.
const MaxItemPrice int64 = 1_000_000_000

// Item is a catalog entry. Price is in whole currency units.
type Item struct {
	ID    int64
	Name  string
	Intro string
	Price int64
}
