package handlers

import (
	"time"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
)

type userView struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	FirstName   string   `json:"first_name"`
	PhoneNumber string   `json:"phone_number"`
	Active      bool     `json:"active"`
	Roles       []string `json:"roles"`
}

func toUserView(u *entity.User) userView {
	return userView{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		PhoneNumber: u.PhoneNumber,
		Active:      u.Active,
		Roles:       u.RoleNames(),
	}
}

type itemView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Intro string `json:"intro"`
	Price int64  `json:"price"`
}

func toItemViews(items []entity.Item) []itemView {
	out := make([]itemView, 0, len(items))
	for _, it := range items {
		out = append(out, itemView{ID: it.ID, Name: it.Name, Intro: it.Intro, Price: it.Price})
	}
	return out
}

type orderView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Intro     string    `json:"intro"`
	Price     int64     `json:"price"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toOrderViews(orders []entity.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderView{ID: o.ID, Name: o.Name, Intro: o.Intro, Price: o.Price, Active: o.Active, CreatedAt: o.CreatedAt})
	}
	return out
}
