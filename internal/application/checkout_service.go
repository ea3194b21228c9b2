package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
	repo "github.com/oksasatya/go-storefront/internal/domain/repository"
	"github.com/oksasatya/go-storefront/pkg/helpers"
)

// Gateway returns a hosted checkout URL for a payment request.
type Gateway interface {
	CheckoutURL(ctx context.Context, req entity.PaymentRequest) (string, error)
}

// EventPublisher delivers JSON events; helpers.RabbitPublisher satisfies it.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

const EventOrderCreated = "order.created"

type OrderCreatedEvent struct {
	Event      string    `json:"event"`
	OrderID    int64     `json:"order_id"`
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name"`
	Price      int64     `json:"price"`
	Amount     string    `json:"amount"`
	Currency   string    `json:"currency"`
	PaymentRef string    `json:"payment_ref"`
	CreatedAt  time.Time `json:"created_at"`
}

type CheckoutService struct {
	Items     repo.ItemRepository
	Orders    repo.OrderRepository
	Gateway   Gateway
	Publisher EventPublisher // optional
	Currency  string
	Logger    *logrus.Logger
}

func NewCheckoutService(items repo.ItemRepository, orders repo.OrderRepository, gw Gateway, pub EventPublisher, currency string, logger *logrus.Logger) *CheckoutService {
	if currency == "" {
		currency = "RUB"
	}
	return &CheckoutService{Items: items, Orders: orders, Gateway: gw, Publisher: pub, Currency: currency, Logger: logger}
}

// BuildPaymentRequest converts a whole-unit price into the gateway's minor-unit amount.
// Prices outside [0, MaxItemPrice] are refused rather than sent as a wrapped amount.
func BuildPaymentRequest(it entity.Item, orderID, currency string) (entity.PaymentRequest, error) {
	if it.Price < 0 || it.Price > entity.MaxItemPrice {
		return entity.PaymentRequest{}, fmt.Errorf("%w: item price %d out of range", ErrValidation, it.Price)
	}
	return entity.PaymentRequest{
		OrderID:   orderID,
		OrderDesc: it.Name,
		Currency:  currency,
		Amount:    strconv.FormatInt(it.Price*100, 10),
	}, nil
}

// InitiatePurchase asks the gateway for a checkout URL and records the order.
// The gateway is called once; on failure nothing is recorded.
func (s *CheckoutService) InitiatePurchase(ctx context.Context, itemID, userID int64) (string, error) {
	it, err := s.Items.GetByID(ctx, itemID)
	if err != nil {
		return "", notFound(err, "item")
	}

	req, err := BuildPaymentRequest(*it, uuid.NewString(), s.Currency)
	if err != nil {
		helpers.LogError(s.Logger, "build payment request failed", err, logrus.Fields{"item_id": itemID})
		return "", err
	}
	url, err := s.Gateway.CheckoutURL(ctx, req)
	if err != nil {
		helpers.LogError(s.Logger, "payment gateway failed", err, logrus.Fields{"item_id": itemID, "order_ref": req.OrderID})
		if errors.Is(err, ErrPaymentGateway) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}

	uid := userID
	o := &entity.Order{
		Name:       it.Name,
		Intro:      it.Intro,
		Price:      it.Price,
		Active:     true,
		UserID:     &uid,
		PaymentRef: req.OrderID,
	}
	if err := s.Orders.Create(ctx, o); err != nil {
		helpers.LogError(s.Logger, "record order failed", err, logrus.Fields{"item_id": itemID, "user_id": userID})
		return "", err
	}

	s.publish(ctx, o, req)
	return url, nil
}

const publishTimeout = 2 * time.Second

func (s *CheckoutService) publish(ctx context.Context, o *entity.Order, req entity.PaymentRequest) {
	if s.Publisher == nil {
		return
	}
	ev := OrderCreatedEvent{
		Event:      EventOrderCreated,
		OrderID:    o.ID,
		UserID:     *o.UserID,
		Name:       o.Name,
		Price:      o.Price,
		Amount:     req.Amount,
		Currency:   req.Currency,
		PaymentRef: o.PaymentRef,
		CreatedAt:  o.CreatedAt,
	}
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := s.Publisher.PublishJSON(pubCtx, ev); err != nil {
		helpers.LogError(s.Logger, "publish order event failed", err, logrus.Fields{"order_id": o.ID})
	}
}
