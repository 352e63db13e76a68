package service

import (
	"context"
	"errors"
	"html/template"
	"strings"
	"sync"
	"time"

	"github.com/psomsri/taladsod-backend/internal/app/model"
	"github.com/psomsri/taladsod-backend/internal/app/repository"
	"github.com/psomsri/taladsod-backend/pkg/email/emailjs"
	"github.com/psomsri/taladsod-backend/pkg/logger"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrSubmissionInFlight = errors.New("order submission already in progress")
)

// orderEmailTemplate renders the cart lines into the HTML fragment embedded
// in the order notification email.
var orderEmailTemplate = template.Must(template.New("order_items").Parse(`<table style="width:100%;border-collapse:collapse">
<tr><th align="left">Item</th><th align="left">Qty</th><th align="right">Price</th></tr>
{{range .Items}}<tr><td>{{.Name}}</td><td>{{.Details}}</td><td align="right">{{.Price}}</td></tr>
{{end}}<tr><td colspan="2" align="right"><strong>Total</strong></td><td align="right"><strong>{{.FormattedTotal}}</strong></td></tr>
</table>`))

// OrderForm carries the customer details entered on the checkout page.
type OrderForm struct {
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerEmail   string `json:"customer_email" binding:"required,email"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address" binding:"required"`
}

// CheckoutView is the checkout page state before submission.
type CheckoutView struct {
	Items          []model.CartItem `json:"items"`
	Total          float64          `json:"total"`
	FormattedTotal string           `json:"formatted_total"`
}

// SubmitResult describes a successfully dispatched order.
type SubmitResult struct {
	OrderID        uint    `json:"order_id,omitempty"`
	CustomerName   string  `json:"customer_name"`
	Total          float64 `json:"total"`
	FormattedTotal string  `json:"formatted_total"`
}

// CheckoutService dispatches the persisted cart as an order email. A
// submission is a one-shot state machine per profile: at most one attempt
// runs at a time, a failed attempt can be retried, and the cart slot is
// cleared exactly once, only after the email service acknowledges.
type CheckoutService interface {
	// Begin validates that the profile has something to check out.
	Begin(ctx context.Context, profileID string) (*CheckoutView, error)

	// Submit dispatches the order. The email configuration is checked
	// before any network call is made, so a misconfigured deployment
	// fails fast without side effects.
	Submit(ctx context.Context, profileID string, form OrderForm) (*SubmitResult, error)
}

type checkoutService struct {
	cartService CartService
	emailClient *emailjs.Client
	emailErr    error
	orderRepo   repository.OrderRepository

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewCheckoutService wires the checkout flow. A nil orderRepo disables
// archiving; an invalid email config is tolerated at startup and reported
// on the first submission instead.
func NewCheckoutService(cartService CartService, emailConfig emailjs.Config, orderRepo repository.OrderRepository) CheckoutService {
	client, err := emailjs.NewClient(emailConfig)
	if err != nil {
		logger.Warn("Email service not configured, order submission disabled", map[string]interface{}{
			"reason": err.Error(),
		})
	}

	return &checkoutService{
		cartService: cartService,
		emailClient: client,
		emailErr:    err,
		orderRepo:   orderRepo,
		inFlight:    make(map[string]bool),
	}
}

func (s *checkoutService) Begin(ctx context.Context, profileID string) (*CheckoutView, error) {
	items, err := s.cartService.LoadCart(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	total := model.CartTotal(items)
	return &CheckoutView{
		Items:          items,
		Total:          total,
		FormattedTotal: formatAmount(total),
	}, nil
}

func (s *checkoutService) Submit(ctx context.Context, profileID string, form OrderForm) (*SubmitResult, error) {
	if !s.acquire(profileID) {
		return nil, ErrSubmissionInFlight
	}
	defer s.release(profileID)

	items, err := s.cartService.LoadCart(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if s.emailClient == nil {
		logger.Error("Order submission attempted without email configuration", s.emailErr, map[string]interface{}{
			"profile_id": profileID,
		})
		return nil, s.emailErr
	}

	total := model.CartTotal(items)
	formattedTotal := formatAmount(total)

	itemsHTML, err := renderOrderItems(items, formattedTotal)
	if err != nil {
		return nil, err
	}

	logger.Info("Dispatching order email", map[string]interface{}{
		"profile_id": profileID,
		"items":      len(items),
		"total":      total,
	})

	err = s.emailClient.Send(ctx, map[string]interface{}{
		"customer_name":    form.CustomerName,
		"customer_email":   form.CustomerEmail,
		"customer_phone":   form.CustomerPhone,
		"customer_address": form.CustomerAddress,
		"order_items":      itemsHTML,
		"total_price":      formattedTotal,
	})
	if err != nil {
		logger.Error("Order email dispatch failed", err, map[string]interface{}{
			"profile_id": profileID,
		})
		return nil, err
	}

	// The attempt succeeded: the cart slot is consumed here and nowhere
	// else on this path.
	if err := s.cartService.ClearCart(ctx, profileID); err != nil {
		logger.Error("Failed to clear cart after dispatch", err, map[string]interface{}{
			"profile_id": profileID,
		})
	}

	result := &SubmitResult{
		CustomerName:   form.CustomerName,
		Total:          total,
		FormattedTotal: formattedTotal,
	}

	if s.orderRepo != nil {
		order := buildOrder(profileID, form, items, total)
		if err := s.orderRepo.Create(order); err == nil {
			result.OrderID = order.ID
		}
	}

	logger.Info("Order dispatched", map[string]interface{}{
		"profile_id": profileID,
		"order_id":   result.OrderID,
		"total":      total,
	})
	return result, nil
}

func (s *checkoutService) acquire(profileID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[profileID] {
		return false
	}
	s.inFlight[profileID] = true
	return true
}

func (s *checkoutService) release(profileID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, profileID)
}

func renderOrderItems(items []model.CartItem, formattedTotal string) (string, error) {
	var sb strings.Builder
	err := orderEmailTemplate.Execute(&sb, struct {
		Items          []model.CartItem
		FormattedTotal string
	}{Items: items, FormattedTotal: formattedTotal})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

func buildOrder(profileID string, form OrderForm, items []model.CartItem, total float64) *model.Order {
	lines := make([]model.OrderLine, len(items))
	for i, item := range items {
		lines[i] = model.OrderLine{
			ProductID: item.ID,
			Name:      item.Name,
			Pkg:       item.Pkg,
			Qty:       item.Qty,
			Price:     item.Price,
			Image:     item.Image,
		}
	}

	return &model.Order{
		ProfileID:       profileID,
		CustomerName:    form.CustomerName,
		CustomerEmail:   form.CustomerEmail,
		CustomerPhone:   form.CustomerPhone,
		CustomerAddress: form.CustomerAddress,
		TotalPrice:      total,
		DispatchedAt:    time.Now(),
		Lines:           lines,
	}
}
