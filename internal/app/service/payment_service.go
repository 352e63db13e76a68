package service

import (
	"context"

	"github.com/psomsri/taladsod-backend/internal/app/model"
	"github.com/psomsri/taladsod-backend/pkg/logger"
	"github.com/psomsri/taladsod-backend/pkg/payment/promptpay"
)

// PaymentView is the payment page state: the payable total and, when the
// total is positive, the URL of the rendered PromptPay QR image.
type PaymentView struct {
	Total          float64 `json:"total"`
	FormattedTotal string  `json:"formatted_total"`
	QRImageURL     string  `json:"qr_image_url"`
}

type PaymentService interface {
	// View computes the payable total from the persisted cart and builds
	// the QR image URL. A zero total produces a view without a QR image.
	View(ctx context.Context, profileID string) (*PaymentView, error)

	// PayWithStripe and PayWithOmise are stand-ins for card and wallet
	// checkout flows that are not wired to a real provider yet.
	PayWithStripe() string
	PayWithOmise() string
}

type paymentService struct {
	cartService CartService
	builder     *promptpay.Builder
}

func NewPaymentService(cartService CartService, builder *promptpay.Builder) PaymentService {
	return &paymentService{
		cartService: cartService,
		builder:     builder,
	}
}

func (s *paymentService) View(ctx context.Context, profileID string) (*PaymentView, error) {
	items, err := s.cartService.LoadCart(ctx, profileID)
	if err != nil {
		return nil, err
	}

	total := model.CartTotal(items)

	view := &PaymentView{
		Total:          total,
		FormattedTotal: formatAmount(total),
	}
	if total <= 0 {
		return view, nil
	}

	qrURL, err := s.builder.QRImageURL(total)
	if err != nil {
		logger.Error("Failed to build PromptPay QR URL", err, map[string]interface{}{
			"profile_id": profileID,
			"total":      total,
		})
		return nil, err
	}
	view.QRImageURL = qrURL

	logger.Debug("Payment view generated", map[string]interface{}{
		"profile_id": profileID,
		"total":      total,
	})
	return view, nil
}

func (s *paymentService) PayWithStripe() string {
	return "Redirecting to Safe Stripe Checkout..."
}

func (s *paymentService) PayWithOmise() string {
	return "Opening Omise Secure Payment Popup..."
}
