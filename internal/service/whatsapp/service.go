package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultrydash/internal/domain/models"
	client "github.com/mamadbah2/poultrydash/pkg/clients/whatsapp"
)

// ErrEmptyMessage is returned for outbound requests without a recipient or body.
var ErrEmptyMessage = errors.New("recipient and message are required")

// MessagingService describes the outbound messaging operations.
type MessagingService interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// MetaWhatsAppService is the production implementation backed by WhatsApp Cloud API.
type MetaWhatsAppService struct {
	client client.Client
	logger *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance.
func NewMetaWhatsAppService(client client.Client, logger *zap.Logger) *MetaWhatsAppService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetaWhatsAppService{client: client, logger: logger}
}

// SendOutbound delivers a text message to a single recipient.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	to := strings.TrimSpace(req.To)
	body := strings.TrimSpace(req.Message)
	if to == "" || body == "" {
		return ErrEmptyMessage
	}

	resp, err := s.client.SendTextMessage(ctx, client.SendTextMessageRequest{
		To:         to,
		Body:       body,
		PreviewURL: req.PreviewURL,
	})
	if err != nil {
		return fmt.Errorf("send outbound to %s: %w", to, err)
	}

	s.logger.Info("outbound message sent", zap.String("to", to), zap.String("message_id", resp.MessageID()))
	return nil
}
