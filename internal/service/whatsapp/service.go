package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/fueldepot/internal/config"
	"github.com/mamadbah2/fueldepot/internal/domain/models"
	"github.com/mamadbah2/fueldepot/internal/service/reporting"
	client "github.com/mamadbah2/fueldepot/pkg/clients/whatsapp"
)

// ErrNoRecipient is returned when a summary has nobody to go to.
var ErrNoRecipient = errors.New("no whatsapp recipient configured")

// MessagingService describes the messages the depot sends out.
type MessagingService interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
	SendDailySummary(ctx context.Context, report models.DailyReport) error
}

// MetaWhatsAppService is the production implementation backed by WhatsApp Cloud API.
type MetaWhatsAppService struct {
	cfg    config.WhatsAppConfig
	client client.Client
	logger *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, client client.Client, logger *zap.Logger) *MetaWhatsAppService {
	svc := &MetaWhatsAppService{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// SendOutbound sends a free-form text message.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	to := strings.TrimSpace(req.To)
	if to == "" {
		return ErrNoRecipient
	}
	if strings.TrimSpace(req.Message) == "" {
		return errors.New("message must not be empty")
	}

	resp, err := s.client.SendTextMessage(ctx, client.SendTextMessageRequest{
		To:         to,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	if err != nil {
		return fmt.Errorf("send outbound message: %w", err)
	}

	s.logger.Info("outbound message sent", zap.String("to", to), zap.String("message_id", resp.MessageID()))
	return nil
}

// SendDailySummary sends the end-of-day summary to the depot manager.
func (s *MetaWhatsAppService) SendDailySummary(ctx context.Context, report models.DailyReport) error {
	if s.cfg.ManagerID == "" {
		return ErrNoRecipient
	}
	return s.SendOutbound(ctx, models.OutboundMessageRequest{
		To:      s.cfg.ManagerID,
		Message: reporting.FormatDailySummary(report),
	})
}
