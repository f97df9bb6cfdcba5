package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/field-crm/internal/config"
	"github.com/spec-kit/field-crm/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventLeadCreated, n.handleLeadCreated)
	n.dispatcher.Subscribe(events.EventLeadStatusChanged, n.handleStatusChanged)
	n.dispatcher.Subscribe(events.EventLeadAssigned, n.handleAssigned)
	n.dispatcher.Subscribe(events.EventFollowupScheduled, n.handleFollowupScheduled)
	n.dispatcher.Subscribe(events.EventServiceAssigned, n.handleAssigned)
	n.dispatcher.Subscribe(events.EventPaymentRecorded, n.handlePaymentRecorded)
	n.dispatcher.Subscribe(events.EventStatusChanged, n.handleStatusChanged)
}

func (n *NotificationService) handleLeadCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("LeadCreated", zap.String("item_id", event.ItemID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("StatusChanged",
		zap.String("kind", string(event.Kind)),
		zap.String("item_id", event.ItemID),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAssigned(ctx context.Context, event events.Event) error {
	n.logger.Info("Assigned",
		zap.String("kind", string(event.Kind)),
		zap.String("item_id", event.ItemID),
		zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleFollowupScheduled(ctx context.Context, event events.Event) error {
	n.logger.Info("FollowupScheduled", zap.String("item_id", event.ItemID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePaymentRecorded(ctx context.Context, event events.Event) error {
	n.logger.Info("PaymentRecorded", zap.String("item_id", event.ItemID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("item_id", event.ItemID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("item_id", event.ItemID),
		zap.String("event_type", string(event.Type)))
}
