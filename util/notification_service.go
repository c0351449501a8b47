// util/notification_service.go

package util

import (
	"context"

	"go.uber.org/zap"

	logger "github.com/atriumhq/atrium/logging"
)

// NotificationService turns bus events into operator-facing alerts. It only
// logs today; a mail or chat webhook client would slot in here.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// HandleDeniedAccess is subscribed to the audit denied-access topic in main.
func (n *NotificationService) HandleDeniedAccess(ctx context.Context, event Event) error {
	logger.Warn("NOTIFICATION: Access denied",
		zap.String("eventType", event.Type),
		zap.Any("event", event.Payload))
	return nil
}
