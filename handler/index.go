package handler

import (
	"github.com/yamamaalobaid/damascus-tour-guide/database"
	"github.com/yamamaalobaid/damascus-tour-guide/paygate"
	"github.com/yamamaalobaid/damascus-tour-guide/queue"
	"github.com/yamamaalobaid/damascus-tour-guide/service"

	"github.com/redis/go-redis/v9"
)

var (
	bookingSvc  *service.BookingService
	paymentSvc  *service.PaymentService
	notifySvc   *service.NotificationService
	deadLetters *queue.RetryQueue
	redisCli    *redis.Client
)

// Init wires the service layer once at startup.
func Init(gate paygate.Client, retry *queue.RetryQueue, rdb *redis.Client) {
	repo := service.NewGormBookingRepo(database.DB)
	notifySvc = service.NewNotificationService(database.DB)
	bookingSvc = service.NewBookingService(repo, notifySvc)
	paymentSvc = service.NewPaymentService(repo, gate, retry)
	deadLetters = retry
	redisCli = rdb
}

// PaymentRetryHandler exposes the reconciler to the retry-queue consumer.
func PaymentRetryHandler() queue.Handler {
	return paymentSvc.RetryHandler
}

// Notifications exposes the notification service to the scheduler.
func Notifications() *service.NotificationService {
	return notifySvc
}
