package service

// NotificationServiceInterface defines the contract for outbound SMS
// notifications. Implementations must never block or fail the caller.
type NotificationServiceInterface interface {
	// NotifyOrderConfirmed tells a vendor their order was finalized and
	// how much was debited (amount in paise).
	NotifyOrderConfirmed(phone, name string, amountPaise int64)

	// NotifySupplierSummary tells a supplier how many units of their goods
	// were ordered today.
	NotifySupplierSummary(phone, name, productsSummary string)

	// NotifyRouteAssigned tells a delivery agent a route with stopCount
	// stops is waiting for them.
	NotifyRouteAssigned(phone, name string, stopCount int)
}
