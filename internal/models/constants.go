package models

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"

	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"

	PaymentMethodOnline = "online"
	PaymentMethodCOD    = "cod"

	SubscriptionPlanMonthly = "monthly"
	SubscriptionPlanYearly  = "yearly"

	SubscriptionStatusActive    = "active"
	SubscriptionStatusInactive  = "inactive"
	SubscriptionStatusCancelled = "cancelled"

	RoleOwner      = "Owner"
	RoleAdmin      = "Admin"
	RoleSalesAgent = "SalesAgent"
	RoleCustomer   = "Customer"

	// DefaultCommissionRate is the platform's cut of every order total.
	DefaultCommissionRate = 0.30
)

// orderLifecycle lists the forward path of an order. Cancellation is allowed
// from any state before delivered.
var orderLifecycle = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusDelivered,
}
