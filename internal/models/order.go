package models

import "time"

// Méthodes de paiement
const (
	PaymentCOD      = "COD"
	PaymentRazorpay = "Razorpay"
)

// Cycle de vie d'une commande. Le statut reste une chaîne libre côté admin :
// un statut inconnu est accepté tel quel et la notification retombe sur le
// message générique.
const (
	StatusOrderPlaced    = "Order Placed"
	StatusPacking        = "Packing"
	StatusShipped        = "Shipped"
	StatusOutForDelivery = "Out for delivery"
	StatusDelivered      = "Delivered"
)

// OrderItem est une copie figée de l'article au moment de la commande,
// pas une référence vivante : l'historique ne bouge pas si le produit
// est modifié ou supprimé ensuite.
type OrderItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Size      string  `bson:"size" json:"size"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
}

type Address struct {
	FirstName string `bson:"first_name" json:"firstName"`
	LastName  string `bson:"last_name" json:"lastName"`
	Street    string `bson:"street" json:"street"`
	City      string `bson:"city" json:"city"`
	State     string `bson:"state" json:"state"`
	ZipCode   string `bson:"zip_code" json:"zipCode"`
	Country   string `bson:"country" json:"country"`
	Phone     string `bson:"phone" json:"phone"`
}

// SplitShare : la part d'un payeur dans un paiement partagé.
type SplitShare struct {
	Name   string  `bson:"name" json:"name"`
	Amount float64 `bson:"amount" json:"amount"`
}

type SplitPayment struct {
	Payer1 SplitShare `bson:"payer1" json:"payer1"`
	Payer2 SplitShare `bson:"payer2" json:"payer2"`
}

type DeliverySlot struct {
	Date   string `bson:"date" json:"date"`
	Window string `bson:"window" json:"window"`
}

type Order struct {
	ID              string        `bson:"_id" json:"id"`
	UserID          string        `bson:"user_id" json:"userId"`
	Items           []OrderItem   `bson:"items" json:"items"`
	Amount          float64       `bson:"amount" json:"amount"`
	Address         Address       `bson:"address" json:"address"`
	PaymentMethod   string        `bson:"payment_method" json:"paymentMethod"`
	Payment         bool          `bson:"payment" json:"payment"`
	Status          string        `bson:"status" json:"status"`
	SplitPayment    *SplitPayment `bson:"split_payment,omitempty" json:"splitPayment,omitempty"`
	DeliverySlot    *DeliverySlot `bson:"delivery_slot,omitempty" json:"deliverySlot,omitempty"`
	RazorpayOrderID string        `bson:"razorpay_order_id,omitempty" json:"razorpayOrderId,omitempty"`
	Date            time.Time     `bson:"date" json:"date"`
}
