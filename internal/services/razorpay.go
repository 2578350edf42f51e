package services

import (
	"fmt"
	"log"

	"github.com/Ashu2380/mykart-sub001/internal/config"

	razorpay "github.com/razorpay/razorpay-go"
)

var razorpayClient *razorpay.Client

// InitRazorpay initialise le client de la passerelle de paiement.
func InitRazorpay(cfg *config.Config) {
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		log.Println("⚠️ Clés Razorpay manquantes — paiement en ligne désactivé")
		return
	}
	razorpayClient = razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	log.Println("✅ Razorpay initialisé")
}

// CreateRazorpayOrder crée une commande côté passerelle. Le receipt est
// l'identifiant de notre propre commande : c'est lui qui relie les deux.
// Montant en paise (unité mineure).
func CreateRazorpayOrder(amountPaise int64, receipt string) (map[string]interface{}, error) {
	if razorpayClient == nil {
		return nil, fmt.Errorf("razorpay non initialisé")
	}

	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
	}

	body, err := razorpayClient.Order.Create(data, nil)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// FetchRazorpayOrder interroge la passerelle pour connaître le statut
// autoritaire d'une commande. La vérification est purement synchrone :
// on fait confiance à la réponse au moment où le client rappelle.
func FetchRazorpayOrder(razorpayOrderID string) (map[string]interface{}, error) {
	if razorpayClient == nil {
		return nil, fmt.Errorf("razorpay non initialisé")
	}
	return razorpayClient.Order.Fetch(razorpayOrderID, nil, nil)
}
