package utils

import (
	"fmt"
	"log"

	"github.com/Ashu2380/mykart-sub001/internal/config"
	"github.com/Ashu2380/mykart-sub001/internal/models"

	"github.com/wneessen/go-mail"
)

var mailCfg *config.Config

// InitMailer mémorise la configuration SMTP. Appelé une fois dans main().
func InitMailer(cfg *config.Config) {
	mailCfg = cfg
	if cfg.SMTPHost == "" {
		log.Println("⚠️ SMTP_HOST non configuré — envoi d'emails désactivé")
	}
}

// SendEmail envoie un email HTML. Toujours appelé en best-effort par les
// handlers (goroutine + log d'erreur).
func SendEmail(to, subject, htmlBody string) error {
	if mailCfg == nil || mailCfg.SMTPHost == "" {
		return fmt.Errorf("SMTP non configuré")
	}

	msg := mail.NewMsg()
	if err := msg.From(mailCfg.SMTPFrom); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(mailCfg.SMTPHost,
		mail.WithPort(mailCfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(mailCfg.SMTPUsername),
		mail.WithPassword(mailCfg.SMTPPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s (%s)</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">₹%.2f</td>
				<td style="padding: 8px; border: 1px solid #ddd;">₹%.2f</td>
			</tr>`, item.Name, item.Size, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Order Confirmation</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Your MyKart order is confirmed</h2>
		<p>Hi,</p>
		<p>Thanks for shopping with us. Your order <strong>#%s</strong> has been placed.</p>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Item</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Price</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">₹%.2f</td>
				</tr>
			</tfoot>
		</table>

		<p style="color: #666;">Payment method: %s</p>

		<p style="margin-top: 30px; color: #555;">
			Regards,<br>
			<strong>The MyKart team</strong>
		</p>
	</div>
</body>
</html>`, order.ID, itemsHTML, order.Amount, order.PaymentMethod)
}

// GenerateWelcomeHTML génère l'email de bienvenue
func GenerateWelcomeHTML(userName string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Welcome</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Welcome to MyKart, %s! 🎉</h2>
		<p>Your account is ready. Browse our latest collection and enjoy:</p>
		<ul>
			<li>✅ Free delivery on orders above ₹499</li>
			<li>✅ Easy 7-day returns</li>
			<li>✅ Price-drop alerts on your wishlist</li>
			<li>✅ Refer friends and earn rewards</li>
		</ul>
		<p style="margin-top: 30px; color: #555;">
			Happy shopping,<br>
			<strong>The MyKart team</strong>
		</p>
	</div>
</body>
</html>`, userName)
}
