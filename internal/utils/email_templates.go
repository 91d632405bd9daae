package utils

import (
	"fmt"

	"bookhaven_back_end/internal/models"
)

// SendAccessCodeEmail mails the 6-digit vault code
func SendAccessCodeEmail(userEmail, code string) error {
	subject := "🔑 Your BookHaven access code"

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Your access code</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f5f5f5;">
    <table role="presentation" style="width: 100%%; border-collapse: collapse; background-color: #f5f5f5;">
        <tr>
            <td style="padding: 40px 20px;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; box-shadow: 0 4px 6px rgba(0,0,0,0.1);">
                    <tr>
                        <td style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 40px 30px; text-align: center; border-radius: 12px 12px 0 0;">
                            <h1 style="margin: 0; color: #ffffff; font-size: 28px; font-weight: 700;">
                                🔑 Vault access
                            </h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 40px 30px;">
                            <p style="margin: 0 0 25px 0; color: #333333; font-size: 16px; line-height: 1.6;">
                                Use this code to unlock your library. It expires in <strong>10 minutes</strong>.
                            </p>
                            <table role="presentation" style="width: 100%%; margin: 20px 0;">
                                <tr>
                                    <td style="text-align: center; padding: 25px; background-color: #f8f9fa; border-radius: 8px;">
                                        <span style="font-size: 36px; font-weight: 700; letter-spacing: 10px; color: #333333;">%s</span>
                                    </td>
                                </tr>
                            </table>
                            <p style="margin: 25px 0 0 0; color: #888888; font-size: 13px; line-height: 1.6;">
                                If you didn't request this code, you can safely ignore this email.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>`, code)

	return SendEmail(userEmail, subject, html, nil)
}

// GenerateOrderConfirmationHTML renders the settlement confirmation body
func GenerateOrderConfirmationHTML(order models.Order, vaultURL string) string {
	symbol := "₦"
	if order.Currency == "USD" {
		symbol = "$"
	}

	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%s%.2f</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%s%.2f</td>
			</tr>`, item.Title, item.Quantity, symbol, item.Price, symbol, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Order confirmation</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Your order is confirmed 🎉</h2>
		<p>Hello,</p>
		<p>Your payment went through and your items are waiting in your vault.</p>

		<h3>Order details</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Item</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Unit price</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">%s%.2f</td>
				</tr>
			</tfoot>
		</table>

		<p style="margin: 25px 0;">
			<a href="%s" style="display: inline-block; padding: 14px 32px; background-color: #667eea; color: #ffffff; text-decoration: none; border-radius: 8px; font-weight: 600;">
				📚 Open my vault
			</a>
		</p>

		<p style="margin-top: 30px; color: #555;">
			Happy reading,<br>
			<strong>The BookHaven team</strong>
		</p>
	</div>
</body>
</html>`, itemsHTML, symbol, order.TotalPrice, vaultURL)
}
