package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GenerateVaultQR renders a QR pointing at the vault page, base64
// encoded so it can be dropped straight into an <img src="...">
func GenerateVaultQR(vaultURL string) (string, error) {
	png, err := qrcode.Encode(vaultURL, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// RenderReceiptPDF loads the frontend receipt page for an order and
// prints it to PDF. The QR travels as a query param so the page can
// embed it without a second round-trip.
func RenderReceiptPDF(frontendURL, orderID, qrBase64 string) ([]byte, error) {
	q := url.Values{}
	q.Set("id", orderID)
	q.Set("qr", qrBase64)

	fullURL := fmt.Sprintf("%s?%s", frontendURL, q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

// GetFrontendReceiptBaseURL reads the receipt page URL from env
func GetFrontendReceiptBaseURL() string {
	u := os.Getenv("FRONTEND_RECEIPT_URL")
	if u == "" {
		// local dev fallback
		return "http://localhost:3000/receipt"
	}
	return u
}

// GetFrontendVaultURL reads the vault page URL from env
func GetFrontendVaultURL() string {
	u := os.Getenv("FRONTEND_VAULT_URL")
	if u == "" {
		return "http://localhost:3000/vault"
	}
	return u
}
