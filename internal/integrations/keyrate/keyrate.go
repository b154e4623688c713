package keyrate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
)

// lookback is how far back the rate history is requested
const lookback = 30

// Rate is the reference key rate plus the margin charged on late invoices,
// all in percent per year.
type Rate struct {
	Date    billing.Date    `json:"date"`
	KeyRate decimal.Decimal `json:"key_rate"`
	Margin  decimal.Decimal `json:"margin"`
	Total   decimal.Decimal `json:"total"`
}

// Client fetches the key rate from the central bank SOAP service
type Client struct {
	url    string
	margin decimal.Decimal
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new key rate client
func NewClient(url string, margin decimal.Decimal, log *logrus.Logger) *Client {
	return &Client{
		url:    url,
		margin: margin,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// buildSOAPRequest creates a SOAP request for the key rate history up to today
func buildSOAPRequest(today billing.Date) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
		<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
			<soap12:Body>
				<KeyRate xmlns="http://web.cbr.ru/">
					<fromDate>%s</fromDate>
					<ToDate>%s</ToDate>
				</KeyRate>
			</soap12:Body>
		</soap12:Envelope>`, today.AddDays(-lookback), today)
}

func (c *Client) sendRequest(ctx context.Context, soapRequest string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBufferString(soapRequest))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/KeyRate")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	c.log.Debugf("Key rate XML response: %s", string(body))
	return body, nil
}

// parseXMLResponse extracts the most recent rate. The service lists the
// history newest first.
func parseXMLResponse(rawBody []byte) (billing.Date, decimal.Decimal, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return billing.Date{}, decimal.Zero, fmt.Errorf("failed to parse XML: %w", err)
	}

	krElements := doc.FindElements("//diffgram/KeyRate/KR")
	if len(krElements) == 0 {
		return billing.Date{}, decimal.Zero, fmt.Errorf("no key rate data found in XML")
	}
	latest := krElements[0]

	rateElement := latest.FindElement("./Rate")
	if rateElement == nil {
		return billing.Date{}, decimal.Zero, fmt.Errorf("rate element not found in XML")
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(rateElement.Text()))
	if err != nil {
		return billing.Date{}, decimal.Zero, fmt.Errorf("failed to parse rate %q: %w", rateElement.Text(), err)
	}

	var date billing.Date
	if dt := latest.FindElement("./DT"); dt != nil {
		text := strings.TrimSpace(dt.Text())
		if len(text) < 10 {
			return billing.Date{}, decimal.Zero, fmt.Errorf("malformed rate date %q", text)
		}
		// DT carries a time and offset; only the calendar date matters.
		date, err = billing.ParseDate(text[:10])
		if err != nil {
			return billing.Date{}, decimal.Zero, fmt.Errorf("failed to parse rate date: %w", err)
		}
	}
	return date, rate, nil
}

// KeyRate retrieves the current key rate and adds the configured margin
func (c *Client) KeyRate(ctx context.Context, today billing.Date) (*Rate, error) {
	body, err := c.sendRequest(ctx, buildSOAPRequest(today))
	if err != nil {
		return nil, err
	}
	date, rate, err := parseXMLResponse(body)
	if err != nil {
		return nil, err
	}

	r := &Rate{Date: date, KeyRate: rate, Margin: c.margin, Total: rate.Add(c.margin)}
	c.log.WithFields(logrus.Fields{
		"key_rate": r.KeyRate.String(),
		"margin":   r.Margin.String(),
		"date":     r.Date.String(),
	}).Info("Retrieved key rate")
	return r, nil
}
