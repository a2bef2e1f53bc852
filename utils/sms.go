package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// SmsCredentials identify one sender account at the SMS gateway. A
// property can carry its own set; otherwise the environment defaults
// apply.
type SmsCredentials struct {
	APIKey    string
	PartnerID string
	ShortCode string
}

// DefaultSmsCredentials reads the gateway account from the environment.
func DefaultSmsCredentials() SmsCredentials {
	return SmsCredentials{
		APIKey:    os.Getenv("SMS_API_KEY"),
		PartnerID: os.Getenv("SMS_PARTNER_ID"),
		ShortCode: os.Getenv("SMS_SHORTCODE"),
	}
}

func smsBaseURL() string {
	if url := os.Getenv("SMS_BASE_URL"); url != "" {
		return url
	}
	return "https://quicksms.advantasms.com"
}

var smsClient = &http.Client{Timeout: 15 * time.Second}

type smsRequest struct {
	APIKey    string `json:"apikey"`
	PartnerID string `json:"partnerID"`
	Mobile    string `json:"mobile"`
	Message   string `json:"message"`
	ShortCode string `json:"shortcode"`
}

type smsResponse struct {
	Responses []struct {
		ResponseCode int    `json:"response-code"`
		ResponseDesc string `json:"response-description"`
		MessageID    string `json:"messageid"`
		Mobile       string `json:"mobile"`
	} `json:"responses"`
}

// SendSMS posts one message to the gateway and returns the provider's
// message ID for delivery report matching.
func SendSMS(creds SmsCredentials, phone, message string) (string, error) {
	if creds.APIKey == "" || creds.PartnerID == "" || creds.ShortCode == "" {
		return "", errors.New("sms credentials not configured")
	}

	payload, err := json.Marshal(smsRequest{
		APIKey:    creds.APIKey,
		PartnerID: creds.PartnerID,
		Mobile:    phone,
		Message:   message,
		ShortCode: creds.ShortCode,
	})
	if err != nil {
		return "", err
	}

	resp, err := smsClient.Post(smsBaseURL()+"/api/services/sendsms/", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		log.Printf("Failed to send SMS to %s: %v", phone, err)
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("SMS gateway returned status %d for %s", resp.StatusCode, phone)
		return "", fmt.Errorf("sms gateway status %d", resp.StatusCode)
	}

	var parsed smsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Responses) == 0 {
		return "", errors.New("empty sms gateway response")
	}
	first := parsed.Responses[0]
	if first.ResponseCode != 200 {
		return "", fmt.Errorf("sms gateway rejected message: %s", first.ResponseDesc)
	}

	return first.MessageID, nil
}

type smsBalanceRequest struct {
	APIKey    string `json:"apikey"`
	PartnerID string `json:"partnerID"`
}

type smsBalanceResponse struct {
	Balance      json.Number `json:"credit"`
	ResponseCode int         `json:"response-code"`
}

// GetSMSBalance queries the gateway account's remaining credit.
func GetSMSBalance(creds SmsCredentials) (string, error) {
	if creds.APIKey == "" || creds.PartnerID == "" {
		return "", errors.New("sms credentials not configured")
	}

	payload, err := json.Marshal(smsBalanceRequest{
		APIKey:    creds.APIKey,
		PartnerID: creds.PartnerID,
	})
	if err != nil {
		return "", err
	}

	resp, err := smsClient.Post(smsBaseURL()+"/api/services/getbalance/", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed smsBalanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.ResponseCode != 200 {
		return "", errors.New("sms gateway rejected balance request")
	}

	return parsed.Balance.String(), nil
}
