package wise

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/centavo/centavo/internal/config"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Transaction is one activity from the Wise feed. Amount and CreatedOn are
// kept as raw strings; parsing and filtering is the spending aggregator's
// job, and a malformed record must only cost that single record.
type Transaction struct {
	ID        string
	Amount    string // "<number> <currency-code>", e.g. "1,250.50 MXN"
	Title     string
	CreatedOn string
}

type Client interface {
	// FetchTransactions returns the full activity feed, newest first as
	// delivered by the API. Activities missing required fields are skipped;
	// transport or auth errors are fetch failures.
	FetchTransactions(ctx context.Context) ([]Transaction, error)
	// FetchBalance returns the balance in the default currency, or nil when
	// the profile holds no balance in that currency.
	FetchBalance(ctx context.Context) (*float64, error)
}

type ClientImpl struct {
	baseURL    string
	profileID  string
	currency   string
	timeout    time.Duration
	httpClient *http.Client
}

func NewClient(cfg config.Wise, currency string) *ClientImpl {
	// The Wise API key is a plain bearer token; a static token source gives
	// us an http.Client that attaches it to every request.
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIKey})
	return &ClientImpl{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		profileID:  cfg.ProfileID,
		currency:   currency,
		timeout:    time.Duration(cfg.Timeout) * time.Second,
		httpClient: oauth2.NewClient(context.Background(), tokenSource),
	}
}

type activityDTO struct {
	ID            string `json:"id"`
	PrimaryAmount string `json:"primaryAmount"`
	Title         string `json:"title"`
	CreatedOn     string `json:"createdOn"`
}

type activitiesResponseDTO struct {
	Activities []activityDTO `json:"activities"`
}

func (c *ClientImpl) FetchTransactions(ctx context.Context) ([]Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/v1/profiles/%s/activities", c.baseURL, c.profileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create activities request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("activities request failed with status %d", resp.StatusCode)
	}

	var body activitiesResponseDTO
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode activities response: %w", err)
	}

	transactions := make([]Transaction, 0, len(body.Activities))
	for _, activity := range body.Activities {
		if activity.ID == "" || activity.PrimaryAmount == "" || activity.CreatedOn == "" {
			log.Debugf("skipping malformed activity: %+v", activity)
			continue
		}
		title := strings.TrimSpace(activity.Title)
		if title == "" {
			title = "No Title"
		}
		transactions = append(transactions, Transaction{
			ID:        activity.ID,
			Amount:    activity.PrimaryAmount,
			Title:     title,
			CreatedOn: activity.CreatedOn,
		})
	}

	return transactions, nil
}

type balanceDTO struct {
	Currency string `json:"currency"`
	Amount   struct {
		Value float64 `json:"value"`
	} `json:"amount"`
}

func (c *ClientImpl) FetchBalance(ctx context.Context) (*float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/v4/profiles/%s/balances?types=STANDARD", c.baseURL, c.profileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create balances request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balances: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("balances request failed with status %d", resp.StatusCode)
	}

	var balances []balanceDTO
	if err := json.NewDecoder(resp.Body).Decode(&balances); err != nil {
		return nil, fmt.Errorf("failed to decode balances response: %w", err)
	}

	for _, balance := range balances {
		if balance.Currency == c.currency {
			value := balance.Amount.Value
			return &value, nil
		}
	}

	log.Debugf("no %s balance found among %d balances", c.currency, len(balances))
	return nil, nil
}
