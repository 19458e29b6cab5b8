package brex

import (
	"net/http"
	"time"

	"github.com/daylightco/finops-reporter/infrastructure/integrator"
	"github.com/daylightco/finops-reporter/internal/config"
)

// Client fetches card transactions from the Brex platform API.
type Client struct {
	httpClient *http.Client
	cfg        config.Brex
}

func NewClient(cfg config.Brex) integrator.SourceAdapter {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg: cfg,
	}
}

// cardTransaction mirrors the fields of interest of a Brex card transaction.
// Amount is decoded loosely because the API has been observed returning both
// numbers and strings depending on endpoint version.
type cardTransaction struct {
	PostedAtDate string `json:"posted_at_date"`
	Description  string `json:"description"`
	Amount       struct {
		Amount   interface{} `json:"amount"`
		Currency string      `json:"currency"`
	} `json:"amount"`
	Merchant *struct {
		MccDescription string `json:"mcc_description"`
	} `json:"merchant"`
}

type transactionsPage struct {
	Items      []cardTransaction `json:"items"`
	NextCursor string            `json:"next_cursor"`
}
