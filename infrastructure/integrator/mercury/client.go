package mercury

import (
	"net/http"
	"time"

	"github.com/daylightco/finops-reporter/infrastructure/integrator"
	"github.com/daylightco/finops-reporter/internal/config"
)

// Client fetches bank transactions from the Mercury API.
type Client struct {
	httpClient *http.Client
	cfg        config.Mercury
}

func NewClient(cfg config.Mercury) integrator.SourceAdapter {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg: cfg,
	}
}

type bankTransaction struct {
	PostedAt  string      `json:"postedAt"`
	CreatedAt string      `json:"createdAt"`
	BankDesc  string      `json:"bankDescription"`
	Note      string      `json:"note"`
	Amount    interface{} `json:"amount"`
	Kind      string      `json:"kind"`
}

type transactionsResponse struct {
	Transactions []bankTransaction `json:"transactions"`
}
