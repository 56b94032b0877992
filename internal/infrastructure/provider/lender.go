package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"autoelite/internal/domain"
	"autoelite/internal/infrastructure/httpx"

	"go.uber.org/zap"
)

const lenderPlansPath = "/v1/plans"

// Lender fetches the current rate sheet from a lending partner.
type Lender struct {
	BaseURL string
	Client  *httpx.Client
	Log     *zap.Logger
}

type lenderResp struct {
	Success bool                 `json:"success"`
	Plans   []domain.FinancePlan `json:"plans"`
	Error   *struct {
		Code int    `json:"code"`
		Info string `json:"info"`
	} `json:"error,omitempty"`
}

func (l *Lender) Plans(ctx context.Context) ([]domain.FinancePlan, error) {
	if l.BaseURL == "" {
		return nil, errors.New("lender: missing base url")
	}
	u, err := url.Parse(l.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("lender: invalid base url: %w", err)
	}
	u.Path = lenderPlansPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("lender: create request: %w", err)
	}
	client := l.Client
	if client == nil {
		client = &httpx.Client{}
	}
	var body lenderResp
	if err := client.DoJSON(ctx, req, &body, l.Log); err != nil {
		return nil, fmt.Errorf("lender: %w", err)
	}
	if !body.Success {
		if body.Error != nil {
			return nil, fmt.Errorf("lender: %d %s", body.Error.Code, body.Error.Info)
		}
		return nil, errors.New("lender: unsuccessful response")
	}
	plans, err := normalize(body.Plans)
	if err != nil {
		return nil, fmt.Errorf("lender: %w", err)
	}
	return plans, nil
}
