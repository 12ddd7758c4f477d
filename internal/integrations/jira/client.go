package jira

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/core/config"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"

	"github.com/go-resty/resty/v2"
)

// Client files and reads Service Desk customer requests.
type Client struct {
	httpClient    *resty.Client
	serviceDeskID string
	requestTypeID string
}

func NewClient(cfg config.JiraConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")+"/rest/servicedeskapi").
		SetBasicAuth(cfg.Email, cfg.APIToken).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &Client{
		httpClient:    httpClient,
		serviceDeskID: cfg.ServiceDeskID,
		requestTypeID: cfg.RequestTypeID,
	}
}

func (c *Client) CreateRequest(ctx context.Context, summary, description string) (*Request, error) {
	payload := createRequestPayload{
		ServiceDeskID: c.serviceDeskID,
		RequestTypeID: c.requestTypeID,
		RequestFieldValues: map[string]string{
			"summary":     summary,
			"description": description,
		},
	}

	result := new(Request)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(apiErr).
		Post("/request")
	if err != nil {
		return nil, fmt.Errorf("create jira request: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("jira returned %s: %s", resp.Status(), apiErr.message())
	}

	return result, nil
}

func (c *Client) GetRequest(ctx context.Context, issueKey string) (*Request, error) {
	result := new(Request)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("key", issueKey).
		SetResult(result).
		SetError(apiErr).
		Get("/request/{key}")
	if err != nil {
		return nil, fmt.Errorf("get jira request: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("jira returned %s: %s", resp.Status(), apiErr.message())
	}

	return result, nil
}

// FileMaintenanceTicket opens a request describing a maintenance record and
// returns its issue key.
func (c *Client) FileMaintenanceTicket(ctx context.Context, record models.MaintenanceRecordView) (string, error) {
	summary := fmt.Sprintf("[%s] %s (%s)", record.Type, record.AssetName, record.AssetSerial)
	description := fmt.Sprintf("Maintenance record %d\nRequested by user %d on %s\n\n%s",
		record.ID, record.RequestedBy, record.RequestedDate.Format("2006-01-02 15:04"), record.Description)

	request, err := c.CreateRequest(ctx, summary, description)
	if err != nil {
		return "", err
	}

	return request.IssueKey, nil
}
