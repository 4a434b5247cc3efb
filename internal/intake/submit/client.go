package submit

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"esports-waitlist/internal/common/errors"
	commonhttp "esports-waitlist/internal/common/http"
	"esports-waitlist/internal/common/logger"
	"esports-waitlist/internal/models"
)

// Client posts finished forms to the upstream site API.
type Client struct {
	http   *commonhttp.Client
	logger logger.Logger
}

func NewClient(httpClient *commonhttp.Client, log logger.Logger) *Client {
	return &Client{
		http:   httpClient,
		logger: log.WithFields(map[string]interface{}{"component": "submit-client"}),
	}
}

// Post sends body to url and decodes the {ok, message} envelope. Errors are
// StandardErrors: SUBMISSION_CANCELED when ctx was canceled, NETWORK_FAILURE
// for transport problems and deadlines, SUBMISSION_REJECTED for a non-2xx
// status, ok=false, or a body that is not the expected JSON.
func (c *Client) Post(ctx context.Context, url string, body interface{}) (*models.APIResponse, error) {
	resp, err := c.http.PostJSON(ctx, url, body)
	if err != nil {
		if stderrors.Is(err, context.Canceled) || stderrors.Is(ctx.Err(), context.Canceled) {
			return nil, errors.NewSubmissionCanceledError(err)
		}
		c.logger.Warn("Upstream request failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return nil, errors.NewNetworkFailureError(err)
	}

	var api models.APIResponse
	if len(resp.Body) == 0 || json.Unmarshal(resp.Body, &api) != nil {
		c.logger.Warn("Upstream returned an unreadable body", map[string]interface{}{
			"url":    url,
			"status": resp.StatusCode,
		})
		return nil, errors.NewSubmissionRejectedError(resp.StatusCode, "")
	}

	if !resp.OK() || !api.OK {
		return &api, errors.NewSubmissionRejectedError(resp.StatusCode, api.Message)
	}
	return &api, nil
}
