package verification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"table-booking/models"
)

// APIClient is a Verifier backed by the widget's own HTTP endpoints.
type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (c *APIClient) post(ctx context.Context, path string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var env apiEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%s: HTTP %d: bad JSON: %w", path, resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		return fmt.Errorf("%s: HTTP %d: %s", path, resp.StatusCode, env.Error)
	}
	return json.Unmarshal(env.Data, out)
}

func (c *APIClient) Match(ctx context.Context, date, name, email, phone string) (models.MatchResult, error) {
	var resp models.MatchResponse
	err := c.post(ctx, "/check-resident", map[string]string{
		"date": date, "name": name, "email": email, "phone": phone,
	}, &resp)
	if err != nil {
		return models.MatchResult{Tier: models.TierUnavailable}, err
	}
	res := models.MatchResult{Tier: resp.Tier, Message: resp.Message, Record: models.RecordFromSummary(resp.ResidentSummary)}
	if resp.PhoneOnFile != nil {
		res.PhoneOnFile = *resp.PhoneOnFile
	}
	return res, nil
}

func (c *APIClient) VerifyPhone(ctx context.Context, date, name, phone string) (models.PhoneVerifyResult, error) {
	var resp models.PhoneVerifyResponse
	if err := c.post(ctx, "/verify-resident-phone", map[string]string{
		"date": date, "name": name, "phone": phone,
	}, &resp); err != nil {
		return models.PhoneVerifyResult{}, err
	}
	return models.PhoneVerifyResult{Verified: resp.Verified, Record: models.RecordFromSummary(resp.Resident)}, nil
}

func (c *APIClient) VerifyReference(ctx context.Context, date, reference string) (models.ReferenceVerifyResult, error) {
	var resp models.ReferenceVerifyResponse
	if err := c.post(ctx, "/verify-resident-reference", map[string]string{
		"date": date, "reference": reference,
	}, &resp); err != nil {
		return models.ReferenceVerifyResult{}, err
	}
	return models.ReferenceVerifyResult{
		Verified:   resp.Verified,
		Record:     models.RecordFromSummary(resp.Resident),
		AgentMatch: resp.AgentMatch,
		AgentName:  resp.AgentName,
		InternalID: resp.InternalID,
	}, nil
}
