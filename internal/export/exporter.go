package export

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"painel-etl/internal/client"
	"painel-etl/internal/models"
)

// Exporter pushes KPI snapshots to the sink webhook, each signed with
// an HMAC-SHA256 over the JSON body.
type Exporter struct {
	secret     string
	httpClient *client.WebhookClient
	logger     *logrus.Logger
}

func NewExporter(secret string, httpClient *client.WebhookClient, logger *logrus.Logger) *Exporter {
	return &Exporter{
		secret:     secret,
		httpClient: httpClient,
		logger:     logger,
	}
}

// ExportSnapshot signs and delivers one daily KPI roll-up.
func (e *Exporter) ExportSnapshot(ctx context.Context, sinkURL string, snapshot models.ExportSnapshot) error {
	signature, err := e.createSignature(snapshot)
	if err != nil {
		e.logger.WithError(err).Error("Failed to create signature")
		return fmt.Errorf("failed to create signature: %w", err)
	}

	if err := e.httpClient.PostJSON(ctx, sinkURL, snapshot, signature); err != nil {
		e.logger.WithError(err).WithField("date", snapshot.Date).Error("Failed to export snapshot")
		return fmt.Errorf("failed to export snapshot: %w", err)
	}

	e.logger.WithFields(logrus.Fields{
		"date":  snapshot.Date,
		"leads": snapshot.Leads.Total,
		"sales": snapshot.Sales.Count,
	}).Info("Successfully exported snapshot")
	return nil
}

func (e *Exporter) createSignature(data any) (string, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	h := hmac.New(sha256.New, []byte(e.secret))
	h.Write(jsonData)
	return "sha256=" + hex.EncodeToString(h.Sum(nil)), nil
}
