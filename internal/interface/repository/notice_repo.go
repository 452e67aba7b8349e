// internal/interface/repository/notice_repo.go
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/internal/domain/repository"
	"crewrecovery-service/pkg/logger"
)

// HTTPNoticeRepository handles sending crew notices to the notification service
type HTTPNoticeRepository struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
}

// NewHTTPNoticeRepository creates a new notice repository
func NewHTTPNoticeRepository(logger logger.Logger, baseURL, bearerToken string) repository.NoticeRepository {
	return &HTTPNoticeRepository{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
	}
}

type sendNoticeRequest struct {
	Type   string `json:"type"`
	CrewID string `json:"crewId"`
	Text   string `json:"text"`
	SentAt string `json:"sentAt"`
}

// Send dispatches a notice to the notification service and returns the
// delivery task ID
func (r *HTTPNoticeRepository) Send(ctx context.Context, notice *entity.Notice) (string, error) {
	sentAtUTC := time.Now().UTC().Format(time.RFC3339)

	msg := sendNoticeRequest{
		Type:   string(notice.Type),
		CrewID: notice.CrewID,
		Text:   notice.Text,
		SentAt: sentAtUTC,
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal notice: %w", err)
	}

	r.logger.Info("Sending notice to notification service",
		"type", notice.Type,
		"crewId", notice.CrewID)

	url := fmt.Sprintf("%s/api/v1/notices/send", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("notification service returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			TaskID string `json:"taskId"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	notice.SentAt = time.Now().UTC()
	notice.Status = "sent"

	return response.Data.TaskID, nil
}
