package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"studylog_backend/internal/config"
	"studylog_backend/internal/repository"
)

// maxChatHistory bounds how many prior turns are forwarded upstream so the
// prompt never grows without limit.
const maxChatHistory = 10

// coachSystemPrompt is the fixed persona every conversation starts with.
const coachSystemPrompt = "あなたは受験生を応援する優しい学習コーチ「スタディ先生」です。" +
	"中学生・高校生の学習相談に乗り、勉強方法のアドバイスや励ましの言葉をかけてください。" +
	"回答は簡潔に、親しみやすい口調でお願いします。" +
	"勉強に関係のない質問には、やんわりと勉強の話題に戻してください。"

type AIService struct {
	config  config.AIConfig
	records *repository.StudyRecordRepository
	client  *http.Client
}

func NewAIService(cfg config.AIConfig, records *repository.StudyRecordRepository) *AIService {
	return &AIService{config: cfg, records: records, client: &http.Client{}}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat forwards a conversation to the upstream model. Only the last
// maxChatHistory turns are sent, with the coach persona always first.
func (s *AIService) Chat(ctx context.Context, history []AIChatMessage) (string, error) {
	if s.config.APIKey == "" {
		return "", errors.New("AI APIキーが設定されていません")
	}

	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}

	messages := make([]AIChatMessage, 0, len(history)+1)
	messages = append(messages, AIChatMessage{Role: "system", Content: coachSystemPrompt})
	messages = append(messages, history...)

	return s.complete(ctx, messages)
}

// Feedback generates a short encouragement based on the user's recent
// records.
func (s *AIService) Feedback(ctx context.Context, userID uint) (string, error) {
	if s.config.APIKey == "" {
		return "", errors.New("AI APIキーが設定されていません")
	}

	records, err := s.records.FindByUserID(userID, 5)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("次の学習記録を見て、受験生への短い応援メッセージとアドバイスを一つずつください。\n\n")
	if len(records) == 0 {
		sb.WriteString("まだ学習記録がありません。最初の一歩を後押ししてください。")
	}
	for _, r := range records {
		fmt.Fprintf(&sb, "- %s: %s %d分\n", r.Date, r.Subject, r.Duration)
	}

	messages := []AIChatMessage{
		{Role: "system", Content: coachSystemPrompt},
		{Role: "user", Content: sb.String()},
	}
	return s.complete(ctx, messages)
}

func (s *AIService) complete(ctx context.Context, messages []AIChatMessage) (string, error) {
	jsonData, err := json.Marshal(chatCompletionRequest{
		Model:    s.config.Model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}
	if completion.Error != nil {
		return "", errors.New(completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return completion.Choices[0].Message.Content, nil
}
