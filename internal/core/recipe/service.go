package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	aiservice "recipe-assistant/internal/core/ai/service"
	"recipe-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// AIProcessor 對 AI 服務的依賴
type AIProcessor interface {
	ProcessRequest(ctx context.Context, prompt string, imageData string) (*aiservice.Response, error)
}

// Generator 生成食譜文字
type Generator interface {
	Generate(ctx context.Context, dishName string, ingredients []string) (string, error)
}

// Classifier 由圖片辨識菜名
type Classifier interface {
	Classify(ctx context.Context, imageData string) (string, error)
}

// Detector 由圖片辨識食材標籤
type Detector interface {
	Detect(ctx context.Context, imageData string) ([]string, error)
}

// Answer 一次查詢的結果
type Answer struct {
	Record   Record   `json:"recipe"`
	Text     string   `json:"text"`
	Strategy Strategy `json:"match"`
}

// Service 食譜助理：先查本地食譜庫，找不到才交給生成模型
type Service struct {
	resolver   *Resolver
	generator  Generator
	classifier Classifier
	detector   Detector
}

// NewService 創建食譜助理；外部服務可為 nil，此時對應功能回傳 ErrUnavailable
func NewService(resolver *Resolver, generator Generator, classifier Classifier, detector Detector) *Service {
	return &Service{
		resolver:   resolver,
		generator:  generator,
		classifier: classifier,
		detector:   detector,
	}
}

// Lookup 只查本地食譜庫
func (s *Service) Lookup(query string, ingredients []string) (*Answer, bool) {
	m, ok := s.resolver.Resolve(query, ingredients)
	if !ok {
		return nil, false
	}

	common.LogDebug("recipe resolved",
		zap.String("query", query),
		zap.String("key", m.Entry.Key),
		zap.String("strategy", string(m.Strategy)),
		zap.Float64("score", m.Score),
	)
	return newAnswer(Normalize(m.Entry), m.Strategy), true
}

// Answer 依菜名回答；本地找不到時生成
func (s *Service) Answer(ctx context.Context, message string) (*Answer, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, common.ErrInvalidRequest.Wrap(errors.New("message is empty"))
	}

	if ans, ok := s.Lookup(message, nil); ok {
		return ans, nil
	}
	return s.generate(ctx, message, nil)
}

// AnswerImage 辨識圖片中的菜名後回答
func (s *Service) AnswerImage(ctx context.Context, imageData string) (*Answer, error) {
	if s.classifier == nil {
		return nil, common.ErrUnavailable.Wrap(errors.New("classifier not configured"))
	}

	label, err := s.classifier.Classify(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("failed to classify image: %w", err)
	}

	if ans, ok := s.Lookup(label, nil); ok {
		return ans, nil
	}
	return s.generate(ctx, label, nil)
}

// AnswerIngredients 辨識圖片中的食材後以食材比對；兩種結果都附上辨識到的食材
func (s *Service) AnswerIngredients(ctx context.Context, imageData string) (*Answer, error) {
	if s.detector == nil {
		return nil, common.ErrUnavailable.Wrap(errors.New("detector not configured"))
	}

	labels, err := s.detector.Detect(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("failed to detect ingredients: %w", err)
	}
	labels = common.NormalizeLabels(labels)

	ans, ok := s.Lookup("", labels)
	if !ok {
		ans, err = s.generate(ctx, "", labels)
		if err != nil {
			return nil, err
		}
	}

	ans.Record.IngredientsDetected = labels
	return ans, nil
}

// Parse 將外部提供的生成文字轉成標準食譜
func (s *Service) Parse(text, fallbackName string) *Answer {
	return newAnswer(NormalizeGenerated(text, fallbackName), StrategyGenerated)
}

func (s *Service) generate(ctx context.Context, dishName string, ingredients []string) (*Answer, error) {
	if s.generator == nil {
		return nil, common.ErrUnavailable.Wrap(errors.New("generator not configured"))
	}

	text, err := s.generator.Generate(ctx, dishName, ingredients)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recipe: %w", err)
	}

	return s.Parse(text, dishName), nil
}

func newAnswer(rec Record, strategy Strategy) *Answer {
	return &Answer{Record: rec, Text: Render(rec), Strategy: strategy}
}
