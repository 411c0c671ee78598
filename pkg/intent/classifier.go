// Package intent classifies user messages into the handler vocabulary.
package intent

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"nihongo-tutor-be/internal/constant"
	"nihongo-tutor-be/pkg/llm"

	"github.com/patrickmn/go-cache"
)

type keywordRule struct {
	Substring string
	Intent    string
}

// defaultKeywordRules is the fast path: substring containment on the
// lowercased message, checked before any LLM call.
var defaultKeywordRules = []keywordRule{
	{"lộ trình", constant.IntentPlanner},
	{"kế hoạch học", constant.IntentPlanner},
	{"study plan", constant.IntentPlanner},
	{"luyện nói", constant.IntentSpeaking},
	{"hội thoại", constant.IntentSpeaking},
	{"chấm bài", constant.IntentReviewer},
	{"nhận xét bài", constant.IntentReviewer},
	{"bài học", constant.IntentLearning},
	{"giáo trình", constant.IntentLearning},
}

type Classifier struct {
	llmProvider llm.LLMProvider
	cache       *cache.Cache
	rules       []keywordRule
	vocabulary  map[string]struct{}
	logger      *log.Logger
}

func NewClassifier(llmProvider llm.LLMProvider, logger *log.Logger) *Classifier {
	vocabulary := make(map[string]struct{}, len(constant.IntentVocabulary))
	for _, intent := range constant.IntentVocabulary {
		vocabulary[intent] = struct{}{}
	}
	return &Classifier{
		llmProvider: llmProvider,
		// Repeat questions are common right after a redirect proposal;
		// memoize per message text for a short while.
		cache:      cache.New(10*time.Minute, 30*time.Minute),
		rules:      defaultKeywordRules,
		vocabulary: vocabulary,
		logger:     logger,
	}
}

const classifyPromptTemplate = `You are an intent classifier for a Japanese-learning assistant.
Read the user message and answer with exactly one of these words:
qna, planner, learning, reviewer, speaking.

User message: %q
Intent:`

// Classify returns an intent from the fixed vocabulary. Out-of-vocabulary
// or failed classification resolves to the qna catch-all, never an error.
func (c *Classifier) Classify(ctx context.Context, text string) string {
	lowered := strings.ToLower(text)

	for _, rule := range c.rules {
		if strings.Contains(lowered, rule.Substring) {
			return rule.Intent
		}
	}

	if cached, found := c.cache.Get(lowered); found {
		return cached.(string)
	}

	intent := c.classifyLLM(ctx, text)
	c.cache.Set(lowered, intent, cache.DefaultExpiration)
	return intent
}

func (c *Classifier) classifyLLM(ctx context.Context, text string) string {
	prompt := fmt.Sprintf(classifyPromptTemplate, text)
	response, err := c.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		c.logger.Printf("[INTENT] classification failed, defaulting to %s: %v", constant.IntentQna, err)
		return constant.IntentQna
	}

	candidate := strings.ToLower(strings.TrimSpace(response))
	if _, ok := c.vocabulary[candidate]; !ok {
		// ClassificationAmbiguous policy: default, don't fail the request.
		c.logger.Printf("[INTENT] out-of-vocabulary label %q, defaulting to %s", candidate, constant.IntentQna)
		return constant.IntentQna
	}
	return candidate
}
