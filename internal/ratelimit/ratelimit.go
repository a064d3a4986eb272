package ratelimit

import (
	"log"
	"sync"
	"time"
)

// AIBudget enforces daily request budgets across the summarization
// providers so a misbehaving feed cannot burn through API quota.
type AIBudget struct {
	mu          sync.Mutex
	geminiCount int
	openaiCount int
	totalCount  int
	maxGemini   int
	maxOpenAI   int
	maxTotal    int
	resetTime   time.Time
	cacheHits   int
	cacheMisses int
}

// NewAIBudget creates a budget with per-provider and total limits.
// A limit of 0 means unlimited.
func NewAIBudget(maxGemini, maxOpenAI, maxTotal int) *AIBudget {
	return &AIBudget{
		maxGemini: maxGemini,
		maxOpenAI: maxOpenAI,
		maxTotal:  maxTotal,
		resetTime: time.Now().Add(24 * time.Hour),
	}
}

// CanUseGemini checks whether a Gemini request fits the budget.
func (b *AIBudget) CanUseGemini() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkReset()

	if b.maxGemini > 0 && b.geminiCount >= b.maxGemini {
		log.Printf("⚠️ Gemini budget reached (%d/%d)", b.geminiCount, b.maxGemini)
		return false
	}
	if b.maxTotal > 0 && b.totalCount >= b.maxTotal {
		log.Printf("⚠️ Total AI budget reached (%d/%d)", b.totalCount, b.maxTotal)
		return false
	}
	return true
}

// CanUseOpenAI checks whether an OpenAI request fits the budget.
func (b *AIBudget) CanUseOpenAI() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkReset()

	if b.maxOpenAI > 0 && b.openaiCount >= b.maxOpenAI {
		log.Printf("⚠️ OpenAI budget reached (%d/%d)", b.openaiCount, b.maxOpenAI)
		return false
	}
	if b.maxTotal > 0 && b.totalCount >= b.maxTotal {
		log.Printf("⚠️ Total AI budget reached (%d/%d)", b.totalCount, b.maxTotal)
		return false
	}
	return true
}

// RecordGemini counts one Gemini request against the budget.
func (b *AIBudget) RecordGemini() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.geminiCount++
	b.totalCount++
}

// RecordOpenAI counts one OpenAI request against the budget.
func (b *AIBudget) RecordOpenAI() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.openaiCount++
	b.totalCount++
}

// RecordCacheHit notes a summary served from cache instead of an API
// call.
func (b *AIBudget) RecordCacheHit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cacheHits++
}

// RecordCacheMiss notes a summary that needed an API call.
func (b *AIBudget) RecordCacheMiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cacheMisses++
}

// Stats returns the current usage snapshot.
func (b *AIBudget) Stats() map[string]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return map[string]int{
		"gemini_requests": b.geminiCount,
		"openai_requests": b.openaiCount,
		"total_requests":  b.totalCount,
		"cache_hits":      b.cacheHits,
		"cache_misses":    b.cacheMisses,
	}
}

// checkReset rolls the counters over when the daily window elapses.
// Caller must hold the mutex.
func (b *AIBudget) checkReset() {
	if time.Now().After(b.resetTime) {
		b.geminiCount = 0
		b.openaiCount = 0
		b.totalCount = 0
		b.resetTime = time.Now().Add(24 * time.Hour)
	}
}
