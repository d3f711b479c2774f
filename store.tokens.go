package main

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// memoryTokenRegistry mints and resolves bearer tokens. A token value
// mixes the clock time, a process-lifetime sequence number and the
// owner email, so two logins can never collide even within the same
// second or for the same account. Tokens stay valid until shutdown.
type memoryTokenRegistry struct {
	logger *zap.Logger
	clock  Clocker
	seq    uint64
	mu     sync.RWMutex
	tokens map[string]string
}

// NewMemoryTokenRegistry provides an instance of in-memory token registry.
func NewMemoryTokenRegistry(logger *zap.Logger, clock Clocker) TokenRegistry {
	return &memoryTokenRegistry{
		logger: logger,
		clock:  clock,
		tokens: make(map[string]string),
	}
}

// Issue generates a new token bound to the owner email and registers it as valid.
func (tr *memoryTokenRegistry) Issue(_ context.Context, ownerEmail string) (string, error) {
	token := fmt.Sprintf("token_%d_%d_%s", tr.clock.Now().Unix(), atomic.AddUint64(&tr.seq, 1), ownerEmail)
	tr.mu.Lock()
	tr.tokens[token] = ownerEmail
	tr.mu.Unlock()
	return token, nil
}

// Resolve returns the owner email bound to the token value. It fails
// with ErrInvalidToken if the value was never issued by this process.
func (tr *memoryTokenRegistry) Resolve(_ context.Context, token string) (string, error) {
	tr.mu.RLock()
	ownerEmail, exists := tr.tokens[token]
	tr.mu.RUnlock()
	if !exists {
		return "", ErrInvalidToken
	}
	return ownerEmail, nil
}
