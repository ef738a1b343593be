package testutil

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// MemoryStore is an in-memory storage.Store.
type MemoryStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	PutErr  error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Objects: map[string][]byte{}}
}

func (m *MemoryStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = buf.Bytes()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, key)
	return nil
}

func (m *MemoryStore) URL(key string) string {
	return "https://files.test/" + key
}

// Has reports whether key is stored.
func (m *MemoryStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Objects[key]
	return ok
}

// SentEmail is one call to RecordingMailer.Send.
type SentEmail struct {
	Template string
	To       string
	Data     map[string]interface{}
}

// RecordingMailer is an email.Sender that remembers what it was asked to send.
type RecordingMailer struct {
	mu   sync.Mutex
	Sent []SentEmail
}

func (m *RecordingMailer) Send(ctx context.Context, templateName, to string, data map[string]interface{}) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentEmail{Template: templateName, To: to, Data: data})
	return true
}

// Last returns the most recent email, or nil.
func (m *RecordingMailer) Last() *SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return nil
	}
	e := m.Sent[len(m.Sent)-1]
	return &e
}
