package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrLanguageNotFound = errors.New("no language stored")

// Should be safe to use in concurreny
type LanguageStorage interface {
	// Store the language code for the given client id.
	// Overwrites a previously stored value.
	StoreLanguage(clientId string, lang string) error

	// Should retrieve the language for the given client id and
	// return ErrLanguageNotFound when nothing is stored.
	RetrieveLanguage(clientId string) (string, error)
}

type InMemoryLanguageStorage struct {
	LanguageMap map[string]string
	mutex       sync.Mutex
}

func NewInMemoryLanguageStorage() *InMemoryLanguageStorage {
	return &InMemoryLanguageStorage{
		LanguageMap: make(map[string]string),
	}
}

type RedisLanguageStorage struct {
	client    *redis.Client
	namespace string
}

func NewRedisLanguageStorage(client *redis.Client, namespace string) *RedisLanguageStorage {
	return &RedisLanguageStorage{client: client, namespace: namespace}
}

// ------------------------------------------------------------------------------

func createKey(namespace, clientId string) string {
	return fmt.Sprintf("%s:lang:%s", namespace, clientId)
}

// A preference is kept for a year after it was last set.
const Timeout time.Duration = 365 * 24 * time.Hour

func (s *RedisLanguageStorage) StoreLanguage(clientId string, lang string) error {
	ctx := context.Background()
	return s.client.Set(ctx, createKey(s.namespace, clientId), lang, Timeout).Err()
}

func (s *RedisLanguageStorage) RetrieveLanguage(clientId string) (string, error) {
	ctx := context.Background()
	lang, err := s.client.Get(ctx, createKey(s.namespace, clientId)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrLanguageNotFound
	}
	return lang, err
}

// ------------------------------------------------------------------------------

func (s *InMemoryLanguageStorage) StoreLanguage(clientId, lang string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.LanguageMap[clientId] = lang
	return nil
}

func (s *InMemoryLanguageStorage) RetrieveLanguage(clientId string) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if lang, ok := s.LanguageMap[clientId]; ok {
		return lang, nil
	}
	return "", ErrLanguageNotFound
}
