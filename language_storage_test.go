package main

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInMemoryLanguageStorage(t *testing.T) {
	storage := NewInMemoryLanguageStorage()

	_, err := storage.RetrieveLanguage("client-1")
	require.ErrorIs(t, err, ErrLanguageNotFound)

	require.NoError(t, storage.StoreLanguage("client-1", "en"))
	lang, err := storage.RetrieveLanguage("client-1")
	require.NoError(t, err)
	require.Equal(t, "en", lang)

	// overwrite is not an error
	require.NoError(t, storage.StoreLanguage("client-1", "de"))
	lang, err = storage.RetrieveLanguage("client-1")
	require.NoError(t, err)
	require.Equal(t, "de", lang)
}

func TestInMemoryLanguageStorageConcurrent(t *testing.T) {
	storage := NewInMemoryLanguageStorage()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = storage.StoreLanguage("client", "en")
			_, _ = storage.RetrieveLanguage("client")
		}()
	}
	wg.Wait()

	lang, err := storage.RetrieveLanguage("client")
	require.NoError(t, err)
	require.Equal(t, "en", lang)
}

func TestCreateKey(t *testing.T) {
	require.Equal(t, "travmd:lang:abc", createKey("travmd", "abc"))
}
