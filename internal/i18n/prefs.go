package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	prefsBucket = []byte("preferences")
	langKey     = []byte("language")
)

// Preferences persists the preferred language across runs in a small bbolt
// file.
type Preferences struct {
	db *bolt.DB
}

// OpenPreferences opens (or creates) the preference file at path.
func OpenPreferences(path string) (*Preferences, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating preferences directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening preferences %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(prefsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing preferences: %w", err)
	}
	return &Preferences{db: db}, nil
}

// Language returns the stored language, if any.
func (p *Preferences) Language() (Language, bool, error) {
	var raw string
	err := p.db.View(func(tx *bolt.Tx) error {
		raw = string(tx.Bucket(prefsBucket).Get(langKey))
		return nil
	})
	if err != nil {
		return "", false, err
	}
	lang, ok := Parse(raw)
	return lang, ok, nil
}

// SetLanguage stores lang.
func (p *Preferences) SetLanguage(lang Language) error {
	if _, ok := Parse(string(lang)); !ok {
		return fmt.Errorf("unsupported language %q", lang)
	}
	return p.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(prefsBucket).Put(langKey, []byte(lang))
	})
}

// Persist stores every language change of t until the returned function is
// called.
func (p *Preferences) Persist(t *Translator, onError func(error)) func() {
	return t.Subscribe(func(lang Language) {
		if err := p.SetLanguage(lang); err != nil && onError != nil {
			onError(err)
		}
	})
}

// Close releases the preference file.
func (p *Preferences) Close() error {
	return p.db.Close()
}
