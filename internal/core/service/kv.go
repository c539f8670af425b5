// Package service provides domain services for Hoard.
package service

import (
	"errors"

	"github.com/yndnr/hoard-go/internal/core/domain"
	"github.com/yndnr/hoard-go/pkg/value"
)

// Repository is the storage interface KVService depends on.
type Repository interface {
	Get(key string) (domain.Entry, bool)
	Set(e domain.Entry)
	Delete(key string) bool
	Clear() int
	MGet(keys []string) []domain.Lookup
	MSet(entries []domain.Entry)
	Count() int
}

// Limits bounds keys and values. Zero fields take the domain defaults.
type Limits struct {
	MaxKeyLength   int
	MaxValueLength int
}

// KVService handles key-value operations.
type KVService struct {
	repo   Repository
	limits Limits
}

// NewKVService creates a new KVService.
func NewKVService(repo Repository, limits Limits) *KVService {
	if limits.MaxKeyLength <= 0 {
		limits.MaxKeyLength = domain.MaxKeyLength
	}
	if limits.MaxValueLength <= 0 {
		limits.MaxValueLength = domain.MaxValueLength
	}
	return &KVService{
		repo:   repo,
		limits: limits,
	}
}

// Limits returns the effective limits.
func (s *KVService) Limits() Limits {
	return s.limits
}

// Get returns the encoded value stored under key.
// Returns ErrKeyTooLong or ErrKeyNotFound.
func (s *KVService) Get(key string) ([]byte, error) {
	if err := domain.ValidateKey(key, s.limits.MaxKeyLength); err != nil {
		return nil, err
	}
	e, ok := s.repo.Get(key)
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return e.Encoded, nil
}

// Set decodes token, validates it and stores it under key.
func (s *KVService) Set(key, token string) error {
	e, err := s.Prepare(key, token)
	if err != nil {
		return err
	}
	s.repo.Set(e)
	return nil
}

// Prepare validates key and the encoded value token and returns the entry
// to store. Checks run in order: key length, decoding, kind, size.
func (s *KVService) Prepare(key, token string) (domain.Entry, error) {
	if err := domain.ValidateKey(key, s.limits.MaxKeyLength); err != nil {
		return domain.Entry{}, err
	}

	v, err := value.DecodeString(token)
	if err != nil {
		return domain.Entry{}, domain.ErrInvalidDataFormat.WithCause(err)
	}
	if !value.IsSupported(v) {
		return domain.Entry{}, domain.ErrUnsupportedType.WithDetails(v.Kind().String())
	}

	// Re-encode to the canonical form; its size is what gets checked.
	enc, err := value.EncodeLimit(v, s.limits.MaxValueLength)
	if err != nil {
		if errors.Is(err, value.ErrTooLarge) {
			return domain.Entry{}, domain.ErrValueTooLarge.WithCause(err)
		}
		return domain.Entry{}, domain.ErrInvalidDataFormat.WithCause(err)
	}

	return domain.Entry{Key: key, Value: v, Encoded: enc}, nil
}

// Delete removes key. Returns ErrKeyNotFound when it was absent.
func (s *KVService) Delete(key string) error {
	if err := domain.ValidateKey(key, s.limits.MaxKeyLength); err != nil {
		return err
	}
	if !s.repo.Delete(key) {
		return domain.ErrKeyNotFound
	}
	return nil
}

// Flush removes every entry and returns how many were dropped.
func (s *KVService) Flush() int {
	return s.repo.Clear()
}

// MGetResult is one per-key MGet outcome: Encoded is set when found,
// otherwise Err is ErrKeyNotFound or ErrKeyTooLong.
type MGetResult struct {
	Encoded []byte
	Err     error
}

// MGet resolves each key in order. Over-long keys fail individually.
func (s *KVService) MGet(keys []string) []MGetResult {
	out := make([]MGetResult, len(keys))

	valid := make([]string, 0, len(keys))
	for i, k := range keys {
		if err := domain.ValidateKey(k, s.limits.MaxKeyLength); err != nil {
			out[i].Err = err
			continue
		}
		valid = append(valid, k)
	}

	lookups := s.repo.MGet(valid)
	j := 0
	for i := range out {
		if out[i].Err != nil {
			continue
		}
		if l := lookups[j]; l.Found {
			out[i].Encoded = l.Entry.Encoded
		} else {
			out[i].Err = domain.ErrKeyNotFound
		}
		j++
	}
	return out
}

// KeyToken is one unparsed MSET pair.
type KeyToken struct {
	Key   string
	Token string
}

// MSet validates pairs in order and stores every pair before the first
// invalid one. The error for that pair is returned; there is no rollback.
func (s *KVService) MSet(pairs []KeyToken) error {
	entries := make([]domain.Entry, 0, len(pairs))
	var firstErr error
	for _, p := range pairs {
		e, err := s.Prepare(p.Key, p.Token)
		if err != nil {
			firstErr = err
			break
		}
		entries = append(entries, e)
	}
	s.repo.MSet(entries)
	return firstErr
}

// Count returns the number of stored entries.
func (s *KVService) Count() int {
	return s.repo.Count()
}
