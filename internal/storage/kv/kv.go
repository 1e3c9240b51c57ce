package kv

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const schemaVersion = 1

// файл целиком: {"version": 1, "data": {"challenges": [...]}}
type payload struct {
	Version int                        `json:"version"`
	Data    map[string]json.RawMessage `json:"data"`
}

// Store - типизированное key-value хранилище поверх одного JSON-файла.
// Данные зеркалируются в память, каждый Set перезаписывает файл целиком.
type Store struct {
	path string
	mtx  sync.Mutex
	data map[string]json.RawMessage
}

func New(path string) *Store {
	return &Store{
		path: path,
		data: make(map[string]json.RawMessage),
	}
}

// Load читает файл один раз при старте. Отсутствующий файл - не ошибка,
// хранилище начинает с пустого состояния.
func (s *Store) Load() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("чтение файла хранилища: %w", err)
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("разбор файла хранилища: %w", err)
	}

	if p.Version != schemaVersion {
		return fmt.Errorf("неподдерживаемая версия схемы хранилища: %d", p.Version)
	}

	if p.Data != nil {
		s.data = p.Data
	}
	return nil
}

// Get возвращает false, если значения под ключом ещё нет
func (s *Store) Get(key string, dest any) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("разбор значения %q: %w", key, err)
	}
	return true, nil
}

// Set сериализует значение и сразу пишет файл - это единственная точка
// долговечности, память обновляется только после успешной записи
func (s *Store) Set(key string, value any) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("сериализация значения %q: %w", key, err)
	}

	next := make(map[string]json.RawMessage, len(s.data)+1)
	for k, v := range s.data {
		next[k] = v
	}
	next[key] = raw

	if err := s.save(next); err != nil {
		return err
	}

	s.data = next
	return nil
}

func (s *Store) save(data map[string]json.RawMessage) error {
	out, err := json.MarshalIndent(payload{Version: schemaVersion, Data: data}, "", "  ")
	if err != nil {
		return fmt.Errorf("сериализация хранилища: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("создание каталога хранилища: %w", err)
	}

	if err := os.WriteFile(s.path, out, 0600); err != nil {
		return fmt.Errorf("запись файла хранилища: %w", err)
	}
	return nil
}
