package checkpoint

import (
	"fmt"
	"os"
	"sync"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// Store persists the last-processed entry id per stream/group/consumer
// to a yaml file, so a consumer can resume where it left off after a
// restart. A file lock guards the read-modify-write cycle against other
// processes sharing the checkpoint file; the mutex guards it against
// other goroutines.
type Store struct {
	path string
	fl   *flock.Flock
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		fl:   flock.New(path + ".lock"),
	}
}

func key(stream, group, consumer string) string {
	return fmt.Sprintf("%s/%s/%s", stream, group, consumer)
}

// Save records id as the consumer's position.
func (s *Store) Save(stream, group, consumer, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fl.Lock(); err != nil {
		return fmt.Errorf("locking checkpoint file: %w", err)
	}
	defer s.fl.Unlock()

	positions, err := s.read()
	if err != nil {
		return err
	}
	positions[key(stream, group, consumer)] = id

	data, err := yaml.Marshal(positions)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Load returns the consumer's saved position, or "" when none exists.
func (s *Store) Load(stream, group, consumer string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fl.RLock(); err != nil {
		return "", fmt.Errorf("locking checkpoint file: %w", err)
	}
	defer s.fl.Unlock()

	positions, err := s.read()
	if err != nil {
		return "", err
	}
	return positions[key(stream, group, consumer)], nil
}

func (s *Store) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}

	positions := make(map[string]string)
	if err := yaml.Unmarshal(data, &positions); err != nil {
		return nil, fmt.Errorf("parsing checkpoint file: %w", err)
	}
	return positions, nil
}
