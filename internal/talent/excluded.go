package talent

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"
)

// ExcludedProfiles is the on-disk list of candidates that should be hidden from results.
type ExcludedProfiles struct {
	Items []*ExcludedProfile
}

type ExcludedProfile struct {
	Key        string
	Name       string
	URL        string
	Reason     string
	ExcludedAt time.Time
}

// ToExcluded converts candidates into exclusion entries stamped with the current time.
func ToExcluded(list []Candidate, reason string) *ExcludedProfiles {
	excluded := &ExcludedProfiles{}
	for _, c := range list {
		excluded.Items = append(excluded.Items, &ExcludedProfile{
			Key:        c.Key(),
			Name:       c.Name,
			URL:        c.ProfileURL,
			Reason:     reason,
			ExcludedAt: time.Now().UTC(),
		})
	}
	return excluded
}

// GetExcludedProfilesFromFile reads the exclusion list. A missing or empty file yields an empty list.
func GetExcludedProfilesFromFile(path string) (*ExcludedProfiles, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ExcludedProfiles{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedProfiles{}, nil
	}

	var excluded ExcludedProfiles
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedProfiles) Append(s *ExcludedProfiles) {
	e.Items = append(e.Items, s.Items...)
}

// Keys returns the set of excluded candidate keys.
func (e *ExcludedProfiles) Keys() map[string]struct{} {
	keys := make(map[string]struct{}, len(e.Items))
	for _, item := range e.Items {
		keys[item.Key] = struct{}{}
	}
	return keys
}

func (e *ExcludedProfiles) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
