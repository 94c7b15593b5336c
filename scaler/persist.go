package scaler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type envelope struct {
	Kind   string             `json:"kind"`
	Params map[string]float64 `json:"params"`
}

// Marshal serializes a fitted scaler.
func Marshal(s Scaler) ([]byte, error) {
	if s == nil || !s.Fitted() {
		return nil, ErrNotFitted
	}
	return json.MarshalIndent(envelope{Kind: s.Kind(), Params: s.Params()}, "", "  ")
}

// Unmarshal restores a fitted scaler serialized by Marshal.
func Unmarshal(b []byte) (Scaler, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, err
	}
	restore, ok := registry[env.Kind]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, env.Kind)
	}
	return restore(env.Params)
}

// Save writes a fitted scaler to path. The file is written next to path
// and renamed into place.
func Save(path string, s Scaler) error {
	b, err := Marshal(s)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Load reads a scaler written by Save.
func Load(path string) (Scaler, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
