package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/lucy-seohyun/D2STGNN/version"
	"github.com/lucy-seohyun/D2STGNN/window"
)

// ManifestFile is the manifest file name inside the output directory.
const ManifestFile = "manifest.json"

// Manifest records how a set of bundles was produced.
type Manifest struct {
	RunID     string         `json:"run_id"`
	CreatedAt time.Time      `json:"created_at"`
	Source    string         `json:"source"`
	Rows      int            `json:"rows"`
	Nodes     []string       `json:"nodes"`
	Channels  []string       `json:"channels"`
	XOffsets  window.Offsets `json:"x_offsets"`
	YOffsets  window.Offsets `json:"y_offsets"`
	Samples   int            `json:"samples"`
	Splits    []SplitResult  `json:"splits"`
	Scaler    string         `json:"scaler,omitempty"`
	Generator string         `json:"generator"`
}

// NewManifest starts a manifest with a fresh run id.
func NewManifest(source string, rows int, nodes, channels []string, x, y window.Offsets) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Source:    source,
		Rows:      rows,
		Nodes:     nodes,
		Channels:  channels,
		XOffsets:  x,
		YOffsets:  y,
		Generator: version.Get().String(),
	}
}

// Record copies the split results of a finished run.
func (m *Manifest) Record(res *Result) {
	m.Splits = res.Splits
	m.Scaler = res.ScalerKind
	m.Samples = 0
	for _, s := range res.Splits {
		m.Samples += s.Range.Len()
	}
}

// Write stores the manifest as dir/manifest.json.
func (m *Manifest) Write(dir string) (string, error) {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, ManifestFile)
	return path, os.WriteFile(path, append(b, '\n'), 0o644)
}
