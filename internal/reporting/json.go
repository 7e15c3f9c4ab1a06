package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/a11ykit/a11ylint/internal/ir"
)

func WriteJSON(scanID, outDir string, scan *ir.Scan) (string, error) {
	path := filepath.Join(outDir, scanID+".json")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(scan); err != nil {
		return "", err
	}
	return path, nil
}
