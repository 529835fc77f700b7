package order

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"door-import/log"
)

const receiptTimeFormat = "20060102-150405"

// Store saves completed orders as JSON receipts in a directory.
type Store struct {
	dir string
}

// NewStore creates a receipt store rooted at dir. The directory is created
// on the first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the receipt directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the summary as a new receipt and returns its path.
func (s *Store) Save(summary Summary) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create receipt directory: %w", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal receipt: %w", err)
	}

	base := "order-" + summary.CreatedAt.Format(receiptTimeFormat)
	path := filepath.Join(s.dir, base+".json")
	for i := 2; fileExists(path); i++ {
		path = filepath.Join(s.dir, fmt.Sprintf("%s-%d.json", base, i))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write receipt: %w", err)
	}
	log.InfoLog.Printf("saved order receipt %s (%d panels, total %d)", path, len(summary.Lines), summary.Total)
	return path, nil
}

// List returns every stored receipt, oldest first by CreatedAt. Receipts
// saved in the same second keep the order they were saved in. Unreadable
// receipts are skipped with a warning.
func (s *Store) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read receipt directory: %w", err)
	}

	type stored struct {
		summary Summary
		seq     int
	}
	var all []stored
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			log.WarningLog.Printf("skipping receipt %s: %v", name, err)
			continue
		}
		var summary Summary
		if err := json.Unmarshal(data, &summary); err != nil {
			log.WarningLog.Printf("skipping invalid receipt %s: %v", name, err)
			continue
		}
		all = append(all, stored{summary: summary, seq: receiptSeq(name)})
	}

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if !a.summary.CreatedAt.Equal(b.summary.CreatedAt) {
			return a.summary.CreatedAt.Before(b.summary.CreatedAt)
		}
		return a.seq < b.seq
	})

	receipts := make([]Summary, len(all))
	for i, s := range all {
		receipts[i] = s.summary
	}
	return receipts, nil
}

// receiptSeq returns N for "order-<time>-N.json" and 1 for the first
// receipt of a second.
func receiptSeq(name string) int {
	parts := strings.Split(strings.TrimSuffix(name, ".json"), "-")
	if len(parts) != 4 {
		return 1
	}
	n, err := strconv.Atoi(parts[3])
	if err != nil {
		return 1
	}
	return n
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
