package store

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"
)

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

var (
	// ErrMalformed marks a data file that exists but cannot be decoded into
	// a task list.
	ErrMalformed = errors.New("malformed task file")
	timeNow      = func() time.Time { return time.Now().UTC() }
)

// DefaultFileName is the data file used when nothing else is configured.
const DefaultFileName = "tasklist.json"

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFor picks the codec from the file extension. Anything that is not
// .yaml or .yml is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// File is the whole-list persistence of a Store.
type File struct {
	Path   string
	Format Format
}

func OpenFile(path string) *File {
	path = expandHome(strings.TrimSpace(path))
	if path == "" {
		path = DefaultFileName
	}
	return &File{Path: path, Format: FormatFor(path)}
}

// Load reads the task list. A missing file is an empty list. Contents that
// cannot be decoded or fail validation return an error wrapping
// ErrMalformed; any other read failure is returned as is.
func (f *File) Load() ([]Task, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return decodeTasks(b, f.Format)
}

// Save rewrites the whole file with tasks, even when tasks is empty.
func (f *File) Save(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := encodeTasks(tasks, f.Format)
	if err != nil {
		return err
	}
	return atomicWriteFile(f.Path, data, 0o644)
}

// Quarantine moves the current file aside so a later Save does not
// overwrite it, and returns the new path.
func (f *File) Quarantine() (string, error) {
	dst := fmt.Sprintf("%s.corrupt-%s", f.Path, newULID())
	if err := os.Rename(f.Path, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func encodeTasks(tasks []Task, format Format) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(tasks)
	}
	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func decodeTasks(b []byte, format Format) ([]Task, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	doc, err := decodeDocument(b, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc == nil {
		return nil, nil
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}
	var tasks []Task
	if format == FormatYAML {
		err = yaml.Unmarshal(b, &tasks)
	} else {
		err = json.Unmarshal(b, &tasks)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return tasks, nil
}

// decodeDocument returns the generic JSON form of the file. YAML documents
// are passed through encoding/json so the schema sees the same value types
// for both formats.
func decodeDocument(b []byte, format Format) (interface{}, error) {
	var doc interface{}
	if format == FormatJSON {
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	var node yaml.Node
	if err := yaml.Unmarshal(b, &node); err != nil {
		return nil, err
	}
	raw, err := yamlValue(&node)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	j, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(j, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// yamlValue converts a YAML node to plain Go values. Timestamps stay
// strings so dates are checked the same way as in JSON files.
func yamlValue(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.SequenceNode:
		out := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[n.Content[i].Value] = v
		}
		return out, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!str", "!!timestamp":
			return n.Value, nil
		}
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported yaml node kind %d", n.Kind)
	}
}

func newULID() string {
	t := ulid.Timestamp(timeNow())
	entropy := ulid.Monotonic(randReader{}, 0)
	id, err := ulid.New(t, entropy)
	if err != nil {
		// fallback
		return fmt.Sprintf("%d", timeNow().UnixNano())
	}
	return strings.ToUpper(id.String())
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) || path == "~" {
		home, _ := os.UserHomeDir()
		if home != "" {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func atomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d", filepath.Base(path), timeNow().UnixNano()))
	if err := os.WriteFile(tmp, data, perm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Rename is atomic on same filesystem.
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
