package fsutils

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Decoder decodes
type Decoder interface {
	Decode(o interface{}) error
}

func ReadJSONFile(filePath string, required bool, o interface{}) (err error) {
	return ReadFile(filePath, required, o, func(r io.Reader) Decoder {
		return json.NewDecoder(r)
	})
}

func ReadYAMLFile(filePath string, required bool, o interface{}) (err error) {
	return ReadFile(filePath, required, o, func(r io.Reader) Decoder {
		return yaml.NewDecoder(r)
	})
}

func ReadTOMLFile(filePath string, required bool, o interface{}) (err error) {
	return ReadFile(filePath, required, o, func(r io.Reader) Decoder {
		return tomlDecoder{toml.NewDecoder(r)}
	})
}

// toml.Decoder.Decode also returns metadata we have no use for.
type tomlDecoder struct {
	d *toml.Decoder
}

func (t tomlDecoder) Decode(o interface{}) error {
	_, err := t.d.Decode(o)
	return err
}

func ReadFile(filePath string, required bool, o interface{}, newDecoder func(r io.Reader) Decoder) (err error) {
	var file *os.File
	if file, err = os.Open(filePath); err != nil {
		if os.IsNotExist(err) && !required {
			err = nil
		}
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Warn().Err(err).Str("path", filePath).Msg("failed to close file")
		}
	}()
	decoder := newDecoder(file)
	if err = decoder.Decode(o); err != nil {
		if err == io.EOF {
			// empty file
			return nil
		}
		return err
	}
	return err
}

func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err // some other error
	}
	return info.IsDir(), nil
}

// ExpandHome expands leading ~ to the user's home directory.
func ExpandHome(p string) string {
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if p == "~" {
				return home
			}
			return filepath.Join(home, strings.TrimPrefix(p, "~/"))
		}
	}
	return p
}

// Canonicalize returns an absolute path with symlinks resolved.
// When the path cannot be resolved it falls back to the cleaned absolute path.
func Canonicalize(p string) string {
	p = ExpandHome(p)
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// IsWithin reports whether p equals dir or lies below it.
func IsWithin(p, dir string) bool {
	if p == dir {
		return true
	}
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
