package morph

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultMaxSize is the largest side a loaded image is shrunk to.
const DefaultMaxSize = 500

// Config describes a morph: the two images and their feature points.
type Config struct {
	MaxSize float64     `yaml:"maxSize"`
	Source  ImageConfig `yaml:"source"`
	Target  ImageConfig `yaml:"target"`

	dir string
}

// ImageConfig is one side of a morph. Points are given inline or through a
// JSON or SVG points file; inline points win.
type ImageConfig struct {
	Image      string      `yaml:"image"`
	Points     [][]float64 `yaml:"points"`
	PointsFile string      `yaml:"pointsFile"`
}

// LoadConfig reads a YAML morph configuration. Relative paths inside it are
// resolved against the directory of the file.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "morph: open config")
	}
	defer f.Close()

	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, errors.Wrapf(err, "morph: config %s", path)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// ReadConfig decodes a YAML morph configuration.
func ReadConfig(r io.Reader) (*Config, error) {
	cfg := &Config{}
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, errors.Wrap(err, "decode yaml")
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	return cfg, nil
}

// Resolve returns p relative to the config file directory, unless p is
// absolute or a URL.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || IsURL(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// Features loads the feature points of one side of the configuration.
func (c *Config) Features(ic ImageConfig) ([]Feature, error) {
	if len(ic.Points) > 0 {
		features := make([]Feature, 0, len(ic.Points))
		for i, p := range ic.Points {
			if len(p) != 2 {
				return nil, errors.Errorf("morph: point %d has %d components", i, len(p))
			}
			features = append(features, NewFeature(p[0], p[1]))
		}
		return features, nil
	}
	if ic.PointsFile == "" {
		return nil, nil
	}
	return ReadFeaturesFile(c.Resolve(ic.PointsFile))
}

// IsURL reports whether s looks like an http(s) URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ReadFeaturesFile loads features from a .json or .svg file.
func ReadFeaturesFile(path string) ([]Feature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "morph: open points file")
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadFeaturesJSON(f)
	case ".svg":
		return ReadFeaturesSVG(f)
	}
	return nil, errors.Errorf("morph: unsupported points file %q", path)
}

type featureJSON struct {
	Coord    []float64 `json:"coord"`
	ToDelete bool      `json:"toDelete,omitempty"`
}

// ReadFeaturesJSON decodes a list of {"coord": [x, y], "toDelete": bool} objects.
func ReadFeaturesJSON(r io.Reader) ([]Feature, error) {
	var raw []featureJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "morph: decode points")
	}
	features := make([]Feature, 0, len(raw))
	for i, fj := range raw {
		if len(fj.Coord) != 2 {
			return nil, errors.Errorf("morph: point %d has %d components", i, len(fj.Coord))
		}
		f := NewFeature(fj.Coord[0], fj.Coord[1])
		f.Removed = fj.ToDelete
		features = append(features, f)
	}
	return features, nil
}

// WriteFeaturesJSON encodes features in the format read by ReadFeaturesJSON.
func WriteFeaturesJSON(w io.Writer, features []Feature) error {
	raw := make([]featureJSON, len(features))
	for i, f := range features {
		raw[i] = featureJSON{Coord: []float64{f.X, f.Y}, ToDelete: f.Removed}
	}
	return json.NewEncoder(w).Encode(raw)
}

// ReadFeaturesSVG reads the centres of all circle elements, in document order.
func ReadFeaturesSVG(r io.Reader) ([]Feature, error) {
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return nil, errors.Wrap(err, "morph: parse svg")
	}
	var features []Feature
	for _, el := range root.FindAll("circle") {
		x, err := strconv.ParseFloat(el.Attributes["cx"], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "morph: circle cx %q", el.Attributes["cx"])
		}
		y, err := strconv.ParseFloat(el.Attributes["cy"], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "morph: circle cy %q", el.Attributes["cy"])
		}
		features = append(features, NewFeature(x, y))
	}
	return features, nil
}
