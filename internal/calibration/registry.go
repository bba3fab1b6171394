package calibration

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var embeddedTables embed.FS

// Kind classifies the vessel a table calibrates.
type Kind string

const (
	KindTank  Kind = "tank"
	KindRail  Kind = "rail"
	KindDrain Kind = "drain"
)

// Vessel shapes and the drain collector.
const (
	ShapeRGS50  = "RGS-50"
	ShapeRGS100 = "RGS-100"
	DrainRK1    = "RK-1"
)

// Tank groups accepted by TankGroup.
const (
	GroupAll    = "all"
	GroupRGS50  = "all50"
	GroupRGS100 = "all100"
)

// ErrUnknownGroup is returned for tank groups other than all, all50 and all100.
var ErrUnknownGroup = errors.New("unknown tank group")

type tableFile struct {
	Name        string  `yaml:"name"`
	Kind        Kind    `yaml:"kind"`
	Description string  `yaml:"description"`
	Points      []Point `yaml:"points"`
}

// Registry holds every calibration table loaded at start-up together with
// the depot tank catalog.
type Registry struct {
	shapes map[string]*Table
	cars   map[string]*Table
	drain  *Table
	tanks  []string
	index  map[string]int
}

// DefaultTanks is the depot catalog: eight RGS-50 and four RGS-100 tanks.
func DefaultTanks() []string {
	tanks := make([]string, 0, 12)
	for i := 1; i <= 8; i++ {
		tanks = append(tanks, fmt.Sprintf("%s #%d", ShapeRGS50, i))
	}
	for i := 1; i <= 4; i++ {
		tanks = append(tanks, fmt.Sprintf("%s #%d", ShapeRGS100, i))
	}
	return tanks
}

// Load reads the embedded calibration tables.
func Load() (*Registry, error) {
	return LoadFS(embeddedTables, "tables", DefaultTanks())
}

// MustLoad is Load for callers that cannot continue without tables.
func MustLoad() *Registry {
	reg, err := Load()
	if err != nil {
		panic(err)
	}
	return reg
}

// LoadFS reads every *.yaml table under dir and binds the tank catalog.
func LoadFS(fsys fs.FS, dir string, tanks []string) (*Registry, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list calibration tables: %w", err)
	}

	reg := &Registry{
		shapes: make(map[string]*Table),
		cars:   make(map[string]*Table),
		index:  make(map[string]int, len(tanks)),
	}

	for _, file := range files {
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read calibration table %s: %w", file, err)
		}

		var tf tableFile
		if err := yaml.Unmarshal(raw, &tf); err != nil {
			return nil, fmt.Errorf("decode calibration table %s: %w", file, err)
		}
		if tf.Name == "" || len(tf.Points) == 0 {
			return nil, fmt.Errorf("calibration table %s is empty", file)
		}

		table, err := NewTable(tf.Name, tf.Points)
		if err != nil {
			return nil, err
		}

		switch tf.Kind {
		case KindTank:
			reg.shapes[tf.Name] = table
		case KindRail:
			reg.cars[tf.Name] = table
		case KindDrain:
			reg.drain = table
		default:
			return nil, fmt.Errorf("calibration table %s: unknown kind %q", file, tf.Kind)
		}
	}

	for _, tank := range tanks {
		if _, ok := reg.shapes[shapeOf(tank)]; !ok {
			return nil, fmt.Errorf("tank %s has no calibration table", tank)
		}
		if _, dup := reg.index[tank]; dup {
			return nil, fmt.Errorf("tank %s listed twice", tank)
		}
		reg.index[tank] = len(reg.tanks)
		reg.tanks = append(reg.tanks, tank)
	}

	return reg, nil
}

// Tanks returns the catalog in display order.
func (r *Registry) Tanks() []string {
	out := make([]string, len(r.tanks))
	copy(out, r.tanks)
	return out
}

// TankIndex returns the position of a tank in the catalog.
func (r *Registry) TankIndex(tank string) (int, bool) {
	i, ok := r.index[tank]
	return i, ok
}

// TankTable returns the strapping table for a catalog tank.
func (r *Registry) TankTable(tank string) (*Table, bool) {
	if _, ok := r.index[tank]; !ok {
		return nil, false
	}
	t, ok := r.shapes[shapeOf(tank)]
	return t, ok
}

// CarTable returns the table for a rail-car type such as "72".
func (r *Registry) CarTable(carType string) (*Table, bool) {
	t, ok := r.cars[strings.TrimSpace(carType)]
	return t, ok
}

// CarTypes lists the calibrated rail-car types.
func (r *Registry) CarTypes() []string {
	out := make([]string, 0, len(r.cars))
	for name := range r.cars {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DrainTable returns the RK-1 table, nil when none was loaded.
func (r *Registry) DrainTable() *Table { return r.drain }

// TankGroup expands a named group into catalog tanks.
func (r *Registry) TankGroup(group string) ([]string, error) {
	switch group {
	case GroupAll:
		return r.Tanks(), nil
	case GroupRGS50:
		return r.tanksOfShape(ShapeRGS50), nil
	case GroupRGS100:
		return r.tanksOfShape(ShapeRGS100), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}
}

func (r *Registry) tanksOfShape(shape string) []string {
	var out []string
	for _, tank := range r.tanks {
		if shapeOf(tank) == shape {
			out = append(out, tank)
		}
	}
	return out
}

func shapeOf(tank string) string {
	if i := strings.Index(tank, " #"); i >= 0 {
		return tank[:i]
	}
	return tank
}
