package levels

import (
	"context"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/gamewaifu/waifu-api/internal/entities"
	"github.com/gamewaifu/waifu-api/internal/errors"
)

// File is the YAML layout of a level table:
//
//	default_step: 500
//	levels:
//	  - level: 1
//	    love_required: 500
type File struct {
	DefaultStep int64                        `yaml:"default_step"`
	Levels      []*entities.LevelRequirement `yaml:"levels"`
}

type staticRepository struct {
	byLevel map[int]*entities.LevelRequirement
	step    int64
}

// NewStatic serves a fixed table held in memory
func NewStatic(reqs []*entities.LevelRequirement, defaultStep int64) (Repository, error) {
	byLevel := make(map[int]*entities.LevelRequirement, len(reqs))
	for _, req := range reqs {
		if req == nil || req.Level < 1 || req.LoveRequired < 0 {
			return nil, errors.InvalidArgument("level requirements need level >= 1 and love_required >= 0")
		}
		if _, dup := byLevel[req.Level]; dup {
			return nil, errors.InvalidArgumentf("level %d listed twice", req.Level)
		}
		byLevel[req.Level] = req
	}

	return &staticRepository{byLevel: byLevel, step: defaultStep}, nil
}

// LoadFile parses a YAML level table
func LoadFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read level table %s", path)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "level table is not valid YAML")
	}

	return &f, nil
}

func (r *staticRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.Level < 1 {
		return nil, errors.InvalidArgumentf("level must be at least 1, got %d", input.Level)
	}

	if req, ok := r.byLevel[input.Level]; ok {
		return &GetOutput{Requirement: req}, nil
	}
	if r.step > 0 {
		return &GetOutput{Requirement: DefaultRequirement(input.Level, r.step)}, nil
	}
	return nil, errors.NotFoundf("no requirement for level %d", input.Level)
}

func (r *staticRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	reqs := make([]*entities.LevelRequirement, 0, len(r.byLevel))
	for _, req := range r.byLevel {
		reqs = append(reqs, req)
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].Level < reqs[j].Level })
	return &ListOutput{Requirements: reqs}, nil
}

// Snapshot copies every stored requirement from src into a static table so
// lookups never touch storage while a character row is locked
func Snapshot(ctx context.Context, src Repository, defaultStep int64) (Repository, error) {
	out, err := src.List(ctx, ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to snapshot level requirements")
	}
	return NewStatic(out.Requirements, defaultStep)
}
