package service

import (
	"fmt"
	"math"

	"ugc-studio/internal/model"
	"ugc-studio/internal/repository"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindBool
)

// Fields a client may change through partial updates. id, brandId and the
// timestamps are owned by the repository.
var (
	brandFields = map[string]fieldKind{
		"brand_name":      kindString,
		"brand_domain":    kindString,
		"category":        kindString,
		"uvp":             kindString,
		"audience":        kindString,
		"pain_points":     kindString,
		"competitors":     kindString,
		"brand_voice":     kindString,
		"marketing_goals": kindString,
	}
	ideaFields = map[string]fieldKind{
		"title":          kindString,
		"description":    kindString,
		"hook":           kindString,
		"viralPotential": kindString,
		"viralTrend":     kindString,
		"type":           kindString,
		"aiInfluencer":   kindString,
		"frame1":         kindString,
		"frame2":         kindString,
		"frame3":         kindString,
		"ranking":        kindInt,
		"enabled":        kindBool,
	}
	scriptFields = map[string]fieldKind{
		"concept":   kindString,
		"content":   kindString,
		"ideaTitle": kindString,
		"ranking":   kindInt,
		"enabled":   kindBool,
	}
)

// normalizeFields checks a decoded JSON patch against the allowed field set
// and converts JSON numbers to int.
func normalizeFields(patch map[string]any, allowed map[string]fieldKind) (repository.Fields, error) {
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", model.ErrInvalidInput)
	}
	out := make(repository.Fields, len(patch))
	for name, value := range patch {
		kind, ok := allowed[name]
		if !ok {
			return nil, fmt.Errorf("%w: field %q cannot be updated", model.ErrInvalidInput, name)
		}
		switch kind {
		case kindString:
			s, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: field %q must be a string", model.ErrInvalidInput, name)
			}
			out[name] = s
		case kindBool:
			b, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: field %q must be a boolean", model.ErrInvalidInput, name)
			}
			out[name] = b
		case kindInt:
			n, err := toInt(value)
			if err != nil {
				return nil, fmt.Errorf("%w: field %q %v", model.ErrInvalidInput, name, err)
			}
			out[name] = n
		}
	}
	if r, ok := out["ranking"]; ok {
		if err := validateRanking(r.(int)); err != nil {
			return nil, err
		}
	}
	if t, ok := out["type"]; ok {
		switch model.IdeaType(t.(string)) {
		case model.IdeaTypeGeneral, model.IdeaTypeUGC:
		default:
			return nil, fmt.Errorf("%w: unknown idea type %q", model.ErrInvalidInput, t)
		}
	}
	return out, nil
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("must be a whole number, got %v", v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("must be a number, got %T", value)
	}
}

func validateRanking(r int) error {
	if r < model.MinRanking || r > model.MaxRanking {
		return fmt.Errorf("%w: ranking must be between %d and %d, got %d", model.ErrInvalidInput, model.MinRanking, model.MaxRanking, r)
	}
	return nil
}
