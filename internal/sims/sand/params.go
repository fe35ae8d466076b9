package sand

import (
	"strconv"

	"sandfall/internal/core"
)

func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				intParam("chunk", "Chunk size", w.cfg.ChunkSize),
				int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Brush",
			Params: []core.Parameter{
				intParam("brush_radius", "Brush radius", params.BrushRadius),
				intParam("brush_material", "Brush material", params.BrushMaterial),
			},
		},
		{
			Name: "Fluids",
			Params: []core.Parameter{
				floatParam("flow_chance", "Flow chance", params.FlowChance),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables the HUD may adjust live.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{
			Key:   "brush_radius",
			Label: "Brush radius",
			Type:  core.ParamTypeInt,
			Step:  1,
			Min:   1, HasMin: true,
			Max: 32, HasMax: true,
		},
		{
			Key:   "brush_material",
			Label: "Brush material",
			Type:  core.ParamTypeInt,
			Step:  1,
			Min:   0, HasMin: true,
			Max: 255, HasMax: true,
		},
		{
			Key:   "flow_chance",
			Label: "Flow chance",
			Type:  core.ParamTypeFloat,
			Step:  0.05,
			Min:   0, HasMin: true,
			Max: 1, HasMax: true,
		},
	}
}

// SetIntParameter updates an integer tunable by key.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "brush_radius":
		if value < 1 || value > 32 {
			return false
		}
		w.cfg.Params.BrushRadius = value
		return true
	case "brush_material":
		if value < 0 || value > 255 {
			return false
		}
		w.cfg.Params.BrushMaterial = value
		return true
	}
	return false
}

// SetFloatParameter updates a float tunable by key.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "flow_chance":
		if value < 0 || value > 1 {
			return false
		}
		w.cfg.Params.FlowChance = value
		return true
	}
	return false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
