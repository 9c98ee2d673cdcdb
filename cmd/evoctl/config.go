package main

import (
	"encoding/json"
	"fmt"
	"os"

	"evoframe/pkg/evoframe"
)

func loadConfig(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return raw, nil
}

func oneMaxRequestFromConfig(raw map[string]any) evoframe.OneMaxRequest {
	var req evoframe.OneMaxRequest
	if v, ok := asInt(raw["bits"]); ok {
		req.Bits = v
	}
	if v, ok := asInt(raw["population"]); ok {
		req.Population = v
	}
	if v, ok := asInt(raw["generations"]); ok {
		req.Generations = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asString(raw["selection"]); ok {
		req.Selection = v
	}
	if v, ok := asString(raw["crossover"]); ok {
		req.Crossover = v
	}
	if v, ok := asFloat64(raw["mutation_rate"]); ok {
		req.MutationRate = v
	}
	if v, ok := asInt(raw["elite"]); ok {
		req.Elite = v
	}
	return req
}

func zdt1RequestFromConfig(raw map[string]any) evoframe.ZDT1Request {
	var req evoframe.ZDT1Request
	if v, ok := asInt(raw["vars"]); ok {
		req.Vars = v
	}
	if v, ok := asInt(raw["population"]); ok {
		req.Population = v
	}
	if v, ok := asInt(raw["generations"]); ok {
		req.Generations = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asString(raw["ranking"]); ok {
		req.Ranking = v
	}
	if v, ok := asString(raw["archive"]); ok {
		req.Archive = v
	}
	if v, ok := asInt(raw["elite"]); ok {
		req.Elite = v
	}
	return req
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

func overrideOneMaxFromFlags(req *evoframe.OneMaxRequest, set map[string]bool, flagValue map[string]any) error {
	for name := range set {
		v, ok := flagValue[name]
		if !ok {
			continue
		}
		switch name {
		case "bits":
			req.Bits = v.(int)
		case "population":
			req.Population = v.(int)
		case "generations":
			req.Generations = v.(int)
		case "seed":
			req.Seed = v.(int64)
		case "selection":
			req.Selection = v.(string)
		case "crossover":
			req.Crossover = v.(string)
		case "mutation-rate":
			req.MutationRate = v.(float64)
		case "elite":
			req.Elite = v.(int)
		default:
			return fmt.Errorf("unsupported onemax flag override: %s", name)
		}
	}
	return nil
}

func overrideZDT1FromFlags(req *evoframe.ZDT1Request, set map[string]bool, flagValue map[string]any) error {
	for name := range set {
		v, ok := flagValue[name]
		if !ok {
			continue
		}
		switch name {
		case "vars":
			req.Vars = v.(int)
		case "population":
			req.Population = v.(int)
		case "generations":
			req.Generations = v.(int)
		case "seed":
			req.Seed = v.(int64)
		case "ranking":
			req.Ranking = v.(string)
		case "archive":
			req.Archive = v.(string)
		case "elite":
			req.Elite = v.(int)
		default:
			return fmt.Errorf("unsupported zdt1 flag override: %s", name)
		}
	}
	return nil
}
