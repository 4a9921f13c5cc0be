package tools

import "fmt"

// Argument maps arrive as decoded JSON, so numbers are float64 and lists are
// []any regardless of the declared schema.

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	val, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string", key)
	}
	return val, nil
}

func numberArg(args map[string]any, key string) (float64, error) {
	raw, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required argument %q", key)
	}
	val, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("argument %q must be a number", key)
	}
	return val, nil
}

func intArg(args map[string]any, key string) (int, error) {
	val, err := numberArg(args, key)
	if err != nil {
		return 0, err
	}
	return int(val), nil
}

func stringListArg(args map[string]any, key string) ([]string, error) {
	raw, ok := args[key]
	if !ok {
		return nil, fmt.Errorf("missing required argument %q", key)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("argument %q must be a list", key)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		val, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("argument %q must be a list of strings", key)
		}
		out = append(out, val)
	}
	return out, nil
}
