// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// FormatJSON writes result as indented JSON to w.
func FormatJSON(result any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// FormatText writes a human-readable rendering of result to w. Objects with
// "response" and "sources" keys print as an answer followed by a numbered
// source list; other objects print one key per line; anything else falls
// back to JSON.
func FormatText(result any, w io.Writer) error {
	obj, ok := result.(map[string]any)
	if !ok {
		if result == nil {
			fmt.Fprintln(w, "No response.")
			return nil
		}
		if s, isString := result.(string); isString {
			fmt.Fprintln(w, s)
			return nil
		}
		return FormatJSON(result, w)
	}

	if answer, ok := obj["response"].(string); ok {
		fmt.Fprintln(w, answer)
		if sources := stringList(obj["sources"]); len(sources) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Sources:")
			for i, s := range sources {
				fmt.Fprintf(w, "  [%d] %s\n", i+1, s)
			}
		}
		return nil
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}
	for _, k := range keys {
		fmt.Fprintf(w, "%-*s  %s\n", width, k, scalar(obj[k]))
	}
	return nil
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, scalar(item))
	}
	return out
}

func scalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return ""
	case json.Number:
		return x.String()
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return strings.TrimSpace(string(data))
	}
}
