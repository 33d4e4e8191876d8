package schema

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// caseBody mirrors the value of each single-key entry in a case file.
type caseBody struct {
	TestInput map[string][]yaml.Node `yaml:"test_input"`
	Expected  yaml.Node              `yaml:"expected"`
}

// ParseCheckCases decodes a case file: a list of single-key maps whose key is
// the case name and whose value holds test_input and expected.
func ParseCheckCases(data []byte) ([]CheckCase, error) {
	var entries []map[string]caseBody
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode cases: %w", err)
	}

	cases := make([]CheckCase, 0, len(entries))
	for i, entry := range entries {
		if len(entry) != 1 {
			return nil, fmt.Errorf("case %d: expected exactly one name, got %d", i, len(entry))
		}
		for name, body := range entry {
			c, err := body.toCheckCase(name)
			if err != nil {
				return nil, fmt.Errorf("case %q: %w", name, err)
			}
			cases = append(cases, c)
		}
	}
	return cases, nil
}

func (b caseBody) toCheckCase(name string) (CheckCase, error) {
	c := CheckCase{Name: name}

	var err error
	if c.Large, err = decodeRangeSpec(b.TestInput[LargeInputName]); err != nil {
		return c, fmt.Errorf("%s: %w", LargeInputName, err)
	}
	if c.Short, err = decodeRangeSpec(b.TestInput[ShortInputName]); err != nil {
		return c, fmt.Errorf("%s: %w", ShortInputName, err)
	}

	switch b.Expected.Kind {
	case yaml.ScalarNode:
		if b.Expected.Value != LargeInputName && b.Expected.Value != ShortInputName {
			return c, fmt.Errorf("expected must name %s or %s, got %q", LargeInputName, ShortInputName, b.Expected.Value)
		}
		c.ExpectedRef = b.Expected.Value
	case yaml.SequenceNode:
		var pairs [][]string
		if err := b.Expected.Decode(&pairs); err != nil {
			return c, fmt.Errorf("expected: %w", err)
		}
		c.Expected = make(TimeRange, 0, len(pairs))
		for _, pair := range pairs {
			if len(pair) != 2 {
				return c, fmt.Errorf("expected: want [start, stop] pairs, got %v", pair)
			}
			ti, err := parseInterval(pair[0], pair[1])
			if err != nil {
				return c, fmt.Errorf("expected: %w", err)
			}
			c.Expected = append(c.Expected, ti)
		}
	default:
		return c, fmt.Errorf("expected must be a list of pairs or an input name")
	}
	return c, nil
}

// decodeRangeSpec reads [start, stop, count?, gap?] where gap is anything ParseGap accepts.
func decodeRangeSpec(args []yaml.Node) (RangeSpec, error) {
	var rs RangeSpec
	if len(args) < 2 || len(args) > 4 {
		return rs, fmt.Errorf("want 2 to 4 arguments, got %d", len(args))
	}

	var err error
	if rs.Start, err = ParseTimestamp(args[0].Value); err != nil {
		return rs, err
	}
	if rs.Stop, err = ParseTimestamp(args[1].Value); err != nil {
		return rs, err
	}
	if len(args) > 2 {
		if rs.Count, err = strconv.Atoi(args[2].Value); err != nil {
			return rs, fmt.Errorf("invalid count %q: %w", args[2].Value, err)
		}
	}
	if len(args) > 3 {
		if rs.Gap, err = ParseGap(args[3].Value); err != nil {
			return rs, err
		}
	}
	return rs, nil
}

func parseInterval(start, stop string) (TimeInterval, error) {
	s, err := ParseTimestamp(start)
	if err != nil {
		return TimeInterval{}, err
	}
	e, err := ParseTimestamp(stop)
	if err != nil {
		return TimeInterval{}, err
	}
	return NewTimeInterval(s, e)
}
