package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileSize is a byte count that accepts unit suffixes in YAML, e.g. "256KiB" or "1M".
type FileSize int64

// Longest suffixes first so "KIB" wins over "B".
var sizeUnits = []struct {
	suffix     string
	multiplier int64
}{
	{"KIB", 1 << 10},
	{"MIB", 1 << 20},
	{"GIB", 1 << 30},
	{"KB", 1000},
	{"MB", 1000 * 1000},
	{"GB", 1000 * 1000 * 1000},
	{"K", 1000},
	{"M", 1000 * 1000},
	{"G", 1000 * 1000 * 1000},
	{"B", 1},
}

func ParseFileSize(s string) (FileSize, error) {
	str := strings.TrimSpace(strings.ToUpper(s))
	if str == "" {
		return 0, fmt.Errorf("empty size string")
	}

	multiplier := int64(1)
	numStr := str
	for _, u := range sizeUnits {
		if strings.HasSuffix(str, u.suffix) {
			multiplier = u.multiplier
			numStr = strings.TrimSpace(strings.TrimSuffix(str, u.suffix))
			break
		}
	}

	num, err := strconv.ParseFloat(numStr, 64)
	if err != nil || num < 0 || math.IsNaN(num) || math.IsInf(num, 0) {
		return 0, fmt.Errorf("invalid size format: %s", s)
	}
	if num >= float64(math.MaxInt64)/float64(multiplier) {
		return 0, fmt.Errorf("size out of range: %s", s)
	}
	return FileSize(num * float64(multiplier)), nil
}

func (s *FileSize) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if err := value.Decode(&n); err == nil {
		*s = FileSize(n)
		return nil
	}
	size, err := ParseFileSize(value.Value)
	if err != nil {
		return err
	}
	*s = size
	return nil
}

func (s FileSize) Int64() int64 {
	return int64(s)
}

func (s FileSize) String() string {
	const unit = 1024
	bytes := int64(s)
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
