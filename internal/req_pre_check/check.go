package req_pre_check

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cpucorecore/datelabel/internal/format"
)

var (
	ErrEmptyValue      = errors.New("empty value")
	ErrInvalidTimezone = errors.New("invalid timezone")
	ErrInvalidBody     = errors.New("invalid label request")
	ErrEmptyBatch      = errors.New("no values")
	ErrBatchTooLarge   = errors.New("too many values")
)

type LabelReq struct {
	Values []any  `json:"values"`
	TZ     string `json:"tz"`
}

// CheckTimezone resolves tz. An empty tz returns nil so callers keep
// their configured zone.
func CheckTimezone(tz string) (*time.Location, error) {
	if strings.TrimSpace(tz) == "" {
		return nil, nil
	}
	loc, err := format.ResolveTimezone(tz)
	if err != nil {
		return nil, ErrInvalidTimezone
	}
	return loc, nil
}

// CheckHttpReq reads the value and tz query parameters. Integer values are
// returned as int64 epoch milliseconds, anything else as the raw string.
func CheckHttpReq(c *gin.Context) (any, *time.Location, error) {
	raw := strings.TrimSpace(c.Query("value"))
	if raw == "" {
		return nil, nil, ErrEmptyValue
	}

	loc, err := CheckTimezone(c.Query("tz"))
	if err != nil {
		return nil, nil, err
	}

	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ms, loc, nil
	}
	return raw, loc, nil
}

// CheckJsonReq decodes a batch body. Numbers stay json.Number so integer
// milliseconds are not rounded through float64.
func CheckJsonReq(data []byte, maxBatch int) ([]any, *time.Location, error) {
	req := &LabelReq{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(req); err != nil {
		return nil, nil, ErrInvalidBody
	}

	if len(req.Values) == 0 {
		return nil, nil, ErrEmptyBatch
	}
	if maxBatch > 0 && len(req.Values) > maxBatch {
		return nil, nil, ErrBatchTooLarge
	}

	loc, err := CheckTimezone(req.TZ)
	if err != nil {
		return nil, nil, err
	}
	return req.Values, loc, nil
}
