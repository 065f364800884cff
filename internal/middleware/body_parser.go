package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	apperrors "interview-booking-api/internal/errors"

	"github.com/gin-gonic/gin"
)

const (
	jsonPayload = "json"
	formPayload = "form"
)

// Payload is a parsed request body. JSON bodies decode into the generic
// map/slice/string/json.Number tree; form bodies into a map of []interface{}
// (or a single string once collapsed by HPP).
type Payload struct {
	Kind string
	Data interface{}
}

// PayloadFrom returns the payload parsed by BodyParser.
func PayloadFrom(c *gin.Context) (*Payload, bool) {
	v, ok := c.Get(PayloadKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*Payload)
	return p, ok
}

func (p *Payload) encode() ([]byte, error) {
	if p.Kind == jsonPayload {
		return json.Marshal(p.Data)
	}
	values := url.Values{}
	fields, _ := p.Data.(map[string]interface{})
	for key, v := range fields {
		switch vv := v.(type) {
		case string:
			values.Add(key, vv)
		case []interface{}:
			for _, item := range vv {
				if s, ok := item.(string); ok {
					values.Add(key, s)
				}
			}
		}
	}
	return []byte(values.Encode()), nil
}

// commit re-encodes the payload into the request body so downstream
// binders see the cleaned input.
func (p *Payload) commit(c *gin.Context) error {
	raw, err := p.encode()
	if err != nil {
		return fmt.Errorf("re-encode body: %w", err)
	}
	setBody(c.Request, raw)
	return nil
}

func setBody(r *http.Request, raw []byte) {
	r.Body = io.NopCloser(bytes.NewReader(raw))
	r.ContentLength = int64(len(raw))
	r.Header.Set("Content-Length", strconv.Itoa(len(raw)))
}

// BodyParser reads JSON and URL-encoded bodies of at most limit bytes into a
// Payload stored on the context. Other content types pass through untouched.
func BodyParser(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}

		var kind string
		switch c.ContentType() {
		case gin.MIMEJSON:
			kind = jsonPayload
		case gin.MIMEPOSTForm:
			kind = formPayload
		default:
			c.Next()
			return
		}

		raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, limit))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				abortWithError(c, fmt.Errorf("body exceeds %d bytes: %w", limit, apperrors.ErrPayloadTooLarge))
				return
			}
			abortWithError(c, fmt.Errorf("read body: %v: %w", err, apperrors.ErrMalformedBody))
			return
		}
		setBody(c.Request, raw)
		if len(bytes.TrimSpace(raw)) == 0 {
			c.Next()
			return
		}

		p := &Payload{Kind: kind}
		if kind == jsonPayload {
			dec := json.NewDecoder(bytes.NewReader(raw))
			dec.UseNumber()
			if err := dec.Decode(&p.Data); err != nil {
				abortWithError(c, fmt.Errorf("decode json: %v: %w", err, apperrors.ErrMalformedBody))
				return
			}
		} else {
			values, err := url.ParseQuery(string(raw))
			if err != nil {
				abortWithError(c, fmt.Errorf("decode form: %v: %w", err, apperrors.ErrMalformedBody))
				return
			}
			fields := make(map[string]interface{}, len(values))
			for key, vs := range values {
				items := make([]interface{}, len(vs))
				for i, v := range vs {
					items[i] = v
				}
				fields[key] = items
			}
			p.Data = fields
		}

		c.Set(PayloadKey, p)
		c.Next()
	}
}

// clean walks v, dropping map keys for which drop reports true and passing
// every string through str. Either func may be nil.
func clean(v interface{}, drop func(string) bool, str func(string) string) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for key, child := range vv {
			if drop != nil && drop(key) {
				delete(vv, key)
				continue
			}
			vv[key] = clean(child, drop, str)
		}
		return vv
	case []interface{}:
		for i, child := range vv {
			vv[i] = clean(child, drop, str)
		}
		return vv
	case string:
		if str != nil {
			return str(vv)
		}
		return vv
	default:
		return v
	}
}
