package wialon

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// BuildURL constructs a request URL against base for the given service.
// params is JSON-encoded into the "params" query key and omitted when nil.
// sid is omitted when empty. The service name is not validated; unknown
// services fail remotely.
func BuildURL(base, svc string, params any, sid string) (string, error) {
	q := url.Values{}
	q.Set("svc", svc)

	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return "", fmt.Errorf("encoding params for %s: %w", svc, err)
		}
		q.Set("params", string(raw))
	}

	if sid != "" {
		q.Set("sid", sid)
	}

	return base + "?" + q.Encode(), nil
}
