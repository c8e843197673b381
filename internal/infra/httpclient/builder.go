package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/aalvaropc/rashi/internal/domain"
)

// BuildGet builds a GET request for base with params merged into its query.
func BuildGet(ctx context.Context, base string, params url.Values) (*http.Request, error) {
	if strings.TrimSpace(base) == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("empty url"),
		}
	}

	u, err := url.Parse(base)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
